package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/core/logger"
)

func TestErrorAttr(t *testing.T) {
	t.Parallel()

	t.Run("non-nil error", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
	})

	t.Run("nil error returns empty attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Error(nil)
		assert.Empty(t, attr.Key)
	})
}

func TestErrorsAttr(t *testing.T) {
	t.Parallel()

	t.Run("skips nil errors", func(t *testing.T) {
		t.Parallel()

		attr := logger.Errors(errors.New("first"), nil, errors.New("third"))
		assert.Equal(t, "errors", attr.Key)

		group := attr.Value.Group()
		require.Len(t, group, 2)
		assert.Equal(t, "0", group[0].Key)
		assert.Equal(t, "2", group[1].Key)
	})

	t.Run("all nil returns empty attr", func(t *testing.T) {
		t.Parallel()

		attr := logger.Errors(nil, nil)
		assert.Empty(t, attr.Key)
	})
}

func TestIdentityAttrs(t *testing.T) {
	t.Parallel()

	t.Run("user id", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		attr := logger.UserID(id)
		assert.Equal(t, "user_id", attr.Key)
		assert.Equal(t, id.String(), attr.Value.String())
	})

	t.Run("nil user id returns empty attr", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, logger.UserID(uuid.Nil).Key)
	})

	t.Run("session id", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		attr := logger.SessionID(id)
		assert.Equal(t, "session_id", attr.Key)
		assert.Equal(t, id.String(), attr.Value.String())
	})

	t.Run("empty challenge id returns empty attr", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, logger.ChallengeID("").Key)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithJSONFormatter(),
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "authcore")),
		)

		log.Info("session created", logger.Component("session"))

		out := buf.String()
		assert.Contains(t, out, `"msg":"session created"`)
		assert.Contains(t, out, `"component":"session"`)
		assert.Contains(t, out, `"service":"authcore"`)
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelWarn),
		)

		log.Info("hidden")
		log.Warn("visible")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "visible")
	})

	t.Run("development defaults to debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithDevelopment("authcore"),
			logger.WithOutput(&buf),
		)

		log.Debug("debug message")
		assert.Contains(t, buf.String(), "debug message")
	})
}
