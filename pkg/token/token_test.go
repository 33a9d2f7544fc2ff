package token_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/pkg/token"
)

type testClaims struct {
	UserID    string `json:"uid"`
	ExpiresAt int64  `json:"exp"`
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		claims := testClaims{UserID: "user-123", ExpiresAt: 1700000000}
		tok, err := token.GenerateToken(claims, "secret")
		require.NoError(t, err)
		require.Contains(t, tok, ".")

		parsed, err := token.ParseToken[testClaims](tok, "secret")
		require.NoError(t, err)
		assert.Equal(t, claims, parsed)
	})

	t.Run("deterministic for same payload and secret", func(t *testing.T) {
		t.Parallel()

		claims := testClaims{UserID: "abc"}
		tok1, err := token.GenerateToken(claims, "secret")
		require.NoError(t, err)
		tok2, err := token.GenerateToken(claims, "secret")
		require.NoError(t, err)
		assert.Equal(t, tok1, tok2)
	})
}

func TestParseToken(t *testing.T) {
	t.Parallel()

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		tok, err := token.GenerateToken(testClaims{UserID: "u"}, "secret")
		require.NoError(t, err)

		_, err = token.ParseToken[testClaims](tok, "other-secret")
		assert.ErrorIs(t, err, token.ErrSignatureInvalid)
	})

	t.Run("tampered payload", func(t *testing.T) {
		t.Parallel()

		tok, err := token.GenerateToken(testClaims{UserID: "u"}, "secret")
		require.NoError(t, err)

		parts := strings.SplitN(tok, ".", 2)
		tampered := parts[0] + "x." + parts[1]

		_, err = token.ParseToken[testClaims](tampered, "secret")
		assert.ErrorIs(t, err, token.ErrSignatureInvalid)
	})

	t.Run("malformed tokens", func(t *testing.T) {
		t.Parallel()

		for _, tok := range []string{"", "no-separator", ".", "a.", ".b", "a.!!!"} {
			_, err := token.ParseToken[testClaims](tok, "secret")
			assert.ErrorIs(t, err, token.ErrInvalidToken, "token %q", tok)
		}
	})
}
