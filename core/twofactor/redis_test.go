package twofactor_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/core/twofactor"
	"github.com/dmitrymomot/authcore/pkg/totp"
)

func newRedisStore(t *testing.T) *twofactor.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return twofactor.NewRedisStore(client)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)
	userID := uuid.New()

	t.Run("get before save", func(t *testing.T) {
		_, err := store.Get(ctx, userID)
		assert.ErrorIs(t, err, twofactor.ErrNotEnrolled)
	})

	t.Run("save get round trip", func(t *testing.T) {
		enrollment := twofactor.Enrollment{
			UserID:        userID,
			Secret:        "encrypted-blob",
			Enabled:       true,
			ConfirmedAt:   time.Now().Truncate(time.Second),
			CreatedAt:     time.Now().Truncate(time.Second),
			RecoveryCodes: []string{"hash1", "hash2"},
		}
		require.NoError(t, store.Save(ctx, enrollment))

		got, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, enrollment.UserID, got.UserID)
		assert.Equal(t, enrollment.Secret, got.Secret)
		assert.True(t, got.Enabled)
		assert.Equal(t, enrollment.RecoveryCodes, got.RecoveryCodes)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, userID))
		_, err := store.Get(ctx, userID)
		assert.ErrorIs(t, err, twofactor.ErrNotEnrolled)

		// Deleting again is not an error.
		assert.NoError(t, store.Delete(ctx, userID))
	})
}

func TestServiceWithRedisStore(t *testing.T) {
	ctx := context.Background()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	svc, err := twofactor.NewService(newRedisStore(t), key)
	require.NoError(t, err)

	userID := uuid.New()
	setup, err := svc.Setup(ctx, userID, "user@example.com")
	require.NoError(t, err)

	code, err := totp.GenerateTOTP(setup.Secret)
	require.NoError(t, err)

	codes, err := svc.Enable(ctx, userID, code)
	require.NoError(t, err)
	require.NotEmpty(t, codes)

	enabled, err := svc.Enabled(ctx, userID)
	require.NoError(t, err)
	assert.True(t, enabled)

	assert.NoError(t, svc.UseRecoveryCode(ctx, userID, codes[0]))
	assert.ErrorIs(t, svc.UseRecoveryCode(ctx, userID, codes[0]), twofactor.ErrInvalidRecoveryCode)
}
