package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/core/session"
)

func newRedisStore(t *testing.T, opts ...session.RedisStoreOption) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, opts...), mr
}

func TestRedisStoreSaveGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	userID := uuid.New()

	sess := session.New(userID, session.Metadata{IP: "203.0.113.7", UserAgent: chromeWindowsUA})
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, userID, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.IP, got.IP)
	assert.Equal(t, sess.Device, got.Device)

	t.Run("unknown session", func(t *testing.T) {
		_, err := store.Get(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestRedisStoreListByUser(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, session.WithRetentionTTL(time.Hour))
	userID := uuid.New()

	first := session.New(userID, session.Metadata{IP: "203.0.113.1"})
	second := session.New(userID, session.Metadata{IP: "203.0.113.2"})
	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	sessions, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	t.Run("reaped keys pruned from listing", func(t *testing.T) {
		mr.FastForward(2 * time.Hour)

		sessions, err := store.ListByUser(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	userID := uuid.New()

	sess := session.New(userID, session.Metadata{IP: "203.0.113.7"})
	require.NoError(t, store.Save(ctx, sess))

	removed, err := store.Delete(ctx, userID, sess.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Delete(ctx, userID, sess.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRedisStoreDeleteUser(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	userID := uuid.New()
	other := uuid.New()

	for range 3 {
		require.NoError(t, store.Save(ctx, session.New(userID, session.Metadata{IP: "203.0.113.7"})))
	}
	otherSess := session.New(other, session.Metadata{IP: "203.0.113.8"})
	require.NoError(t, store.Save(ctx, otherSess))

	count, err := store.DeleteUser(ctx, userID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	sessions, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// Other users keep their sessions.
	_, err = store.Get(ctx, other, otherSess.ID)
	assert.NoError(t, err)
}

func TestRedisStoreDeleteExpired(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t, session.WithRetentionTTL(time.Hour))
	userID := uuid.New()

	sess := session.New(userID, session.Metadata{IP: "203.0.113.7"})
	require.NoError(t, store.Save(ctx, sess))

	// Session key expires; the index entry dangles until swept.
	mr.FastForward(2 * time.Hour)

	// The index key itself also expires with the retention TTL, so re-add
	// a fresh session to recreate the index with one dangling entry.
	fresh := session.New(userID, session.Metadata{IP: "203.0.113.8"})
	require.NoError(t, store.Save(ctx, fresh))
	_, err := mr.SetAdd("session:index:"+userID.String(), sess.ID.String())
	require.NoError(t, err)

	pruned, err := store.DeleteExpired(ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, pruned)

	sessions, err := store.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, fresh.ID, sessions[0].ID)
}

func TestRedisStoreWithManager(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)
	manager := session.NewManager(store)
	userID := uuid.New()

	sess, err := manager.Create(ctx, userID, session.Metadata{IP: "203.0.113.7", UserAgent: chromeWindowsUA})
	require.NoError(t, err)

	sessions, err := manager.List(ctx, userID, sess.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Current)

	removed, err := manager.Revoke(ctx, userID, sess.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}
