package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrPendingStoreUnavailable wraps pending store backend failures.
var ErrPendingStoreUnavailable = errors.New("pending login store unavailable")

// RedisPendingStore is a PendingStore backed by Redis. Each record's TTL
// mirrors its expiry, so Redis reaps stale records on its own.
type RedisPendingStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisPendingStoreOption configures a RedisPendingStore.
type RedisPendingStoreOption func(*RedisPendingStore)

// WithPendingKeyPrefix sets a custom key prefix. Default is "pending_login".
func WithPendingKeyPrefix(prefix string) RedisPendingStoreOption {
	return func(s *RedisPendingStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisPendingStore creates a Redis-backed pending login store.
func NewRedisPendingStore(client redis.UniversalClient, opts ...RedisPendingStoreOption) *RedisPendingStore {
	s := &RedisPendingStore{
		client:    client,
		keyPrefix: "pending_login",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisPendingStore) key(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, id)
}

// Save inserts or replaces a pending login with a TTL matching its expiry.
func (s *RedisPendingStore) Save(ctx context.Context, pending PendingLogin) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending login: %w", err)
	}

	ttl := time.Until(pending.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, s.key(pending.ID), data, ttl).Err(); err != nil {
		return errors.Join(ErrPendingStoreUnavailable, err)
	}
	return nil
}

// Get returns the pending login or ErrPendingNotFound.
func (s *RedisPendingStore) Get(ctx context.Context, id uuid.UUID) (PendingLogin, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return PendingLogin{}, ErrPendingNotFound
		}
		return PendingLogin{}, errors.Join(ErrPendingStoreUnavailable, err)
	}

	var pending PendingLogin
	if err := json.Unmarshal(data, &pending); err != nil {
		return PendingLogin{}, fmt.Errorf("failed to unmarshal pending login: %w", err)
	}
	return pending, nil
}

// Delete removes the pending login. DEL's removal count makes the
// consume-once guarantee atomic across processes.
func (s *RedisPendingStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.client.Del(ctx, s.key(id)).Result()
	if err != nil {
		return false, errors.Join(ErrPendingStoreUnavailable, err)
	}
	return removed > 0, nil
}
