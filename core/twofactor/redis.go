package twofactor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store implementation backed by Redis. Enrollments are
// long-lived security state, so keys carry no TTL.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets a custom key prefix. Default is "twofactor".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed enrollment store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "twofactor",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, userID)
}

// Save inserts or replaces an enrollment.
func (s *RedisStore) Save(ctx context.Context, enrollment Enrollment) error {
	data, err := json.Marshal(enrollment)
	if err != nil {
		return fmt.Errorf("failed to marshal enrollment: %w", err)
	}
	if err := s.client.Set(ctx, s.key(enrollment.UserID), data, 0).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the user's enrollment or ErrNotEnrolled.
func (s *RedisStore) Get(ctx context.Context, userID uuid.UUID) (Enrollment, error) {
	data, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Enrollment{}, ErrNotEnrolled
		}
		return Enrollment{}, errors.Join(ErrStoreUnavailable, err)
	}

	var enrollment Enrollment
	if err := json.Unmarshal(data, &enrollment); err != nil {
		return Enrollment{}, fmt.Errorf("failed to unmarshal enrollment: %w", err)
	}
	return enrollment, nil
}

// Delete removes the user's enrollment.
func (s *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Healthcheck verifies Redis connectivity.
func (s *RedisStore) Healthcheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
