package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisTTL = 30 * 24 * time.Hour

// RedisStore is a Store implementation backed by Redis, for deployments
// where sessions must survive restarts or be shared across processes.
//
// Each session lives under its own key with a retention TTL refreshed on
// every save, and a per-user set indexes the session IDs. Redis reaps
// stale session keys on its own; DeleteExpired prunes index entries whose
// keys are gone. Logical expiry (idle and absolute bounds) is still
// enforced by the Manager at read time.
type RedisStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets a custom key prefix. Default is "session".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.keyPrefix = prefix
		}
	}
}

// WithRetentionTTL sets how long Redis retains a session after its last
// save. Set it at or above the manager's MaxAge so storage never reaps a
// session the manager still considers live.
func WithRetentionTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		keyPrefix: "session",
		ttl:       defaultRedisTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) sessionKey(userID, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", s.keyPrefix, userID, id)
}

func (s *RedisStore) indexKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:index:%s", s.keyPrefix, userID)
}

// Save inserts or replaces a session and refreshes its retention TTL.
func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.sessionKey(sess.UserID, sess.ID), data, s.ttl)
	pipe.SAdd(ctx, s.indexKey(sess.UserID), sess.ID.String())
	pipe.Expire(ctx, s.indexKey(sess.UserID), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the session or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, userID, id uuid.UUID) (Session, error) {
	data, err := s.client.Get(ctx, s.sessionKey(userID, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, errors.Join(ErrStoreUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return sess, nil
}

// ListByUser returns all stored sessions for the user, pruning index
// entries whose session keys have been reaped.
func (s *RedisStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(userID)).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			s.client.SRem(ctx, s.indexKey(userID), raw)
			continue
		}
		keys = append(keys, s.sessionKey(userID, id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	out := make([]Session, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Key expired; drop the dangling index entry.
			s.client.SRem(ctx, s.indexKey(userID), ids[i])
			continue
		}
		var sess Session
		if err := json.Unmarshal([]byte(raw), &sess); err != nil {
			continue
		}
		out = append(out, sess)
	}
	return out, nil
}

// Delete removes the session if present and reports whether removal occurred.
func (s *RedisStore) Delete(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, s.sessionKey(userID, id))
	pipe.SRem(ctx, s.indexKey(userID), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return del.Val() > 0, nil
}

// DeleteUser removes all sessions for the user.
func (s *RedisStore) DeleteUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey(userID)).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}

	var count int64
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		n, err := s.client.Del(ctx, s.sessionKey(userID, id)).Result()
		if err != nil {
			return count, errors.Join(ErrStoreUnavailable, err)
		}
		count += n
	}

	if err := s.client.Del(ctx, s.indexKey(userID)).Err(); err != nil {
		return count, errors.Join(ErrStoreUnavailable, err)
	}
	return count, nil
}

// DeleteExpired prunes dangling index entries. Session keys themselves
// are reaped by Redis via the retention TTL, so only the index needs
// sweeping here.
func (s *RedisStore) DeleteExpired(ctx context.Context, _, _ time.Time) (int64, error) {
	var (
		cursor  uint64
		pruned  int64
		pattern = s.keyPrefix + ":index:*"
	)

	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return pruned, errors.Join(ErrStoreUnavailable, err)
		}

		for _, indexKey := range keys {
			ids, err := s.client.SMembers(ctx, indexKey).Result()
			if err != nil {
				continue
			}
			userRaw := indexKey[len(s.keyPrefix)+len(":index:"):]
			for _, raw := range ids {
				exists, err := s.client.Exists(ctx, fmt.Sprintf("%s:%s:%s", s.keyPrefix, userRaw, raw)).Result()
				if err != nil {
					continue
				}
				if exists == 0 {
					if removed, err := s.client.SRem(ctx, indexKey, raw).Result(); err == nil {
						pruned += removed
					}
				}
			}
		}

		cursor = next
		if cursor == 0 {
			return pruned, nil
		}
	}
}

// Healthcheck verifies Redis connectivity.
func (s *RedisStore) Healthcheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
