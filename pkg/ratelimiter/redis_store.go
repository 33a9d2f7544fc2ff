package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis, sharing counters across instances.
// Fixed-window semantics: INCR plus a TTL set on the first hit in the
// window, so the key expiring is the window resetting.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the Redis key namespace. Default "ratelimit".
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client: client,
		prefix: "ratelimit",
	}

	for _, opt := range opts {
		opt(rs)
	}

	return rs
}

// incrScript atomically increments the counter and sets the window TTL on
// the first hit, returning the count and the remaining window in
// milliseconds. Doing both in one script avoids the orphaned-counter race
// where a crash between INCR and EXPIRE leaves a key that never resets.
var incrScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  return {count, tonumber(ARGV[1])}
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// Increment implements Store.
func (rs *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	res, err := incrScript.Run(ctx, rs.client, []string{rs.key(key)}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("%w: unexpected script result", ErrStoreUnavailable)
	}

	count := res[0]
	remaining := time.Duration(res[1]) * time.Millisecond
	windowStart := time.Now().Add(remaining - window)

	return count, windowStart, nil
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Healthcheck validates Redis connectivity.
func (rs *RedisStore) Healthcheck(ctx context.Context) error {
	if err := rs.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (rs *RedisStore) key(key string) string {
	return rs.prefix + ":" + key
}
