package ratelimiter

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	// Limited reports whether the request exceeded the ceiling.
	Limited bool
	// Limit is the ceiling the check was made against.
	Limit int
	// Remaining is how many requests are left in the current window.
	Remaining int
	// ResetAt is when the current window ends and the counter restarts.
	ResetAt time.Time
}

// Allowed reports whether the request may proceed.
func (r Result) Allowed() bool {
	return !r.Limited
}

// RetryAfter returns how long the caller should wait before retrying.
// Zero when the request was allowed.
func (r Result) RetryAfter() time.Duration {
	if !r.Limited {
		return 0
	}
	wait := time.Until(r.ResetAt)
	if wait < 0 {
		return 0
	}
	return wait
}

// Store is the counter backend. Increment bumps the key's counter within
// the window, starting a fresh window when the previous one elapsed, and
// returns the post-increment count with the window start time.
type Store interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
	Reset(ctx context.Context, key string) error
}

// Limiter is a fixed-window rate limiter keyed by arbitrary strings.
// Counters keep incrementing while limited; callers are expected to stop
// calling once limited, so the overshoot is harmless.
type Limiter struct {
	store Store
}

// New creates a rate limiter backed by the given store.
func New(store Store) *Limiter {
	return &Limiter{store: store}
}

// Allow records one request for the key and reports whether it fits
// within limit requests per window. Non-positive limits disable
// limiting for the call.
func (l *Limiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 {
		return Result{Limit: limit}, nil
	}

	count, windowStart, err := l.store.Increment(ctx, key, window)
	if err != nil {
		return Result{}, err
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Limited:   count > int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   windowStart.Add(window),
	}, nil
}

// Reset clears the counter for the key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	return l.store.Reset(ctx, key)
}
