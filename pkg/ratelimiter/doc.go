// Package ratelimiter provides fixed-window rate limiting with pluggable
// storage backends.
//
// The limiter maintains one counter bucket per key. A call within an
// active window increments the counter; once the count exceeds the ceiling
// the call is reported as limited, and counting continues (callers are
// expected to stop calling once limited). The first call after the window
// elapses starts a fresh bucket. Ceiling and window are supplied per call,
// so one limiter instance serves every purpose in the application:
//
//	limiter := ratelimiter.New(ratelimiter.NewMemoryStore())
//
//	res, err := limiter.Allow(ctx, "login:ip:"+ip, 5, 15*time.Minute)
//	if err != nil {
//		// backend failure - treat as a server error
//	}
//	if res.Limited {
//		// reject with Retry-After: res.RetryAfter()
//	}
//
// # Key selection
//
//   - IP-based: "login:ip:" + clientip.GetIP(r)
//   - identifier-based: "login:email:" + email
//   - challenge-based: "2fa:" + pendingLoginID
//
// # Storage backends
//
// MemoryStore keeps counters in-process with a background sweep for stale
// buckets (Start/Stop, or Run for errgroup integration). RedisStore shares
// counters across instances using INCR with a first-hit TTL, the key's
// expiry being the window's end.
package ratelimiter
