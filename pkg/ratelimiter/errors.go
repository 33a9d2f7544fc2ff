package ratelimiter

import "errors"

var (
	// ErrStoreUnavailable is returned when the backing store cannot be
	// reached. Callers must treat this as a server error, never as
	// permission to proceed unthrottled.
	ErrStoreUnavailable = errors.New("rate limit store unavailable")
)
