package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrExpired is returned when a session exists but is no longer valid.
	ErrExpired = errors.New("session has expired")
	// ErrStoreUnavailable wraps backend failures. Callers must treat it as
	// fatal for the current request rather than falling back to any
	// ambiguous authenticated state.
	ErrStoreUnavailable = errors.New("session store unavailable")
)
