package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence interface for session management.
// Implementations must serialize mutations per user; reads may be
// lock-free or snapshot-based. Stores return raw records without
// expiry filtering; the Manager enforces expiry at read time.
type Store interface {
	// Save inserts or replaces a session.
	Save(ctx context.Context, sess Session) error

	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, userID, id uuid.UUID) (Session, error)

	// ListByUser returns all stored sessions for the user, in no particular order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error)

	// Delete removes the session if present and reports whether removal occurred.
	Delete(ctx context.Context, userID, id uuid.UUID) (bool, error)

	// DeleteUser removes all sessions for the user and returns the count removed.
	DeleteUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// DeleteExpired removes sessions whose last activity predates idleBefore
	// or whose creation predates createdBefore, returning the count removed.
	DeleteExpired(ctx context.Context, idleBefore, createdBefore time.Time) (int64, error)
}
