package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrPendingNotFound is returned by pending stores for unknown challenge IDs.
// The service surfaces it to callers as ErrInvalidOrExpiredChallenge.
var ErrPendingNotFound = errors.New("pending login not found")

// PendingLogin bridges primary-credential success and two-factor
// completion. It is consumed exactly once: Delete reports whether this
// call removed the record, which is the replay guard that keeps one
// pending login from materializing two sessions.
type PendingLogin struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// Attempts counts failed verification codes against this login.
	Attempts int `json:"attempts"`
}

// IsExpired reports whether the pending login's TTL has elapsed.
func (p PendingLogin) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// PendingStore persists pending logins between the credential and
// two-factor steps. Records are short-lived; implementations may evict
// them lazily since expired records are inert.
type PendingStore interface {
	// Save inserts or replaces a pending login.
	Save(ctx context.Context, pending PendingLogin) error

	// Get returns the pending login or ErrPendingNotFound.
	Get(ctx context.Context, id uuid.UUID) (PendingLogin, error)

	// Delete removes the pending login and reports whether this call
	// removed it. Exactly one concurrent caller observes true.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
