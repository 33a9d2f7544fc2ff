package twofactor

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for two-factor enrollments.
// Implementations must handle concurrent access safely.
type Store interface {
	// Save inserts or replaces an enrollment.
	Save(ctx context.Context, enrollment Enrollment) error

	// Get returns the user's enrollment or ErrNotEnrolled.
	Get(ctx context.Context, userID uuid.UUID) (Enrollment, error)

	// Delete removes the user's enrollment. Missing enrollments are not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}
