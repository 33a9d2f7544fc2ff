package twofactor

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation suitable for tests
// and single-process deployments.
type MemoryStore struct {
	mu          sync.RWMutex
	enrollments map[uuid.UUID]Enrollment
}

// NewMemoryStore creates an empty in-memory enrollment store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		enrollments: make(map[uuid.UUID]Enrollment),
	}
}

// Save inserts or replaces an enrollment.
func (s *MemoryStore) Save(_ context.Context, enrollment Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Copy the slice so callers mutating their copy don't alias stored state.
	enrollment.RecoveryCodes = append([]string(nil), enrollment.RecoveryCodes...)
	s.enrollments[enrollment.UserID] = enrollment
	return nil
}

// Get returns the user's enrollment or ErrNotEnrolled.
func (s *MemoryStore) Get(_ context.Context, userID uuid.UUID) (Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	enrollment, ok := s.enrollments[userID]
	if !ok {
		return Enrollment{}, ErrNotEnrolled
	}
	enrollment.RecoveryCodes = append([]string(nil), enrollment.RecoveryCodes...)
	return enrollment, nil
}

// Delete removes the user's enrollment.
func (s *MemoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.enrollments, userID)
	return nil
}
