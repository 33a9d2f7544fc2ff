package auth

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryPendingStore is an in-memory PendingStore for tests and
// single-process deployments. Expired records are evicted lazily on
// access.
type MemoryPendingStore struct {
	mu      sync.Mutex
	pending map[uuid.UUID]PendingLogin
}

// NewMemoryPendingStore creates an empty in-memory pending login store.
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{
		pending: make(map[uuid.UUID]PendingLogin),
	}
}

// Save inserts or replaces a pending login.
func (s *MemoryPendingStore) Save(_ context.Context, pending PendingLogin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[pending.ID] = pending
	return nil
}

// Get returns the pending login or ErrPendingNotFound.
// Expired records are dropped on read.
func (s *MemoryPendingStore) Get(_ context.Context, id uuid.UUID) (PendingLogin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pending[id]
	if !ok {
		return PendingLogin{}, ErrPendingNotFound
	}
	if p.IsExpired(time.Now()) {
		delete(s.pending, id)
		return PendingLogin{}, ErrPendingNotFound
	}
	return p, nil
}

// Delete removes the pending login; exactly one concurrent caller
// observes true for a given record.
func (s *MemoryPendingStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false, nil
	}
	delete(s.pending, id)
	return true, nil
}
