package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// userSessions holds one user's session set behind its own lock, so
// heartbeats from that user's devices serialize against each other
// without blocking unrelated users.
type userSessions struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]Session
}

// MemoryStore is an in-memory Store implementation suitable for tests
// and single-process deployments.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*userSessions
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[uuid.UUID]*userSessions),
	}
}

// bucket returns the user's session set, creating it when create is true.
func (s *MemoryStore) bucket(userID uuid.UUID, create bool) *userSessions {
	s.mu.RLock()
	us, ok := s.users[userID]
	s.mu.RUnlock()
	if ok || !create {
		return us
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if us, ok = s.users[userID]; ok {
		return us
	}
	us = &userSessions{sessions: make(map[uuid.UUID]Session)}
	s.users[userID] = us
	return us
}

// Save inserts or replaces a session.
func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	us := s.bucket(sess.UserID, true)
	us.mu.Lock()
	defer us.mu.Unlock()
	us.sessions[sess.ID] = sess
	return nil
}

// Get returns the session or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, userID, id uuid.UUID) (Session, error) {
	us := s.bucket(userID, false)
	if us == nil {
		return Session{}, ErrNotFound
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	sess, ok := us.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return sess, nil
}

// ListByUser returns a snapshot of all stored sessions for the user.
func (s *MemoryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]Session, error) {
	us := s.bucket(userID, false)
	if us == nil {
		return nil, nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	out := make([]Session, 0, len(us.sessions))
	for _, sess := range us.sessions {
		out = append(out, sess)
	}
	return out, nil
}

// Delete removes the session if present and reports whether removal occurred.
func (s *MemoryStore) Delete(_ context.Context, userID, id uuid.UUID) (bool, error) {
	us := s.bucket(userID, false)
	if us == nil {
		return false, nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	if _, ok := us.sessions[id]; !ok {
		return false, nil
	}
	delete(us.sessions, id)
	return true, nil
}

// DeleteUser removes all sessions for the user.
func (s *MemoryStore) DeleteUser(_ context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	us, ok := s.users[userID]
	delete(s.users, userID)
	s.mu.Unlock()
	if !ok {
		return 0, nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	count := int64(len(us.sessions))
	us.sessions = map[uuid.UUID]Session{}
	return count, nil
}

// DeleteExpired removes sessions past either cutoff. Zero cutoffs disable
// the corresponding criterion.
func (s *MemoryStore) DeleteExpired(_ context.Context, idleBefore, createdBefore time.Time) (int64, error) {
	s.mu.RLock()
	buckets := make([]*userSessions, 0, len(s.users))
	for _, us := range s.users {
		buckets = append(buckets, us)
	}
	s.mu.RUnlock()

	var count int64
	for _, us := range buckets {
		us.mu.Lock()
		for id, sess := range us.sessions {
			expired := (!idleBefore.IsZero() && sess.LastActivityAt.Before(idleBefore)) ||
				(!createdBefore.IsZero() && sess.CreatedAt.Before(createdBefore))
			if expired {
				delete(us.sessions, id)
				count++
			}
		}
		us.mu.Unlock()
	}
	return count, nil
}
