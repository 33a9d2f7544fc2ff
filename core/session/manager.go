package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/core/logger"
)

// Manager handles session lifecycle including creation, activity
// heartbeats, enumeration, revocation, and expiry. Expiry is enforced at
// read time, so listings never surface a logically-expired session even
// when no background sweep runs.
type Manager struct {
	store Store
	cfg   Config
	log   *slog.Logger
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		cfg:   defaultConfig(),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create materializes a new session for the user with the given request
// metadata and persists it.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID, meta Metadata) (Session, error) {
	sess := New(userID, meta)
	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, err
	}

	m.log.InfoContext(ctx, "session created",
		logger.Component("session"),
		logger.UserID(userID),
		logger.SessionID(sess.ID),
		logger.ClientIP(meta.IP),
		logger.Device(sess.Device.Name),
	)
	return sess, nil
}

// Get retrieves a session and validates expiry.
// Expired sessions are deleted from the store and reported as ErrExpired.
func (m *Manager) Get(ctx context.Context, userID, id uuid.UUID) (Session, error) {
	sess, err := m.store.Get(ctx, userID, id)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired(m.cfg.IdleTTL, m.cfg.MaxAge, time.Now()) {
		// Best effort; an expired record left behind is inert.
		_, _ = m.store.Delete(ctx, userID, id)
		return Session{}, ErrExpired
	}

	return sess, nil
}

// List returns the user's active sessions ordered by last activity,
// most recent first. The session matching currentID is flagged as
// Current; pass uuid.Nil when no caller session is known.
func (m *Manager) List(ctx context.Context, userID, currentID uuid.UUID) ([]Session, error) {
	all, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	active := make([]Session, 0, len(all))
	for _, sess := range all {
		if sess.IsExpired(m.cfg.IdleTTL, m.cfg.MaxAge, now) {
			continue
		}
		sess.Current = sess.ID == currentID
		active = append(active, sess)
	}

	slices.SortFunc(active, func(a, b Session) int {
		return b.LastActivityAt.Compare(a.LastActivityAt)
	})

	return active, nil
}

// Touch records activity on the session, extending its idle window.
// Writes are throttled by TouchInterval. A missing session is a silent
// no-op since heartbeats may race with revocation or expiry.
func (m *Manager) Touch(ctx context.Context, userID, id uuid.UUID) error {
	sess, err := m.store.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	now := time.Now()
	if sess.IsExpired(m.cfg.IdleTTL, m.cfg.MaxAge, now) {
		return nil
	}
	if now.Sub(sess.LastActivityAt) < m.cfg.TouchInterval {
		return nil
	}

	sess.LastActivityAt = now
	return m.store.Save(ctx, sess)
}

// Revoke removes the session and reports whether removal occurred.
// Revoking the caller's own session still completes; clearing the
// client-held token is the transport layer's responsibility.
func (m *Manager) Revoke(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	removed, err := m.store.Delete(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if removed {
		m.log.InfoContext(ctx, "session revoked",
			logger.Component("session"),
			logger.UserID(userID),
			logger.SessionID(id),
		)
	}
	return removed, nil
}

// RevokeAll removes every session the user holds and returns the count removed.
func (m *Manager) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := m.store.DeleteUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		m.log.InfoContext(ctx, "all sessions revoked",
			logger.Component("session"),
			logger.UserID(userID),
			logger.Count("sessions", int(count)),
		)
	}
	return count, nil
}

// RevokeOthers removes every session except the given one, logging the
// user out everywhere else. Returns the count removed.
func (m *Manager) RevokeOthers(ctx context.Context, userID, keepID uuid.UUID) (int64, error) {
	all, err := m.store.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, sess := range all {
		if sess.ID == keepID {
			continue
		}
		removed, err := m.store.Delete(ctx, userID, sess.ID)
		if err != nil {
			return count, err
		}
		if removed {
			count++
		}
	}

	if count > 0 {
		m.log.InfoContext(ctx, "other sessions revoked",
			logger.Component("session"),
			logger.UserID(userID),
			logger.SessionID(keepID),
			logger.Count("sessions", int(count)),
		)
	}
	return count, nil
}

// CleanupExpired removes all expired sessions from the store.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	now := time.Now()

	idleBefore := time.Time{}
	if m.cfg.IdleTTL > 0 {
		idleBefore = now.Add(-m.cfg.IdleTTL)
	}
	createdBefore := time.Time{}
	if m.cfg.MaxAge > 0 {
		createdBefore = now.Add(-m.cfg.MaxAge)
	}

	return m.store.DeleteExpired(ctx, idleBefore, createdBefore)
}

// Run sweeps expired sessions periodically until the context is
// cancelled. Intended for errgroup.Go; returns nil on cancellation.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			count, err := m.CleanupExpired(ctx)
			if err != nil {
				m.log.ErrorContext(ctx, "session cleanup failed",
					logger.Component("session"),
					logger.Error(err),
				)
				continue
			}
			if count > 0 {
				m.log.DebugContext(ctx, "expired sessions removed",
					logger.Component("session"),
					logger.Count("sessions", int(count)),
				)
			}
		}
	}
}

// IdleTTL returns the configured idle timeout.
func (m *Manager) IdleTTL() time.Duration { return m.cfg.IdleTTL }

// MaxAge returns the configured absolute session lifetime.
func (m *Manager) MaxAge() time.Duration { return m.cfg.MaxAge }
