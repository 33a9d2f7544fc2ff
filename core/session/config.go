package session

import (
	"log/slog"
	"time"
)

// Config holds session manager configuration.
type Config struct {
	// IdleTTL is the maximum inactivity before a session expires.
	IdleTTL time.Duration
	// MaxAge is the absolute ceiling on session lifetime regardless of activity.
	MaxAge time.Duration
	// TouchInterval is the minimum time between activity updates (0 = every touch writes).
	TouchInterval time.Duration
	// CleanupInterval is how often the background sweep removes expired sessions.
	CleanupInterval time.Duration
}

func defaultConfig() Config {
	return Config{
		IdleTTL:         7 * 24 * time.Hour,
		MaxAge:          30 * 24 * time.Hour,
		TouchInterval:   5 * time.Minute,
		CleanupInterval: time.Hour,
	}
}

// Option is a functional option for configuring the session manager.
type Option func(*Manager)

// WithIdleTTL sets the maximum inactivity before a session expires.
func WithIdleTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.cfg.IdleTTL = ttl
	}
}

// WithMaxAge sets the absolute ceiling on session lifetime.
func WithMaxAge(maxAge time.Duration) Option {
	return func(m *Manager) {
		m.cfg.MaxAge = maxAge
	}
}

// WithTouchInterval sets the minimum time between session activity updates.
// Throttling prevents a heartbeat on every request from flooding the store
// with writes. Set to 0 to write on every touch.
func WithTouchInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.TouchInterval = interval
	}
}

// WithCleanupInterval sets the background sweep period for Run.
func WithCleanupInterval(interval time.Duration) Option {
	return func(m *Manager) {
		m.cfg.CleanupInterval = interval
	}
}

// WithLogger sets the logger for manager lifecycle events.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
