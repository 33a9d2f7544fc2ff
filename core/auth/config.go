package auth

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/authcore/pkg/geoip"
)

// Config holds the orchestrator's tunables.
type Config struct {
	// PendingTTL bounds the gap between password acceptance and
	// two-factor completion.
	PendingTTL time.Duration

	// SessionTokenTTL caps how long an issued client token stays
	// parseable; it should not exceed the session manager's MaxAge.
	SessionTokenTTL time.Duration

	// MaxVerifyAttempts invalidates a pending login after this many
	// failed codes. Zero means unlimited retries until TTL expiry.
	MaxVerifyAttempts int

	// MaxSessionsPerUser evicts the least recently active session once a
	// user would exceed this many. Zero means unlimited.
	MaxSessionsPerUser int

	// LoginPerIP / LoginPerEmail / VerifyPerChallenge are fixed-window
	// rate limit ceilings; non-positive values disable the check.
	LoginPerIP         int
	LoginIPWindow      time.Duration
	LoginPerEmail      int
	LoginEmailWindow   time.Duration
	VerifyPerChallenge int
	VerifyWindow       time.Duration
}

func defaultServiceConfig() Config {
	return Config{
		PendingTTL:         10 * time.Minute,
		SessionTokenTTL:    30 * 24 * time.Hour,
		MaxVerifyAttempts:  5,
		MaxSessionsPerUser: 0,
		LoginPerIP:         10,
		LoginIPWindow:      time.Minute,
		LoginPerEmail:      5,
		LoginEmailWindow:   15 * time.Minute,
		VerifyPerChallenge: 5,
		VerifyWindow:       5 * time.Minute,
	}
}

// ServiceOption configures the auth service.
type ServiceOption func(*Service)

// WithPendingTTL sets the pending login lifetime.
func WithPendingTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.cfg.PendingTTL = ttl
		}
	}
}

// WithSessionTokenTTL caps the lifetime of issued client tokens.
func WithSessionTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.cfg.SessionTokenTTL = ttl
		}
	}
}

// WithMaxVerifyAttempts sets the failed-code ceiling per pending login.
func WithMaxVerifyAttempts(limit int) ServiceOption {
	return func(s *Service) {
		s.cfg.MaxVerifyAttempts = limit
	}
}

// WithMaxSessionsPerUser caps concurrent sessions per user; the least
// recently active session is evicted to make room.
func WithMaxSessionsPerUser(limit int) ServiceOption {
	return func(s *Service) {
		s.cfg.MaxSessionsPerUser = limit
	}
}

// WithLoginRateLimits sets the per-IP and per-email login ceilings.
func WithLoginRateLimits(perIP int, ipWindow time.Duration, perEmail int, emailWindow time.Duration) ServiceOption {
	return func(s *Service) {
		s.cfg.LoginPerIP = perIP
		s.cfg.LoginIPWindow = ipWindow
		s.cfg.LoginPerEmail = perEmail
		s.cfg.LoginEmailWindow = emailWindow
	}
}

// WithVerifyRateLimit sets the per-challenge verification ceiling.
func WithVerifyRateLimit(perChallenge int, window time.Duration) ServiceOption {
	return func(s *Service) {
		s.cfg.VerifyPerChallenge = perChallenge
		s.cfg.VerifyWindow = window
	}
}

// WithGeoResolver supplies an offline IP-to-location resolver for
// stamping sessions. Without one, sessions carry an empty location.
func WithGeoResolver(resolver *geoip.Resolver) ServiceOption {
	return func(s *Service) {
		s.geo = resolver
	}
}

// WithLogger sets the logger for authentication events.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}
