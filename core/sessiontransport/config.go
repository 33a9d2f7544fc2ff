package sessiontransport

import (
	"errors"

	"github.com/dmitrymomot/authcore/core/auth"
	"github.com/dmitrymomot/authcore/core/cookie"
)

// CookieConfig provides environment-based configuration for the cookie
// transport.
type CookieConfig struct {
	// SessionCookieName is the name of the session cookie.
	SessionCookieName string `env:"SESSION_COOKIE_NAME" envDefault:"__session"`

	// ChallengeCookieName is the name of the two-factor challenge cookie.
	ChallengeCookieName string `env:"CHALLENGE_COOKIE_NAME" envDefault:"__2fa_challenge"`
}

// NewCookieFromConfig creates a cookie transport from configuration.
// The auth service and cookie manager must be provided by the caller.
func NewCookieFromConfig(cfg CookieConfig, authSvc *auth.Service, cookies *cookie.Manager) *Cookie {
	return NewCookie(authSvc, cookies,
		WithSessionCookieName(cfg.SessionCookieName),
		WithChallengeCookieName(cfg.ChallengeCookieName),
	)
}

// BearerConfig provides environment-based configuration for the bearer
// transport.
type BearerConfig struct {
	// SigningKey signs the JWT envelope around session tokens. Required.
	SigningKey string `env:"BEARER_SIGNING_KEY,required"`

	// Issuer is the issuer claim on generated access tokens.
	Issuer string `env:"BEARER_ISSUER" envDefault:"authcore"`
}

// NewBearerFromConfig creates a bearer transport from configuration.
func NewBearerFromConfig(cfg BearerConfig, authSvc *auth.Service) (*Bearer, error) {
	if cfg.SigningKey == "" {
		return nil, errors.New("sessiontransport: bearer signing key is required")
	}
	return NewBearer(authSvc, cfg.SigningKey, WithBearerIssuer(cfg.Issuer))
}
