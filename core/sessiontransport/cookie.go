package sessiontransport

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/core/auth"
	"github.com/dmitrymomot/authcore/core/cookie"
	"github.com/dmitrymomot/authcore/core/session"
)

// Cookie carries session and two-factor challenge tokens in signed HTTP
// cookies. It is the transport for browser-facing surfaces; API clients
// should use Bearer instead.
type Cookie struct {
	auth            *auth.Service
	cookies         *cookie.Manager
	sessionCookie   string
	challengeCookie string
}

// CookieOption configures the cookie transport.
type CookieOption func(*Cookie)

// WithSessionCookieName overrides the session cookie name.
func WithSessionCookieName(name string) CookieOption {
	return func(c *Cookie) {
		if name != "" {
			c.sessionCookie = name
		}
	}
}

// WithChallengeCookieName overrides the two-factor challenge cookie name.
func WithChallengeCookieName(name string) CookieOption {
	return func(c *Cookie) {
		if name != "" {
			c.challengeCookie = name
		}
	}
}

// NewCookie creates a cookie transport over the auth service. The
// cookie manager's defaults (HttpOnly, Secure, SameSite) apply to every
// cookie the transport writes.
func NewCookie(authSvc *auth.Service, cookies *cookie.Manager, opts ...CookieOption) *Cookie {
	c := &Cookie{
		auth:            authSvc,
		cookies:         cookies,
		sessionCookie:   "__session",
		challengeCookie: "__2fa_challenge",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login runs the credential step and stores the outcome in cookies: a
// session cookie when login completes immediately, or a short-lived
// challenge cookie when a two-factor code is still required.
func (c *Cookie) Login(w http.ResponseWriter, r *http.Request, email, password string) (auth.LoginResult, error) {
	res, err := c.auth.Login(r.Context(), email, password, metadataFromRequest(r))
	if err != nil {
		return auth.LoginResult{}, err
	}

	switch res.Status {
	case auth.StatusActive:
		c.cookies.Delete(w, c.challengeCookie)
		if err := c.setSessionCookie(w, res.Token); err != nil {
			return auth.LoginResult{}, err
		}
	case auth.StatusTwoFactorRequired:
		maxAge := int(c.auth.PendingTTL().Seconds())
		if err := c.cookies.SetSigned(w, c.challengeCookie, res.ChallengeToken, cookie.WithMaxAge(maxAge)); err != nil {
			return auth.LoginResult{}, err
		}
	}

	return res, nil
}

// VerifyTwoFactor completes the challenge stored by Login, swapping the
// challenge cookie for a session cookie on success. Requests without a
// challenge cookie fail with auth.ErrInvalidOrExpiredChallenge.
func (c *Cookie) VerifyTwoFactor(w http.ResponseWriter, r *http.Request, code string) (auth.LoginResult, error) {
	challenge, err := c.cookies.GetSigned(r, c.challengeCookie)
	if err != nil {
		return auth.LoginResult{}, auth.ErrInvalidOrExpiredChallenge
	}

	res, err := c.auth.VerifyTwoFactor(r.Context(), challenge, code, metadataFromRequest(r))
	if err != nil {
		return auth.LoginResult{}, err
	}

	c.cookies.Delete(w, c.challengeCookie)
	if err := c.setSessionCookie(w, res.Token); err != nil {
		return auth.LoginResult{}, err
	}
	return res, nil
}

// Authenticate resolves the request's session cookie to a live session.
func (c *Cookie) Authenticate(r *http.Request) (session.Session, error) {
	token, err := c.cookies.GetSigned(r, c.sessionCookie)
	if err != nil {
		return session.Session{}, auth.ErrSessionNotFound
	}
	return c.auth.Authenticate(r.Context(), token)
}

// Logout revokes the request's session and clears both cookies. Safe to
// call without a valid session cookie.
func (c *Cookie) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := c.cookies.GetSigned(r, c.sessionCookie); err == nil {
		c.auth.Logout(r.Context(), token)
	}
	c.cookies.Delete(w, c.sessionCookie)
	c.cookies.Delete(w, c.challengeCookie)
}

// ListSessions returns the user's sessions with the one behind the
// request's cookie flagged as current.
func (c *Cookie) ListSessions(r *http.Request, userID uuid.UUID) ([]session.Session, error) {
	current := uuid.Nil
	if sess, err := c.Authenticate(r); err == nil {
		current = sess.ID
	}
	return c.auth.ListSessions(r.Context(), userID, current)
}

func (c *Cookie) setSessionCookie(w http.ResponseWriter, token string) error {
	maxAge := int(c.auth.SessionTokenTTL().Seconds())
	return c.cookies.SetSigned(w, c.sessionCookie, token, cookie.WithMaxAge(maxAge))
}
