package sessiontransport

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/core/auth"
	"github.com/dmitrymomot/authcore/core/session"
	"github.com/dmitrymomot/authcore/pkg/jwt"
)

// AccessClaims is the JWT envelope around the opaque session token.
// Clients treat the JWT as their access token; the server unwraps it
// and authenticates the inner session token.
type AccessClaims struct {
	jwt.RegisteredClaims
	SessionToken string `json:"session_token"`
}

// Bearer carries tokens in the Authorization header for API clients.
// Session tokens travel wrapped in a JWT so clients get standard
// expiry metadata; challenge tokens travel as-is since they are opaque
// single-purpose values the client only echoes back.
type Bearer struct {
	auth       *auth.Service
	jwt        *jwt.Service
	headerName string
	issuer     string
}

// BearerOption configures the bearer transport.
type BearerOption func(*Bearer)

// WithBearerHeaderName overrides the token header. Default is
// "Authorization".
func WithBearerHeaderName(name string) BearerOption {
	return func(b *Bearer) {
		if name != "" {
			b.headerName = name
		}
	}
}

// WithBearerIssuer sets the issuer claim on generated access tokens.
func WithBearerIssuer(issuer string) BearerOption {
	return func(b *Bearer) {
		b.issuer = issuer
	}
}

// BearerResult is the API-facing outcome of Login or VerifyTwoFactor.
type BearerResult struct {
	Status auth.Status `json:"status"`

	// AccessToken is set when Status is auth.StatusActive.
	AccessToken string    `json:"access_token,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitzero"`

	// ChallengeToken is set when Status is auth.StatusTwoFactorRequired.
	ChallengeToken string `json:"challenge_token,omitempty"`

	Session session.Session `json:"session,omitzero"`
}

// NewBearer creates a bearer transport over the auth service. The
// signing key signs the JWT envelope and is independent of the auth
// service's token secret.
func NewBearer(authSvc *auth.Service, signingKey string, opts ...BearerOption) (*Bearer, error) {
	svc, err := jwt.NewFromString(signingKey)
	if err != nil {
		return nil, err
	}

	b := &Bearer{
		auth:       authSvc,
		jwt:        svc,
		headerName: "Authorization",
		issuer:     "authcore",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Login runs the credential step and returns either an access token or
// a challenge token the client must echo to VerifyTwoFactor.
func (b *Bearer) Login(r *http.Request, email, password string) (BearerResult, error) {
	res, err := b.auth.Login(r.Context(), email, password, metadataFromRequest(r))
	if err != nil {
		return BearerResult{}, err
	}
	return b.wrap(res)
}

// VerifyTwoFactor completes a challenge returned by Login.
func (b *Bearer) VerifyTwoFactor(r *http.Request, challengeToken, code string) (BearerResult, error) {
	res, err := b.auth.VerifyTwoFactor(r.Context(), challengeToken, code, metadataFromRequest(r))
	if err != nil {
		return BearerResult{}, err
	}
	return b.wrap(res)
}

// Authenticate resolves the request's bearer token to a live session.
func (b *Bearer) Authenticate(r *http.Request) (session.Session, error) {
	token, err := b.extract(r)
	if err != nil {
		return session.Session{}, err
	}
	return b.auth.Authenticate(r.Context(), token)
}

// Logout revokes the session behind the request's bearer token. Safe to
// call with a missing or malformed header.
func (b *Bearer) Logout(r *http.Request) {
	token, err := b.extract(r)
	if err != nil {
		return
	}
	b.auth.Logout(r.Context(), token)
}

// ListSessions returns the user's sessions with the one behind the
// request's bearer token flagged as current.
func (b *Bearer) ListSessions(r *http.Request, userID uuid.UUID) ([]session.Session, error) {
	current := uuid.Nil
	if sess, err := b.Authenticate(r); err == nil {
		current = sess.ID
	}
	return b.auth.ListSessions(r.Context(), userID, current)
}

// wrap converts an auth result into its API shape, sealing the session
// token inside a JWT when login completed.
func (b *Bearer) wrap(res auth.LoginResult) (BearerResult, error) {
	if res.Status == auth.StatusTwoFactorRequired {
		return BearerResult{
			Status:         res.Status,
			ChallengeToken: res.ChallengeToken,
		}, nil
	}

	now := time.Now()
	expiresAt := now.Add(b.auth.SessionTokenTTL())
	accessToken, err := b.jwt.Generate(AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    b.issuer,
			Subject:   res.Session.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		SessionToken: res.Token,
	})
	if err != nil {
		return BearerResult{}, err
	}

	return BearerResult{
		Status:      res.Status,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Session:     res.Session,
	}, nil
}

// extract pulls the inner session token out of the request's JWT.
func (b *Bearer) extract(r *http.Request) (string, error) {
	header := r.Header.Get(b.headerName)
	if header == "" {
		return "", ErrNoToken
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return "", ErrInvalidToken
	}

	var claims AccessClaims
	if err := b.jwt.Parse(raw, &claims); err != nil {
		return "", ErrInvalidToken
	}
	if claims.SessionToken == "" {
		return "", ErrInvalidToken
	}
	return claims.SessionToken, nil
}
