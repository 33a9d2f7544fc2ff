package sessiontransport_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authcore/core/auth"
	"github.com/dmitrymomot/authcore/core/session"
	"github.com/dmitrymomot/authcore/core/twofactor"
	"github.com/dmitrymomot/authcore/pkg/ratelimiter"
	"github.com/dmitrymomot/authcore/pkg/totp"
)

const (
	testEmail    = "user@example.com"
	testPassword = "correct horse battery staple"
)

type stubVerifier struct {
	userID uuid.UUID
}

func (v *stubVerifier) VerifyCredentials(_ context.Context, email, password string) (uuid.UUID, error) {
	if email != testEmail || password != testPassword {
		return uuid.Nil, errors.New("credential mismatch")
	}
	return v.userID, nil
}

type transportEnv struct {
	auth      *auth.Service
	twoFactor *twofactor.Service
	userID    uuid.UUID
}

func newTransportEnv(t *testing.T) transportEnv {
	t.Helper()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	twoFactor, err := twofactor.NewService(twofactor.NewMemoryStore(), key)
	require.NoError(t, err)

	verifier := &stubVerifier{userID: uuid.New()}
	svc := auth.NewService(
		verifier,
		session.NewManager(session.NewMemoryStore()),
		twoFactor,
		auth.NewMemoryPendingStore(),
		ratelimiter.New(ratelimiter.NewMemoryStore()),
		"test-token-secret",
	)

	return transportEnv{auth: svc, twoFactor: twoFactor, userID: verifier.userID}
}

// enrollTwoFactor turns on two-factor for the env's user and returns
// the shared secret for generating codes.
func enrollTwoFactor(t *testing.T, env transportEnv) string {
	t.Helper()
	ctx := context.Background()

	setup, err := env.twoFactor.Setup(ctx, env.userID, testEmail)
	require.NoError(t, err)

	code, err := totp.GenerateTOTP(setup.Secret)
	require.NoError(t, err)

	_, err = env.twoFactor.Enable(ctx, env.userID, code)
	require.NoError(t, err)

	return setup.Secret
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "203.0.113.10:44321"
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	return req
}

// carryCookies copies the cookies a handler set on rec into req, the
// way a browser would on the next request.
func carryCookies(req *http.Request, rec *httptest.ResponseRecorder) {
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			continue
		}
		req.AddCookie(c)
	}
}
