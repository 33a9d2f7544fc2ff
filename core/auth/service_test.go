package auth_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
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
	testIP       = "203.0.113.10"
	testUA       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// stubVerifier accepts one fixed email/password pair and counts calls so
// tests can assert ordering against rate limiting.
type stubVerifier struct {
	userID uuid.UUID
	calls  atomic.Int64
}

func (v *stubVerifier) VerifyCredentials(_ context.Context, email, password string) (uuid.UUID, error) {
	v.calls.Add(1)
	if email != testEmail || password != testPassword {
		return uuid.Nil, errors.New("credential mismatch")
	}
	return v.userID, nil
}

type testEnv struct {
	svc       *auth.Service
	verifier  *stubVerifier
	sessions  *session.Manager
	twoFactor *twofactor.Service
	pending   *auth.MemoryPendingStore
}

func newTestEnv(t *testing.T, opts ...auth.ServiceOption) testEnv {
	t.Helper()

	key, err := totp.GenerateEncryptionKey()
	require.NoError(t, err)
	twoFactor, err := twofactor.NewService(twofactor.NewMemoryStore(), key)
	require.NoError(t, err)

	verifier := &stubVerifier{userID: uuid.New()}
	sessions := session.NewManager(session.NewMemoryStore())
	pending := auth.NewMemoryPendingStore()
	limiter := ratelimiter.New(ratelimiter.NewMemoryStore())

	svc := auth.NewService(verifier, sessions, twoFactor, pending, limiter, "test-token-secret", opts...)
	return testEnv{
		svc:       svc,
		verifier:  verifier,
		sessions:  sessions,
		twoFactor: twoFactor,
		pending:   pending,
	}
}

func testMeta() auth.Metadata {
	return auth.Metadata{IP: testIP, UserAgent: testUA}
}

// enrollTwoFactor turns on two-factor for the env's user and returns the
// shared secret plus the unused recovery codes.
func enrollTwoFactor(t *testing.T, env testEnv) (secret string, recoveryCodes []string) {
	t.Helper()
	ctx := context.Background()

	setup, err := env.twoFactor.Setup(ctx, env.verifier.userID, testEmail)
	require.NoError(t, err)

	code, err := totp.GenerateTOTP(setup.Secret)
	require.NoError(t, err)

	codes, err := env.twoFactor.Enable(ctx, env.verifier.userID, code)
	require.NoError(t, err)

	return setup.Secret, codes
}

// wrongCode flips the last digit so the result is well formed but never
// matches the generated code.
func wrongCode(code string) string {
	last := code[len(code)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return code[:len(code)-1] + string(replacement)
}

func TestServiceLogin(t *testing.T) {
	t.Parallel()

	t.Run("without two-factor creates exactly one session", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		ctx := context.Background()

		res, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		assert.Equal(t, auth.StatusActive, res.Status)
		assert.NotEmpty(t, res.Token)
		assert.Empty(t, res.ChallengeToken)
		assert.Equal(t, env.verifier.userID, res.Session.UserID)
		assert.Equal(t, testIP, res.Session.IP)
		assert.Equal(t, "Chrome 120 (Windows, desktop)", res.Session.Device.Name)

		all, err := env.sessions.List(ctx, env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)

		_, err := env.svc.Login(context.Background(), testEmail, "wrong", testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		all, err := env.sessions.List(context.Background(), env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("with two-factor returns challenge and no session", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		enrollTwoFactor(t, env)
		ctx := context.Background()

		res, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		assert.Equal(t, auth.StatusTwoFactorRequired, res.Status)
		assert.NotEmpty(t, res.ChallengeToken)
		assert.Empty(t, res.Token)

		all, err := env.sessions.List(ctx, env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("email rate limit rejects before credential check", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, auth.WithLoginRateLimits(100, time.Minute, 5, time.Minute))
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := env.svc.Login(ctx, testEmail, "wrong", testMeta())
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		}

		_, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		assert.ErrorIs(t, err, auth.ErrRateLimited)
		assert.EqualValues(t, 5, env.verifier.calls.Load(), "verifier must not run for rate-limited attempts")
	})

	t.Run("ip rate limit covers distinct emails", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, auth.WithLoginRateLimits(3, time.Minute, 100, time.Minute))
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			email := fmt.Sprintf("probe%d@example.com", i)
			_, err := env.svc.Login(ctx, email, "wrong", testMeta())
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		}

		_, err := env.svc.Login(ctx, "probe3@example.com", "wrong", testMeta())
		assert.ErrorIs(t, err, auth.ErrRateLimited)
	})

	t.Run("session ceiling evicts least recently active", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, auth.WithMaxSessionsPerUser(2))
		ctx := context.Background()

		first, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		second, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		third, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		all, err := env.sessions.List(ctx, env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		require.Len(t, all, 2)

		ids := []uuid.UUID{all[0].ID, all[1].ID}
		assert.Contains(t, ids, second.Session.ID)
		assert.Contains(t, ids, third.Session.ID)
		assert.NotContains(t, ids, first.Session.ID)
	})
}

func TestServiceVerifyTwoFactor(t *testing.T) {
	t.Parallel()

	t.Run("correct code completes login with one session", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)

		res, err := env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		require.NoError(t, err)
		assert.Equal(t, auth.StatusActive, res.Status)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, env.verifier.userID, res.Session.UserID)

		all, err := env.sessions.List(ctx, env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("challenge token is single use", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		require.NoError(t, err)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredChallenge)

		all, err := env.sessions.List(ctx, env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		assert.Len(t, all, 1, "replay must not create a second session")
	})

	t.Run("wrong code leaves challenge retryable", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, wrongCode(code), testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCode)

		res, err := env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		require.NoError(t, err)
		assert.Equal(t, auth.StatusActive, res.Status)
	})

	t.Run("attempt ceiling invalidates the challenge", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t,
			auth.WithMaxVerifyAttempts(3),
			auth.WithVerifyRateLimit(100, time.Minute),
		)
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)
		bad := wrongCode(code)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, bad, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, bad, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, bad, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredChallenge)

		// The correct code no longer helps.
		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredChallenge)
	})

	t.Run("verification rate limit", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t,
			auth.WithMaxVerifyAttempts(0),
			auth.WithVerifyRateLimit(2, time.Minute),
		)
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)
		bad := wrongCode(code)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, bad, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, bad, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		assert.ErrorIs(t, err, auth.ErrRateLimited)
	})

	t.Run("recovery code completes login once", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		_, recoveryCodes := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		res, err := env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, recoveryCodes[0], testMeta())
		require.NoError(t, err)
		assert.Equal(t, auth.StatusActive, res.Status)

		// A spent recovery code is a plain invalid code on the next login.
		login, err = env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, recoveryCodes[0], testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidCode)
	})

	t.Run("enrollment disabled while challenge pending", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		require.Equal(t, auth.StatusTwoFactorRequired, login.Status)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)
		require.NoError(t, env.twoFactor.Disable(ctx, env.verifier.userID, code))

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredChallenge)

		all, err := env.sessions.List(ctx, env.verifier.userID, uuid.Nil)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("garbage challenge token", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)

		_, err := env.svc.VerifyTwoFactor(context.Background(), "not-a-token", "123456", testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredChallenge)
	})

	t.Run("expired pending login", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, auth.WithPendingTTL(time.Millisecond))
		secret, _ := enrollTwoFactor(t, env)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		time.Sleep(5 * time.Millisecond)

		code, err := totp.GenerateTOTP(secret)
		require.NoError(t, err)

		_, err = env.svc.VerifyTwoFactor(ctx, login.ChallengeToken, code, testMeta())
		assert.ErrorIs(t, err, auth.ErrInvalidOrExpiredChallenge)
	})
}

func TestServiceAuthenticate(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		sess, err := env.svc.Authenticate(ctx, login.Token)
		require.NoError(t, err)
		assert.Equal(t, login.Session.ID, sess.ID)
		assert.Equal(t, env.verifier.userID, sess.UserID)
		assert.True(t, sess.Current)
	})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)

		_, err := env.svc.Authenticate(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("revoked session", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		removed, err := env.svc.RevokeSession(ctx, env.verifier.userID, login.Session.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		_, err = env.svc.Authenticate(ctx, login.Token)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})
}

func TestServiceLogout(t *testing.T) {
	t.Parallel()

	t.Run("ends the session", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		ctx := context.Background()

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		env.svc.Logout(ctx, login.Token)

		_, err = env.svc.Authenticate(ctx, login.Token)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("tolerates garbage and repeated tokens", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		ctx := context.Background()

		env.svc.Logout(ctx, "not-a-token")

		login, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		env.svc.Logout(ctx, login.Token)
		env.svc.Logout(ctx, login.Token)
	})
}

func TestServiceSessionManagement(t *testing.T) {
	t.Parallel()

	t.Run("list flags current and revoke others keeps it", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t)
		ctx := context.Background()

		first, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)
		time.Sleep(time.Millisecond)
		second, err := env.svc.Login(ctx, testEmail, testPassword, testMeta())
		require.NoError(t, err)

		listed, err := env.svc.ListSessions(ctx, env.verifier.userID, second.Session.ID)
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, second.Session.ID, listed[0].ID)
		assert.True(t, listed[0].Current)
		assert.False(t, listed[1].Current)

		removed, err := env.svc.RevokeOtherSessions(ctx, env.verifier.userID, second.Session.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, removed)

		_, err = env.svc.Authenticate(ctx, first.Token)
		assert.ErrorIs(t, err, auth.ErrSessionNotFound)

		_, err = env.svc.Authenticate(ctx, second.Token)
		require.NoError(t, err)
	})
}
