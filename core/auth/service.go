package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/core/logger"
	"github.com/dmitrymomot/authcore/core/session"
	"github.com/dmitrymomot/authcore/core/twofactor"
	"github.com/dmitrymomot/authcore/pkg/geoip"
	"github.com/dmitrymomot/authcore/pkg/ratelimiter"
)

// Status reports which state a login landed in.
type Status string

const (
	// StatusActive means a full session exists and Token carries it.
	StatusActive Status = "active"
	// StatusTwoFactorRequired means primary credentials were accepted and
	// the caller must complete the challenge in ChallengeToken.
	StatusTwoFactorRequired Status = "2fa_required"
)

// LoginResult is the outcome of Login or VerifyTwoFactor.
type LoginResult struct {
	Status Status

	// Token is the opaque session token, set when Status is StatusActive.
	Token string
	// Session is the materialized session, set when Status is StatusActive.
	Session session.Session

	// ChallengeToken proves "credentials accepted, two-factor
	// outstanding" and nothing more. Set when Status is
	// StatusTwoFactorRequired.
	ChallengeToken string
}

// Metadata carries request attributes for session stamping and rate limiting.
type Metadata struct {
	IP        string
	UserAgent string
}

// Service is the login orchestrator. It composes the credential
// verifier, two-factor service, session manager, pending login store,
// and rate limiter into the multi-step login protocol.
type Service struct {
	verifier  CredentialVerifier
	sessions  *session.Manager
	twoFactor *twofactor.Service
	pending   PendingStore
	limiter   *ratelimiter.Limiter
	geo       *geoip.Resolver

	tokenSecret string
	cfg         Config
	log         *slog.Logger
}

// NewService wires the orchestrator. The token secret signs client-held
// session and challenge tokens.
func NewService(
	verifier CredentialVerifier,
	sessions *session.Manager,
	twoFactor *twofactor.Service,
	pending PendingStore,
	limiter *ratelimiter.Limiter,
	tokenSecret string,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		verifier:    verifier,
		sessions:    sessions,
		twoFactor:   twoFactor,
		pending:     pending,
		limiter:     limiter,
		tokenSecret: tokenSecret,
		cfg:         defaultServiceConfig(),
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login runs the primary credential step. Rate limits are checked before
// any credential work. For users without two-factor it materializes a
// session immediately; otherwise it parks the identity in a pending
// login and returns a challenge token.
func (s *Service) Login(ctx context.Context, email, password string, meta Metadata) (LoginResult, error) {
	if err := s.checkLimit(ctx, "login:ip:"+meta.IP, s.cfg.LoginPerIP, s.cfg.LoginIPWindow); err != nil {
		return LoginResult{}, err
	}
	emailKey := strings.ToLower(strings.TrimSpace(email))
	if err := s.checkLimit(ctx, "login:email:"+emailKey, s.cfg.LoginPerEmail, s.cfg.LoginEmailWindow); err != nil {
		return LoginResult{}, err
	}

	userID, err := s.verifier.VerifyCredentials(ctx, email, password)
	if err != nil {
		s.log.InfoContext(ctx, "login rejected",
			logger.Component("auth"),
			logger.Event("login"),
			logger.Result("failure"),
			logger.ClientIP(meta.IP),
		)
		return LoginResult{}, ErrInvalidCredentials
	}

	enabled, err := s.twoFactor.Enabled(ctx, userID)
	if err != nil {
		return LoginResult{}, err
	}

	if !enabled {
		return s.activate(ctx, userID, meta)
	}

	// A fresh pending login supersedes any earlier one for the user; the
	// old record simply times out, which is harmless since a dangling
	// pending login grants nothing.
	pending := PendingLogin{
		ID:        uuid.New(),
		UserID:    userID,
		IssuedAt:  time.Now(),
		ExpiresAt: time.Now().Add(s.cfg.PendingTTL),
	}
	if err := s.pending.Save(ctx, pending); err != nil {
		return LoginResult{}, err
	}

	challenge, err := s.issueChallengeToken(pending.ID, pending.ExpiresAt)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.InfoContext(ctx, "two-factor challenge issued",
		logger.Component("auth"),
		logger.Event("login"),
		logger.UserID(userID),
		logger.ChallengeID(pending.ID.String()),
		logger.ClientIP(meta.IP),
	)

	return LoginResult{
		Status:         StatusTwoFactorRequired,
		ChallengeToken: challenge,
	}, nil
}

// VerifyTwoFactor completes a pending login. The pending record is
// consumed exactly once; replaying a challenge token after success fails
// with ErrInvalidOrExpiredChallenge. Failed codes count toward the
// attempt ceiling but leave the pending login alive for retry.
func (s *Service) VerifyTwoFactor(ctx context.Context, challengeToken, code string, meta Metadata) (LoginResult, error) {
	claims, err := s.parseChallengeToken(challengeToken)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.checkLimit(ctx, "2fa:"+claims.PendingID.String(), s.cfg.VerifyPerChallenge, s.cfg.VerifyWindow); err != nil {
		return LoginResult{}, err
	}

	pending, err := s.pending.Get(ctx, claims.PendingID)
	if err != nil {
		if errors.Is(err, ErrPendingNotFound) {
			return LoginResult{}, ErrInvalidOrExpiredChallenge
		}
		return LoginResult{}, err
	}
	if pending.IsExpired(time.Now()) {
		_, _ = s.pending.Delete(ctx, pending.ID)
		return LoginResult{}, ErrInvalidOrExpiredChallenge
	}

	if err := s.verifySecondFactor(ctx, pending.UserID, code); err != nil {
		return LoginResult{}, s.recordFailedAttempt(ctx, pending, err)
	}

	// Consume before materializing the session. Exactly one concurrent
	// verification can observe the removal, so a captured code cannot
	// re-trigger session creation for the same pending login.
	consumed, err := s.pending.Delete(ctx, pending.ID)
	if err != nil {
		return LoginResult{}, err
	}
	if !consumed {
		return LoginResult{}, ErrInvalidOrExpiredChallenge
	}

	return s.activate(ctx, pending.UserID, meta)
}

// Authenticate resolves a session token to its live session, recording
// an activity heartbeat. Heartbeat failures are logged, not surfaced;
// the authentication decision only depends on the session being live.
func (s *Service) Authenticate(ctx context.Context, sessionToken string) (session.Session, error) {
	claims, err := s.parseSessionToken(sessionToken)
	if err != nil {
		return session.Session{}, err
	}

	sess, err := s.sessions.Get(ctx, claims.UserID, claims.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
			return session.Session{}, ErrSessionNotFound
		}
		return session.Session{}, err
	}

	if err := s.sessions.Touch(ctx, claims.UserID, claims.SessionID); err != nil {
		s.log.WarnContext(ctx, "session heartbeat failed",
			logger.Component("auth"),
			logger.SessionID(claims.SessionID),
			logger.Error(err),
		)
	}

	sess.Current = true
	return sess, nil
}

// Logout invalidates the presented token's session. Server-side
// revocation is best effort: the token leaving the client is what ends
// the login, so a failed revoke only leaves a stale entry in the
// device listing until it expires.
func (s *Service) Logout(ctx context.Context, sessionToken string) {
	claims, err := s.parseSessionToken(sessionToken)
	if err != nil {
		return
	}

	if _, err := s.sessions.Revoke(ctx, claims.UserID, claims.SessionID); err != nil {
		s.log.WarnContext(ctx, "logout revocation failed",
			logger.Component("auth"),
			logger.UserID(claims.UserID),
			logger.SessionID(claims.SessionID),
			logger.Error(err),
		)
		return
	}

	s.log.InfoContext(ctx, "logged out",
		logger.Component("auth"),
		logger.Event("logout"),
		logger.UserID(claims.UserID),
		logger.SessionID(claims.SessionID),
	)
}

// ListSessions returns the user's active sessions, most recently active
// first, flagging the one matching currentSessionID.
func (s *Service) ListSessions(ctx context.Context, userID, currentSessionID uuid.UUID) ([]session.Session, error) {
	return s.sessions.List(ctx, userID, currentSessionID)
}

// RevokeSession removes one session and reports whether removal occurred.
func (s *Service) RevokeSession(ctx context.Context, userID, sessionID uuid.UUID) (bool, error) {
	return s.sessions.Revoke(ctx, userID, sessionID)
}

// RevokeOtherSessions logs the user out everywhere except the current
// session, returning how many sessions were removed.
func (s *Service) RevokeOtherSessions(ctx context.Context, userID, currentSessionID uuid.UUID) (int64, error) {
	return s.sessions.RevokeOthers(ctx, userID, currentSessionID)
}

// SessionTokenTTL reports how long issued session tokens stay valid.
func (s *Service) SessionTokenTTL() time.Duration { return s.cfg.SessionTokenTTL }

// PendingTTL reports how long an unanswered two-factor challenge lives.
func (s *Service) PendingTTL() time.Duration { return s.cfg.PendingTTL }

// activate materializes a session and issues its client token.
func (s *Service) activate(ctx context.Context, userID uuid.UUID, meta Metadata) (LoginResult, error) {
	if err := s.enforceSessionCeiling(ctx, userID); err != nil {
		return LoginResult{}, err
	}

	sess, err := s.sessions.Create(ctx, userID, session.Metadata{
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		Location:  s.geo.Lookup(meta.IP),
	})
	if err != nil {
		return LoginResult{}, err
	}

	tok, err := s.issueSessionToken(userID, sess.ID)
	if err != nil {
		return LoginResult{}, err
	}

	s.log.InfoContext(ctx, "login succeeded",
		logger.Component("auth"),
		logger.Event("login"),
		logger.Result("success"),
		logger.UserID(userID),
		logger.SessionID(sess.ID),
		logger.ClientIP(meta.IP),
	)

	return LoginResult{
		Status:  StatusActive,
		Token:   tok,
		Session: sess,
	}, nil
}

// enforceSessionCeiling evicts the least recently active session when the
// user is at the configured ceiling.
func (s *Service) enforceSessionCeiling(ctx context.Context, userID uuid.UUID) error {
	if s.cfg.MaxSessionsPerUser <= 0 {
		return nil
	}

	active, err := s.sessions.List(ctx, userID, uuid.Nil)
	if err != nil {
		return err
	}

	for len(active) >= s.cfg.MaxSessionsPerUser {
		oldest := active[len(active)-1]
		if _, err := s.sessions.Revoke(ctx, userID, oldest.ID); err != nil {
			return err
		}
		active = active[:len(active)-1]
	}
	return nil
}

// verifySecondFactor accepts either a one-time code or an unused
// recovery code, mapping both failure modes to ErrInvalidCode so
// responses don't reveal which path was attempted.
func (s *Service) verifySecondFactor(ctx context.Context, userID uuid.UUID, code string) error {
	err := s.twoFactor.Verify(ctx, userID, code)
	if err == nil {
		return nil
	}
	// Enrollment gone or disabled after the challenge was issued; the
	// challenge can never be completed, so report it as such rather
	// than leaking enrollment state.
	if errors.Is(err, twofactor.ErrNotEnrolled) || errors.Is(err, twofactor.ErrNotEnabled) {
		return ErrInvalidOrExpiredChallenge
	}
	if !errors.Is(err, twofactor.ErrInvalidCode) {
		return err
	}

	if recErr := s.twoFactor.UseRecoveryCode(ctx, userID, code); recErr == nil {
		return nil
	}
	return ErrInvalidCode
}

// recordFailedAttempt bumps the pending login's failure counter,
// invalidating the challenge once the ceiling is hit.
func (s *Service) recordFailedAttempt(ctx context.Context, pending PendingLogin, verifyErr error) error {
	if !errors.Is(verifyErr, ErrInvalidCode) {
		return verifyErr
	}

	pending.Attempts++
	if s.cfg.MaxVerifyAttempts > 0 && pending.Attempts >= s.cfg.MaxVerifyAttempts {
		_, _ = s.pending.Delete(ctx, pending.ID)
		s.log.WarnContext(ctx, "challenge invalidated after repeated failures",
			logger.Component("auth"),
			logger.UserID(pending.UserID),
			logger.ChallengeID(pending.ID.String()),
			logger.Count("attempts", pending.Attempts),
		)
		return ErrInvalidOrExpiredChallenge
	}

	if err := s.pending.Save(ctx, pending); err != nil {
		return err
	}
	return ErrInvalidCode
}

// checkLimit applies one fixed-window ceiling, mapping both a limited
// result and a limiter backend failure to caller-facing errors.
func (s *Service) checkLimit(ctx context.Context, key string, limit int, window time.Duration) error {
	res, err := s.limiter.Allow(ctx, key, limit, window)
	if err != nil {
		return err
	}
	if res.Limited {
		s.log.InfoContext(ctx, "rate limited",
			logger.Component("auth"),
			logger.Key("limit_key", key),
		)
		return ErrRateLimited
	}
	return nil
}
