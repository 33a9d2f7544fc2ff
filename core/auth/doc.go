// Package auth orchestrates the multi-step login protocol: primary
// credential verification, an optional two-factor challenge, and
// session issuance.
//
// The package owns no credential storage. Callers supply a
// CredentialVerifier for the primary factor; second-factor state lives
// in core/twofactor and sessions in core/session. What auth adds is the
// protocol between them: rate limiting before any credential work, a
// short-lived pending login bridging the two factors, and consume-once
// challenge completion.
//
// # Login flow
//
//	svc := auth.NewService(verifier, sessions, twoFactor, pendingStore, limiter, tokenSecret)
//
//	res, err := svc.Login(ctx, email, password, auth.Metadata{IP: ip, UserAgent: ua})
//	switch {
//	case err != nil:
//		// ErrInvalidCredentials, ErrRateLimited, or a server error.
//	case res.Status == auth.StatusActive:
//		// res.Token is the session token; hand it to the client.
//	case res.Status == auth.StatusTwoFactorRequired:
//		// hand res.ChallengeToken to the client and prompt for a code.
//	}
//
// A challenge is completed with a one-time code or an unused recovery
// code:
//
//	res, err := svc.VerifyTwoFactor(ctx, challengeToken, code, meta)
//
// The pending login behind a challenge token is consumed atomically on
// success. Replaying the same token, even with a valid code, fails with
// ErrInvalidOrExpiredChallenge, as does presenting a code after the
// failed-attempt ceiling invalidated the challenge.
//
// # Request authentication
//
// Authenticate resolves a session token back to its live session and
// records an activity heartbeat:
//
//	sess, err := svc.Authenticate(ctx, token)
//
// Expired or revoked sessions surface as ErrSessionNotFound; the error
// taxonomy is deliberately coarse so responses reveal nothing about
// which accounts exist or which step failed.
package auth
