package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/pkg/token"
)

// sessionClaims binds a client-held token to one session of one user.
type sessionClaims struct {
	UserID    uuid.UUID `json:"uid"`
	SessionID uuid.UUID `json:"sid"`
	ExpiresAt int64     `json:"exp"`
}

// challengeClaims is the narrow token issued between the credential and
// two-factor steps. It only references the pending login; it grants no
// access to protected resources.
type challengeClaims struct {
	PendingID uuid.UUID `json:"pid"`
	ExpiresAt int64     `json:"exp"`
}

func (s *Service) issueSessionToken(userID, sessionID uuid.UUID) (string, error) {
	return token.GenerateToken(sessionClaims{
		UserID:    userID,
		SessionID: sessionID,
		ExpiresAt: time.Now().Add(s.cfg.SessionTokenTTL).Unix(),
	}, s.tokenSecret)
}

func (s *Service) parseSessionToken(raw string) (sessionClaims, error) {
	claims, err := token.ParseToken[sessionClaims](raw, s.tokenSecret)
	if err != nil {
		return sessionClaims{}, ErrSessionNotFound
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return sessionClaims{}, ErrSessionNotFound
	}
	return claims, nil
}

func (s *Service) issueChallengeToken(pendingID uuid.UUID, expiresAt time.Time) (string, error) {
	return token.GenerateToken(challengeClaims{
		PendingID: pendingID,
		ExpiresAt: expiresAt.Unix(),
	}, s.tokenSecret)
}

func (s *Service) parseChallengeToken(raw string) (challengeClaims, error) {
	claims, err := token.ParseToken[challengeClaims](raw, s.tokenSecret)
	if err != nil {
		return challengeClaims{}, ErrInvalidOrExpiredChallenge
	}
	if time.Now().Unix() > claims.ExpiresAt {
		return challengeClaims{}, ErrInvalidOrExpiredChallenge
	}
	return claims, nil
}
