package auth

import "errors"

// The error taxonomy is deliberately coarse. Credential and code
// failures share generic messages so responses never reveal whether an
// email exists or which factor was wrong.
var (
	// ErrInvalidCredentials is returned for any primary credential failure.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrRateLimited is returned when login or verification attempts exceed the ceiling.
	ErrRateLimited = errors.New("too many attempts, try again later")
	// ErrInvalidOrExpiredChallenge is returned when a two-factor challenge
	// token is unknown, expired, or already consumed.
	ErrInvalidOrExpiredChallenge = errors.New("invalid or expired challenge")
	// ErrInvalidCode is returned when a two-factor code fails verification.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrSessionNotFound is returned when a presented token references no live session.
	ErrSessionNotFound = errors.New("session not found")
)
