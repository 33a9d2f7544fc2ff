package token

import "errors"

var (
	// ErrInvalidToken is returned when the token format is malformed or
	// contains invalid base64 segments.
	ErrInvalidToken = errors.New("invalid token")
	// ErrSignatureInvalid is returned when signature verification fails.
	ErrSignatureInvalid = errors.New("invalid token signature")
)
