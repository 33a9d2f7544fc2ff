package jwt

import (
	"errors"
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrEmptySigningKey is returned when a service is created without a key.
	ErrEmptySigningKey = errors.New("signing key is required")
	// ErrInvalidToken is returned for malformed tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSignature is returned when signature verification fails.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// RegisteredClaims re-exports the standard claim set so callers embed it
// without importing the underlying library directly.
type RegisteredClaims = jwtlib.RegisteredClaims

// Claims is the contract token payloads must satisfy. Custom claim types
// embed RegisteredClaims.
type Claims = jwtlib.Claims

// NewNumericDate wraps a time for exp/iat/nbf claims.
var NewNumericDate = jwtlib.NewNumericDate

// Service signs and verifies HMAC-SHA256 JWTs with a single symmetric key.
type Service struct {
	signingKey []byte
}

// New creates a JWT service with the given signing key.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrEmptySigningKey
	}
	return &Service{signingKey: signingKey}, nil
}

// NewFromString creates a JWT service from a string key.
func NewFromString(signingKey string) (*Service, error) {
	return New([]byte(signingKey))
}

// Generate signs the claims and returns the compact token.
func (s *Service) Generate(claims Claims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token signature and temporal claims (exp, nbf, iat)
// and unmarshals the payload into claims.
func (s *Service) Parse(tokenString string, claims Claims) error {
	token, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})

	switch {
	case err == nil && token.Valid:
		return nil
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
