// Package token provides compact, URL-safe token generation and verification
// using truncated HMAC-SHA256 signatures.
//
// Tokens combine a JSON payload with an 8-byte signature in the format
// `<base64url-payload>.<base64url-signature>`, keeping them small enough for
// cookies and URLs while guaranteeing integrity.
//
// # Usage
//
//	type sessionClaims struct {
//		UserID    uuid.UUID `json:"uid"`
//		SessionID uuid.UUID `json:"sid"`
//		ExpiresAt int64     `json:"exp"`
//	}
//
//	tok, err := token.GenerateToken(sessionClaims{...}, secret)
//	if err != nil {
//		// handle error
//	}
//
//	claims, err := token.ParseToken[sessionClaims](tok, secret)
//	switch {
//	case errors.Is(err, token.ErrInvalidToken):
//		// malformed token
//	case errors.Is(err, token.ErrSignatureInvalid):
//		// tampered token or wrong secret
//	}
//
// Signature truncation provides ~34 bits of security against forgery, which
// is appropriate for short-lived tokens. Include an expiry in the payload
// and always use a cryptographically secure secret.
package token
