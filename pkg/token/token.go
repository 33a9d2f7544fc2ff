package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// signatureLength is the number of HMAC-SHA256 bytes kept in the token.
// Truncation keeps tokens compact; combined with short lifetimes this is
// sufficient against forgery for session and challenge references.
const signatureLength = 8

// GenerateToken creates a signed token from any JSON-serializable payload.
// The result has the form <base64url-payload>.<base64url-signature>.
func GenerateToken(payload any, secret string) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(data)
	sig := sign(encoded, secret)

	return encoded + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// ParseToken verifies the token signature and unmarshals the payload into T.
// Returns ErrInvalidToken for malformed input and ErrSignatureInvalid when
// the signature does not match (tampering or wrong secret).
func ParseToken[T any](token, secret string) (T, error) {
	var out T

	payload, sigPart, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sigPart == "" {
		return out, ErrInvalidToken
	}

	gotSig, err := base64.RawURLEncoding.DecodeString(sigPart)
	if err != nil {
		return out, ErrInvalidToken
	}

	if !hmac.Equal(gotSig, sign(payload, secret)) {
		return out, ErrSignatureInvalid
	}

	data, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return out, ErrInvalidToken
	}

	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}

	return out, nil
}

func sign(payload, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return mac.Sum(nil)[:signatureLength]
}
