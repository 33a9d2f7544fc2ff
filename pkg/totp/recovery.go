package totp

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// recoveryCodeBytes is the entropy of a recovery code (64 bits rendered as
// 16 hex characters).
const recoveryCodeBytes = 8

// GenerateRecoveryCodes produces count single-use backup codes for account
// recovery when the authenticator device is unavailable. Codes are
// uppercase hex, 16 characters each.
func GenerateRecoveryCodes(count int) ([]string, error) {
	if count <= 0 {
		return nil, ErrInvalidRecoveryCodeCount
	}

	codes := make([]string, count)
	buf := make([]byte, recoveryCodeBytes)
	for i := range codes {
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSecretGeneration, err)
		}
		codes[i] = strings.ToUpper(hex.EncodeToString(buf))
	}
	return codes, nil
}

// HashRecoveryCode returns the SHA-256 hex digest of a recovery code for
// storage. Codes are high-entropy random values, so a fast deterministic
// hash suffices and keeps verification a simple lookup.
func HashRecoveryCode(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// VerifyRecoveryCode reports whether code matches the stored hash using a
// constant-time comparison.
func VerifyRecoveryCode(code, hash string) bool {
	expected := HashRecoveryCode(code)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(hash)) == 1
}
