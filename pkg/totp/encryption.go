package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// encryptionKeyBytes is the AES-256 key size.
const encryptionKeyBytes = 32

// Config holds the secret-encryption configuration, typically loaded from
// the environment via core/config.
type Config struct {
	// EncryptionKey is a base64-encoded 32-byte key used to encrypt TOTP
	// secrets before they reach storage.
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY,required"`
}

// GenerateEncryptionKey produces a random 32-byte key for AES-256-GCM.
func GenerateEncryptionKey() ([]byte, error) {
	key := make([]byte, encryptionKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return key, nil
}

// GenerateEncodedEncryptionKey produces a base64-encoded key suitable for
// a TOTP_ENCRYPTION_KEY environment value.
func GenerateEncodedEncryptionKey() (string, error) {
	key, err := GenerateEncryptionKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

// GetEncryptionKey decodes and validates the configured encryption key.
func GetEncryptionKey(cfg Config) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncryptionKey, err)
	}
	if len(key) != encryptionKeyBytes {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncryptionKey, encryptionKeyBytes, len(key))
	}
	return key, nil
}

// EncryptSecret encrypts a TOTP secret with AES-256-GCM for storage.
// The nonce is prepended to the ciphertext and the whole value is
// base64-encoded.
func EncryptSecret(secret string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(secret), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptSecret reverses EncryptSecret.
func DecryptSecret(encrypted string, key []byte) (string, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	data, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	if len(data) < gcm.NonceSize() {
		return "", ErrDecryptionFailed
	}

	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	return string(plain), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != encryptionKeyBytes {
		return nil, ErrInvalidEncryptionKey
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncryptionKey, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	return gcm, nil
}
