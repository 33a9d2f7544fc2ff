package totp

import "errors"

var (
	// ErrSecretGeneration is returned when random secret generation fails.
	ErrSecretGeneration = errors.New("failed to generate secret")
	// ErrInvalidSecret is returned when a secret is not valid base32.
	ErrInvalidSecret = errors.New("invalid totp secret")
	// ErrMissingSecret is returned by GetTOTPURI when the secret is empty.
	ErrMissingSecret = errors.New("secret is required")
	// ErrMissingAccountName is returned by GetTOTPURI when the account name is empty.
	ErrMissingAccountName = errors.New("account name is required")
	// ErrMissingIssuer is returned by GetTOTPURI when the issuer is empty.
	ErrMissingIssuer = errors.New("issuer is required")
	// ErrKeyGeneration is returned when encryption key generation fails.
	ErrKeyGeneration = errors.New("failed to generate encryption key")
	// ErrInvalidEncryptionKey is returned for keys that are not 32 bytes of valid base64.
	ErrInvalidEncryptionKey = errors.New("invalid encryption key")
	// ErrEncryptionFailed is returned when secret encryption fails.
	ErrEncryptionFailed = errors.New("failed to encrypt secret")
	// ErrDecryptionFailed is returned when secret decryption fails.
	ErrDecryptionFailed = errors.New("failed to decrypt secret")
	// ErrInvalidRecoveryCodeCount is returned for non-positive recovery code counts.
	ErrInvalidRecoveryCodeCount = errors.New("recovery code count must be positive")
)
