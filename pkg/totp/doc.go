// Package totp provides RFC 6238 compliant Time-based One-Time Password
// authentication with AES-256-GCM secret encryption and backup recovery codes.
//
// Generated secrets are unpadded base32, fully compatible with standard
// authenticator apps. Validation uses the standard 30-second step with a
// ±1 step clock-skew tolerance and constant-time comparison.
//
// # Basic Usage
//
//	secret, err := totp.GenerateSecretKey()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	uri, err := totp.GetTOTPURI(totp.TOTPParams{
//		Secret:      secret,
//		AccountName: "user@example.com",
//		Issuer:      "MyStore",
//	})
//
//	valid, err := totp.ValidateTOTP(secret, userCode)
//
// # Secret Encryption
//
// Secrets must be encrypted before storage:
//
//	key, err := totp.GetEncryptionKey(totp.Config{EncryptionKey: encodedKey})
//	encrypted, err := totp.EncryptSecret(secret, key)
//	decrypted, err := totp.DecryptSecret(encrypted, key)
//
// # Recovery Codes
//
//	codes, err := totp.GenerateRecoveryCodes(10)
//	hash := totp.HashRecoveryCode(codes[0]) // store hashes only
//	ok := totp.VerifyRecoveryCode(userInput, hash)
//
// For deterministic tests use GenerateTOTPWithTime to produce codes for a
// specific moment.
package totp
