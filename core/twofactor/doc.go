// Package twofactor manages TOTP-based two-factor authentication
// enrollments: setup, confirmation, code verification, and single-use
// recovery codes.
//
// Having a secret and having two-factor enabled are independent states.
// Setup stores a disabled enrollment and returns the secret, a
// provisioning URI, and a QR rendering exactly once; Enable confirms the
// enrollment by verifying a code from the user's authenticator before
// flipping it on and minting recovery codes. Shared secrets are AES-GCM
// encrypted at rest and never logged.
//
// # Enrollment Flow
//
//	key, _ := totp.GetEncryptionKey(cfg)
//	svc, err := twofactor.NewService(twofactor.NewMemoryStore(), key,
//		twofactor.WithIssuer("Acme Store"),
//	)
//
//	// Step 1: show the secret and QR to the user.
//	setup, err := svc.Setup(ctx, userID, "user@example.com")
//
//	// Step 2: the user proves possession by entering a code.
//	recoveryCodes, err := svc.Enable(ctx, userID, code)
//	// Show recoveryCodes once; only hashes are kept.
//
// # Verification
//
//	err := svc.Verify(ctx, userID, code)
//	switch {
//	case errors.Is(err, twofactor.ErrInvalidCode):
//		// wrong or expired code
//	case errors.Is(err, twofactor.ErrNotEnabled):
//		// two-factor is off for this user
//	}
//
//	// Lost device: consume one recovery code instead.
//	err = svc.UseRecoveryCode(ctx, userID, recoveryCode)
package twofactor
