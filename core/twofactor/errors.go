package twofactor

import "errors"

var (
	// ErrNotEnrolled is returned when the user has no two-factor enrollment.
	ErrNotEnrolled = errors.New("two-factor authentication not set up")
	// ErrNotEnabled is returned when an enrollment exists but two-factor is disabled.
	ErrNotEnabled = errors.New("two-factor authentication not enabled")
	// ErrAlreadyEnabled is returned when enabling two-factor that is already on.
	ErrAlreadyEnabled = errors.New("two-factor authentication already enabled")
	// ErrInvalidCode is returned when a one-time code fails verification.
	ErrInvalidCode = errors.New("invalid verification code")
	// ErrInvalidRecoveryCode is returned when a recovery code is unknown or already used.
	ErrInvalidRecoveryCode = errors.New("invalid recovery code")
	// ErrStoreUnavailable wraps backend failures.
	ErrStoreUnavailable = errors.New("two-factor store unavailable")
)
