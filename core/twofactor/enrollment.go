package twofactor

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment is a user's two-factor authentication state. Having a secret
// and having two-factor enabled are independent: Setup stores a disabled
// enrollment, and only a successful code verification via Enable flips it
// on. The secret is stored AES-GCM encrypted and never leaves the package
// after Setup returns it once for the enrollment flow.
type Enrollment struct {
	UserID uuid.UUID `json:"user_id"`

	// Secret is the encrypted TOTP shared secret.
	Secret string `json:"secret"`

	Enabled     bool      `json:"enabled"`
	ConfirmedAt time.Time `json:"confirmed_at,omitzero"`
	CreatedAt   time.Time `json:"created_at"`

	// RecoveryCodes holds SHA-256 hashes of unused recovery codes.
	// Each code is removed when consumed.
	RecoveryCodes []string `json:"recovery_codes,omitempty"`
}
