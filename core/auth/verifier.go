package auth

import (
	"context"

	"github.com/google/uuid"
)

// CredentialVerifier is the external identity collaborator that owns
// user records and password checks. This package never sees password
// hashes; it only receives the verified user identity.
type CredentialVerifier interface {
	// VerifyCredentials returns the user ID for valid credentials.
	// Any failure must be indistinguishable to callers of this package,
	// so implementations may return whatever error they like; it is
	// mapped to ErrInvalidCredentials.
	VerifyCredentials(ctx context.Context, email, password string) (uuid.UUID, error)
}
