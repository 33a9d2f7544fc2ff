package sessiontransport

import "errors"

var (
	// ErrNoToken is returned when no authentication token is present in
	// the request.
	ErrNoToken = errors.New("sessiontransport: no token")

	// ErrInvalidToken is returned when the token envelope is malformed
	// or its signature does not verify.
	ErrInvalidToken = errors.New("sessiontransport: invalid token")
)
