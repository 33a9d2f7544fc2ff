// Package jwt provides a thin service for issuing and verifying
// HMAC-SHA256 signed JSON Web Tokens.
//
// The package wraps github.com/golang-jwt/jwt/v5 behind a small API so
// callers only deal with a signing key and their own claim types.
//
// # Usage
//
//	svc, err := jwt.NewFromString(cfg.SigningKey)
//	if err != nil {
//		return err
//	}
//
//	type accessClaims struct {
//		UserID string `json:"uid"`
//		jwt.RegisteredClaims
//	}
//
//	token, err := svc.Generate(accessClaims{
//		UserID: user.ID.String(),
//		RegisteredClaims: jwt.RegisteredClaims{
//			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
//		},
//	})
//
// Parsing discriminates failure modes with sentinel errors:
//
//	var claims accessClaims
//	err := svc.Parse(token, &claims)
//	switch {
//	case errors.Is(err, jwt.ErrExpiredToken):
//		// prompt re-authentication
//	case errors.Is(err, jwt.ErrInvalidSignature):
//		// reject outright
//	}
package jwt
