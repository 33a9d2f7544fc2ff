// Package cookie provides secure HTTP cookie management with HMAC-SHA256
// signing, key rotation, and strong security defaults. Auth transports use
// it to carry session and challenge tokens in tamper-evident cookies.
//
// # Basic Usage
//
// Create a manager with secret keys and use it to manage cookies:
//
//	manager, err := cookie.New([]string{"your-32-char-secret-key-here!!!!"})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Set a plain cookie
//	err = manager.Set(w, "locale", "en", cookie.WithMaxAge(3600))
//
//	// Get a cookie value
//	value, err := manager.Get(r, "locale")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// Cookie doesn't exist
//	}
//
//	// Delete a cookie
//	manager.Delete(w, "locale")
//
// # Signed Cookies
//
// Use signed cookies to detect tampering:
//
//	err := manager.SetSigned(w, "session_token", token,
//		cookie.WithSecure(true),
//	)
//
//	token, err := manager.GetSigned(r, "session_token")
//	if errors.Is(err, cookie.ErrInvalidSignature) {
//		// Cookie was tampered with
//	}
//
// # Key Rotation
//
// Multiple secrets support rotation without invalidating live sessions.
// The first secret signs new cookies; all secrets verify:
//
//	manager, err := cookie.New([]string{
//		"new-secret-32-chars-long!!!!!!!!",
//		"old-secret-32-chars-long!!!!!!!!",
//	})
//
// # Environment Configuration
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg)
//	manager, err := cookie.NewFromConfig(cfg)
package cookie
