package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the maximum size for a cookie (4KB).
	MaxCookieSize = 4096
	// minSecretLength is the minimum secret length for HMAC-SHA256 signing.
	minSecretLength = 32
)

// Manager handles HTTP cookie operations with HMAC signing and key
// rotation. Auth transports use it to carry session and challenge tokens
// so values cannot be forged or tampered with client-side.
type Manager struct {
	secrets  []string
	defaults Options
	maxSize  int
}

// ManagerOption configures the Manager itself (not individual cookies).
type ManagerOption func(*Manager)

// WithMaxSize sets the maximum cookie size.
func WithMaxSize(size int) ManagerOption {
	return func(m *Manager) {
		if size > 0 {
			m.maxSize = size
		}
	}
}

// New creates a cookie manager with the given signing secrets and default
// cookie options. The first secret signs new cookies; all secrets verify,
// which allows rotating keys without invalidating live sessions.
func New(secrets []string, opts ...Option) (*Manager, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i := range secrets {
		if len(secrets[i]) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secrets[i]), minSecretLength)
		}
	}

	// Secure defaults
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	defaults = applyOptions(defaults, opts)

	return &Manager{
		secrets:  secrets,
		defaults: defaults,
		maxSize:  MaxCookieSize,
	}, nil
}

// NewWithOptions creates a cookie manager with additional manager options.
func NewWithOptions(secrets []string, cookieOpts []Option, managerOpts ...ManagerOption) (*Manager, error) {
	m, err := New(secrets, cookieOpts...)
	if err != nil {
		return nil, err
	}
	for _, opt := range managerOpts {
		opt(m)
	}
	return m, nil
}

// Set stores a plain cookie value.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	header := cookie.String()
	if len(header) > m.maxSize {
		return ErrCookieTooLarge{Name: name, Size: len(header), Max: m.maxSize}
	}

	http.SetCookie(w, cookie)
	return nil
}

// Get retrieves a cookie value.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete removes a cookie by expiring it immediately.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	}
	http.SetCookie(w, cookie)
}

// SetSigned stores an HMAC-signed cookie value.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.sign(value), opts...)
}

// GetSigned retrieves and verifies a signed cookie value.
// Returns ErrInvalidSignature when no configured secret verifies the value.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.verify(signed)
}

// sign creates an HMAC-SHA256 signature with the current signing secret.
func (m *Manager) sign(value string) string {
	mac := hmac.New(sha256.New, []byte(m.secrets[0]))
	mac.Write([]byte(value))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" + signature
}

// verify checks the signature against all secrets for key rotation support.
func (m *Manager) verify(signed string) (string, error) {
	parts := strings.SplitN(signed, "|", 2)
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}

	encodedValue, signature := parts[0], parts[1]

	value, err := base64.URLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}

	validIndex := slices.IndexFunc(m.secrets, func(secret string) bool {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(value)
		expectedSig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
		return subtle.ConstantTimeCompare([]byte(signature), []byte(expectedSig)) == 1
	})

	if validIndex >= 0 {
		return string(value), nil
	}

	return "", ErrInvalidSignature
}
