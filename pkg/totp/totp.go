package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// secretBytes is the raw entropy of a generated secret (160 bits, the
	// RFC 4226 recommended minimum for HMAC-SHA1).
	secretBytes = 20

	// period is the TOTP time step in seconds.
	period = 30

	// digits is the length of generated codes.
	digits = 6

	// skewSteps is the clock skew tolerance in time steps applied during
	// validation, covering one step before and after the current one.
	skewSteps = 1
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecretKey produces a fresh random shared secret encoded as
// unpadded base32, decodable by standard authenticator apps.
func GenerateSecretKey() (string, error) {
	raw := make([]byte, secretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSecretGeneration, err)
	}
	return b32.EncodeToString(raw), nil
}

// GenerateTOTP computes the code for the current time step.
func GenerateTOTP(secret string) (string, error) {
	return GenerateTOTPWithTime(secret, time.Now())
}

// GenerateTOTPWithTime computes the code for the time step containing t.
// Useful for tests that need codes for specific moments.
func GenerateTOTPWithTime(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return hotpCode(key, t.Unix()/period), nil
}

// ValidateTOTP reports whether code matches the expected value for the
// current time step or its immediate neighbors (±1 step skew tolerance).
// Comparison is constant-time. Malformed codes (wrong length, non-numeric)
// return false without an error; only an undecodable secret errors.
func ValidateTOTP(secret, code string) (bool, error) {
	return validateTOTPWithTime(secret, code, time.Now())
}

func validateTOTPWithTime(secret, code string, t time.Time) (bool, error) {
	trimmed := strings.TrimSpace(code)
	if len(trimmed) != digits || !isNumeric(trimmed) {
		return false, nil
	}

	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	counter := t.Unix() / period
	for step := int64(-skewSteps); step <= skewSteps; step++ {
		if counter+step < 0 {
			continue
		}
		expected := hotpCode(key, counter+step)
		if subtle.ConstantTimeCompare([]byte(expected), []byte(trimmed)) == 1 {
			return true, nil
		}
	}

	return false, nil
}

// TOTPParams describes an enrollment for URI generation.
type TOTPParams struct {
	Secret      string
	AccountName string
	Issuer      string
}

// GetTOTPURI builds an otpauth:// provisioning URI for the enrollment,
// suitable for rendering as a QR code.
func GetTOTPURI(params TOTPParams) (string, error) {
	if params.Secret == "" {
		return "", ErrMissingSecret
	}
	if params.AccountName == "" {
		return "", ErrMissingAccountName
	}
	if params.Issuer == "" {
		return "", ErrMissingIssuer
	}

	v := url.Values{}
	v.Set("secret", params.Secret)
	v.Set("issuer", params.Issuer)
	v.Set("algorithm", "SHA1")
	v.Set("digits", "6")
	v.Set("period", "30")

	label := url.PathEscape(params.Issuer + ":" + params.AccountName)
	return "otpauth://totp/" + label + "?" + v.Encode(), nil
}

// hotpCode implements RFC 4226 dynamic truncation over an HMAC-SHA1 of the
// big-endian counter.
func hotpCode(key []byte, counter int64) string {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(sha1.New, key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	bin := (int(sum[offset])&0x7f)<<24 |
		(int(sum[offset+1])&0xff)<<16 |
		(int(sum[offset+2])&0xff)<<8 |
		(int(sum[offset+3]) & 0xff)

	return fmt.Sprintf("%06d", bin%1000000)
}

func decodeSecret(secret string) ([]byte, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(secret, " ", ""))
	key, err := b32.DecodeString(normalized)
	if err != nil || len(key) == 0 {
		return nil, ErrInvalidSecret
	}
	return key, nil
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
