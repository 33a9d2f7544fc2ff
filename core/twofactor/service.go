package twofactor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authcore/core/logger"
	"github.com/dmitrymomot/authcore/pkg/qrcode"
	"github.com/dmitrymomot/authcore/pkg/totp"
)

const defaultRecoveryCodeCount = 10

// SetupResult carries everything the enrollment flow needs to show the
// user once. The plain secret is never retrievable again afterwards.
type SetupResult struct {
	// Secret is the base32 shared secret for manual authenticator entry.
	Secret string
	// URI is the otpauth:// provisioning URI.
	URI string
	// QRCode is the provisioning URI rendered as a base64 PNG data URI.
	QRCode string
}

// Service manages two-factor enrollments: setup, confirmation, code
// verification, and recovery codes. Secrets are encrypted at rest and
// never logged.
type Service struct {
	store             Store
	encryptionKey     []byte
	issuer            string
	recoveryCodeCount int
	qrSize            int
	log               *slog.Logger
}

// ServiceOption configures the two-factor service.
type ServiceOption func(*Service)

// WithIssuer sets the issuer label shown in authenticator apps.
func WithIssuer(issuer string) ServiceOption {
	return func(s *Service) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

// WithRecoveryCodeCount sets how many recovery codes Enable mints.
func WithRecoveryCodeCount(count int) ServiceOption {
	return func(s *Service) {
		if count > 0 {
			s.recoveryCodeCount = count
		}
	}
}

// WithQRSize sets the rendered QR code size in pixels.
func WithQRSize(size int) ServiceOption {
	return func(s *Service) {
		if size > 0 {
			s.qrSize = size
		}
	}
}

// WithLogger sets the logger for enrollment lifecycle events.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a two-factor service. The encryption key must be 32
// bytes; derive it with totp.GetEncryptionKey from configuration.
func NewService(store Store, encryptionKey []byte, opts ...ServiceOption) (*Service, error) {
	if len(encryptionKey) != 32 {
		return nil, totp.ErrInvalidEncryptionKey
	}

	s := &Service{
		store:             store,
		encryptionKey:     encryptionKey,
		issuer:            "authcore",
		recoveryCodeCount: defaultRecoveryCodeCount,
		qrSize:            qrcode.DefaultSize,
		log:               slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Setup generates a fresh secret and stores a disabled enrollment,
// replacing any previous unconfirmed one. Returns the secret, the
// provisioning URI, and a QR rendering for the enrollment screen.
// Fails with ErrAlreadyEnabled when two-factor is already confirmed.
func (s *Service) Setup(ctx context.Context, userID uuid.UUID, accountName string) (SetupResult, error) {
	existing, err := s.store.Get(ctx, userID)
	if err == nil && existing.Enabled {
		return SetupResult{}, ErrAlreadyEnabled
	}
	if err != nil && !errors.Is(err, ErrNotEnrolled) {
		return SetupResult{}, err
	}

	secret, err := totp.GenerateSecretKey()
	if err != nil {
		return SetupResult{}, fmt.Errorf("failed to generate secret: %w", err)
	}

	uri, err := totp.GetTOTPURI(totp.TOTPParams{
		Secret:      secret,
		AccountName: accountName,
		Issuer:      s.issuer,
	})
	if err != nil {
		return SetupResult{}, err
	}

	qr, err := qrcode.GenerateBase64Image(uri, s.qrSize)
	if err != nil {
		return SetupResult{}, fmt.Errorf("failed to render enrollment code: %w", err)
	}

	encrypted, err := totp.EncryptSecret(secret, s.encryptionKey)
	if err != nil {
		return SetupResult{}, err
	}

	if err := s.store.Save(ctx, Enrollment{
		UserID:    userID,
		Secret:    encrypted,
		Enabled:   false,
		CreatedAt: time.Now(),
	}); err != nil {
		return SetupResult{}, err
	}

	s.log.InfoContext(ctx, "two-factor setup started",
		logger.Component("twofactor"),
		logger.UserID(userID),
	)

	return SetupResult{Secret: secret, URI: uri, QRCode: qr}, nil
}

// Enable confirms the enrollment by verifying a code generated from the
// new secret, then flips it on and mints recovery codes. The plain
// recovery codes are returned exactly once; only hashes are stored.
func (s *Service) Enable(ctx context.Context, userID uuid.UUID, code string) ([]string, error) {
	enrollment, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if enrollment.Enabled {
		return nil, ErrAlreadyEnabled
	}

	if err := s.verifyCode(enrollment, code); err != nil {
		return nil, err
	}

	codes, err := totp.GenerateRecoveryCodes(s.recoveryCodeCount)
	if err != nil {
		return nil, err
	}

	hashes := make([]string, len(codes))
	for i, c := range codes {
		hashes[i] = totp.HashRecoveryCode(c)
	}

	enrollment.Enabled = true
	enrollment.ConfirmedAt = time.Now()
	enrollment.RecoveryCodes = hashes
	if err := s.store.Save(ctx, enrollment); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "two-factor enabled",
		logger.Component("twofactor"),
		logger.UserID(userID),
	)

	return codes, nil
}

// Disable turns two-factor off after verifying a current code, removing
// the enrollment entirely so a later setup starts from a fresh secret.
func (s *Service) Disable(ctx context.Context, userID uuid.UUID, code string) error {
	enrollment, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !enrollment.Enabled {
		return ErrNotEnabled
	}

	if err := s.verifyCode(enrollment, code); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "two-factor disabled",
		logger.Component("twofactor"),
		logger.UserID(userID),
	)
	return nil
}

// Enabled reports whether the user has two-factor confirmed and on.
// Users without any enrollment are simply not enabled.
func (s *Service) Enabled(ctx context.Context, userID uuid.UUID) (bool, error) {
	enrollment, err := s.store.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotEnrolled) {
			return false, nil
		}
		return false, err
	}
	return enrollment.Enabled, nil
}

// Verify checks a one-time code for a user with two-factor enabled.
// Codes verify only against enabled enrollments.
func (s *Service) Verify(ctx context.Context, userID uuid.UUID, code string) error {
	enrollment, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !enrollment.Enabled {
		return ErrNotEnabled
	}
	return s.verifyCode(enrollment, code)
}

// UseRecoveryCode consumes one unused recovery code. Each code works
// exactly once; the matching hash is removed on success.
func (s *Service) UseRecoveryCode(ctx context.Context, userID uuid.UUID, code string) error {
	enrollment, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}
	if !enrollment.Enabled {
		return ErrNotEnabled
	}

	matched := -1
	for i, hash := range enrollment.RecoveryCodes {
		if totp.VerifyRecoveryCode(code, hash) {
			matched = i
			break
		}
	}
	if matched < 0 {
		return ErrInvalidRecoveryCode
	}

	enrollment.RecoveryCodes = append(
		enrollment.RecoveryCodes[:matched],
		enrollment.RecoveryCodes[matched+1:]...,
	)
	if err := s.store.Save(ctx, enrollment); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "recovery code used",
		logger.Component("twofactor"),
		logger.UserID(userID),
		logger.Count("codes_remaining", len(enrollment.RecoveryCodes)),
	)
	return nil
}

// verifyCode decrypts the enrollment secret and validates the code.
func (s *Service) verifyCode(enrollment Enrollment, code string) error {
	secret, err := totp.DecryptSecret(enrollment.Secret, s.encryptionKey)
	if err != nil {
		return err
	}

	valid, err := totp.ValidateTOTP(secret, code)
	if err != nil {
		return err
	}
	if !valid {
		return ErrInvalidCode
	}
	return nil
}
