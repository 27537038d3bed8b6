package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/infrastructure/store"
)

// Marketplace role identifiers accepted at registration.
const (
	RoleMerchant = 1
	RolePartner  = 2
)

const minPasswordLen = 8

// CredentialConfig tunes the credential service.
type CredentialConfig struct {
	// OTPLength is the number of decimal digits in an issued code.
	OTPLength int
	// OTPTTL is how long an issued code stays valid.
	OTPTTL time.Duration
	// DefaultRoleID is reported at login; the stored record carries no role.
	DefaultRoleID int
}

// CredentialServiceImpl implements domain.CredentialService over the
// file-backed user store.
type CredentialServiceImpl struct {
	users    domain.UserStore
	sessions domain.SessionStore
	hasher   domain.SecretHasher
	notifier domain.CodeNotifier
	cfg      CredentialConfig

	now func() time.Time
}

// NewCredentialService creates the credential service.
func NewCredentialService(
	users domain.UserStore,
	sessions domain.SessionStore,
	hasher domain.SecretHasher,
	notifier domain.CodeNotifier,
	cfg CredentialConfig,
) domain.CredentialService {
	return &CredentialServiceImpl{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		notifier: notifier,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Register implements domain.CredentialService.
//
// A fresh email creates an unverified record with an outstanding code. An
// existing unverified email gets a re-issued code on the same record; an
// already verified email is a conflict and the record stays untouched.
func (s *CredentialServiceImpl) Register(ctx context.Context, email, password, confirmPassword string, roleID int) (*domain.RegisterResult, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}
	if password != confirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	if roleID != RoleMerchant && roleID != RolePartner {
		return nil, fmt.Errorf("%w: missing role", domain.ErrValidation)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Verified() {
			return nil, domain.ErrEmailTaken
		}
		existing.Verification = s.issueCode(email)
		existing.UpdatedAt = s.now().UTC()
		if err := s.users.Upsert(ctx, existing); err != nil {
			return nil, err
		}
		return &domain.RegisterResult{Email: email}, nil
	case errors.Is(err, domain.ErrUserNotFound):
		// fall through to create
	default:
		return nil, err
	}

	passwordSalt := s.hasher.NewSalt()
	now := s.now().UTC()
	record := &domain.UserRecord{
		ID:           s.hasher.NewID(),
		Email:        email,
		PasswordHash: s.hasher.Derive(password, passwordSalt),
		PasswordSalt: passwordSalt,
		Verification: s.issueCode(email),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Upsert(ctx, record); err != nil {
		return nil, err
	}
	return &domain.RegisterResult{Email: email}, nil
}

// Login implements domain.CredentialService.
//
// Unknown emails and wrong passwords both fail with ErrInvalidCredentials so
// the response never reveals which emails are registered. The verification
// check runs before the password check for the same reason.
func (s *CredentialServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email, err := validEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: missing password", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Verified() {
		return nil, domain.ErrNotVerified
	}
	if !s.hasher.Verify(password, user.PasswordSalt, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	session := &domain.Session{
		Token:     s.hasher.NewID(),
		UserID:    DerivedUserID(user.ID),
		Email:     user.Email,
		RoleID:    s.cfg.DefaultRoleID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &domain.AuthResult{
		Token:  session.Token,
		UserID: session.UserID,
		RoleID: session.RoleID,
	}, nil
}

// ResendVerification implements domain.CredentialService. Resending for an
// already verified account reports success without touching the record.
func (s *CredentialServiceImpl) ResendVerification(ctx context.Context, email string) error {
	email, err := validEmail(email)
	if err != nil {
		return err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified() {
		return nil
	}
	user.Verification = s.issueCode(email)
	user.UpdatedAt = s.now().UTC()
	return s.users.Upsert(ctx, user)
}

// GenerateCode implements domain.CredentialService. Unlike ResendVerification
// it issues a fresh code even for verified accounts; this is the entry point
// of the forgot-password flow.
func (s *CredentialServiceImpl) GenerateCode(ctx context.Context, email string) error {
	email, err := validEmail(email)
	if err != nil {
		return err
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	user.Verification = s.issueCode(email)
	user.UpdatedAt = s.now().UTC()
	return s.users.Upsert(ctx, user)
}

// VerifyEmail implements domain.CredentialService. Verifying an already
// verified account is a no-op success.
func (s *CredentialServiceImpl) VerifyEmail(ctx context.Context, email, code string) error {
	email, err := validEmail(email)
	if err != nil {
		return err
	}
	code, err = s.validCode(code)
	if err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.Verified() {
		return nil
	}
	if err := s.checkCode(user, code); err != nil {
		return err
	}

	now := s.now().UTC()
	user.EmailVerifiedAt = &now
	user.Verification = nil
	user.UpdatedAt = now
	return s.users.Upsert(ctx, user)
}

// ResetPassword implements domain.CredentialService. The verification state
// of the record is left as it was; only the credential material changes.
func (s *CredentialServiceImpl) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email, err := validEmail(email)
	if err != nil {
		return err
	}
	code, err = s.validCode(code)
	if err != nil {
		return err
	}
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := s.checkCode(user, code); err != nil {
		return err
	}

	passwordSalt := s.hasher.NewSalt()
	user.PasswordHash = s.hasher.Derive(newPassword, passwordSalt)
	user.PasswordSalt = passwordSalt
	user.Verification = nil
	user.UpdatedAt = s.now().UTC()
	return s.users.Upsert(ctx, user)
}

// Logout implements domain.CredentialService.
func (s *CredentialServiceImpl) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// issueCode generates a one-time code, hashes it with a fresh salt and hands
// the cleartext to the notifier. The code itself is never returned upward.
func (s *CredentialServiceImpl) issueCode(email string) *domain.Verification {
	code := s.hasher.GenerateOTP(s.cfg.OTPLength)
	salt := s.hasher.NewSalt()
	v := &domain.Verification{
		OTPHash:   s.hasher.Derive(code, salt),
		OTPSalt:   salt,
		ExpiresAt: s.now().UTC().Add(s.cfg.OTPTTL),
	}
	s.notifier.NotifyCode(email, code)
	return v
}

// checkCode validates an outstanding code against the record. Expired means
// strictly past the deadline: a call at the exact expiry instant still counts
// as valid.
func (s *CredentialServiceImpl) checkCode(user *domain.UserRecord, code string) error {
	v := user.Verification
	if v == nil {
		return domain.ErrNoActiveCode
	}
	if s.now().After(v.ExpiresAt) {
		return domain.ErrCodeExpired
	}
	if !s.hasher.Verify(code, v.OTPSalt, v.OTPHash) {
		return domain.ErrCodeInvalid
	}
	return nil
}

func (s *CredentialServiceImpl) validCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != s.cfg.OTPLength || !isDigits(code) {
		return "", fmt.Errorf("%w: invalid code", domain.ErrValidation)
	}
	return code, nil
}

func validEmail(email string) (string, error) {
	email = store.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return "", fmt.Errorf("%w: please enter a valid email", domain.ErrValidation)
	}
	return email, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// DerivedUserID reduces the opaque record id to a stable small integer for
// callers expecting a numeric user id. Display/compat shim only, not a
// security boundary.
func DerivedUserID(id string) int64 {
	var h int64
	for _, b := range []byte(id) {
		h = (h*31 + int64(b)) % 100_000_000
	}
	return h
}
