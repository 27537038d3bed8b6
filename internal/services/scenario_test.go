package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Hen-Heang/h-market/domain"
	"github.com/Hen-Heang/h-market/internal/infrastructure/crypto"
	"github.com/Hen-Heang/h-market/internal/infrastructure/sessions"
	"github.com/Hen-Heang/h-market/internal/infrastructure/store"
	"github.com/Hen-Heang/h-market/internal/mocks"
)

// fixture wires the service against a real file store and real scrypt
// hashing; only the notifier is a test double, so flows can read back the
// cleartext code they triggered.
type fixture struct {
	svc      domain.CredentialService
	users    *store.FileStore
	notifier *mocks.MockCodeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users, err := store.NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	hasher, err := crypto.New()
	require.NoError(t, err)
	notifier := mocks.NewMockCodeNotifier()

	svc := NewCredentialService(users, sessions.NewMemoryStore(7*24*time.Hour), hasher, notifier, CredentialConfig{
		OTPLength:     4,
		OTPTTL:        10 * time.Minute,
		DefaultRoleID: RolePartner,
	})
	return &fixture{svc: svc, users: users, notifier: notifier}
}

// age rewrites the outstanding code's expiry, simulating the passage of time.
func (f *fixture) age(t *testing.T, email string, expiresAt time.Time) {
	t.Helper()
	rec, err := f.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	require.NotNil(t, rec.Verification)
	rec.Verification.ExpiresAt = expiresAt
	require.NoError(t, f.users.Upsert(context.Background(), rec))
}

func TestScenario_FullSignupFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "a@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)

	rec, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, rec.Verified())
	require.NotNil(t, rec.Verification)

	code := f.notifier.LastCode("a@x.com")
	require.Len(t, code, 4)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	assert.ErrorIs(t, f.svc.VerifyEmail(ctx, "a@x.com", wrong), domain.ErrCodeInvalid)

	require.NoError(t, f.svc.VerifyEmail(ctx, "a@x.com", code))

	result, err := f.svc.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestScenario_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "a@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)

	f.age(t, "a@x.com", time.Now().Add(-time.Minute))

	code := f.notifier.LastCode("a@x.com")
	assert.ErrorIs(t, f.svc.VerifyEmail(ctx, "a@x.com", code), domain.ErrCodeExpired,
		"an aged code fails even when the digits are correct")
}

func TestScenario_LoginBeforeVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "a@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)

	_, errRight := f.svc.Login(ctx, "a@x.com", "password1")
	_, errWrong := f.svc.Login(ctx, "a@x.com", "not-the-password")

	assert.ErrorIs(t, errRight, domain.ErrNotVerified)
	assert.ErrorIs(t, errWrong, domain.ErrNotVerified,
		"the response must not reveal whether the password was correct")
}

func TestScenario_PasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "a@x.com", "oldpassword", "oldpassword", RolePartner)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyEmail(ctx, "a@x.com", f.notifier.LastCode("a@x.com")))

	require.NoError(t, f.svc.GenerateCode(ctx, "a@x.com"))
	resetCode := f.notifier.LastCode("a@x.com")

	require.NoError(t, f.svc.ResetPassword(ctx, "a@x.com", resetCode, "newpass123"))

	_, err = f.svc.Login(ctx, "a@x.com", "oldpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	result, err := f.svc.Login(ctx, "a@x.com", "newpass123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestScenario_DuplicateVerifiedRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "b@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyEmail(ctx, "b@x.com", f.notifier.LastCode("b@x.com")))

	before, err := f.users.FindByEmail(ctx, "b@x.com")
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, "b@x.com", "different9", "different9", RolePartner)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	after, err := f.users.FindByEmail(ctx, "b@x.com")
	require.NoError(t, err)
	assert.Equal(t, before, after, "the conflicting register must not mutate the record")
}

func TestScenario_ReRegisterUnverifiedKeepsOneRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "a@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)
	firstCode := f.notifier.LastCode("a@x.com")

	_, err = f.svc.Register(ctx, "a@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)

	all, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "re-register must not create a second record")

	secondCode := f.notifier.LastCode("a@x.com")
	rec, err := f.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, rec.Verification)

	// The fresh code replaced the old one; with 4 digits the two draws can
	// collide, so assert against the stored hash instead of the digits.
	hasher, err := crypto.New()
	require.NoError(t, err)
	assert.True(t, hasher.Verify(secondCode, rec.Verification.OTPSalt, rec.Verification.OTPHash))
	if firstCode != secondCode {
		assert.False(t, hasher.Verify(firstCode, rec.Verification.OTPSalt, rec.Verification.OTPHash),
			"the replaced code must no longer verify")
	}
}

func TestScenario_LogoutInvalidatesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Register(ctx, "a@x.com", "password1", "password1", RolePartner)
	require.NoError(t, err)
	require.NoError(t, f.svc.VerifyEmail(ctx, "a@x.com", f.notifier.LastCode("a@x.com")))

	result, err := f.svc.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, result.Token))
}
