package domain

import "context"

// UserStore defines access to the persisted user collection.
type UserStore interface {
	// FindByEmail matches on the normalized (trimmed, lower-cased) email.
	// Returns ErrUserNotFound when no record exists.
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	// Upsert inserts the record if its ID is new, otherwise replaces the
	// stored record wholesale. Callers supply the full record to persist.
	Upsert(ctx context.Context, record *UserRecord) error
	// List returns a snapshot of every record.
	List(ctx context.Context) ([]UserRecord, error)
}

// SessionStore defines bearer-session lifecycle operations.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	FindByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// SecretHasher defines the salted-hash and one-time-code primitives.
// None of these fail per call; an unusable random source is a startup error.
type SecretHasher interface {
	// Derive computes the salted key derivation of secret, hex encoded.
	Derive(secret, salt string) string
	// Verify recomputes Derive(secret, salt) and compares it with expectedHex
	// in constant time. A length mismatch yields false, not an error.
	Verify(secret, salt, expectedHex string) bool
	// NewSalt returns a fresh random salt as a printable token.
	NewSalt() string
	// NewID returns a globally unique opaque identifier.
	NewID() string
	// GenerateOTP returns a random decimal string of exactly length digits,
	// left-zero-padded, uniform over [0, 10^length).
	GenerateOTP(length int) string
}

// CodeNotifier surfaces an issued one-time code to an operator-visible sink.
// Implementations must never expose the code to the calling client.
type CodeNotifier interface {
	NotifyCode(email, code string)
}

// CredentialService defines the mock-mode authentication business logic.
type CredentialService interface {
	Register(ctx context.Context, email, password, confirmPassword string, roleID int) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ResendVerification(ctx context.Context, email string) error
	GenerateCode(ctx context.Context, email string) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
	Logout(ctx context.Context, token string) error
}
