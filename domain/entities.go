package domain

import "time"

// UserRecord is one registered email in the credential store.
// Hash and salt fields are hex strings; timestamps serialize as RFC 3339.
type UserRecord struct {
	ID              string        `json:"id"`
	Email           string        `json:"email"`
	PasswordHash    string        `json:"passwordHash"`
	PasswordSalt    string        `json:"passwordSalt"`
	EmailVerifiedAt *time.Time    `json:"emailVerifiedAt"`
	Verification    *Verification `json:"verification,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

// Verification holds the outstanding one-time code for a record.
// Present exactly while a code is outstanding; removed once consumed
// and overwritten when a new code is issued.
type Verification struct {
	OTPHash   string    `json:"otpHash"`
	OTPSalt   string    `json:"otpSalt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Verified reports whether the record is allowed to authenticate.
func (u *UserRecord) Verified() bool {
	return u.EmailVerifiedAt != nil
}

// RegisterResult represents a successful registration outcome.
type RegisterResult struct {
	Email string
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	Token  string
	UserID int64
	RoleID int
}

// Session represents a bearer-token session issued at login.
type Session struct {
	Token     string
	UserID    int64
	Email     string
	RoleID    int
	ExpiresAt time.Time
	CreatedAt time.Time
}
