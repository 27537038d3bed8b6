package domain

import "errors"

// Validation and registration errors
var (
	ErrValidation = errors.New("validation failed")
	ErrEmailTaken = errors.New("email already registered")
)

// Authentication errors
var (
	ErrUserNotFound       = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("email not verified")
)

// One-time code errors
var (
	ErrCodeInvalid  = errors.New("incorrect code")
	ErrCodeExpired  = errors.New("code expired")
	ErrNoActiveCode = errors.New("no active verification code")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Infrastructure errors
var (
	// ErrStorage wraps read/write failures of the backing store. The one
	// exception is a corrupt document, which the store recovers from by
	// substituting an empty collection.
	ErrStorage = errors.New("credential store unavailable")

	// ErrUpstream wraps failures talking to the remote auth API in proxy mode.
	ErrUpstream = errors.New("upstream auth API error")
)
