package mocks

import "fmt"

// MockSecretHasher implements domain.SecretHasher for testing. The defaults
// are deterministic and cheap: Derive concatenates, NewSalt/NewID/GenerateOTP
// count up per instance.
type MockSecretHasher struct {
	DeriveFunc      func(secret, salt string) string
	VerifyFunc      func(secret, salt, expectedHex string) bool
	NewSaltFunc     func() string
	NewIDFunc       func() string
	GenerateOTPFunc func(length int) string

	saltSeq int
	idSeq   int
	otpSeq  int
}

// NewMockSecretHasher creates a MockSecretHasher with default behaviors.
func NewMockSecretHasher() *MockSecretHasher {
	return &MockSecretHasher{}
}

// Derive returns a deterministic pseudo-hash.
func (m *MockSecretHasher) Derive(secret, salt string) string {
	if m.DeriveFunc != nil {
		return m.DeriveFunc(secret, salt)
	}
	return "hash(" + secret + "|" + salt + ")"
}

// Verify recomputes the default Derive and compares.
func (m *MockSecretHasher) Verify(secret, salt, expectedHex string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(secret, salt, expectedHex)
	}
	return m.Derive(secret, salt) == expectedHex
}

// NewSalt returns salt-1, salt-2, ...
func (m *MockSecretHasher) NewSalt() string {
	if m.NewSaltFunc != nil {
		return m.NewSaltFunc()
	}
	m.saltSeq++
	return fmt.Sprintf("salt-%d", m.saltSeq)
}

// NewID returns id-1, id-2, ...
func (m *MockSecretHasher) NewID() string {
	if m.NewIDFunc != nil {
		return m.NewIDFunc()
	}
	m.idSeq++
	return fmt.Sprintf("id-%d", m.idSeq)
}

// GenerateOTP returns zero-padded sequential codes: 0001, 0002, ...
func (m *MockSecretHasher) GenerateOTP(length int) string {
	if m.GenerateOTPFunc != nil {
		return m.GenerateOTPFunc(length)
	}
	m.otpSeq++
	return fmt.Sprintf("%0*d", length, m.otpSeq)
}
