package mocks

// MockCodeNotifier implements domain.CodeNotifier and records every code it
// sees, so tests can read back the cleartext OTP a flow issued.
type MockCodeNotifier struct {
	NotifyCodeFunc func(email, code string)

	Codes map[string]string
}

// NewMockCodeNotifier creates a MockCodeNotifier.
func NewMockCodeNotifier() *MockCodeNotifier {
	return &MockCodeNotifier{Codes: make(map[string]string)}
}

// NotifyCode records the latest code per email.
func (m *MockCodeNotifier) NotifyCode(email, code string) {
	if m.NotifyCodeFunc != nil {
		m.NotifyCodeFunc(email, code)
		return
	}
	m.Codes[email] = code
}

// LastCode returns the most recent code issued for email.
func (m *MockCodeNotifier) LastCode(email string) string {
	return m.Codes[email]
}
