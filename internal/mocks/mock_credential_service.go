package mocks

import (
	"context"

	"github.com/Hen-Heang/h-market/domain"
)

// MockCredentialService implements domain.CredentialService for handler tests.
type MockCredentialService struct {
	RegisterFunc           func(ctx context.Context, email, password, confirmPassword string, roleID int) (*domain.RegisterResult, error)
	LoginFunc              func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	ResendVerificationFunc func(ctx context.Context, email string) error
	GenerateCodeFunc       func(ctx context.Context, email string) error
	VerifyEmailFunc        func(ctx context.Context, email, code string) error
	ResetPasswordFunc      func(ctx context.Context, email, code, newPassword string) error
	LogoutFunc             func(ctx context.Context, token string) error
}

// NewMockCredentialService creates a MockCredentialService.
func NewMockCredentialService() *MockCredentialService {
	return &MockCredentialService{}
}

func (m *MockCredentialService) Register(ctx context.Context, email, password, confirmPassword string, roleID int) (*domain.RegisterResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password, confirmPassword, roleID)
	}
	return &domain.RegisterResult{Email: email}, nil
}

func (m *MockCredentialService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockCredentialService) ResendVerification(ctx context.Context, email string) error {
	if m.ResendVerificationFunc != nil {
		return m.ResendVerificationFunc(ctx, email)
	}
	return nil
}

func (m *MockCredentialService) GenerateCode(ctx context.Context, email string) error {
	if m.GenerateCodeFunc != nil {
		return m.GenerateCodeFunc(ctx, email)
	}
	return nil
}

func (m *MockCredentialService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil
}

func (m *MockCredentialService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, code, newPassword)
	}
	return nil
}

func (m *MockCredentialService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}
