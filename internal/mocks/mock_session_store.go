package mocks

import (
	"context"

	"github.com/Hen-Heang/h-market/domain"
)

// MockSessionStore implements domain.SessionStore for testing.
type MockSessionStore struct {
	CreateFunc      func(ctx context.Context, session *domain.Session) error
	FindByTokenFunc func(ctx context.Context, token string) (*domain.Session, error)
	DeleteFunc      func(ctx context.Context, token string) error
}

// NewMockSessionStore creates a MockSessionStore with default behaviors.
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Create registers a session.
func (m *MockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	// Default behavior: success
	return nil
}

// FindByToken resolves a session by bearer token.
func (m *MockSessionStore) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrSessionNotFound
}

// Delete removes a session.
func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, token)
	}
	return nil
}
