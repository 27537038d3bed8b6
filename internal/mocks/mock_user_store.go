package mocks

import (
	"context"

	"github.com/Hen-Heang/h-market/domain"
)

// MockUserStore implements domain.UserStore for testing.
type MockUserStore struct {
	FindByEmailFunc func(ctx context.Context, email string) (*domain.UserRecord, error)
	UpsertFunc      func(ctx context.Context, record *domain.UserRecord) error
	ListFunc        func(ctx context.Context) ([]domain.UserRecord, error)
}

// NewMockUserStore creates a MockUserStore with default behaviors.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{}
}

// FindByEmail finds a record by normalized email.
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Upsert inserts or replaces a record.
func (m *MockUserStore) Upsert(ctx context.Context, record *domain.UserRecord) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, record)
	}
	// Default behavior: success
	return nil
}

// List returns all records.
func (m *MockUserStore) List(ctx context.Context) ([]domain.UserRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}
