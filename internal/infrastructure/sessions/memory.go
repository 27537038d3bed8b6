package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/Hen-Heang/h-market/domain"
)

// MemoryStore implements domain.SessionStore with an in-process map.
// Sessions are keyed by bearer token and expire lazily on lookup.
type MemoryStore struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]domain.Session
}

var _ domain.SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates the store. ttl applies when a session carries no
// explicit expiry of its own.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		sessions: make(map[string]domain.Session),
	}
}

// Create implements domain.SessionStore.
func (m *MemoryStore) Create(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := *session
	if s.ExpiresAt.IsZero() {
		s.ExpiresAt = time.Now().Add(m.ttl)
	}
	m.sessions[s.Token] = s
	return nil
}

// FindByToken implements domain.SessionStore.
func (m *MemoryStore) FindByToken(ctx context.Context, token string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.ExpiresAt.Before(time.Now()) {
		delete(m.sessions, token)
		return nil, domain.ErrSessionExpired
	}
	out := s
	return &out, nil
}

// Delete implements domain.SessionStore.
func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}
