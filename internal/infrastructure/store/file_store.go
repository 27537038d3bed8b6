package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Hen-Heang/h-market/domain"
)

// document is the whole persisted collection.
type document struct {
	Users []domain.UserRecord `json:"users"`
}

// FileStore implements domain.UserStore over a single JSON document.
//
// Every operation is a whole-document read-modify-write. Writes go to a
// temporary file in the same directory followed by an atomic rename, so a
// reader always observes either the pre-write or the post-write state. A
// per-process mutex serializes the read-modify-write cycles; the file is the
// only shared resource and is never written through any other path.
type FileStore struct {
	path   string
	logger *zap.Logger

	mu sync.Mutex
}

var _ domain.UserStore = (*FileStore)(nil)

// NewFileStore creates the store backed by <dataDir>/auth-db.json,
// initializing the file with an empty collection when absent.
func NewFileStore(dataDir string, logger *zap.Logger) (*FileStore, error) {
	path := filepath.Join(dataDir, "auth-db.json")
	s := &FileStore{path: path, logger: logger}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}
	return s, nil
}

// NormalizeEmail is the canonical key form used throughout the store.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail implements domain.UserStore.
func (s *FileStore) FindByEmail(ctx context.Context, email string) (*domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	normalized := NormalizeEmail(email)
	for i := range doc.Users {
		if doc.Users[i].Email == normalized {
			u := doc.Users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Upsert implements domain.UserStore.
func (s *FileStore) Upsert(ctx context.Context, record *domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	replaced := false
	for i := range doc.Users {
		if doc.Users[i].ID == record.ID {
			doc.Users[i] = *record
			replaced = true
			break
		}
	}
	if !replaced {
		doc.Users = append(doc.Users, *record)
	}
	return s.write(doc)
}

// List implements domain.UserStore.
func (s *FileStore) List(ctx context.Context) ([]domain.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := make([]domain.UserRecord, len(doc.Users))
	copy(out, doc.Users)
	return out, nil
}

func (s *FileStore) ensureFile() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create data dir: %v", domain.ErrStorage, err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat %s: %v", domain.ErrStorage, s.path, err)
	}
	return s.write(&document{Users: []domain.UserRecord{}})
}

// read deserializes the whole document. A corrupt or truncated file is
// recovered as an empty collection rather than failing the caller; the
// recovery is logged because it discards whatever the file held.
func (s *FileStore) read() (*document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &document{Users: []domain.UserRecord{}}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, s.path, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("credential store corrupt, starting from empty collection",
			zap.String("path", s.path), zap.Error(err))
		return &document{Users: []domain.UserRecord{}}, nil
	}
	if doc.Users == nil {
		doc.Users = []domain.UserRecord{}
	}
	return &doc, nil
}

// write serializes the entire document to a temporary file in the target
// directory and renames it over the real file.
func (s *FileStore) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode document: %v", domain.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrStorage, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write temp file: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close temp file: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename temp file: %v", domain.ErrStorage, err)
	}
	return nil
}
