// Package credentials persists the bearer token issued at login. It stands in
// for the device secure-storage service: one token, one fixed key.
package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenKey is the fixed key the token is persisted under.
const TokenKey = "auth_token"

// ErrNoToken is returned when no credential is stored. Callers must abort
// before issuing any network request.
var ErrNoToken = errors.New("no stored credential")

// Source yields the stored bearer token.
type Source interface {
	Token(ctx context.Context) (string, error)
}

// Store extends Source with persistence operations.
type Store interface {
	Source
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// fileStore keeps the token in a mode-0600 file under a directory the caller
// controls (the app's private data dir).
type fileStore struct {
	path string
}

// NewFileStore creates a file-backed token store rooted at dir.
func NewFileStore(dir string) Store {
	return &fileStore{path: filepath.Join(dir, TokenKey)}
}

func (f *fileStore) Token(ctx context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (f *fileStore) Save(ctx context.Context, token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *fileStore) Clear(ctx context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// memStore holds the token in memory. Used in tests and by the demo client.
type memStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemStore creates an in-memory token store, optionally pre-seeded.
func NewMemStore(token string) Store {
	return &memStore{token: token}
}

func (m *memStore) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *memStore) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
