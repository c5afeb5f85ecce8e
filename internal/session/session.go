// ABOUTME: Session token storage for the dashboard client
// ABOUTME: Persists the single bearer token under the "token" key in the config directory

package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Store holds the bearer token issued by the backend at login
type Store interface {
	Token() string
	SetToken(token string) error
	Clear() error
	Authenticated() bool
}

// FileStore keeps the token in <dir>/session.json
type FileStore struct {
	dir string
	mu  sync.Mutex
}

type sessionData struct {
	Token string `json:"token"`
}

// NewFileStore creates a file-backed store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, "session.json")
}

// Token reads the stored token. Missing or unreadable data reads as empty.
func (s *FileStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		return ""
	}

	var sd sessionData
	if err := json.Unmarshal(data, &sd); err != nil {
		return ""
	}
	return sd.Token
}

// SetToken writes the token, replacing any previous one
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(sessionData{Token: token})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), data, 0600)
}

// Clear removes the session file
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Authenticated reports whether a token is present
func (s *FileStore) Authenticated() bool {
	return s.Token() != ""
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates a store seeded with token (may be empty)
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.SetToken("")
}

func (s *MemoryStore) Authenticated() bool {
	return s.Token() != ""
}
