package token

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store owns the persisted bearer credential. It is the only component
// that touches the token file; everything else goes through Get/Set/
// Clear or AuthorizationHeader.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the given file path. An empty path
// falls back to the default location under the user's home directory.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the default token file location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".attendctl", "token")
	}
	return filepath.Join(home, ".attendctl", "token")
}

// Get returns the persisted token, or empty string if none is stored
func (s *Store) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Set persists the token, creating the parent directory if needed
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear removes the persisted token. A missing file is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// AuthorizationHeader returns the Authorization header value for the
// stored token, and whether a token is present
func (s *Store) AuthorizationHeader() (string, bool) {
	tok, err := s.Get()
	if err != nil || tok == "" {
		return "", false
	}
	return "Bearer " + tok, true
}
