// ABOUTME: Persisted session token for the authenticated user
// ABOUTME: Stores the login token as JSON in the user's config directory

package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrNoSession is returned by operations that need a logged-in user
var ErrNoSession = errors.New("not logged in")

// fileName is the session file inside the config directory
const fileName = "session.json"

// Store holds the current session token and mirrors it to disk.
// With an empty config directory the store is memory-only.
type Store struct {
	mu        sync.Mutex
	configDir string
	token     string
	loaded    bool
}

type sessionData struct {
	Token string `json:"token"`
}

// New creates a session store rooted at configDir
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

// path returns the path to the session JSON
func (s *Store) path() string {
	return filepath.Join(s.configDir, fileName)
}

// Load reads the token from disk, replacing the in-memory value.
// A missing or unreadable file yields an empty token.
func (s *Store) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() (string, error) {
	s.loaded = true
	if s.configDir == "" {
		return s.token, nil
	}

	data, err := os.ReadFile(s.path())
	if os.IsNotExist(err) {
		s.token = ""
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var stored sessionData
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupt file, treat as logged out
		s.token = ""
		return "", nil
	}

	s.token = stored.Token
	return s.token, nil
}

// Token returns the current token, loading it on first use
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loadLocked()
	}
	return s.token
}

// Authenticated reports whether a token is present
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Save stores the token in memory and writes it to disk (0600).
// The in-memory token is kept even if the write fails.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.loaded = true
	if s.configDir == "" {
		return nil
	}

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sessionData{Token: token}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path(), data, 0600)
}

// Clear forgets the token and removes the session file
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.loaded = true
	if s.configDir == "" {
		return nil
	}

	err := os.Remove(s.path())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
