// Package session persists the logged-in username.
//
// A Store is created once at startup and handed to the API client and to
// both views; nothing reads the session from a global.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store holds the current username, optionally backed by a JSON file.
type Store struct {
	mu       sync.Mutex
	path     string
	loaded   bool
	username string
}

type fileFormat struct {
	Username string `json:"username"`
}

// NewStore returns a Store persisted at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewMemoryStore returns a Store that is never written to disk.
func NewMemoryStore(username string) *Store {
	return &Store{loaded: true, username: username}
}

// Username returns the session username and whether a session exists.
func (s *Store) Username() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(); err != nil {
		return "", false
	}
	return s.username, s.username != ""
}

// Save records username as the current session.
func (s *Store) Save(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
			return fmt.Errorf("failed to create session directory: %w", err)
		}
		data, err := json.Marshal(fileFormat{Username: username})
		if err != nil {
			return err
		}
		tmp := s.path + ".tmp"
		if err := os.WriteFile(tmp, data, 0600); err != nil {
			return fmt.Errorf("failed to write session: %w", err)
		}
		if err := os.Rename(tmp, s.path); err != nil {
			return fmt.Errorf("failed to write session: %w", err)
		}
	}
	s.username = username
	s.loaded = true
	return nil
}

// Clear destroys the session. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove session: %w", err)
		}
	}
	s.username = ""
	s.loaded = true
	return nil
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return err
	}
	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		// A corrupt file is treated as no session.
		s.loaded = true
		return nil
	}
	s.username = strings.TrimSpace(f.Username)
	s.loaded = true
	return nil
}
