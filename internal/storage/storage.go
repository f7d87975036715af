package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/validate"
)

// DefaultFile is the storage file name inside the user config directory.
const DefaultFile = "preferences.json"

// ErrCorrupt is returned when the storage file cannot be decoded.
var ErrCorrupt = errors.New("storage file is corrupt")

// Data represents the structure of the storage file.
type Data struct {
	Preferences map[string]string `json:"preferences"`
	UpdatedAt   time.Time         `json:"updated_at,omitempty"`
}

// Storage is a string key-value store persisted as a JSON file.
type Storage struct {
	Path string `validate:"required"`

	mu   sync.RWMutex
	data Data
}

// DefaultPath returns ~/.config/countdown/preferences.json (or the platform equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join("~", ".config", "countdown", DefaultFile)
	}
	return filepath.Join(dir, "countdown", DefaultFile)
}

// NewStorage opens the storage at path. A missing file is an empty store.
func NewStorage(path string) (*Storage, error) {
	if path == "" {
		path = DefaultPath()
	}
	expandedPath, err := expandTilde(path)
	if err != nil {
		return nil, err
	}

	s := &Storage{
		Path: expandedPath,
		data: Data{Preferences: make(map[string]string)},
	}
	if err := validate.Struct(s); err != nil {
		return nil, err
	}

	if err := s.Load(); err != nil {
		// If the file doesn't exist, we can ignore the error.
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	return s, nil
}

// Load re-reads the storage file, replacing the in-memory data.
func (s *Storage) Load() error {
	logrus.Debug("Loading storage file from: ", s.Path)
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return err
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, s.Path, err)
	}
	if data.Preferences == nil {
		data.Preferences = make(map[string]string)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Save writes the storage data to the file.
func (s *Storage) Save() error {
	s.mu.RLock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	logrus.Debug("Saving storage file to: ", s.Path)
	// Ensure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o600)
}

// Get returns the value stored under key.
func (s *Storage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data.Preferences[key]
	return v, ok
}

// Set stores value under key and persists the file.
func (s *Storage) Set(key, value string) error {
	s.mu.Lock()
	s.data.Preferences[key] = value
	s.data.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	return s.Save()
}

// Delete removes key and persists the file.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	if _, ok := s.data.Preferences[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.data.Preferences, key)
	s.data.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	return s.Save()
}

// UpdatedAt returns the time of the last write, zero if never written.
func (s *Storage) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.UpdatedAt
}

// expandTilde expands the tilde in a path to the user's home directory.
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, path[1:]), nil
}
