package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the preferences file name inside the config directory.
const DefaultFileName = "preferences.json"

// TempSuffix is appended to the preferences path while a write is in flight.
const TempSuffix = ".tmp"

// ErrEmptyKey is returned when writing a preference without a key.
var ErrEmptyKey = errors.New("preference key cannot be empty")

// Persistence is the key-value backend preferences are stored in.
type Persistence interface {
	Read(key string) (string, bool)
	Write(key, value string) error
}

// MemoryStore keeps preferences in memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Read returns the stored value for key.
func (s *MemoryStore) Read(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Write stores value under key.
func (s *MemoryStore) Write(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// FileStore keeps preferences in a flat JSON object on disk.
// The file is read lazily on first access and rewritten atomically on every write.
type FileStore struct {
	mu       sync.RWMutex
	filePath string
	loaded   bool
	values   map[string]string
	loadErr  error
}

// NewFileStore creates a FileStore backed by filePath.
func NewFileStore(filePath string) (*FileStore, error) {
	if filePath == "" {
		return nil, errors.New("preferences file path cannot be empty")
	}
	return &FileStore{filePath: filePath, values: make(map[string]string)}, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.filePath
}

// LoadError reports why the backing file could not be parsed, if it could not.
// A corrupt file is otherwise treated as empty.
func (s *FileStore) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.loadErr
}

// Read returns the stored value for key.
func (s *FileStore) Read(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	v, ok := s.values[key]
	return v, ok
}

// Write stores value under key and flushes the file.
func (s *FileStore) Write(key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()

	s.values[key] = value
	return s.saveLocked()
}

func (s *FileStore) loadLocked() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.loadErr = fmt.Errorf("reading preferences file: %w", err)
		}
		return
	}

	values := make(map[string]string)
	if unmarshalErr := json.Unmarshal(data, &values); unmarshalErr != nil {
		s.loadErr = fmt.Errorf("parsing preferences file %s: %w", s.filePath, unmarshalErr)
		return
	}
	s.values = values
}

func (s *FileStore) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o750); err != nil {
		return fmt.Errorf("creating preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling preferences: %w", err)
	}

	tempPath := s.filePath + TempSuffix
	if writeErr := os.WriteFile(tempPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing preferences file: %w", writeErr)
	}
	if renameErr := os.Rename(tempPath, s.filePath); renameErr != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming preferences file: %w", renameErr)
	}

	s.loadErr = nil
	return nil
}
