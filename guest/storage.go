package guest

import (
	"os"
	"path/filepath"
	"sync"
)

// Storage is the synchronous key/value persistence behind the guest board
// document, mirroring the browser's local storage contract.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)
	// Set overwrites the stored value for the key.
	Set(key, value string) error
}

// FileStorage persists each key as a file in a directory.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (s *FileStorage) Get(key string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, key+".json"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (s *FileStorage) Set(key, value string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, key+".json"), []byte(value), 0o644)
}

// MemoryStorage is an in-memory Storage for tests.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (s *MemoryStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.values[key]
	return value, ok
}

func (s *MemoryStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
