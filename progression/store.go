package progression

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound reports a key with no saved value
	ErrNotFound = errors.New("progression: key not found")
	// ErrCorrupt reports saved data that could not be decoded
	ErrCorrupt = errors.New("progression: corrupt data")
)

// Store is the persistence port for profile data
type Store interface {
	Load(key string, v any) error
	Save(key string, v any) error
}

// JSONFileStore keeps one JSON document per key under a directory
type JSONFileStore struct {
	basePath string
}

// NewJSONFileStore creates a store rooted at basePath, created on first save
func NewJSONFileStore(basePath string) *JSONFileStore {
	return &JSONFileStore{basePath: basePath}
}

// FilePath returns the document path for key
func (s *JSONFileStore) FilePath(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

// Load decodes the document for key into v
func (s *JSONFileStore) Load(key string, v any) error {
	data, err := os.ReadFile(s.FilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// Save writes v atomically through a temp file and rename
func (s *JSONFileStore) Save(key string, v any) error {
	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	tmp := s.FilePath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.FilePath(key)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// MemoryStore keeps encoded documents in memory, for tests and guest sessions
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string][]byte
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

// Put stores raw bytes for key, bypassing encoding
func (m *MemoryStore) Put(key string, raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), raw...)
}

func (m *MemoryStore) Load(key string, v any) error {
	m.mu.Lock()
	raw, ok := m.docs[key]
	m.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (m *MemoryStore) Save(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	m.Put(key, data)
	return nil
}
