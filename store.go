package board

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultDocumentKey addresses "the" document in a Store. The engine is
// single-document; multi-document addressing is out of scope.
const DefaultDocumentKey = "document"

// Store is the durable key/value blob boundary. The controller calls
// Load once at construction and Save synchronously after every mutating
// intent (write-through, never batched), so a crash immediately after
// an intent returns loses nothing.
//
// Implementations must be safe for use from the controller's background
// goroutines as well as its intent path.
type Store interface {
	// Load returns the stored bytes for key, or ok=false when the key
	// has never been saved.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Save durably replaces the bytes stored under key.
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Load implements Store.
func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

// Save implements Store.
func (m *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[key] = stored
	return nil
}

// FileStore persists each key as a file inside a directory. Writes go
// through a temp file and rename so a crash mid-write leaves the
// previous version intact.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("board: create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Load implements Store.
func (f *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("board: load %s: %w", key, err)
	}
	return data, true, nil
}

// Save implements Store.
func (f *FileStore) Save(_ context.Context, key string, data []byte) error {
	path := f.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("board: save %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("board: save %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
