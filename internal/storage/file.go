package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists each slot as one JSON file under a data directory.
// Writes are whole-file replacements through a temp file and rename so a
// crash never leaves a half-written slot behind.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates a file-backed slot store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Read returns the raw content of the named slot.
func (s *FileStore) Read(_ context.Context, slot string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.slotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", slot, err)
	}
	return data, nil
}

// Write replaces the content of the named slot.
func (s *FileStore) Write(_ context.Context, slot string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.slotPath(slot)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", slot, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", slot, err)
	}
	return nil
}

// IsHealthy checks that the data directory is still writable.
func (s *FileStore) IsHealthy(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data path %s is not a directory", s.dir)
	}
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) slotPath(slot string) string {
	return filepath.Join(s.dir, slot+".json")
}
