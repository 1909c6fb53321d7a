// Package jsonfile persists the ledger as a single JSON document on
// disk. This is the canonical layout: one root object holding the four
// named collections.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/brewbooks/ledger/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store reads and writes one snapshot file. Writes go through a temp
// file plus rename, so a crash mid-write never leaves a truncated
// document behind.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a store persisting to the given file path. The file does
// not need to exist yet; its directory is created on first save.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file location.
func (s *Store) Path() string { return s.path }

// Load reads the snapshot file. A missing file means nothing has been
// persisted yet and returns (nil, nil).
func (s *Store) Load(_ context.Context) (*store.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", s.path, err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrInvalidSnapshot, s.path, err)
	}
	return &snap, nil
}

// Save writes the snapshot atomically. The document is indented so the
// file stays hand-inspectable.
func (s *Store) Save(_ context.Context, snap *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("jsonfile: rename into %s: %w", s.path, err)
	}
	return nil
}

// Ping checks that the target directory is reachable.
func (s *Store) Ping(_ context.Context) error {
	_, err := os.Stat(filepath.Dir(s.path))
	if err != nil {
		return fmt.Errorf("jsonfile: ping: %w", err)
	}
	return nil
}

// Close is a no-op; every Save already leaves a complete file.
func (s *Store) Close() error { return nil }
