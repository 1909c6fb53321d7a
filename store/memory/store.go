// Package memory provides an in-memory store for tests and throwaway
// ledgers. Nothing survives process exit.
package memory

import (
	"context"
	"sync"

	"github.com/brewbooks/ledger/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store holds the last saved snapshot.
type Store struct {
	mu   sync.RWMutex
	snap *store.Snapshot

	// FailSave, when set, is returned by Save without storing anything.
	// Tests use it to exercise the persistence-failure path.
	FailSave error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{}
}

// Load returns a copy of the last saved snapshot, or (nil, nil) when
// nothing has been saved.
func (s *Store) Load(_ context.Context) (*store.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snap.Clone(), nil
}

// Save replaces the held snapshot with a copy of the given one.
func (s *Store) Save(_ context.Context, snap *store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave != nil {
		return s.FailSave
	}
	s.snap = snap.Clone()
	return nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
