// Package store defines the snapshot document and the persistence
// interface the ledger engine writes through.
package store

import "context"

// Store persists the ledger as a whole snapshot. Save replaces the
// persisted state atomically; a failed Save must leave the previously
// persisted snapshot intact. Load returns (nil, nil) when nothing has
// been persisted yet.
type Store interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
	Ping(ctx context.Context) error
	Close() error
}
