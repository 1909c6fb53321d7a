// Package backup moves whole ledger snapshots in and out: local JSON
// backup files and a revision-checked cloud copy.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/brewbooks/ledger/store"
)

// ErrRemoteSync marks network, auth, and precondition failures while
// talking to the remote copy. Local state is always intact when this
// comes back. The root package re-exports it.
var ErrRemoteSync = errors.New("ledger: remote sync failed")

// Export writes the snapshot to path as indented JSON, the same layout
// the jsonfile store uses.
func Export(path string, snap *store.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("backup: encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("backup: write %s: %w", path, err)
	}
	return nil
}

// Import reads and validates a backup file. Nothing is returned unless
// the document passes validation, so a caller can hand the result
// straight to Restore.
func Import(path string) (*store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backup: read %s: %w", path, err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", store.ErrInvalidSnapshot, path, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	snap.Normalize()
	return &snap, nil
}
