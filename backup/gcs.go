package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/brewbooks/ledger/store"
)

// RemoteStore keeps one snapshot object in a GCS bucket. The object's
// generation number is the revision marker: Push only succeeds when the
// remote still carries the generation the caller last saw, so two
// devices cannot silently overwrite each other.
type RemoteStore struct {
	client *storage.Client
	bucket string
	object string
}

// NewRemoteStore connects to GCS. Credentials come from the environment
// unless overridden through opts.
func NewRemoteStore(ctx context.Context, bucket, object string, opts ...option.ClientOption) (*RemoteStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %v", ErrRemoteSync, err)
	}
	return &RemoteStore{client: client, bucket: bucket, object: object}, nil
}

// Close releases the client.
func (r *RemoteStore) Close() error {
	return r.client.Close()
}

func (r *RemoteStore) handle() *storage.ObjectHandle {
	return r.client.Bucket(r.bucket).Object(r.object)
}

// Revision returns the current generation of the remote object, or 0
// when no snapshot has been pushed yet.
func (r *RemoteStore) Revision(ctx context.Context) (int64, error) {
	attrs, err := r.handle().Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: stat %s/%s: %v", ErrRemoteSync, r.bucket, r.object, err)
	}
	return attrs.Generation, nil
}

// Pull downloads and validates the remote snapshot, returning it with
// the generation it was read at. That generation is what a later Push
// must present.
func (r *RemoteStore) Pull(ctx context.Context) (*store.Snapshot, int64, error) {
	reader, err := r.handle().NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, 0, fmt.Errorf("%w: no remote snapshot at %s/%s", ErrRemoteSync, r.bucket, r.object)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open %s/%s: %v", ErrRemoteSync, r.bucket, r.object, err)
	}
	defer reader.Close()

	generation := reader.Attrs.Generation

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: download %s/%s: %v", ErrRemoteSync, r.bucket, r.object, err)
	}

	var snap store.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, 0, fmt.Errorf("%w: remote document: %v", store.ErrInvalidSnapshot, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, 0, err
	}
	snap.Normalize()
	return &snap, generation, nil
}

// Push uploads the snapshot, conditional on the remote still being at
// the given generation (0 means the object must not exist yet). A
// concurrent remote change makes the precondition fail and nothing is
// written.
func (r *RemoteStore) Push(ctx context.Context, snap *store.Snapshot, generation int64) (int64, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("backup: encode snapshot: %w", err)
	}

	var cond storage.Conditions
	if generation == 0 {
		cond = storage.Conditions{DoesNotExist: true}
	} else {
		cond = storage.Conditions{GenerationMatch: generation}
	}

	writer := r.handle().If(cond).NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return 0, fmt.Errorf("%w: upload %s/%s: %v", ErrRemoteSync, r.bucket, r.object, err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("%w: upload %s/%s: %v", ErrRemoteSync, r.bucket, r.object, err)
	}
	return writer.Attrs().Generation, nil
}
