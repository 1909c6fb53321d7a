// Package mongo persists the ledger in MongoDB. The whole snapshot is
// one document, so every Save is atomic by MongoDB's single-document
// guarantee.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/brewbooks/ledger/store"
)

const (
	defaultDatabase   = "brewbooks"
	defaultCollection = "ledger_snapshot"

	// snapshotKey is the fixed _id of the single snapshot document.
	snapshotKey = "snapshot"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store implements store.Store on a MongoDB collection holding exactly
// one document.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

// Open connects to MongoDB at uri and uses the default database and
// collection names.
func Open(ctx context.Context, uri string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo: ping %s: %w", uri, err)
	}
	return New(client, defaultDatabase, defaultCollection), nil
}

// New wraps an existing client.
func New(client *mongo.Client, database, collection string) *Store {
	return &Store{
		client: client,
		col:    client.Database(database).Collection(collection),
	}
}

// Load fetches the snapshot document. A missing document means nothing
// has been persisted yet and returns (nil, nil).
func (s *Store) Load(ctx context.Context) (*store.Snapshot, error) {
	var doc snapshotDoc
	err := s.col.FindOne(ctx, bson.M{"_id": snapshotKey}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: load snapshot: %w", err)
	}
	return doc.toSnapshot()
}

// Save upserts the single snapshot document.
func (s *Store) Save(ctx context.Context, snap *store.Snapshot) error {
	doc, err := toSnapshotDoc(snap)
	if err != nil {
		return err
	}
	_, err = s.col.ReplaceOne(ctx,
		bson.M{"_id": snapshotKey},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: save snapshot: %w", err)
	}
	return nil
}

// Ping checks server connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo: ping: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	if err := s.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("mongo: close: %w", err)
	}
	return nil
}
