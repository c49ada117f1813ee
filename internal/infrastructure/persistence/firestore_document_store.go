package persistence

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreDocumentStore implements document.Store on Cloud Firestore.
// Collections map one to one onto Firestore collections.
type FirestoreDocumentStore struct {
	client *firestore.Client
}

// NewFirestoreClient connects to the project named in cfg. When
// FIRESTORE_EMULATOR_HOST is set the client talks to the emulator.
func NewFirestoreClient(ctx context.Context, cfg *config.DatabaseConfig) (*firestore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return client, nil
}

// NewFirestoreDocumentStore wraps a connected client
func NewFirestoreDocumentStore(client *firestore.Client) *FirestoreDocumentStore {
	return &FirestoreDocumentStore{client: client}
}

func (s *FirestoreDocumentStore) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		return nil, firestoreError("get", collection, err)
	}
	return snapshotDocument(collection, snap), nil
}

// List reads the whole collection and orders it by creation time, since
// auto-generated document IDs carry no ordering.
func (s *FirestoreDocumentStore) List(ctx context.Context, collection string) ([]*document.Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, firestoreError("list", collection, err)
	}

	docs := make([]*document.Document, len(snaps))
	for i, snap := range snaps {
		docs[i] = snapshotDocument(collection, snap)
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *FirestoreDocumentStore) Create(ctx context.Context, collection string, fields document.Fields) (*document.Document, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, map[string]any(fields.Clone()))
	if err != nil {
		return nil, firestoreError("create", collection, err)
	}
	return s.Get(ctx, collection, ref.ID)
}

// Update applies each field as a top level path. Firestore rejects the
// update with NotFound when the document does not exist.
func (s *FirestoreDocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	if len(fields) == 0 {
		return s.Get(ctx, collection, id)
	}

	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}
	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		return nil, firestoreError("update", collection, err)
	}
	return s.Get(ctx, collection, id)
}

func (s *FirestoreDocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	if _, err := s.client.Collection(collection).Doc(id).Set(ctx, map[string]any(fields.Clone())); err != nil {
		return nil, firestoreError("set", collection, err)
	}
	return s.Get(ctx, collection, id)
}

func (s *FirestoreDocumentStore) CreateIfAbsent(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, bool, error) {
	_, err := s.client.Collection(collection).Doc(id).Create(ctx, map[string]any(fields.Clone()))
	created := true
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return nil, false, firestoreError("create", collection, err)
		}
		created = false
	}

	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, false, err
	}
	return doc, created, nil
}

func (s *FirestoreDocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx, firestore.Exists); err != nil {
		return firestoreError("delete", collection, err)
	}
	return nil
}

func (s *FirestoreDocumentStore) Count(ctx context.Context, collection string) (int64, error) {
	result, err := s.client.Collection(collection).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, firestoreError("count", collection, err)
	}

	v, ok := result["all"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("count %s: unexpected aggregation result %T", collection, result["all"])
	}
	return v.GetIntegerValue(), nil
}

// Close releases the client connection
func (s *FirestoreDocumentStore) Close() error {
	return s.client.Close()
}

func snapshotDocument(collection string, snap *firestore.DocumentSnapshot) *document.Document {
	return &document.Document{
		ID:         snap.Ref.ID,
		Collection: collection,
		Fields:     document.Fields(snap.Data()),
		CreatedAt:  snap.CreateTime,
		UpdatedAt:  snap.UpdateTime,
	}
}

func firestoreError(op, collection string, err error) error {
	if status.Code(err) == codes.NotFound {
		return shared.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return transportError(op, collection, err)
}

var _ document.Store = (*FirestoreDocumentStore)(nil)
