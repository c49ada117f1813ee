package persistence

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a running emulator, e.g.
// gcloud emulators firestore start --host-port=localhost:8681
func newEmulatorStore(t *testing.T) *FirestoreDocumentStore {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := NewFirestoreClient(ctx, &config.DatabaseConfig{ProjectID: "portfolio-test"})
	require.NoError(t, err)
	store := NewFirestoreDocumentStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestFirestoreDocumentStore_RoundTrip(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	collection := fmt.Sprintf("projects_%d", time.Now().UnixNano())

	doc, err := store.Create(ctx, collection, document.Fields{"title": "One", "technologies": []string{"Go"}})
	require.NoError(t, err)
	assert.NotEmpty(t, doc.ID)

	updated, err := store.Update(ctx, collection, doc.ID, document.Fields{"link": "https://x.dev"})
	require.NoError(t, err)
	assert.Equal(t, "One", updated.Fields["title"])
	assert.Equal(t, "https://x.dev", updated.Fields["link"])

	n, err := store.Count(ctx, collection)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, store.Delete(ctx, collection, doc.ID))
	assert.ErrorIs(t, store.Delete(ctx, collection, doc.ID), shared.ErrNotFound)

	_, err = store.Update(ctx, collection, "missing", document.Fields{"title": "x"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestFirestoreDocumentStore_CreateIfAbsent(t *testing.T) {
	store := newEmulatorStore(t)
	ctx := context.Background()
	collection := fmt.Sprintf("about_%d", time.Now().UnixNano())

	_, created, err := store.CreateIfAbsent(ctx, collection, "info", document.Fields{"aboutTitle": "Default"})
	require.NoError(t, err)
	assert.True(t, created)

	_, err = store.Set(ctx, collection, "info", document.Fields{"aboutTitle": "Edited"})
	require.NoError(t, err)

	doc, created, err := store.CreateIfAbsent(ctx, collection, "info", document.Fields{"aboutTitle": "Default"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "Edited", doc.Fields["aboutTitle"])
}
