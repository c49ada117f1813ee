package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormDocumentStore_Lifecycle(t *testing.T) {
	store := NewTestDB(t).Store()
	ctx := context.Background()

	created, err := store.Create(ctx, content.CollectionProjects, document.Fields{
		"title":        "Site",
		"technologies": []any{"Go", "React"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.Get(ctx, content.CollectionProjects, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Site", got.Fields["title"])
	assert.Equal(t, []any{"Go", "React"}, got.Fields["technologies"])

	updated, err := store.Update(ctx, content.CollectionProjects, created.ID, document.Fields{"title": "Portfolio"})
	require.NoError(t, err)
	assert.Equal(t, "Portfolio", updated.Fields["title"])
	assert.Equal(t, []any{"Go", "React"}, updated.Fields["technologies"], "update merges")

	n, err := store.Count(ctx, content.CollectionProjects)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, store.Delete(ctx, content.CollectionProjects, created.ID))
	_, err = store.Get(ctx, content.CollectionProjects, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, content.CollectionProjects, created.ID), shared.ErrNotFound)
}

func TestGormDocumentStore_UpdateMissing(t *testing.T) {
	store := NewTestDB(t).Store()

	_, err := store.Update(context.Background(), content.CollectionSkills, "missing", document.Fields{"name": "Go"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormDocumentStore_CollectionsAreIsolated(t *testing.T) {
	store := NewTestDB(t).Store()
	ctx := context.Background()

	for _, c := range []string{content.CollectionContactMessages, content.CollectionContactMessages, content.CollectionHireRequests} {
		_, err := store.Create(ctx, c, document.Fields{"name": "x"})
		require.NoError(t, err)
	}

	contacts, err := store.List(ctx, content.CollectionContactMessages)
	require.NoError(t, err)
	assert.Len(t, contacts, 2)

	n, err := store.Count(ctx, content.CollectionHireRequests)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestGormDocumentStore_SetOverwrites(t *testing.T) {
	store := NewTestDB(t).Store()
	ctx := context.Background()

	_, err := store.Set(ctx, content.CollectionAbout, content.AboutKey, document.Fields{"aboutTitle": "A", "subTitle": "B"})
	require.NoError(t, err)
	_, err = store.Set(ctx, content.CollectionAbout, content.AboutKey, document.Fields{"aboutTitle": "C"})
	require.NoError(t, err)

	got, err := store.Get(ctx, content.CollectionAbout, content.AboutKey)
	require.NoError(t, err)
	assert.Equal(t, document.Fields{"aboutTitle": "C"}, got.Fields)
}

func TestGormDocumentStore_CreateIfAbsentRace(t *testing.T) {
	store := NewTestDB(t).Store()
	ctx := context.Background()

	const writers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, ok, err := store.CreateIfAbsent(ctx, content.CollectionBiographies, content.BiographyKey,
				document.Fields{"heroTitle": "writer", "writer": float64(i)})
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	n, err := store.Count(ctx, content.CollectionBiographies)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
