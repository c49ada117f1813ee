package content

import (
	"context"
	"testing"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSingletonService_Read_InitializesOnce(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	svc := NewAboutService(store)
	ctx := context.Background()

	first, err := svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultAbout().AboutTitle, first.AboutTitle)
	assert.Equal(t, content.AboutKey, first.ID)

	stored, err := store.Get(ctx, content.CollectionAbout, content.AboutKey)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultAbout().AboutTitle, stored.Fields["aboutTitle"])

	// edit, then read again: no re-initialization
	_, err = store.Update(ctx, content.CollectionAbout, content.AboutKey, document.Fields{"aboutTitle": "Edited"})
	require.NoError(t, err)

	second, err := svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Edited", second.AboutTitle)
}

func TestSingletonService_Read_AdminSurfacesErrors(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything, content.CollectionAbout, content.AboutKey).Return(nil, errUnavailable)

	svc := NewAboutService(store)
	_, err := svc.Read(context.Background())
	assert.ErrorIs(t, err, errUnavailable)
	store.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSingletonService_ReadPublic(t *testing.T) {
	t.Run("falls back without writing", func(t *testing.T) {
		store := new(MockStore)
		store.On("Get", mock.Anything, content.CollectionBiographies, content.BiographyKey).Return(nil, errUnavailable)

		svc := NewBiographyService(store)
		bio := svc.ReadPublic(context.Background())
		assert.Equal(t, content.DefaultBiography().Hero, bio.Hero)
		store.AssertNotCalled(t, "CreateIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("initializes an absent document", func(t *testing.T) {
		store := persistence.NewMemoryDocumentStore()
		svc := NewBiographyService(store)

		bio := svc.ReadPublic(context.Background())
		assert.Equal(t, content.DefaultBiography().HeroTitle, bio.HeroTitle)

		n, err := store.Count(context.Background(), content.CollectionBiographies)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestSingletonService_Save(t *testing.T) {
	t.Run("about overwrites the document", func(t *testing.T) {
		store := persistence.NewMemoryDocumentStore()
		svc := NewAboutService(store)
		ctx := context.Background()

		_, err := store.Set(ctx, content.CollectionAbout, content.AboutKey, document.Fields{"legacy": "value"})
		require.NoError(t, err)

		d, err := svc.Edit(ctx)
		require.NoError(t, err)
		for name, v := range map[string]string{
			"aboutTitle": "Hi", "subTitle": "s", "aboutDescription": "d", "passion": "p",
			"projectsDone": "1", "happyClients": "2", "inProgress": "3", "workingHours": "4",
		} {
			require.NoError(t, d.Set(name, v))
		}

		saved, err := svc.Save(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, "Hi", saved.AboutTitle)

		stored, err := store.Get(ctx, content.CollectionAbout, content.AboutKey)
		require.NoError(t, err)
		assert.NotContains(t, stored.Fields, "legacy")
	})

	t.Run("biography merges into the document", func(t *testing.T) {
		store := persistence.NewMemoryDocumentStore()
		svc := NewBiographyService(store)
		ctx := context.Background()

		_, err := store.Set(ctx, content.CollectionBiographies, content.BiographyKey, document.Fields{"legacy": "value"})
		require.NoError(t, err)

		d := content.EditDraft(content.BiographySchema, content.BiographyKey, document.Fields{
			"heroTitle": "Hello", "hero": "I build things", "bio": "Long bio", "passion": "Go",
		})
		saved, err := svc.Save(ctx, d)
		require.NoError(t, err)
		assert.Equal(t, "Hello", saved.HeroTitle)

		stored, err := store.Get(ctx, content.CollectionBiographies, content.BiographyKey)
		require.NoError(t, err)
		assert.Equal(t, "value", stored.Fields["legacy"])
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		store := new(MockStore)
		svc := NewAboutService(store)

		d := content.EditDraft(content.AboutSchema, content.AboutKey, document.Fields{"aboutTitle": "Only"})
		_, err := svc.Save(context.Background(), d)
		assert.ErrorIs(t, err, shared.ErrValidationFailed)
		store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSingletonService_Delete(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	svc := NewAboutService(store)
	ctx := context.Background()

	_, err := svc.Merge(ctx, document.Fields{"aboutTitle": "Custom"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, Declined), shared.ErrConfirmationRequired)
	require.NoError(t, svc.Delete(ctx, Confirmed))

	again, err := svc.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, content.DefaultAbout().AboutTitle, again.AboutTitle, "defaults are restored after deletion")
}

func TestSingletonService_Merge_InitializesFirst(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	svc := NewAboutService(store)

	about, err := svc.Merge(context.Background(), document.Fields{"cvUrl": "https://cdn.example.com/cv.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cv.pdf", about.CVURL)
	assert.Equal(t, content.DefaultAbout().AboutTitle, about.AboutTitle)
}
