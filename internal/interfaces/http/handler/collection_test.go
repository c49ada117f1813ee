package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/infrastructure/persistence"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectRoutes(store document.Store) *gin.Engine {
	h := NewCollectionHandler(appcontent.NewManager[content.Project](store, content.ProjectSchema))
	r := newTestEngine()
	g := r.Group("/admin/projects")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return r
}

func TestCollectionHandler_CreateAndList(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	r := projectRoutes(store)

	w := doJSON(r, http.MethodPost, "/admin/projects", map[string]any{
		"title":        "Site",
		"link":         "https://example.com",
		"technologies": []string{"Go", "React"},
		"description":  "Portfolio",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[content.Project](t, w)
	assert.NotEmpty(t, created.Data.ID)
	assert.Equal(t, content.Technologies{"Go", "React"}, created.Data.Technologies)

	w = doJSON(r, http.MethodGet, "/admin/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]content.Project](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Meta.Total)
	assert.Equal(t, "Site", list.Data[0].Title)
}

func TestCollectionHandler_CreateMissingFields(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	r := projectRoutes(store)

	w := doJSON(r, http.MethodPost, "/admin/projects", map[string]any{"title": "Only a title"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decode[any](t, w)
	assert.Equal(t, dto.ErrCodeValidation, env.Error.Code)
	assert.Equal(t, "Please fill in all required fields", env.Error.Message)

	fields := make([]string, 0, len(env.Error.Details))
	for _, d := range env.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"link", "technologies", "description"}, fields)

	n, err := store.Count(context.Background(), content.CollectionProjects)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCollectionHandler_UnknownField(t *testing.T) {
	r := projectRoutes(persistence.NewMemoryDocumentStore())

	w := doJSON(r, http.MethodPost, "/admin/projects", map[string]any{"colour": "red"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeUnknownField, decode[any](t, w).Error.Code)
}

func TestCollectionHandler_MalformedBody(t *testing.T) {
	r := projectRoutes(persistence.NewMemoryDocumentStore())

	w := doJSON(r, http.MethodPost, "/admin/projects", "not an object")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, decode[any](t, w).Error.Code)
}

func TestCollectionHandler_Update(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	doc, err := store.Create(context.Background(), content.CollectionProjects, document.Fields{
		"title": "Old", "link": "https://example.com", "technologies": []string{"Go"}, "description": "d",
	})
	require.NoError(t, err)
	r := projectRoutes(store)

	w := doJSON(r, http.MethodPut, "/admin/projects/"+doc.ID, map[string]any{"title": "New"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "New", decode[content.Project](t, w).Data.Title)

	stored, err := store.Get(context.Background(), content.CollectionProjects, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Fields["title"])

	w = doJSON(r, http.MethodPut, "/admin/projects/missing", map[string]any{"title": "New"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollectionHandler_DeleteNeedsConfirmation(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	doc, err := store.Create(context.Background(), content.CollectionProjects, document.Fields{"title": "p"})
	require.NoError(t, err)
	r := projectRoutes(store)

	w := doJSON(r, http.MethodDelete, "/admin/projects/"+doc.ID, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Equal(t, dto.ErrCodeConfirmationRequired, decode[any](t, w).Error.Code)

	w = doJSON(r, http.MethodDelete, "/admin/projects/"+doc.ID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, DeletedData{ID: doc.ID, Deleted: true}, decode[DeletedData](t, w).Data)

	_, err = store.Get(context.Background(), content.CollectionProjects, doc.ID)
	assert.Error(t, err)
}

func TestCollectionHandler_ToggleSeen(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	doc, err := store.Create(context.Background(), content.CollectionContactMessages, document.Fields{
		"name": "Ana", "email": "ana@example.com", "message": "hi", "seen": false,
	})
	require.NoError(t, err)

	h := NewCollectionHandler(appcontent.NewManager[content.ContactMessage](store, content.ContactMessageSchema))
	r := newTestEngine()
	r.PATCH("/admin/contact-messages/:id/seen", h.ToggleSeen)

	w := doJSON(r, http.MethodPatch, "/admin/contact-messages/"+doc.ID+"/seen", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, decode[content.ContactMessage](t, w).Data.Seen)

	w = doJSON(r, http.MethodPatch, "/admin/contact-messages/"+doc.ID+"/seen", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[content.ContactMessage](t, w).Data.Seen)
}

func TestCollectionHandler_SeesRecordsWrittenElsewhere(t *testing.T) {
	store := persistence.NewMemoryDocumentStore()
	r := projectRoutes(store)

	w := doJSON(r, http.MethodGet, "/admin/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[[]content.Project](t, w).Data)

	doc, err := store.Create(context.Background(), content.CollectionProjects, document.Fields{
		"title": "Other instance", "link": "https://x.dev", "technologies": "Go", "description": "d",
	})
	require.NoError(t, err)

	w = doJSON(r, http.MethodGet, "/admin/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]content.Project](t, w)
	require.Len(t, list.Data, 1)
	assert.Equal(t, doc.ID, list.Data[0].ID)

	w = doJSON(r, http.MethodPut, "/admin/projects/"+doc.ID, map[string]any{"title": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Renamed", decode[content.Project](t, w).Data.Title)
}
