package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
)

// CollectionHandler serves the admin endpoints of one managed collection:
// work experiences, projects, certificates, skills and the inbox.
type CollectionHandler[T any] struct {
	BaseHandler
	manager *appcontent.Manager[T]
}

// NewCollectionHandler creates a handler over manager
func NewCollectionHandler[T any](manager *appcontent.Manager[T]) *CollectionHandler[T] {
	return &CollectionHandler[T]{manager: manager}
}

// List godoc
// @ID           listCollection
// @Summary      List a collection
// @Description  Reloads the collection from the store and returns every record
// @Tags         admin
// @Produce      json
// @Param        collection path  string true  "work-experiences, projects, certificates, skills, blog-posts, contact-messages or hire-requests"
// @Success      200 {object} APIResponse[[]map[string]any]
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{collection} [get]
func (h *CollectionHandler[T]) List(c *gin.Context) {
	items, err := h.manager.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListResponse(items))
}

// Create godoc
// @ID           createRecord
// @Summary      Add a record
// @Description  Validates the fields against the collection schema and stores a new record
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        collection path string        true "work-experiences, projects, certificates or skills"
// @Param        request    body FieldsRequest true "Record fields"
// @Success      201 {object} APIResponse[map[string]any]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{collection} [post]
func (h *CollectionHandler[T]) Create(c *gin.Context) {
	values, err := bindFields(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	draft := h.manager.NewDraft()
	if err := draft.Apply(values); err != nil {
		h.HandleError(c, err)
		return
	}

	item, err := h.manager.Create(c.Request.Context(), draft)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// Update godoc
// @ID           updateRecord
// @Summary      Edit a record
// @Description  Applies the given fields over the stored record and saves it
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        collection path string        true "work-experiences, projects, certificates or skills"
// @Param        id         path string        true "Record ID"
// @Param        request    body FieldsRequest true "Changed fields"
// @Success      200 {object} APIResponse[map[string]any]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{collection}/{id} [put]
func (h *CollectionHandler[T]) Update(c *gin.Context) {
	id, ok := h.readID(c)
	if !ok {
		return
	}
	values, err := bindFields(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.manager.Edit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := draft.Apply(values); err != nil {
		h.HandleError(c, err)
		return
	}

	item, err := h.manager.Update(c.Request.Context(), draft)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete godoc
// @ID           deleteRecord
// @Summary      Delete a record
// @Description  Deletes the record. The request must confirm with confirm=true or the X-Confirm-Delete header.
// @Tags         admin
// @Produce      json
// @Param        collection path  string true  "Collection"
// @Param        id         path  string true  "Record ID"
// @Param        confirm    query bool   false "Confirm the deletion"
// @Success      200 {object} APIResponse[DeletedData]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      428 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{collection}/{id} [delete]
func (h *CollectionHandler[T]) Delete(c *gin.Context) {
	id, ok := h.readID(c)
	if !ok {
		return
	}
	if err := h.manager.Delete(c.Request.Context(), id, appcontent.ConfirmIf(confirmed(c))); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeletedData{ID: id, Deleted: true})
}

// ToggleSeen godoc
// @ID           toggleSeen
// @Summary      Toggle the seen flag
// @Description  Flips the read flag of a contact message or hire request
// @Tags         admin
// @Produce      json
// @Param        collection path string true "contact-messages or hire-requests"
// @Param        id         path string true "Record ID"
// @Success      200 {object} APIResponse[map[string]any]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{collection}/{id}/seen [patch]
func (h *CollectionHandler[T]) ToggleSeen(c *gin.Context) {
	id, ok := h.readID(c)
	if !ok {
		return
	}
	item, err := h.manager.ToggleSeen(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}
