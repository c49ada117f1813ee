package handler

import (
	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
)

// SingletonHandler serves the about and biography documents
type SingletonHandler[T any] struct {
	BaseHandler
	svc *appcontent.SingletonService[T]
}

// NewSingletonHandler creates a handler over svc
func NewSingletonHandler[T any](svc *appcontent.SingletonService[T]) *SingletonHandler[T] {
	return &SingletonHandler[T]{svc: svc}
}

// Get godoc
// @ID           getSingleton
// @Summary      Read the about or biography document
// @Description  Returns the stored document, initializing it from defaults the first time
// @Tags         admin
// @Produce      json
// @Param        document path string true "about or biography"
// @Success      200 {object} APIResponse[map[string]any]
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{document} [get]
func (h *SingletonHandler[T]) Get(c *gin.Context) {
	v, err := h.svc.Read(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Put godoc
// @ID           saveSingleton
// @Summary      Save the about or biography document
// @Description  Applies the given fields over the stored document. About is overwritten, biography is merged.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        document path string        true "about or biography"
// @Param        request  body FieldsRequest true "Fields"
// @Success      200 {object} APIResponse[map[string]any]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{document} [put]
func (h *SingletonHandler[T]) Put(c *gin.Context) {
	values, err := bindFields(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	draft, err := h.svc.Edit(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if err := draft.Apply(values); err != nil {
		h.HandleError(c, err)
		return
	}

	v, err := h.svc.Save(c.Request.Context(), draft)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, v)
}

// Delete godoc
// @ID           deleteSingleton
// @Summary      Delete the about or biography document
// @Description  The next read recreates it from defaults. Requires confirm=true.
// @Tags         admin
// @Produce      json
// @Param        document path  string true  "about or biography"
// @Param        confirm  query bool   false "Confirm the deletion"
// @Success      200 {object} APIResponse[DeletedData]
// @Failure      401 {object} ErrorResponse
// @Failure      428 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/{document} [delete]
func (h *SingletonHandler[T]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), appcontent.ConfirmIf(confirmed(c))); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DeletedData{ID: h.svc.Collection(), Deleted: true})
}
