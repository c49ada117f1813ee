package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/infrastructure/printing"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// DashboardHandler serves the dashboard home counts and the CV export
type DashboardHandler struct {
	BaseHandler
	overview *appcontent.OverviewService
	cv       *appcontent.CVService
}

// NewDashboardHandler creates a new DashboardHandler. cv may be nil when
// PDF export is not wired.
func NewDashboardHandler(overview *appcontent.OverviewService, cv *appcontent.CVService) *DashboardHandler {
	return &DashboardHandler{overview: overview, cv: cv}
}

// Overview godoc
// @ID           getOverview
// @Summary      Dashboard counts
// @Description  Number of contact messages, blog posts, certificates, hire requests and projects
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[appcontent.Overview]
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/overview [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	counts, err := h.overview.Counts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, counts)
}

// ExportCV godoc
// @ID           exportCV
// @Summary      Export the portfolio as a PDF CV
// @Description  Renders the public page with headless Chrome, uploads the PDF and stores its URL in about.cvUrl
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[content.About]
// @Failure      401 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/about/cv [post]
func (h *DashboardHandler) ExportCV(c *gin.Context) {
	if h.cv == nil {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeRenderFailed, "PDF export is not configured")
		return
	}

	about, err := h.cv.Export(c.Request.Context())
	if err == nil {
		h.Success(c, about)
		return
	}

	var renderErr *printing.RenderError
	switch {
	case errors.Is(err, printing.ErrPrintingDisabled):
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeRenderFailed, "PDF export is disabled")
	case errors.As(err, &renderErr):
		logger.L(c.Request.Context()).Error("CV render failed", zap.String("code", renderErr.Code), zap.Error(err))
		h.Error(c, http.StatusBadGateway, dto.ErrCodeRenderFailed, renderErr.Message)
	default:
		h.HandleError(c, err)
	}
}
