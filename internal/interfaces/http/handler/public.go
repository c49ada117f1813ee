package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/gallery"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
)

// PublicHandler serves the unauthenticated site API. Reads never fail;
// an unreachable store yields each section's defaults.
type PublicHandler struct {
	BaseHandler
	public *appcontent.PublicService
	inbox  *appcontent.InboxService
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(public *appcontent.PublicService, inbox *appcontent.InboxService) *PublicHandler {
	return &PublicHandler{public: public, inbox: inbox}
}

// About godoc
// @ID           getPublicAbout
// @Summary      About section
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[content.About]
// @Router       /public/about [get]
func (h *PublicHandler) About(c *gin.Context) {
	h.Success(c, h.public.About(c.Request.Context()))
}

// Biography godoc
// @ID           getPublicBiography
// @Summary      Hero biography
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[content.Biography]
// @Router       /public/biography [get]
func (h *PublicHandler) Biography(c *gin.Context) {
	h.Success(c, h.public.Biography(c.Request.Context()))
}

// WorkExperiences godoc
// @ID           listPublicWorkExperiences
// @Summary      Experience timeline
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.WorkExperience]
// @Router       /public/work-experiences [get]
func (h *PublicHandler) WorkExperiences(c *gin.Context) {
	list(c, h.public.WorkExperiences(c.Request.Context()))
}

// Projects godoc
// @ID           listPublicProjects
// @Summary      Portfolio projects
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.Project]
// @Router       /public/projects [get]
func (h *PublicHandler) Projects(c *gin.Context) {
	list(c, h.public.Projects(c.Request.Context()))
}

// Certificates godoc
// @ID           listPublicCertificates
// @Summary      Certificates
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.Certificate]
// @Router       /public/certificates [get]
func (h *PublicHandler) Certificates(c *gin.Context) {
	list(c, h.public.Certificates(c.Request.Context()))
}

// BlogPosts godoc
// @ID           listPublicBlogPosts
// @Summary      Blog posts
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.BlogPost]
// @Router       /public/blog-posts [get]
func (h *PublicHandler) BlogPosts(c *gin.Context) {
	list(c, h.public.BlogPosts(c.Request.Context()))
}

// Skills godoc
// @ID           listPublicSkills
// @Summary      Skill badges
// @Description  Falls back to a fixed set when none are stored
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.Skill]
// @Router       /public/skills [get]
func (h *PublicHandler) Skills(c *gin.Context) {
	list(c, h.public.Skills(c.Request.Context()))
}

// Testimonials godoc
// @ID           listTestimonials
// @Summary      Client testimonials
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.Testimonial]
// @Router       /public/testimonials [get]
func (h *PublicHandler) Testimonials(c *gin.Context) {
	list(c, content.Testimonials())
}

// Education godoc
// @ID           listEducation
// @Summary      Education
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.EducationEntry]
// @Router       /public/education [get]
func (h *PublicHandler) Education(c *gin.Context) {
	list(c, content.Education())
}

// Achievements godoc
// @ID           listAchievements
// @Summary      Awards
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[[]content.Achievement]
// @Router       /public/achievements [get]
func (h *PublicHandler) Achievements(c *gin.Context) {
	list(c, content.Achievements())
}

// GalleryResponse is the carousel laid out around one focused image
type GalleryResponse struct {
	Focus     int                `json:"focus" example:"0"`
	Interval  int                `json:"intervalMs" example:"5000"`
	Images    []string           `json:"images"`
	Positions []gallery.Position `json:"positions"`
}

// Gallery godoc
// @ID           getAchievementGallery
// @Summary      Achievement photo carousel
// @Description  Layout of every image with the focus-th image in front. focus is taken modulo the image count.
// @Tags         public
// @Produce      json
// @Param        focus query int false "Focused image index"
// @Success      200 {object} APIResponse[GalleryResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /public/achievements/gallery [get]
func (h *PublicHandler) Gallery(c *gin.Context) {
	focus := 0
	if raw := c.Query("focus"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "focus must be an integer")
			return
		}
		focus = n
	}

	images := content.GalleryImages()
	carousel, err := gallery.New(len(images))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	carousel.Focus(focus)

	h.Success(c, GalleryResponse{
		Focus:     carousel.Current(),
		Interval:  int(gallery.AutoAdvanceInterval.Milliseconds()),
		Images:    images,
		Positions: carousel.Positions(),
	})
}

// ContactRequest is the public contact form
// @Description Contact form
type ContactRequest struct {
	Name    string `json:"name" example:"Ana Lima"`
	Email   string `json:"email" example:"ana@example.com"`
	Message string `json:"message" example:"I'd like to talk about a project."`
}

// Contact godoc
// @ID           submitContact
// @Summary      Leave a message
// @Description  Stores the message unseen, stamped with the server time
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        request body ContactRequest true "Message"
// @Success      201 {object} APIResponse[content.ContactMessage]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /public/contact [post]
func (h *PublicHandler) Contact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	msg, err := h.inbox.SubmitContact(c.Request.Context(), appcontent.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, msg)
}

// HireRequest is the public "hire me" form
// @Description Hire request form
type HireRequest struct {
	Name           string `json:"name" example:"Bo Chen"`
	Email          string `json:"email" example:"bo@example.com"`
	ProjectDetails string `json:"projectDetails" example:"A booking app for a small clinic"`
}

// Hire godoc
// @ID           submitHire
// @Summary      Send a project inquiry
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        request body HireRequest true "Inquiry"
// @Success      201 {object} APIResponse[content.HireRequest]
// @Failure      400 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Router       /public/hire [post]
func (h *PublicHandler) Hire(c *gin.Context) {
	var req HireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	hire, err := h.inbox.SubmitHire(c.Request.Context(), appcontent.HireInput{
		Name:           req.Name,
		Email:          req.Email,
		ProjectDetails: req.ProjectDetails,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, hire)
}

func list[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, dto.NewListResponse(items))
}
