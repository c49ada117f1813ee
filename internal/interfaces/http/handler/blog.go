package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	appcontent "github.com/portfolio/backend/internal/application/content"
	"github.com/portfolio/backend/internal/domain/content"
)

// blogImageField is the multipart file field of a blog cover
const blogImageField = "image"

// maxMultipartMemory is kept in memory before parts spill to disk
const maxMultipartMemory = 8 << 20

// BlogHandler adds cover image uploads to the blog post endpoints
type BlogHandler struct {
	*CollectionHandler[content.BlogPost]
	blog *appcontent.BlogService
}

// NewBlogHandler creates a new BlogHandler
func NewBlogHandler(blog *appcontent.BlogService) *BlogHandler {
	return &BlogHandler{
		CollectionHandler: NewCollectionHandler(blog.Posts()),
		blog:              blog,
	}
}

// Create godoc
// @ID           createBlogPost
// @Summary      Add a blog post
// @Description  Accepts multipart/form-data with an image file, or JSON with an image URL. The image is uploaded before the post is stored.
// @Tags         admin
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        title       formData string true  "Title"
// @Param        date        formData string true  "Date"
// @Param        description formData string true  "Description"
// @Param        link        formData string true  "Article link"
// @Param        image       formData file   false "Cover image"
// @Success      201 {object} APIResponse[content.BlogPost]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/blog-posts [post]
func (h *BlogHandler) Create(c *gin.Context) {
	draft := h.blog.Posts().NewDraft()
	post, ok := h.save(c, draft)
	if ok {
		h.Created(c, post)
	}
}

// Update godoc
// @ID           updateBlogPost
// @Summary      Edit a blog post
// @Description  Same body as create. Without a new image the stored image URL is kept; the previous image is not deleted.
// @Tags         admin
// @Accept       multipart/form-data
// @Accept       json
// @Produce      json
// @Param        id    path     string true  "Post ID"
// @Param        image formData file   false "New cover image"
// @Success      200 {object} APIResponse[content.BlogPost]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/blog-posts/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := h.readID(c)
	if !ok {
		return
	}
	draft, err := h.blog.Posts().Edit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	post, ok := h.save(c, draft)
	if ok {
		h.Success(c, post)
	}
}

func (h *BlogHandler) save(c *gin.Context, draft *content.Draft) (content.BlogPost, bool) {
	var zero content.BlogPost

	values, file, err := h.readForm(c)
	if err != nil {
		h.BindError(c, err)
		return zero, false
	}
	if err := draft.Apply(values); err != nil {
		h.HandleError(c, err)
		return zero, false
	}

	var upload *appcontent.ImageUpload
	if file != nil {
		body, err := file.Open()
		if err != nil {
			h.BadRequest(c, "Could not read the uploaded image")
			return zero, false
		}
		defer body.Close()
		upload = &appcontent.ImageUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Size:        file.Size,
			Body:        body,
		}
	}

	post, err := h.blog.Save(c.Request.Context(), draft, upload)
	if err != nil {
		h.HandleError(c, err)
		return zero, false
	}
	return post, true
}

// readForm returns the text fields and the optional image of a multipart
// form, or the fields of a JSON body.
func (h *BlogHandler) readForm(c *gin.Context) (map[string]string, *multipart.FileHeader, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		values, err := bindFields(c)
		return values, nil, err
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		return nil, nil, err
	}
	form := c.Request.MultipartForm
	values := make(map[string]string, len(form.Value))
	for name, v := range form.Value {
		if len(v) > 0 {
			values[name] = v[0]
		}
	}

	file, err := c.FormFile(blogImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return values, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return values, file, nil
}
