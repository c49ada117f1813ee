// Package handler implements the JSON API of the portfolio: the public read
// and write endpoints, the admin dashboard API and authentication.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/shared"
	"github.com/portfolio/backend/internal/infrastructure/logger"
	"github.com/portfolio/backend/internal/interfaces/http/dto"
	"github.com/portfolio/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// ValidationError sends a 400 listing every rejected field
func (h *BaseHandler) ValidationError(c *gin.Context, verr *content.ValidationError) {
	details := make([]dto.ValidationDetail, 0, len(verr.Missing)+len(verr.Invalid))
	for _, field := range verr.Missing {
		details = append(details, dto.ValidationDetail{Field: field, Message: "This field is required"})
	}
	for _, fe := range verr.Invalid {
		details = append(details, dto.ValidationDetail{Field: fe.Field, Message: fe.Message})
	}
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Please fill in all required fields",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts domain and validation errors to HTTP responses.
// Anything else is logged and answered with 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var verr *content.ValidationError
	if errors.As(err, &verr) {
		h.ValidationError(c, verr)
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		status := dto.GetHTTPStatus(code)
		if status >= http.StatusInternalServerError {
			logger.L(c.Request.Context()).Error("Request failed", zap.String("code", code), zap.Error(err))
		}
		h.Error(c, status, code, domainErr.Message)
		return
	}

	logger.L(c.Request.Context()).Error("Unexpected error", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

// confirmed reports whether the request confirms a delete, through
// ?confirm=true or the X-Confirm-Delete header
func confirmed(c *gin.Context) bool {
	if ok, err := strconv.ParseBool(c.Query("confirm")); err == nil && ok {
		return true
	}
	ok, err := strconv.ParseBool(c.GetHeader(middleware.ConfirmHeader))
	return err == nil && ok
}

// bindFields reads a JSON object of form values. Strings are kept as
// typed, lists are joined with ", " and other scalars are formatted.
func bindFields(c *gin.Context) (map[string]string, error) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		out[name] = formValue(v)
	}
	return out, nil
}

func formValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		items := make([]string, 0, len(val))
		for _, item := range val {
			items = append(items, formValue(item))
		}
		return strings.Join(items, ", ")
	default:
		return fmt.Sprint(val)
	}
}

// readID binds the :id path parameter
func (h *BaseHandler) readID(c *gin.Context) (string, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return "", false
	}
	return req.ID, true
}

// BindError answers a body that could not be decoded
func (h *BaseHandler) BindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBodyTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Malformed request body")
}
