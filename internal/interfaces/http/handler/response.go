package handler

import "github.com/portfolio/backend/internal/interfaces/http/dto"

// APIResponse represents a generic API response for OpenAPI documentation
// @Description Standard API response wrapper with typed data field
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse represents an error API response for OpenAPI documentation
// @Description Standard error response
type ErrorResponse struct {
	Success bool           `json:"success" example:"false"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// DeletedData identifies a removed record
// @Description Deleted record
type DeletedData struct {
	ID      string `json:"id" example:"k3J9x0aQ"`
	Deleted bool   `json:"deleted" example:"true"`
}

// FieldsRequest is a JSON object of form values for a record. Lists such
// as project technologies may be sent as an array or a comma separated
// string.
// @Description Record fields keyed by name
type FieldsRequest map[string]any
