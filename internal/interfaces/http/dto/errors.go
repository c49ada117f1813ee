package dto

import "net/http"

// Error codes returned in the response envelope.
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input and validation error codes
const (
	// ErrCodeValidation is used when a draft is missing required fields or
	// has invalid ones; details list each field.
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeUnknownField = "ERR_UNKNOWN_FIELD"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
	ErrCodeBodyTooLarge = "ERR_BODY_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
	ErrCodeRateLimited  = "ERR_RATE_LIMITED"
)

// Resource error codes
const (
	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
	// ErrCodeConfirmationRequired is returned for a delete without confirm=true
	ErrCodeConfirmationRequired = "ERR_CONFIRMATION_REQUIRED"
)

// Upstream error codes
const (
	ErrCodeUploadFailed     = "ERR_UPLOAD_FAILED"
	ErrCodeStoreUnavailable = "ERR_STORE_UNAVAILABLE"
	ErrCodeRenderFailed     = "ERR_RENDER_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnknownField: http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,
	ErrCodeBodyTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	ErrCodeNotFound:             http.StatusNotFound,
	ErrCodeAlreadyExists:        http.StatusConflict,
	ErrCodeInvalidState:         http.StatusUnprocessableEntity,
	ErrCodeConfirmationRequired: http.StatusPreconditionRequired,

	ErrCodeUploadFailed:     http.StatusBadGateway,
	ErrCodeStoreUnavailable: http.StatusServiceUnavailable,
	ErrCodeRenderFailed:     http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status for an error code, 500 when unknown
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"VALIDATION_FAILED":     ErrCodeValidation,
	"UNKNOWN_FIELD":         ErrCodeUnknownField,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"CONFIRMATION_REQUIRED": ErrCodeConfirmationRequired,
	"UPLOAD_FAILED":         ErrCodeUploadFailed,
	"TRANSPORT_FAILURE":     ErrCodeStoreUnavailable,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API code.
// Unknown codes are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
