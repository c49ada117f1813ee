package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnknownField, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeConfirmationRequired, http.StatusPreconditionRequired},
		{ErrCodeUploadFailed, http.StatusBadGateway},
		{ErrCodeStoreUnavailable, http.StatusServiceUnavailable},
		{ErrCodeBodyTooLarge, http.StatusRequestEntityTooLarge},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"VALIDATION_FAILED", ErrCodeValidation},
		{"UNAUTHORIZED", ErrCodeUnauthorized},
		{"CONFIRMATION_REQUIRED", ErrCodeConfirmationRequired},
		{"UPLOAD_FAILED", ErrCodeUploadFailed},
		{"TRANSPORT_FAILURE", ErrCodeStoreUnavailable},
		// already normalized or unknown codes pass through
		{ErrCodeNotFound, ErrCodeNotFound},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryDomainCodeHasAStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "no status for %s (%s)", apiCode, domainCode)
	}
}

func TestNewListResponse(t *testing.T) {
	body, err := json.Marshal(NewListResponse[string](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total":0}}`, string(body))
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
		{Field: "title", Message: "is required"},
	})
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"success": false,
		"error": {
			"code": "ERR_VALIDATION",
			"message": "Request validation failed",
			"request_id": "req-1",
			"details": [{"field": "title", "message": "is required"}]
		}
	}`, string(body))
}
