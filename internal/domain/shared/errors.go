package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code, so that
// errors.Is(NewDomainError("NOT_FOUND", "..."), ErrNotFound) holds.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrValidationFailed     = NewDomainError("VALIDATION_FAILED", "One or more fields are invalid")
	ErrUnauthorized         = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrConfirmationRequired = NewDomainError("CONFIRMATION_REQUIRED", "Deletion must be confirmed")
	ErrUploadFailed         = NewDomainError("UPLOAD_FAILED", "Failed to upload file")
	ErrTransportFailure     = NewDomainError("TRANSPORT_FAILURE", "Content store is unreachable")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
