// Package printing renders HTML pages to PDF with headless Chrome.
package printing

import (
	"context"
	"errors"
	"time"
)

// ErrPrintingDisabled is returned when PDF export is switched off
var ErrPrintingDisabled = errors.New("pdf export is disabled")

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

// PageSettings controls the printed page. Sizes are in millimetres.
type PageSettings struct {
	WidthMM  float64
	HeightMM float64
	MarginMM float64
	Scale    float64
}

// A4 is the page used for the exported CV
var A4 = PageSettings{WidthMM: 210, HeightMM: 297, MarginMM: 12, Scale: 1}

// DisabledRenderer refuses every render
type DisabledRenderer struct{}

// RenderPDF always fails with ErrPrintingDisabled
func (DisabledRenderer) RenderPDF(context.Context, string) ([]byte, error) {
	return nil, ErrPrintingDisabled
}

// Close does nothing
func (DisabledRenderer) Close() error { return nil }

const defaultChromeTimeout = 30 * time.Second

func mmToInches(mm float64) float64 {
	return mm / 25.4
}
