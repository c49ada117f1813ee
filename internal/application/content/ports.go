// Package content holds the use cases behind the public site and the admin
// dashboard: loading collections, editing drafts, persisting, deleting and
// toggling records, and the singleton about/biography documents.
package content

import (
	"context"
	"io"
)

// Confirmer is asked before a destructive operation touches the store.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Confirmed and Declined are fixed answers, used when the caller has
// already collected the answer (an HTTP flag, a CLI --yes).
var (
	Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })
	Declined  Confirmer = ConfirmFunc(func(context.Context, string) bool { return false })
)

// ConfirmIf returns Confirmed when ok is true and Declined otherwise
func ConfirmIf(ok bool) Confirmer {
	if ok {
		return Confirmed
	}
	return Declined
}

// ContentCache caches public reads per collection. Implementations encode
// values as JSON.
type ContentCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// ObjectStorage stores binary objects and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// Metrics records the outcome of content operations.
type Metrics interface {
	RecordOperation(ctx context.Context, collection, op string, err error)
	RecordUpload(ctx context.Context, kind string, err error)
}

type nopMetrics struct{}

func (nopMetrics) RecordOperation(context.Context, string, string, error) {}
func (nopMetrics) RecordUpload(context.Context, string, error)            {}
