package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SaveMode selects how a singleton edit reaches the store.
type SaveMode int

const (
	// SaveOverwrite replaces the whole document.
	SaveOverwrite SaveMode = iota
	// SaveMerge writes the edited fields over the stored ones.
	SaveMerge
)

// SingletonService reads and edits a document that lives at a fixed key.
// A missing document is initialized from defaults on first read, so the
// admin form and the public page always have something to show.
type SingletonService[T any] struct {
	store    document.Store
	schema   *content.Schema
	key      string
	defaults func() T
	mode     SaveMode
	cache    ContentCache
	metrics  Metrics
	logger   *zap.Logger
}

// NewSingletonService creates a service for the document at schema.Collection/key
func NewSingletonService[T any](
	store document.Store,
	schema *content.Schema,
	key string,
	defaults func() T,
	mode SaveMode,
	opts ...ManagerOption,
) *SingletonService[T] {
	o := buildOptions(opts)
	return &SingletonService[T]{
		store:    store,
		schema:   schema,
		key:      key,
		defaults: defaults,
		mode:     mode,
		cache:    o.cache,
		metrics:  o.metrics,
		logger:   o.logger.With(zap.String("collection", schema.Collection), zap.String("key", key)),
	}
}

// NewAboutService edits about/info; saves overwrite the document
func NewAboutService(store document.Store, opts ...ManagerOption) *SingletonService[content.About] {
	return NewSingletonService(store, content.AboutSchema, content.AboutKey, content.DefaultAbout, SaveOverwrite, opts...)
}

// NewBiographyService edits biographies/bio; saves merge into the document
func NewBiographyService(store document.Store, opts ...ManagerOption) *SingletonService[content.Biography] {
	return NewSingletonService(store, content.BiographySchema, content.BiographyKey, content.DefaultBiography, SaveMerge, opts...)
}

// Collection returns the collection the singleton lives in
func (s *SingletonService[T]) Collection() string {
	return s.schema.Collection
}

// Defaults returns the payload used to initialize a missing document
func (s *SingletonService[T]) Defaults() T {
	return s.defaults()
}

// Read returns the stored document, creating it from defaults when absent.
// Repeated reads never re-initialize: CreateIfAbsent keeps whatever a
// concurrent or earlier writer stored.
func (s *SingletonService[T]) Read(ctx context.Context) (T, error) {
	var zero T

	doc, err := s.store.Get(ctx, s.schema.Collection, s.key)
	if errors.Is(err, shared.ErrNotFound) {
		doc, err = s.initialize(ctx)
	}
	s.metrics.RecordOperation(ctx, s.schema.Collection, "read", err)
	if err != nil {
		return zero, err
	}
	return document.Decode[T](doc)
}

func (s *SingletonService[T]) initialize(ctx context.Context) (*document.Document, error) {
	fields, err := document.Encode(s.defaults())
	if err != nil {
		return nil, err
	}
	doc, created, err := s.store.CreateIfAbsent(ctx, s.schema.Collection, s.key, fields)
	if err != nil {
		return nil, err
	}
	if created {
		s.logger.Info("Initialized document with defaults")
	}
	return doc, nil
}

// ReadPublic never fails: when the store cannot be read the defaults are
// returned without attempting a write.
func (s *SingletonService[T]) ReadPublic(ctx context.Context) T {
	v, err := s.Read(ctx)
	if err != nil {
		s.logger.Warn("Serving default content", zap.Error(err))
		return s.defaults()
	}
	return v
}

// Edit returns an update draft seeded from the stored document
func (s *SingletonService[T]) Edit(ctx context.Context) (*content.Draft, error) {
	v, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}
	fields, err := document.Encode(v)
	if err != nil {
		return nil, err
	}
	return content.EditDraft(s.schema, s.key, fields), nil
}

// Save validates the draft and writes it according to the save mode
func (s *SingletonService[T]) Save(ctx context.Context, draft *content.Draft) (T, error) {
	var zero T
	if draft == nil || draft.Schema() != s.schema {
		return zero, shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("draft does not belong to %s", s.schema.Collection))
	}
	if err := draft.Validate(); err != nil {
		return zero, err
	}

	var doc *document.Document
	var err error
	switch s.mode {
	case SaveMerge:
		doc, err = s.merge(ctx, draft.Fields())
	default:
		doc, err = s.store.Set(ctx, s.schema.Collection, s.key, draft.Fields())
	}
	s.metrics.RecordOperation(ctx, s.schema.Collection, "save", err)
	if err != nil {
		s.logger.Error("Failed to save document", zap.Error(err))
		return zero, err
	}

	s.invalidate(ctx)
	return document.Decode[T](doc)
}

// Merge writes the given fields over the stored document, initializing
// it first when absent.
func (s *SingletonService[T]) Merge(ctx context.Context, fields document.Fields) (T, error) {
	var zero T
	doc, err := s.store.Update(ctx, s.schema.Collection, s.key, fields)
	if errors.Is(err, shared.ErrNotFound) {
		if _, err = s.initialize(ctx); err == nil {
			doc, err = s.store.Update(ctx, s.schema.Collection, s.key, fields)
		}
	}
	s.metrics.RecordOperation(ctx, s.schema.Collection, "merge", err)
	if err != nil {
		return zero, err
	}

	s.invalidate(ctx)
	return document.Decode[T](doc)
}

func (s *SingletonService[T]) merge(ctx context.Context, fields document.Fields) (*document.Document, error) {
	doc, err := s.store.Update(ctx, s.schema.Collection, s.key, fields)
	if errors.Is(err, shared.ErrNotFound) {
		return s.store.Set(ctx, s.schema.Collection, s.key, fields)
	}
	return doc, err
}

// Delete removes the document once confirmed. The next Read recreates it
// from defaults.
func (s *SingletonService[T]) Delete(ctx context.Context, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(ctx, fmt.Sprintf("Delete %s/%s?", s.schema.Collection, s.key)) {
		return shared.ErrConfirmationRequired
	}

	err := s.store.Delete(ctx, s.schema.Collection, s.key)
	s.metrics.RecordOperation(ctx, s.schema.Collection, "delete", err)
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("Document deleted")
	return nil
}

func (s *SingletonService[T]) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, s.schema.Collection); err != nil {
		s.logger.Warn("Failed to invalidate public cache", zap.Error(err))
	}
}
