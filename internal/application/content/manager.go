package content

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/portfolio/backend/internal/domain/content"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Manager keeps the admin view of one collection: the records last loaded
// from the store, reconciled after every successful write. Store calls run
// outside the lock; only reconciliation holds it.
type Manager[T any] struct {
	store   document.Store
	schema  *content.Schema
	cache   ContentCache
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time

	mu     sync.RWMutex
	items  []T
	loaded bool
}

// ManagerOption configures a Manager
type ManagerOption func(*managerOptions)

type managerOptions struct {
	cache   ContentCache
	metrics Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// WithCache invalidates the public read cache after writes
func WithCache(cache ContentCache) ManagerOption {
	return func(o *managerOptions) { o.cache = cache }
}

// WithMetrics records operation outcomes
func WithMetrics(m Metrics) ManagerOption {
	return func(o *managerOptions) { o.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) ManagerOption {
	return func(o *managerOptions) { o.logger = l }
}

// WithClock overrides the time source used for server-stamped fields
func WithClock(now func() time.Time) ManagerOption {
	return func(o *managerOptions) { o.now = now }
}

func buildOptions(opts []ManagerOption) managerOptions {
	o := managerOptions{
		metrics: nopMetrics{},
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewManager creates a manager for the schema's collection
func NewManager[T any](store document.Store, schema *content.Schema, opts ...ManagerOption) *Manager[T] {
	o := buildOptions(opts)
	return &Manager[T]{
		store:   store,
		schema:  schema,
		cache:   o.cache,
		metrics: o.metrics,
		logger:  o.logger.With(zap.String("collection", schema.Collection)),
		now:     o.now,
		items:   []T{},
	}
}

// Collection returns the managed collection name
func (m *Manager[T]) Collection() string {
	return m.schema.Collection
}

// Schema returns the editing schema
func (m *Manager[T]) Schema() *content.Schema {
	return m.schema
}

// Load replaces the in-memory list with the store's current contents.
// On failure the list is left empty and the error is returned.
func (m *Manager[T]) Load(ctx context.Context) ([]T, error) {
	items, err := m.fetch(ctx)
	m.metrics.RecordOperation(ctx, m.schema.Collection, "load", err)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.logger.Error("Failed to load collection", zap.Error(err))
		m.items = []T{}
		m.loaded = false
		return nil, err
	}
	m.items = items
	m.loaded = true
	return slices.Clone(items), nil
}

func (m *Manager[T]) fetch(ctx context.Context) ([]T, error) {
	docs, err := m.store.List(ctx, m.schema.Collection)
	if err != nil {
		return nil, err
	}
	return document.DecodeAll[T](docs)
}

// Items returns a snapshot of the loaded records
func (m *Manager[T]) Items() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.items)
}

func (m *Manager[T]) ensureLoaded(ctx context.Context) error {
	m.mu.RLock()
	loaded := m.loaded
	m.mu.RUnlock()
	if loaded {
		return nil
	}
	_, err := m.Load(ctx)
	return err
}

// Find returns the loaded record with the given ID
func (m *Manager[T]) Find(id string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i := m.indexOf(id); i >= 0 {
		return m.items[i], true
	}
	var zero T
	return zero, false
}

// indexOf returns the position of id in the list; callers hold the lock.
func (m *Manager[T]) indexOf(id string) int {
	for i := range m.items {
		if idOf(&m.items[i]) == id {
			return i
		}
	}
	return -1
}

// NewDraft starts an empty draft in create mode
func (m *Manager[T]) NewDraft() *content.Draft {
	return content.NewDraft(m.schema)
}

// Edit starts an update draft seeded from the loaded record, or from the
// store when the record was written after the last load.
func (m *Manager[T]) Edit(ctx context.Context, id string) (*content.Draft, error) {
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	item, ok := m.Find(id)
	if !ok {
		var err error
		if item, err = m.fetchOne(ctx, id); err != nil {
			return nil, err
		}
	}
	fields, err := document.Encode(item)
	if err != nil {
		return nil, err
	}
	return content.EditDraft(m.schema, id, fields), nil
}

// fetchOne reads a single record from the store and reconciles it into
// the list.
func (m *Manager[T]) fetchOne(ctx context.Context, id string) (T, error) {
	var zero T
	doc, err := m.store.Get(ctx, m.schema.Collection, id)
	if err != nil {
		return zero, err
	}
	item, err := document.Decode[T](doc)
	if err != nil {
		return zero, err
	}
	m.put(item)
	return item, nil
}

// put replaces the record with the same ID or appends it.
func (m *Manager[T]) put(item T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.indexOf(idOf(&item)); i >= 0 {
		m.items[i] = item
		return
	}
	m.items = append(m.items, item)
}

// Create validates a create-mode draft, writes it and appends the stored
// record to the list. Nothing is written when validation fails.
func (m *Manager[T]) Create(ctx context.Context, draft *content.Draft) (T, error) {
	var zero T
	if err := m.checkDraft(draft, content.ModeCreate); err != nil {
		return zero, err
	}
	if err := draft.Validate(); err != nil {
		return zero, err
	}

	fields := draft.Fields()
	if m.schema.OnCreate != nil {
		count, err := m.store.Count(ctx, m.schema.Collection)
		if err != nil {
			return zero, err
		}
		m.schema.OnCreate(fields, content.CreateContext{Now: m.now(), Count: int(count)})
	}

	doc, err := m.store.Create(ctx, m.schema.Collection, fields)
	m.metrics.RecordOperation(ctx, m.schema.Collection, "create", err)
	if err != nil {
		m.logger.Error("Failed to create record", zap.Error(err))
		return zero, err
	}
	item, err := document.Decode[T](doc)
	if err != nil {
		return zero, err
	}

	m.put(item)

	m.invalidate(ctx)
	m.logger.Info("Record created", zap.String("id", doc.ID))
	return item, nil
}

// Update validates an update-mode draft, merges it into the stored record
// and replaces the record in the list.
func (m *Manager[T]) Update(ctx context.Context, draft *content.Draft) (T, error) {
	var zero T
	if err := m.checkDraft(draft, content.ModeUpdate); err != nil {
		return zero, err
	}
	if err := draft.Validate(); err != nil {
		return zero, err
	}

	doc, err := m.store.Update(ctx, m.schema.Collection, draft.ID(), draft.Fields())
	m.metrics.RecordOperation(ctx, m.schema.Collection, "update", err)
	if err != nil {
		m.logger.Error("Failed to update record", zap.String("id", draft.ID()), zap.Error(err))
		return zero, err
	}
	item, err := document.Decode[T](doc)
	if err != nil {
		return zero, err
	}

	m.put(item)

	m.invalidate(ctx)
	return item, nil
}

// Delete removes a record after the confirmer agrees. A declined
// confirmation makes no store call.
func (m *Manager[T]) Delete(ctx context.Context, id string, confirm Confirmer) error {
	if confirm == nil || !confirm.Confirm(ctx, fmt.Sprintf("Delete %s/%s?", m.schema.Collection, id)) {
		return shared.ErrConfirmationRequired
	}

	err := m.store.Delete(ctx, m.schema.Collection, id)
	m.metrics.RecordOperation(ctx, m.schema.Collection, "delete", err)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			m.logger.Error("Failed to delete record", zap.String("id", id), zap.Error(err))
		}
		return err
	}

	m.mu.Lock()
	if i := m.indexOf(id); i >= 0 {
		m.items = slices.Delete(m.items, i, i+1)
	}
	m.mu.Unlock()

	m.invalidate(ctx)
	m.logger.Info("Record deleted", zap.String("id", id))
	return nil
}

// ToggleSeen flips the stored seen flag of a message or hire request.
// Only that field is written and only that field changes in the list.
func (m *Manager[T]) ToggleSeen(ctx context.Context, id string) (T, error) {
	var zero T
	item, err := m.fetchOne(ctx, id)
	if err != nil {
		return zero, err
	}
	seenable, ok := any(&item).(content.Seenable)
	if !ok {
		return zero, shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("%s records have no seen flag", m.schema.Collection))
	}
	next := !seenable.IsSeen()

	_, err = m.store.Update(ctx, m.schema.Collection, id, document.Fields{"seen": next})
	m.metrics.RecordOperation(ctx, m.schema.Collection, "toggle_seen", err)
	if err != nil {
		m.logger.Error("Failed to toggle seen flag", zap.String("id", id), zap.Error(err))
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		// deleted concurrently; report the value that was written
		seenable.SetSeen(next)
		return item, nil
	}
	any(&m.items[i]).(content.Seenable).SetSeen(next)
	return m.items[i], nil
}

func (m *Manager[T]) checkDraft(draft *content.Draft, mode content.Mode) error {
	if draft == nil || draft.Schema() != m.schema {
		return shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("draft does not belong to %s", m.schema.Collection))
	}
	if draft.Mode() != mode {
		return shared.NewDomainError(shared.ErrInvalidState.Code,
			fmt.Sprintf("expected a %s draft, got %s", mode, draft.Mode()))
	}
	return nil
}

func (m *Manager[T]) invalidate(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Invalidate(ctx, m.schema.Collection); err != nil {
		m.logger.Warn("Failed to invalidate public cache", zap.Error(err))
	}
}

func idOf[T any](v *T) string {
	if rec, ok := any(v).(document.Identifiable); ok {
		return rec.GetID()
	}
	return ""
}
