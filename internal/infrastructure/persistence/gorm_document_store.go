package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentModel is the row layout of the documents table. Every collection
// shares the table; the pair (collection, id) is the key.
type documentModel struct {
	Collection string          `gorm:"primaryKey;size:64"`
	ID         string          `gorm:"primaryKey;size:64"`
	Data       document.Fields `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time       `gorm:"not null;index"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

func (documentModel) TableName() string {
	return "documents"
}

func (m *documentModel) toDocument() *document.Document {
	return &document.Document{
		ID:         m.ID,
		Collection: m.Collection,
		Fields:     m.Data,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// GormDocumentStore implements document.Store on a single SQL table
type GormDocumentStore struct {
	db  *gorm.DB
	now func() time.Time
	ids func() string
}

// NewGormDocumentStore creates a new GORM backed document store
func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
		ids: uuid.NewString,
	}
}

// Get finds one document by key
func (s *GormDocumentStore) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	var m documentModel
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Take(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, transportError("get", collection, err)
	}
	return m.toDocument(), nil
}

// List returns every document of a collection, oldest first
func (s *GormDocumentStore) List(ctx context.Context, collection string) ([]*document.Document, error) {
	var models []documentModel
	err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, transportError("list", collection, err)
	}

	docs := make([]*document.Document, len(models))
	for i := range models {
		docs[i] = models[i].toDocument()
	}
	return docs, nil
}

// Create inserts a document under a freshly generated identity
func (s *GormDocumentStore) Create(ctx context.Context, collection string, fields document.Fields) (*document.Document, error) {
	now := s.now()
	m := &documentModel{
		Collection: collection,
		ID:         s.ids(),
		Data:       fields.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, transportError("create", collection, err)
	}
	return m.toDocument(), nil
}

// Update merges fields into an existing document inside a transaction
func (s *GormDocumentStore) Update(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	var updated *documentModel
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m documentModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("collection = ? AND id = ?", collection, id).
			Take(&m).Error; err != nil {
			return err
		}

		m.Data = m.Data.Merge(fields)
		m.UpdatedAt = s.now()

		if err := tx.Model(&documentModel{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]any{"data": m.Data, "updated_at": m.UpdatedAt}).Error; err != nil {
			return err
		}
		updated = &m
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, transportError("update", collection, err)
	}
	return updated.toDocument(), nil
}

// Set overwrites the document at a fixed key, creating it when absent.
// The returned timestamps reflect this write.
func (s *GormDocumentStore) Set(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	now := s.now()
	m := &documentModel{
		Collection: collection,
		ID:         id,
		Data:       fields.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return nil, transportError("set", collection, err)
	}
	return m.toDocument(), nil
}

// CreateIfAbsent inserts the document unless the key is taken. A lost race
// returns the winner's document.
func (s *GormDocumentStore) CreateIfAbsent(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, bool, error) {
	now := s.now()
	m := &documentModel{
		Collection: collection,
		ID:         id,
		Data:       fields.Clone(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(m)
	if result.Error != nil {
		return nil, false, transportError("create", collection, result.Error)
	}
	if result.RowsAffected == 1 {
		return m.toDocument(), true, nil
	}

	existing, err := s.Get(ctx, collection, id)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// Delete removes one document
func (s *GormDocumentStore) Delete(ctx context.Context, collection, id string) error {
	result := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&documentModel{})
	if result.Error != nil {
		return transportError("delete", collection, result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the number of documents in a collection
func (s *GormDocumentStore) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&documentModel{}).
		Where("collection = ?", collection).
		Count(&n).Error
	if err != nil {
		return 0, transportError("count", collection, err)
	}
	return n, nil
}

// transportError tags a backend failure so the HTTP layer reports it as
// the store being unreachable rather than as a bug.
func transportError(op, collection string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", shared.ErrTransportFailure, op, collection, err)
}

var _ document.Store = (*GormDocumentStore)(nil)
