// Package document defines the schema-less document model the content
// layer persists through, and the store contract every backend implements.
package document

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// IDField is the key a document's identity is exposed under when it is
// decoded into a record. It is never persisted inside Fields.
const IDField = "id"

// Fields is the schema-less body of a document.
type Fields map[string]any

// Clone returns a shallow copy of the fields.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	return maps.Clone(f)
}

// Merge returns a copy of f with every key of patch applied on top.
func (f Fields) Merge(patch Fields) Fields {
	out := f.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Value implements driver.Valuer for database storage
func (f Fields) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (f *Fields) Scan(value any) error {
	if value == nil {
		*f = Fields{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into document.Fields", value)
	}

	if len(data) == 0 || string(data) == "null" {
		*f = Fields{}
		return nil
	}

	out := Fields{}
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	*f = out
	return nil
}

// Document is one record of a named collection.
type Document struct {
	ID         string
	Collection string
	Fields     Fields
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Store is a collection/key document database. Identities of collection
// documents are assigned by the store on Create; fixed keys are only used
// for singleton documents through Set and CreateIfAbsent.
//
// Get, Update and Delete return shared.ErrNotFound when the key is absent.
// List returns an empty slice for an empty collection.
type Store interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	List(ctx context.Context, collection string) ([]*Document, error)
	Create(ctx context.Context, collection string, fields Fields) (*Document, error)
	// Update merges fields into the existing document.
	Update(ctx context.Context, collection, id string, fields Fields) (*Document, error)
	// Set overwrites the whole document, creating it when absent.
	Set(ctx context.Context, collection, id string, fields Fields) (*Document, error)
	// CreateIfAbsent writes fields only if no document exists at id and
	// reports whether it did. The returned document is whatever the store
	// holds afterwards.
	CreateIfAbsent(ctx context.Context, collection, id string, fields Fields) (*Document, bool, error)
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int64, error)
}

// Identifiable is implemented by records that carry their document ID.
type Identifiable interface {
	GetID() string
	SetID(id string)
}

// Decode maps a document onto a typed record through its JSON tags and
// stamps the document ID into it.
func Decode[T any](doc *Document) (T, error) {
	var out T
	if doc == nil {
		return out, fmt.Errorf("decode: nil document")
	}
	b, err := json.Marshal(doc.Fields)
	if err != nil {
		return out, fmt.Errorf("decode %s/%s: %w", doc.Collection, doc.ID, err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode %s/%s: %w", doc.Collection, doc.ID, err)
	}
	if rec, ok := any(&out).(Identifiable); ok {
		rec.SetID(doc.ID)
	}
	return out, nil
}

// DecodeAll decodes every document, stopping at the first failure.
func DecodeAll[T any](docs []*Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec, err := Decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Encode maps a typed record to document fields. The identity field is
// dropped: it is the document key, not part of the body.
func Encode(v any) (Fields, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	delete(out, IDField)
	return out, nil
}
