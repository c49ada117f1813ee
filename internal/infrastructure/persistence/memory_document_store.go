package persistence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/domain/document"
	"github.com/portfolio/backend/internal/domain/shared"
)

// MemoryDocumentStore keeps documents in process memory. It backs the
// "memory" driver used for local development and tests.
type MemoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]*memoryEntry
	seq         uint64
	now         func() time.Time
}

type memoryEntry struct {
	doc document.Document
	seq uint64
}

// NewMemoryDocumentStore creates an empty in-memory store
func NewMemoryDocumentStore() *MemoryDocumentStore {
	return &MemoryDocumentStore{
		collections: make(map[string]map[string]*memoryEntry),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryDocumentStore) Get(_ context.Context, collection, id string) (*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return copyDocument(&e.doc), nil
}

func (s *MemoryDocumentStore) List(_ context.Context, collection string) ([]*document.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*memoryEntry, 0, len(s.collections[collection]))
	for _, e := range s.collections[collection] {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	docs := make([]*document.Document, len(entries))
	for i, e := range entries {
		docs[i] = copyDocument(&e.doc)
	}
	return docs, nil
}

func (s *MemoryDocumentStore) Create(_ context.Context, collection string, fields document.Fields) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.put(collection, uuid.NewString(), fields)
	return copyDocument(&e.doc), nil
}

func (s *MemoryDocumentStore) Update(_ context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.collections[collection][id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	e.doc.Fields = e.doc.Fields.Merge(fields)
	e.doc.UpdatedAt = s.now()
	return copyDocument(&e.doc), nil
}

func (s *MemoryDocumentStore) Set(_ context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.collections[collection][id]; ok {
		e.doc.Fields = fields.Clone()
		e.doc.UpdatedAt = s.now()
		return copyDocument(&e.doc), nil
	}
	e := s.put(collection, id, fields)
	return copyDocument(&e.doc), nil
}

func (s *MemoryDocumentStore) CreateIfAbsent(_ context.Context, collection, id string, fields document.Fields) (*document.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.collections[collection][id]; ok {
		return copyDocument(&e.doc), false, nil
	}
	e := s.put(collection, id, fields)
	return copyDocument(&e.doc), true, nil
}

func (s *MemoryDocumentStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.collections[collection], id)
	return nil
}

func (s *MemoryDocumentStore) Count(_ context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.collections[collection])), nil
}

// put stores a new entry; callers hold the write lock.
func (s *MemoryDocumentStore) put(collection, id string, fields document.Fields) *memoryEntry {
	docs, ok := s.collections[collection]
	if !ok {
		docs = make(map[string]*memoryEntry)
		s.collections[collection] = docs
	}
	s.seq++
	now := s.now()
	e := &memoryEntry{
		doc: document.Document{
			ID:         id,
			Collection: collection,
			Fields:     fields.Clone(),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		seq: s.seq,
	}
	docs[id] = e
	return e
}

func copyDocument(d *document.Document) *document.Document {
	out := *d
	out.Fields = d.Fields.Clone()
	return &out
}

var _ document.Store = (*MemoryDocumentStore)(nil)
