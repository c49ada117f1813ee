package content

import (
	"context"
	"io"
	"sync"

	"github.com/portfolio/backend/internal/domain/document"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// Mocks
// ============================================================================

// MockStore is a mock implementation of document.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Get(ctx context.Context, collection, id string) (*document.Document, error) {
	args := m.Called(ctx, collection, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockStore) List(ctx context.Context, collection string) ([]*document.Document, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*document.Document), args.Error(1)
}

func (m *MockStore) Create(ctx context.Context, collection string, fields document.Fields) (*document.Document, error) {
	args := m.Called(ctx, collection, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockStore) Update(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	args := m.Called(ctx, collection, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockStore) Set(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, error) {
	args := m.Called(ctx, collection, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.Document), args.Error(1)
}

func (m *MockStore) CreateIfAbsent(ctx context.Context, collection, id string, fields document.Fields) (*document.Document, bool, error) {
	args := m.Called(ctx, collection, id, fields)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*document.Document), args.Bool(1), args.Error(2)
}

func (m *MockStore) Delete(ctx context.Context, collection, id string) error {
	args := m.Called(ctx, collection, id)
	return args.Error(0)
}

func (m *MockStore) Count(ctx context.Context, collection string) (int64, error) {
	args := m.Called(ctx, collection)
	return args.Get(0).(int64), args.Error(1)
}

// MockObjectStorage is a mock implementation of ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

// MockCache is a mock implementation of ContentCache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value any) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockCache) Invalidate(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

// recordingNotifier captures notifications
type recordingNotifier struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)
	return n.err
}

// countingConfirmer records whether it was asked
type countingConfirmer struct {
	answer bool
	asked  int
}

func (c *countingConfirmer) Confirm(context.Context, string) bool {
	c.asked++
	return c.answer
}
