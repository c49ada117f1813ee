package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

var _ ObjectStorage = (*StubObjectStorage)(nil)

// StubObjectStorage discards uploads and returns URLs under BaseURL. It
// remembers the keys it has seen so local runs and tests can inspect them.
type StubObjectStorage struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string]int64
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "https://storage.example.com"
	}
	return &StubObjectStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]int64),
	}
}

// Upload drains body and records its size
func (s *StubObjectStorage) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	n, err := io.Copy(io.Discard, body)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.objects[key] = n
	s.mu.Unlock()
	return s.BaseURL + "/" + key, nil
}

// Size returns the number of bytes uploaded under key
func (s *StubObjectStorage) Size(key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.objects[key]
	return n, ok
}

// Ping always succeeds
func (s *StubObjectStorage) Ping(context.Context) error {
	return nil
}
