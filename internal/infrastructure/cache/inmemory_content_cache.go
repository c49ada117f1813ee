package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// cacheEntry wraps a cached value with expiration time
type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// InMemoryContentCache implements ContentCache in process memory. Values
// are stored JSON-encoded so readers never share state with writers.
type InMemoryContentCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryContentCache creates an in-memory cache; ttl <= 0 uses the default
func NewInMemoryContentCache(ttl time.Duration) *InMemoryContentCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &InMemoryContentCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get decodes the cached value for key into dest
func (c *InMemoryContentCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores value under key
func (c *InMemoryContentCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{data: data, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate removes keys
func (c *InMemoryContentCache) Invalidate(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// Len returns the number of live and expired entries
func (c *InMemoryContentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ ContentCache = (*InMemoryContentCache)(nil)
