package cache

import (
	"context"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type cachedProject struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestInMemoryContentCache_GetSet(t *testing.T) {
	c := NewInMemoryContentCache(time.Minute)
	ctx := context.Background()

	var got []cachedProject
	ok, err := c.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []cachedProject{{ID: "1", Title: "Site"}}
	require.NoError(t, c.Set(ctx, "projects", want))

	ok, err = c.Get(ctx, "projects", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	// stored values do not alias the caller's slice
	want[0].Title = "Changed"
	var again []cachedProject
	_, _ = c.Get(ctx, "projects", &again)
	assert.Equal(t, "Site", again[0].Title)
}

func TestInMemoryContentCache_Expiration(t *testing.T) {
	c := NewInMemoryContentCache(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "skills", []string{"go"}))
	now = now.Add(2 * time.Minute)

	var got []string
	ok, err := c.Get(ctx, "skills", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestInMemoryContentCache_Invalidate(t *testing.T) {
	c := NewInMemoryContentCache(0)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "projects", []string{"a"}))
	require.NoError(t, c.Set(ctx, "certificates", []string{"b"}))
	require.NoError(t, c.Invalidate(ctx, "projects", "missing"))

	var got []string
	ok, _ := c.Get(ctx, "projects", &got)
	assert.False(t, ok)
	ok, _ = c.Get(ctx, "certificates", &got)
	assert.True(t, ok)
}

func TestInMemoryContentCache_DecodeError(t *testing.T) {
	c := NewInMemoryContentCache(0)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "about", map[string]string{"title": "x"}))

	var wrong []int
	_, err := c.Get(ctx, "about", &wrong)
	assert.Error(t, err)
}

func TestContentCacheFactory_CreateCache(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("disabled returns nil", func(t *testing.T) {
		c, err := NewContentCacheFactory(config.RedisConfig{}, config.CacheConfig{}, WithLogger(logger)).CreateCache()
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("redis disabled uses memory", func(t *testing.T) {
		c, err := NewContentCacheFactory(config.RedisConfig{}, config.CacheConfig{Enabled: true}).CreateCache()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryContentCache{}, c)
	})

	unreachable := config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

	t.Run("unreachable redis falls back", func(t *testing.T) {
		c, err := NewContentCacheFactory(unreachable, config.CacheConfig{Enabled: true}, WithLogger(logger)).CreateCache()
		require.NoError(t, err)
		assert.IsType(t, &InMemoryContentCache{}, c)
	})

	t.Run("fallback can be refused", func(t *testing.T) {
		_, err := NewContentCacheFactory(unreachable, config.CacheConfig{Enabled: true}, WithInMemoryFallback(false)).CreateCache()
		assert.Error(t, err)
	})
}
