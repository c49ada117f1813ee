package cache

import (
	"fmt"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ContentCacheFactory creates the public read cache based on configuration
type ContentCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ContentCacheFactoryOption is a functional option for configuring the factory
type ContentCacheFactoryOption func(*ContentCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ContentCacheFactoryOption {
	return func(f *ContentCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ContentCacheFactoryOption {
	return func(f *ContentCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewContentCacheFactory creates a new factory
func NewContentCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...ContentCacheFactoryOption) *ContentCacheFactory {
	f := &ContentCacheFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-based content cache
func (f *ContentCacheFactory) CreateRedisCache() (*RedisContentCache, error) {
	c, err := NewRedisContentCache(f.redisConfig,
		WithTTL(f.cacheConfig.TTL),
		WithKeyPrefix(f.cacheConfig.Prefix),
		WithCacheLogger(f.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis content cache: %w", err)
	}
	return c, nil
}

// CreateCache returns nil when caching is disabled. Otherwise it tries
// Redis first and falls back to memory if allowed.
func (f *ContentCacheFactory) CreateCache() (ContentCache, error) {
	if !f.cacheConfig.Enabled {
		f.logger.Info("public content cache disabled")
		return nil, nil
	}
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory content cache")
		return NewInMemoryContentCache(f.cacheConfig.TTL), nil
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis content cache")
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for content cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory content cache. "+
		"Instances will not share cached reads.",
		zap.Error(err),
	)
	return NewInMemoryContentCache(f.cacheConfig.TTL), nil
}
