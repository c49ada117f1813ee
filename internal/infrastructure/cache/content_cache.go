// Package cache caches public content reads in Redis or process memory.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultKeyPrefix = "portfolio:content:"
	defaultTTL       = 5 * time.Minute
)

// ContentCache stores JSON-encoded public content under collection keys
type ContentCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// RedisContentCache implements ContentCache using Redis
type RedisContentCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	prefix     string
	ttl        time.Duration
	logger     *zap.Logger
}

// RedisContentCacheOption is a functional option for configuring the cache
type RedisContentCacheOption func(*RedisContentCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisContentCacheOption {
	return func(c *RedisContentCache) {
		c.logger = logger
	}
}

// WithTTL sets how long entries live
func WithTTL(ttl time.Duration) RedisContentCacheOption {
	return func(c *RedisContentCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix
func WithKeyPrefix(prefix string) RedisContentCacheOption {
	return func(c *RedisContentCache) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// NewRedisContentCache connects to Redis and verifies the connection
func NewRedisContentCache(cfg config.RedisConfig, opts ...RedisContentCacheOption) (*RedisContentCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisContentCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisContentCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client.
func NewRedisContentCacheWithClient(client *redis.Client, opts ...RedisContentCacheOption) *RedisContentCache {
	c := &RedisContentCache{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    defaultTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisContentCache) key(key string) string {
	return c.prefix + key
}

// Get decodes the cached value for key into dest
func (c *RedisContentCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.String("key", key))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("Dropping corrupted cache entry", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, c.key(key))
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores value under key for the configured TTL
func (c *RedisContentCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

// Invalidate removes keys
func (c *RedisContentCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

// Close closes the client if this cache created it
func (c *RedisContentCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

var _ ContentCache = (*RedisContentCache)(nil)
