package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs. The published view only changes at sync time and the
// sync path invalidates it, so the TTL is just a safety net.
const (
	TTLPublished = 5 * time.Minute
	TTLDefault   = 1 * time.Minute
)

// Cache key prefixes
const (
	PrefixPublished = "published:"

	// KeyPublishedAll caches the unfiltered published view.
	KeyPublishedAll = "published:all"
)

// Service Redis-backed JSON cache
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// Published view cache, keyed per run plus one unfiltered entry.
	GetPublished(ctx context.Context, runID string, dest interface{}) error
	SetPublished(ctx context.Context, runID string, data interface{}) error
	InvalidatePublished(ctx context.Context, runID string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service over the given Redis client
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis connection was configured
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping tests the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads and unmarshals a cached value
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set marshals and stores a value with a TTL
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes cache entries
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func publishedKey(runID string) string {
	if runID == "" {
		return KeyPublishedAll
	}
	return PrefixPublished + runID
}

// GetPublished reads the cached published view for a run ("" for all runs)
func (c *redisCache) GetPublished(ctx context.Context, runID string, dest interface{}) error {
	return c.Get(ctx, publishedKey(runID), dest)
}

// SetPublished caches the published view for a run ("" for all runs)
func (c *redisCache) SetPublished(ctx context.Context, runID string, data interface{}) error {
	return c.Set(ctx, publishedKey(runID), data, TTLPublished)
}

// InvalidatePublished drops the run's view and the unfiltered view,
// which includes the run's rows.
func (c *redisCache) InvalidatePublished(ctx context.Context, runID string) error {
	return c.Delete(ctx, publishedKey(runID), KeyPublishedAll)
}
