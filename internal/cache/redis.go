package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/clipsmith/trendscout/pkg/config"
	"github.com/clipsmith/trendscout/pkg/logging"
)

const trendListVersionKey = "trends:list:version"

// Cache wraps Redis client. All methods are nil-safe so callers can run
// without Redis configured.
type Cache struct {
	client *redis.Client
}

// New creates a new Redis cache client
func New(cfg *config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		logging.GetLogger().Info("Redis cache disabled")
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &Cache{client: client}, nil
}

// Get retrieves a value from cache
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c == nil || c.client == nil {
		return "", ErrCacheDisabled
	}
	return c.client.Get(ctx, c.namespaceKey(key)).Result()
}

// Set sets a value in cache with TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Set(ctx, c.namespaceKey(key), value, ttl).Err()
}

// Delete removes a key from cache
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Del(ctx, c.namespaceKey(key)).Err()
}

// AcquireLock takes a named lock via SETNX with a TTL so a crashed batch
// cannot hold it forever. Returns false when another run holds the lock.
func (c *Cache) AcquireLock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	if c == nil || c.client == nil {
		// Without Redis there is nothing to coordinate against; the
		// source_url unique index still catches concurrent inserts.
		return true, nil
	}
	return c.client.SetNX(ctx, c.namespaceKey("lock:"+name), 1, ttl).Result()
}

// ReleaseLock releases a named lock
func (c *Cache) ReleaseLock(ctx context.Context, name string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, c.namespaceKey("lock:"+name)).Err()
}

// TrendListVersion returns the current trend-list cache generation. List
// responses embed the generation in their key, so bumping it invalidates
// every cached list at once.
func (c *Cache) TrendListVersion(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, ErrCacheDisabled
	}
	v, err := c.client.Get(ctx, c.namespaceKey(trendListVersionKey)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

// InvalidateTrendLists bumps the trend-list cache generation
func (c *Cache) InvalidateTrendLists(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, c.namespaceKey(trendListVersionKey)).Err()
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Health checks Redis health
func (c *Cache) Health(ctx context.Context) error {
	if c == nil || c.client == nil {
		return ErrCacheDisabled
	}
	return c.client.Ping(ctx).Err()
}

// namespaceKey prefixes keys with the service namespace
func (c *Cache) namespaceKey(key string) string {
	return "trendscout:" + key
}

// HashKey builds a stable cache key suffix from arbitrary parts
func HashKey(parts ...string) string {
	sum := md5.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}

var (
	// ErrCacheDisabled is returned when cache operations are attempted but cache is disabled
	ErrCacheDisabled = fmt.Errorf("cache is disabled")
)
