package images

import (
	"context"
	"sync"
	"time"

	"country-explorer/internal/common/database"

	"github.com/redis/go-redis/v9"
)

// Cache is the TTL-bounded URL cache the resolver writes through. Entries
// past their TTL are treated as absent.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

const cacheKeyPrefix = "image:"

// RedisCache backs the Cache interface with the shared Redis client. Redis
// evicts on TTL itself, so Get never sees a stale entry.
type RedisCache struct {
	client *database.RedisClient
}

func NewRedisCache(client *database.RedisClient) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	value, err := c.client.Get(ctx, cacheKeyPrefix+key)
	if err == redis.Nil || err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key, url string, ttl time.Duration) {
	// Best effort: a failed cache write only costs a provider call later.
	_ = c.client.Set(ctx, cacheKeyPrefix+key, url, ttl)
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, cacheKeyPrefix+key)
}

// MemoryCache is a process-local Cache for tests and cache-less deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	url       string
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.url, true
}

func (c *MemoryCache) Set(_ context.Context, key, url string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{url: url, expiresAt: c.now().Add(ttl)}
}

func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
