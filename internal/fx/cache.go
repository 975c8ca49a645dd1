package fx

import (
	"context"
	"sync"
	"time"
)

// RateCache stores resolved currency-pair rates under a "FROM->TO" key.
// Entries expire by TTL only; there is no explicit invalidation.
type RateCache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, rate float64, ttl time.Duration)
}

type memoryEntry struct {
	rate      float64
	expiresAt time.Time
}

// MemoryCache is the default in-process RateCache, shared by concurrent
// request handlers.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	nowFunc func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		nowFunc: time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	if c.nowFunc().After(entry.expiresAt) {
		delete(c.entries, key)
		return 0, false
	}
	return entry.rate, true
}

func (c *MemoryCache) Set(_ context.Context, key string, rate float64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{rate: rate, expiresAt: c.nowFunc().Add(ttl)}
}
