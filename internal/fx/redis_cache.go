package fx

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a RateCache shared across instances. Cache failures are never
// fatal for a conversion; they degrade to a provider call.
type RedisCache struct {
	client *redis.Client
	log    *slog.Logger
}

func NewRedisCache(client *redis.Client, log *slog.Logger) *RedisCache {
	return &RedisCache{client: client, log: log}
}

func (c *RedisCache) Get(ctx context.Context, key string) (float64, bool) {
	val, err := c.client.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("fx cache get failed", "key", key, "error", err)
		}
		return 0, false
	}
	rate, err := strconv.ParseFloat(val, 64)
	if err != nil {
		c.log.Warn("fx cache entry corrupt", "key", key, "value", val)
		return 0, false
	}
	return rate, true
}

func (c *RedisCache) Set(ctx context.Context, key string, rate float64, ttl time.Duration) {
	val := strconv.FormatFloat(rate, 'f', -1, 64)
	if err := c.client.Set(ctx, cacheKey(key), val, ttl).Err(); err != nil {
		c.log.Warn("fx cache set failed", "key", key, "error", err)
	}
}

func cacheKey(pair string) string {
	return "fx:rate:" + pair
}
