package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/opengovlab/drishti/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("cache",
	fx.Provide(New),
)

// Cache is a small Redis-backed JSON cache. A nil *Cache is valid and
// behaves as a permanent miss, so callers never need to branch on whether
// Redis is configured.
type Cache struct {
	client *redis.Client
	log    *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Cache {
	if cfg.RedisAddr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &Cache{client: client, log: log.Named("cache")}
}

// GetJSON unmarshals the cached value into out. The second return reports
// whether the key was present.
func (c *Cache) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key with a TTL. Failures are logged, not
// returned; the cache is best-effort.
func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.log.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops keys, best-effort.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn("cache invalidate failed", zap.Error(err))
	}
}
