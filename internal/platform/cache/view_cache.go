package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// scanCount is the COUNT hint passed to SCAN while sweeping a pattern.
const scanCount = 200

// Entry is a cached HTTP response.
type Entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// ViewCache stores rendered responses in Redis, grouped by label.
// A nil Redis client disables caching: reads always miss and writes are no-ops.
type ViewCache struct {
	rdb  *redis.Client
	keys KeyBuilder
	ttl  time.Duration
}

// NewViewCache creates a ViewCache. If cfg.TTL is 0 it defaults to 300 seconds.
func NewViewCache(rdb *redis.Client, cfg Config) *ViewCache {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	return &ViewCache{rdb: rdb, keys: cfg.Keys(), ttl: cfg.TTL}
}

// Enabled reports whether a Redis client is configured.
func (c *ViewCache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Keys returns the key builder used by this cache.
func (c *ViewCache) Keys() KeyBuilder {
	return c.keys
}

// Get returns the entry stored under key. Redis errors and corrupted entries count as a miss.
func (c *ViewCache) Get(ctx context.Context, key string) (*Entry, bool) {
	if !c.Enabled() {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	return &e, true
}

// Set stores e under key for the configured TTL and records the key in the label index (best effort).
func (c *ViewCache) Set(ctx context.Context, label, key string, e Entry) {
	if !c.Enabled() {
		return
	}
	b, err := json.Marshal(e)
	if err != nil {
		slog.Warn("cache entry encode failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
		return
	}
	idx := c.keys.IndexKey(label)
	if err := c.rdb.SAdd(ctx, idx, key).Err(); err != nil {
		slog.Warn("cache index update failed", "index", idx, "error", err)
		return
	}
	if err := c.rdb.Expire(ctx, idx, c.ttl).Err(); err != nil {
		slog.Warn("cache index expire failed", "index", idx, "error", err)
	}
}

// Invalidate removes every entry stored under label.
// Indexed keys are deleted first; a pattern sweep then catches entries written without the index.
func (c *ViewCache) Invalidate(ctx context.Context, label string) error {
	if !c.Enabled() {
		return nil
	}
	idx := c.keys.IndexKey(label)
	members, err := c.rdb.SMembers(ctx, idx).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if err := c.rdb.Del(ctx, append(members, idx)...).Err(); err != nil {
		return err
	}
	return c.deleteByPattern(ctx, c.keys.Pattern(label))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *ViewCache) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, scanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
