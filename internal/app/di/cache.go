package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"company_backend/internal/platform/cache"
	redisclient "company_backend/internal/platform/redis"
)

// NewViewCache connects Redis and wraps it in a page cache.
// Without REDIS_HOST, or when Redis does not answer, the returned cache is disabled
// and the returned client is nil; the service then runs uncached.
func NewViewCache(ctx context.Context, cfg cache.Config) (*cache.ViewCache, *redis.Client) {
	rcfg := redisclient.LoadConfig()
	if !rcfg.Enabled() {
		slog.Info("REDIS_HOST is not set; page cache disabled")
		return cache.NewViewCache(nil, cfg), nil
	}
	rdb, err := redisclient.NewRedisClient(ctx, rcfg)
	if err != nil {
		slog.Warn("page cache disabled", "error", err)
		return cache.NewViewCache(nil, cfg), nil
	}
	return cache.NewViewCache(rdb, cfg), rdb
}
