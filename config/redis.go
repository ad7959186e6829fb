package config

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the session cache. Redis is optional: with no address
// configured or an unreachable server the returned client is nil and the
// auth middleware falls back to the database on every request.
func ConnectRedis(ctx context.Context, addr string) *redis.Client {
	if addr == "" {
		slog.Warn("REDIS_ADDR not set, session caching disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Could not connect to Redis, session caching disabled", "error", err)
		return nil
	}

	slog.Info("Connected to Redis")
	return rdb
}
