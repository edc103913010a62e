package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/flowdraft/flowdraft/pkg/cache"
)

// NewCache creates a result cache. An empty URL selects the in-process
// memory cache; anything else is treated as a Redis URL.
func NewCache(ctx context.Context, logger *slog.Logger, redisURL string) cache.Cache {
	if redisURL == "" {
		return cache.NewMemory()
	}

	redisCache, err := cache.NewRedis(ctx, redisURL)
	if err != nil {
		panic(fmt.Errorf("failed to connect to redis: %w", err))
	}

	logger.Debug("connected result cache to redis")

	return redisCache
}
