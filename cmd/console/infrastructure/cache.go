package infrastructure

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"user-crud-console/internal/config"
	redisclient "user-crud-console/pkg/redis"
)

// NewRedisClient creates the Redis client backing the listing cache.
func NewRedisClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	rdb, err := redisclient.NewClient(ctx, redisclient.Config{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}
