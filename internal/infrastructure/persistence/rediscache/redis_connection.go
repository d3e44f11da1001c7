// Package rediscache provides the tenant lookup cache used on the ingest hot
// path. Resolutions are held in a small in-process layer in front of Redis so
// a burst of detections for the same sensor costs one database read.
package rediscache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/vigiaai/vigia-provision/internal/config"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
	"github.com/vigiaai/vigia-provision/pkg/logger"
)

// NewRedisClient opens the Redis connection and verifies it with a ping.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Error(ctx, "Redis ping failed", err, logger.String("addr", cfg.Addr))
		return nil, apperrors.ErrInternal("redis connection failed").WithCause(err)
	}

	log.Info(ctx, "Redis connection established", logger.String("addr", cfg.Addr))
	return client, nil
}
