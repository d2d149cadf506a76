package store

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/repository"
	"omni_notifications/internal/store/memory"
	"omni_notifications/internal/store/redis"
)

// NewStore returns the Redis-backed store when an address is configured,
// otherwise the in-memory fallback. A failed ping is fatal at boot; store
// errors after that propagate to callers without retry.
func NewStore(cfg *config.Config, logger *zap.Logger) (repository.NotificationStore, error) {
	if cfg.RedisAddr == "" {
		return memory.New(logger), nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return nil, err
	}

	return redis.New(client, logger), nil
}
