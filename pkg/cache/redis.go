package cache

import (
	"context"
	"fmt"
	"time"

	"carhive/pkg/config"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis. Returns an error when REDIS_HOST is not
// configured; callers treat a nil client as "caching disabled".
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisHost == "" {
		return nil, fmt.Errorf("redis is not configured")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
