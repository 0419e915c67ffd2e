package common

import (
	"context"
	"fmt"
	"time"

	"infinite-experiment/crewcenter/internal/config"
	"infinite-experiment/crewcenter/internal/logging"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to Redis using the given config. A failed ping is
// returned as an error alongside the client; the pool keeps retrying.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	logging.Info("Initializing Redis client", "addr", addr, "db", cfg.DB)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return client, fmt.Errorf("failed to ping redis: %w", err)
	}

	logging.Info("Connected to Redis", "addr", addr)
	return client, nil
}
