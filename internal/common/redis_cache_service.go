package common

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"infinite-experiment/crewcenter/internal/logging"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisCacheService is the CacheInterface backend shared by every instance
// behind a load balancer, so flash messages survive hopping between them.
type RedisCacheService struct {
	client *redis.Client
}

var _ CacheInterface = (*RedisCacheService)(nil)

func NewRedisCacheService(client *redis.Client) *RedisCacheService {
	return &RedisCacheService{client: client}
}

func (r *RedisCacheService) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), redisOpTimeout)
}

func (r *RedisCacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Redis cache: failed to marshal value", "key", key, "error", err.Error())
		return
	}

	ctx, cancel := r.opContext()
	defer cancel()
	if err := r.client.Set(ctx, key, data, duration).Err(); err != nil {
		logging.Warn("Redis cache: failed to set key", "key", key, "error", err.Error())
	}
}

func (r *RedisCacheService) Load(key string, dest interface{}) bool {
	ctx, cancel := r.opContext()
	defer cancel()

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false
	case err != nil:
		logging.Warn("Redis cache: failed to get key", "key", key, "error", err.Error())
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logging.Warn("Redis cache: failed to unmarshal value", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (r *RedisCacheService) Delete(key string) {
	ctx, cancel := r.opContext()
	defer cancel()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		logging.Warn("Redis cache: failed to delete key", "key", key, "error", err.Error())
	}
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}
