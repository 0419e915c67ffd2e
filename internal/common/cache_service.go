package common

import (
	"encoding/json"
	"time"

	"infinite-experiment/crewcenter/internal/logging"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-memory cache implementation, used for single-instance deployments and tests
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpirationSeconds, cleanUpIntervalSeconds int) *CacheService {

	defaultExpiration := time.Duration(defaultExpirationSeconds) * time.Second
	cleanUpInterval := time.Duration(cleanUpIntervalSeconds) * time.Second
	c := cache.New(defaultExpiration, cleanUpInterval)
	return &CacheService{cache: c}
}

func (cs *CacheService) Set(key string, value interface{}, duration time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Warn("Cache: failed to marshal value", "key", key, "error", err.Error())
		return
	}
	cs.cache.Set(key, data, duration)
}

func (cs *CacheService) Load(key string, dest interface{}) bool {
	val, found := cs.cache.Get(key)
	if !found {
		return false
	}
	data, ok := val.([]byte)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logging.Warn("Cache: failed to unmarshal value", "key", key, "error", err.Error())
		return false
	}
	return true
}

func (cs *CacheService) Delete(key string) {
	cs.cache.Delete(key)
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
