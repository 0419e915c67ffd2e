package common

import "time"

// CacheInterface defines the contract for cache implementations.
// Values are stored encoded so that the in-memory and Redis backends behave the same.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Load decodes the value stored under key into dest.
	// Returns false when the key is missing or cannot be decoded.
	Load(key string, dest interface{}) bool

	// Delete removes a value from cache by key
	Delete(key string)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
