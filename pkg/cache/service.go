package cache

import "time"

// NoExpiration marks an item that never expires (e.g. the session token,
// which lives until logout).
const NoExpiration time.Duration = -1

// CacheService defines the behavior for the local key-value store
type CacheService interface {
	// Get retrieves a value from the store
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the store with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the store
	Delete(key string)

	// Flush removes all items
	Flush()
}
