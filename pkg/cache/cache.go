package cache

import (
	"context"
	"errors"
	"time"
)

// NoExpiration pins an entry until it is explicitly deleted.
const NoExpiration time.Duration = -1

// ErrKeyNotFound is returned by Get when the key is absent or expired.
var ErrKeyNotFound = errors.New("key not found in cache")

// Cache is the backend-agnostic key/value store used for read-through
// lookups. Values are stored as strings (callers JSON-encode structured
// data). Implementations do not lock across operations - callers own any
// multi-step synchronization.
type Cache interface {
	// Get returns the value for key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) (interface{}, error)

	// Set stores value under key with the given TTL. Use NoExpiration to
	// keep the entry until deleted.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// GetByPattern returns all entries whose keys match a glob-style
	// pattern (e.g. "product:*").
	GetByPattern(ctx context.Context, pattern string) (map[string]interface{}, error)
}
