// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import (
	"context"
	"time"
)

// Cache defines the interface for key/value records.
// The feed pipeline keeps its last-update timestamp in one; implementations
// can be SQLite, Redis, or in-memory.
//
// Example usage:
//
//	cache := someCache // implements Cache interface
//
//	// Record the fetch time
//	err := cache.Set(ctx, "last_feed_update:timestamp", []byte("1710072000000"), 0)
//
//	// Read it back
//	data, err := cache.Get(ctx, "last_feed_update:timestamp")
//	if err != nil {
//		// missing record, treat as never fetched
//	}
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns the cached data as []byte or an error if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with the given key and TTL.
	// If ttl is 0, the value should be stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}
