// Package cache holds short-lived copies of task-list pages. Entries are
// opaque bytes keyed by string; writers invalidate everything at once since a
// single task change can shift every page.
package cache

import (
	"context"
	"fmt"

	"github.com/phrazzld/task-api/internal/config"
)

// Cache stores byte values with a fixed TTL.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for the cache's TTL.
	Set(ctx context.Context, key string, value []byte) error

	// InvalidateAll drops every entry.
	InvalidateAll(ctx context.Context) error

	// Close releases background resources.
	Close() error
}

// DefaultKeyPrefix namespaces keys in shared backends.
const DefaultKeyPrefix = "taskapi:"

// New selects a backend from configuration: a zero TTL disables caching,
// a Redis URL selects Redis, and anything else uses process memory.
func New(ctx context.Context, cfg config.CacheConfig) (Cache, error) {
	ttl := cfg.TTL()
	switch {
	case ttl <= 0:
		return Noop{}, nil
	case cfg.RedisURL != "":
		c, err := NewRedis(ctx, cfg.RedisURL, DefaultKeyPrefix, ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to set up redis cache: %w", err)
		}
		return c, nil
	default:
		return NewMemory(ttl), nil
	}
}

// Noop is a Cache that stores nothing.
type Noop struct{}

// Get implements Cache.Get. It always misses.
func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set implements Cache.Set
func (Noop) Set(context.Context, string, []byte) error { return nil }

// InvalidateAll implements Cache.InvalidateAll
func (Noop) InvalidateAll(context.Context) error { return nil }

// Close implements Cache.Close
func (Noop) Close() error { return nil }

// Kind names the backend of c for logging.
func Kind(c Cache) string {
	switch c.(type) {
	case *Memory:
		return "memory"
	case *Redis:
		return "redis"
	default:
		return "none"
	}
}

