package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Memory is an in-process Cache backed by ttlcache.
type Memory struct {
	items *ttlcache.Cache[string, []byte]
}

// NewMemory creates a Memory cache and starts its expiry loop.
func NewMemory(ttl time.Duration) *Memory {
	items := ttlcache.New[string, []byte](
		ttlcache.WithTTL[string, []byte](ttl),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	go items.Start()
	return &Memory{items: items}
}

// Get implements Cache.Get. Expired entries count as misses.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	item := m.items.Get(key)
	if item == nil || item.IsExpired() {
		return nil, false, nil
	}
	return item.Value(), true, nil
}

// Set implements Cache.Set
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.items.Set(key, value, ttlcache.DefaultTTL)
	return nil
}

// InvalidateAll implements Cache.InvalidateAll
func (m *Memory) InvalidateAll(context.Context) error {
	m.items.DeleteAll()
	return nil
}

// Close implements Cache.Close by stopping the expiry loop.
func (m *Memory) Close() error {
	m.items.Stop()
	return nil
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	return m.items.Len()
}
