package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/cache"
)

// MockCache implements cache.Cache in memory and records traffic.
type MockCache struct {
	GetErr error
	SetErr error

	mu            sync.Mutex
	Items         map[string][]byte
	Hits          int
	Misses        int
	Invalidations int
}

// NewMockCache creates an empty MockCache.
func NewMockCache() *MockCache {
	return &MockCache{Items: make(map[string][]byte)}
}

var _ cache.Cache = (*MockCache)(nil)

// Get implements the Cache interface
func (m *MockCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	v, ok := m.Items[key]
	if ok {
		m.Hits++
	} else {
		m.Misses++
	}
	return v, ok, nil
}

// Set implements the Cache interface
func (m *MockCache) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.Items[key] = value
	return nil
}

// InvalidateAll implements the Cache interface
func (m *MockCache) InvalidateAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Items = make(map[string][]byte)
	m.Invalidations++
	return nil
}

// Close implements the Cache interface
func (m *MockCache) Close() error { return nil }
