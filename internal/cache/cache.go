// Package cache stores JSON-encoded values under string keys with a TTL.
package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"
)

// Cache is the storage contract shared by the memory and Redis backends.
// Get reports a hit only when dest was filled. A non-positive ttl on Set
// stores the value without expiry.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// A zero expiration never expires, matching Redis for ttl <= 0.
type item struct {
	value      []byte
	expiration int64
}

func (it item) expired(now int64) bool {
	return it.expiration > 0 && now > it.expiration
}

// Memory is an in-process TTL cache.
type Memory struct {
	mu    sync.RWMutex
	items map[string]item
	now   func() time.Time
	stop  chan struct{}
	once  sync.Once
}

// NewMemory returns a memory cache that sweeps expired entries every
// cleanupEvery. A non-positive interval disables the sweeper.
func NewMemory(cleanupEvery time.Duration) *Memory {
	m := &Memory{
		items: make(map[string]item),
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	if cleanupEvery > 0 {
		go m.cleanupExpired(cleanupEvery)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string, dest any) bool {
	m.mu.RLock()
	it, found := m.items[key]
	m.mu.RUnlock()
	if !found || it.expired(m.now().UnixNano()) {
		return false
	}
	return json.Unmarshal(it.value, dest) == nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	it := item{value: data}
	if ttl > 0 {
		it.expiration = m.now().Add(ttl).UnixNano()
	}
	m.items[key] = it
	return nil
}

func (m *Memory) DeleteByPrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.items {
		if strings.HasPrefix(key, prefix) {
			delete(m.items, key)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Close stops the sweeper.
func (m *Memory) Close() {
	m.once.Do(func() { close(m.stop) })
}

func (m *Memory) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now().UnixNano()
	for key, it := range m.items {
		if it.expired(now) {
			delete(m.items, key)
		}
	}
}
