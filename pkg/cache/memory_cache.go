package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache returns a process-local Cache. Entries without a ttl use
// defaultTTL; expired entries are swept every cleanupInterval.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) Cache {
	return &memoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (m *memoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	v, ok := m.store.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	s, ok := v.(string)
	if !ok {
		return "", ErrCacheMiss
	}
	return s, nil
}

func (m *memoryCache) Del(_ context.Context, key string) error {
	m.store.Delete(key)
	return nil
}
