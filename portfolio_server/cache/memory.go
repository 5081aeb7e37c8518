package cache

import (
	"bytes"
	"context"
	"sync"
	"time"
)

type memoryCache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// NewMemoryCache returns a process scoped cache.
// Entries are never evicted.
func NewMemoryCache(opts ...Option) Cache {
	o := newOptions(opts)
	return &memoryCache{
		items: make(map[string]entry),
		now:   o.now,
	}
}

func (c *memoryCache) Add(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{value: bytes.Clone(value), createdAt: c.now(), ttl: ttl}
	return nil
}

func (c *memoryCache) Contains(_ context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[key]
	return ok, nil
}

func (c *memoryCache) load(key string) (entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	return e, ok
}

func (c *memoryCache) IsExpired(_ context.Context, key string) (bool, error) {
	e, ok := c.load(key)
	if !ok {
		return false, keyNotFound(key)
	}
	return e.isExpired(c.now()), nil
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	e, ok := c.load(key)
	if !ok {
		return nil, keyNotFound(key)
	}
	return bytes.Clone(e.value), nil
}

func (c *memoryCache) GetOrNil(_ context.Context, key string) ([]byte, error) {
	e, ok := c.load(key)
	if !ok {
		return nil, nil
	}
	return bytes.Clone(e.value), nil
}

func (c *memoryCache) TimeDelta(_ context.Context, key string) (time.Duration, error) {
	e, ok := c.load(key)
	if !ok {
		return 0, keyNotFound(key)
	}
	return c.now().Sub(e.createdAt), nil
}

// Destroy is a no-op. The cache lives as long as the process.
func (c *memoryCache) Destroy() {}

type memoryCacheFactory struct {
	c Cache
}

// NewMemoryCacheFactory returns a factory that hands out one shared cache.
func NewMemoryCacheFactory(opts ...Option) CacheFactory {
	return &memoryCacheFactory{c: NewMemoryCache(opts...)}
}

func (f *memoryCacheFactory) NewKvCache() Cache {
	return f.c
}
