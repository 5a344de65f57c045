// Package cache provides the small TTL cache used by data-fetch
// collaborators. The protocol engine itself holds no caches.
package cache

import (
	"time"

	"github.com/karlseguin/ccache/v3"
)

// Cache is a generic TTL cache.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T, ttl ...time.Duration)
	Delete(key string)
	Len() int
}

type memoryCache[T any] struct {
	backend    *ccache.Cache[T]
	defaultTTL time.Duration
}

// NewInMemory creates an in-memory cache bounded to maxSize entries,
// expiring entries after defaultTTL unless Set overrides it.
func NewInMemory[T any](maxSize int64, defaultTTL time.Duration) Cache[T] {
	return &memoryCache[T]{
		backend:    ccache.New(ccache.Configure[T]().MaxSize(maxSize)),
		defaultTTL: defaultTTL,
	}
}

func (c *memoryCache[T]) Get(key string) (T, bool) {
	item := c.backend.Get(key)
	if item == nil || item.Expired() {
		var zero T
		return zero, false
	}
	return item.Value(), true
}

func (c *memoryCache[T]) Set(key string, value T, ttl ...time.Duration) {
	expire := c.defaultTTL
	if len(ttl) > 0 && ttl[0] > 0 {
		expire = ttl[0]
	}
	c.backend.Set(key, value, expire)
}

func (c *memoryCache[T]) Delete(key string) {
	c.backend.Delete(key)
}

func (c *memoryCache[T]) Len() int {
	return c.backend.ItemCount()
}
