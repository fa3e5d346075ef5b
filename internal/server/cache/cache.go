// Package cache holds rendered registry views between mutations.
// Entries expire after a TTL and the server flushes everything on any
// registry hook, so a cached view never outlives the state it shows.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(defaultTTL, cleanupInterval)}
}

// Key joins parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}

// GetOrLoad returns the cached value for key, calling load and caching its
// result on a miss. Errors are not cached.
func (c *Cache) GetOrLoad(key string, load func() (any, error)) (any, error) {
	if v, ok := c.store.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	c.store.Set(key, v, gocache.DefaultExpiration)
	return v, nil
}

// Clear removes all items.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items, expired ones included until the
// next cleanup.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
