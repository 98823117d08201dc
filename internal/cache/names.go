// Package cache provides the in-memory TTL cache for resolved name
// variants. Resolving a queried name into its stored variants is the
// hottest store round-trip, so it is the only thing the engine caches.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// NameCache caches resolved name-variant lists keyed by the queried
// name. Entries expire on a short TTL; the case store remains the
// source of truth.
type NameCache struct {
	cache *gocache.Cache
}

// NewNameCache creates a name cache with the given TTL.
func NewNameCache(ttl time.Duration) *NameCache {
	return &NameCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached variant list for a queried name.
func (c *NameCache) Get(queried string) ([]string, bool) {
	if val, found := c.cache.Get(key(queried)); found {
		return val.([]string), true
	}
	return nil, false
}

// Set stores a resolved variant list under the queried name.
func (c *NameCache) Set(queried string, variants []string) {
	c.cache.Set(key(queried), variants, gocache.DefaultExpiration)
}

// Flush drops all entries; used after a data load.
func (c *NameCache) Flush() {
	c.cache.Flush()
}

func key(queried string) string {
	return strings.ToLower(strings.TrimSpace(queried))
}
