package gateway

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// ttlCache is a small in-process cache for gateway responses. Expired
// entries are kept until the next Get so callers can fall back to a stale
// snapshot when the gateway is unreachable.
type ttlCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	now func() time.Time
}

func newTTLCache() *ttlCache {
	return &ttlCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached value even when expired; the second return value
// reports presence, not freshness. Set always refreshes the deadline, so a
// fresh fetch ahead of an expired read keeps the cache usable as a stale
// fallback.
func (c *ttlCache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return entry.value, true
}

// Fresh reports whether the entry exists and has not expired.
func (c *ttlCache) Fresh(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	return ok && c.now().Before(entry.expiresAt)
}

func (c *ttlCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}
