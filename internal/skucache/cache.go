// Package skucache keeps a short-lived in-process mapping from textual SKU
// codes to the numeric SKU ids the quote API requires. It exists to spare a
// catalog round-trip per request; a process restart clears it.
package skucache

import (
	"sync"
	"time"
)

// DefaultTTL bounds how long a resolved code stays usable.
const DefaultTTL = 10 * time.Minute

type entry struct {
	id         int64
	recordedAt time.Time
}

// Cache is safe for concurrent use. Expired entries are evicted lazily on
// read; there is no capacity bound and no background sweep, since churn is
// bounded by the catalog size.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New returns a cache using the wall clock.
func New(ttl time.Duration) *Cache {
	return NewWithClock(ttl, time.Now)
}

// NewWithClock returns a cache with an injected clock, for deterministic
// TTL behavior in tests.
func NewWithClock(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached SKU id for a code. Entries at or past the TTL are
// treated as absent and removed.
func (c *Cache) Get(code string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hit, ok := c.entries[code]
	if !ok {
		return 0, false
	}
	if c.now().Sub(hit.recordedAt) >= c.ttl {
		delete(c.entries, code)
		return 0, false
	}
	return hit.id, true
}

// Set records a resolution, unconditionally overwriting any previous entry
// with a fresh timestamp.
func (c *Cache) Set(code string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[code] = entry{id: id, recordedAt: c.now()}
}

// Len reports the number of stored entries, including any not yet lazily
// evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
