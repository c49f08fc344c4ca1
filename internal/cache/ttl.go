package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long a query result stays fresh
const DefaultTTL = 8 * time.Second

type entry[V any] struct {
	createdAt time.Time
	value     V
}

// TTLCache memoizes values by key for a fixed time-to-live. Expired entries
// are evicted lazily on Get; there is no size bound and no background sweep.
// Values are copied with clone on the way in and on the way out, so callers
// never share memory with a stored entry.
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	clone   func(V) V
	now     func() time.Time
	entries map[string]entry[V]
}

// New creates a cache. A non-positive ttl selects DefaultTTL and a nil clone
// stores values as given.
func New[V any](ttl time.Duration, clone func(V) V) *TTLCache[V] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clone == nil {
		clone = func(v V) V { return v }
	}
	return &TTLCache[V]{
		ttl:     ttl,
		clone:   clone,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

// SetClock replaces the time source
func (c *TTLCache[V]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// TTL returns the configured time-to-live
func (c *TTLCache[V]) TTL() time.Duration {
	return c.ttl
}

// Get returns a copy of the value stored under key, if still fresh
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		delete(c.entries, key)
		return zero, false
	}
	return c.clone(e.value), true
}

// Put stores a copy of value under key, replacing any previous entry
func (c *TTLCache[V]) Put(key string, value V) {
	stored := c.clone(value)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{createdAt: c.now(), value: stored}
}

// Purge drops every entry
func (c *TTLCache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Len counts stored entries, expired or not
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
