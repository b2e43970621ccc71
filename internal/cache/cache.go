package cache

import (
	"errors"

	"memocache/internal/list"
)

// ErrInvalidCapacity is returned by New for a capacity that is not positive.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// LRU is a fixed-capacity key–value cache with least-recently-used eviction.
//
// The core design is explicit and "mechanical":
// a map gives O(1) key lookup, and a doubly-linked list maintains recency ordering.
//
// Ownership model:
// the list owns the entries; the map only holds handles into it. Every entry
// leaving the list (eviction, removal, invalidation, purge) leaves the map in
// the same operation, so len(items) == order.Len() always holds.
//
// LRU is not safe for concurrent use. Callers sharing one instance across
// goroutines must serialize all calls themselves.
type LRU[K comparable, V any] struct {
	capacity int
	items    map[K]*list.Element[K, V]
	order    *list.List[K, V] // Front = most recently used (MRU), Back = least recently used (LRU)

	onEvict func(key K, value V)
	stats   Stats
}

// Stats counts cache outcomes since construction or the last ResetStats.
type Stats struct {
	Hits          uint64
	Misses        uint64
	Evictions     uint64 // capacity evictions only
	Invalidations uint64 // entries dropped by RemoveFunc / Invalidate
}

// Option configures an LRU at construction.
type Option[K comparable, V any] func(*LRU[K, V])

// WithEvictCallback registers fn to be called with every entry dropped to make
// room for a new key. Explicit removals do not trigger it.
func WithEvictCallback[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *LRU[K, V]) { c.onEvict = fn }
}

// New constructs an empty cache holding at most capacity entries.
func New[K comparable, V any](capacity int, opts ...Option[K, V]) (*LRU[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element[K, V], capacity),
		order:    list.New[K, V](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get reads a key and marks it most recently used.
//
// A miss is an ordinary outcome: ok is false and value is the zero value.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		return value, false
	}
	c.stats.Hits++
	c.touch(el)
	return el.Value, true
}

// Put writes/overwrites a key and marks it most recently used.
//
// When key is new and the cache is full, the least recently used entry is
// dropped first; evicted reports whether that happened.
//
// Complexity:
//   - O(1) to locate/insert
//   - O(1) eviction
func (c *LRU[K, V]) Put(key K, value V) (evicted bool) {
	if el, ok := c.items[key]; ok {
		// Updating counts as use; move to MRU.
		el.Value = value
		c.touch(el)
		return false
	}

	if len(c.items) >= c.capacity {
		evicted = c.evictOldest()
	}
	c.items[key] = c.order.PushFront(key, value)
	return evicted
}

// Peek reads a key without updating its recency.
func (c *LRU[K, V]) Peek(key K) (value V, ok bool) {
	el, ok := c.items[key]
	if !ok {
		return value, false
	}
	return el.Value, true
}

// Contains reports whether key is cached, without updating its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Remove drops key if present and reports whether it was.
func (c *LRU[K, V]) Remove(key K) bool {
	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}
	return ok
}

// GetOldest returns the least recently used entry without touching it.
func (c *LRU[K, V]) GetOldest() (key K, value V, ok bool) {
	el := c.order.Back()
	if el == nil {
		return key, value, false
	}
	return el.Key, el.Value, true
}

// RemoveOldest drops and returns the least recently used entry.
func (c *LRU[K, V]) RemoveOldest() (key K, value V, ok bool) {
	el := c.order.Back()
	if el == nil {
		return key, value, false
	}
	key, value = el.Key, el.Value
	c.removeElement(el)
	return key, value, true
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int { return len(c.items) }

// Cap returns the capacity the cache was created with.
func (c *LRU[K, V]) Cap() int { return c.capacity }

// Keys returns keys in MRU -> LRU order.
func (c *LRU[K, V]) Keys() []K {
	out := make([]K, 0, len(c.items))
	for el := c.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Purge drops every entry. Capacity and options are kept; stats are not reset.
func (c *LRU[K, V]) Purge() {
	c.order.Init()
	clear(c.items)
}

// Stats returns a snapshot of the outcome counters.
func (c *LRU[K, V]) Stats() Stats { return c.stats }

// ResetStats zeroes the outcome counters.
func (c *LRU[K, V]) ResetStats() { c.stats = Stats{} }

// touch moves a live entry to MRU. The element always comes from c.items, so
// an ownership error means the map and list have diverged.
func (c *LRU[K, V]) touch(el *list.Element[K, V]) {
	if err := c.order.MoveToFront(el); err != nil {
		panic("cache: corrupted recency list: " + err.Error())
	}
}
