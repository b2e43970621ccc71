package cache

import "fmt"

// Range is a closed index interval [L, R] used as a cache key for aggregates
// computed over a span of positions.
type Range struct {
	L, R int
}

// Contains reports whether L <= index <= R.
func (r Range) Contains(index int) bool {
	return r.L <= index && index <= r.R
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.L, r.R)
}

// RangeCache is an LRU keyed by Range whose entries can be invalidated by a
// write to any position they span.
type RangeCache[V any] struct {
	*LRU[Range, V]
}

// NewRange constructs an empty RangeCache holding at most capacity entries.
func NewRange[V any](capacity int, opts ...Option[Range, V]) (*RangeCache[V], error) {
	lru, err := New[Range, V](capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &RangeCache[V]{LRU: lru}, nil
}

// Invalidate drops every entry whose range contains index and returns how
// many were dropped. Entries not spanning index keep their value and recency.
//
// Ranges are not indexed, so this is a full O(Len()) scan. It is a known
// scaling limit for large capacities with frequent writes.
func (c *RangeCache[V]) Invalidate(index int) int {
	return c.RemoveFunc(func(key Range, _ V) bool {
		return key.Contains(index)
	})
}
