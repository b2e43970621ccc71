package cache

import "memocache/internal/list"

// RemoveFunc drops every entry for which pred returns true and returns how
// many were dropped.
//
// Why a full scan?
//   - keys are not indexed by anything but identity, so any predicate over
//     them needs to look at each one
//   - it keeps the map and list trivially consistent
//
// Cost is O(Len()) regardless of how many entries match.
func (c *LRU[K, V]) RemoveFunc(pred func(key K, value V) bool) int {
	removed := 0
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if pred(el.Key, el.Value) {
			c.removeElement(el)
			removed++
		}
		el = next
	}
	c.stats.Invalidations += uint64(removed)
	return removed
}

// evictOldest drops the LRU entry to make room for a new key.
func (c *LRU[K, V]) evictOldest() bool {
	el, ok := c.order.RemoveTail()
	if !ok {
		return false
	}
	delete(c.items, el.Key)
	c.stats.Evictions++
	if c.onEvict != nil {
		c.onEvict(el.Key, el.Value)
	}
	return true
}

func (c *LRU[K, V]) removeElement(el *list.Element[K, V]) {
	delete(c.items, el.Key)
	if err := c.order.Remove(el); err != nil {
		panic("cache: corrupted recency list: " + err.Error())
	}
}
