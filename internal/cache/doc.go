// Package cache implements a single-process, in-memory LRU memo cache.
//
// Goals for this package:
//   - Make the core data structures explicit (map + intrusive doubly-linked list)
//   - Provide O(1) Get/Put/Remove via map index + recency links
//   - Support range-keyed entries that a point write can invalidate
//   - Keep misses ordinary: comma-ok results, never errors
//
// The package is not safe for concurrent use.
package cache
