// Package splay implements a self-adjusting binary search tree used as an
// unbounded memo store.
//
// Every successful Insert or Find splays the touched node to the root, so hot
// keys are found near the top of the tree on later lookups.
package splay

import "cmp"

// Tree is a splay tree mapping ordered keys to values.
//
// Ordering: keys smaller than a node go left, everything else (including
// equal keys) goes right. Insert never overwrites: inserting a key that is
// already present adds a second node, and since the new node is splayed to
// the root, Find returns the most recently inserted value for that key.
//
// There is no deletion. The zero value is an empty tree ready to use.
// Not safe for concurrent use.
type Tree[K cmp.Ordered, V any] struct {
	root  *node[K, V]
	size  int
	stats Stats
}

// node children are owned by the node; parent is a back-reference used only
// to climb while splaying.
type node[K cmp.Ordered, V any] struct {
	key    K
	value  V
	parent *node[K, V]
	left   *node[K, V]
	right  *node[K, V]
}

// Stats counts restructuring work since construction or the last ResetStats.
type Stats struct {
	Splays    uint64
	Rotations uint64
	Zig       uint64
	ZigZig    uint64
	ZigZag    uint64
}

// New returns an empty tree.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return new(Tree[K, V])
}

// Insert adds key/value and splays the new node to the root.
func (t *Tree[K, V]) Insert(key K, value V) {
	n := &node[K, V]{key: key, value: value}
	t.size++
	if t.root == nil {
		t.root = n
		return
	}

	var parent *node[K, V]
	for cur := t.root; cur != nil; {
		parent = cur
		if key < cur.key {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	n.parent = parent
	if key < parent.key {
		parent.left = n
	} else {
		parent.right = n
	}
	t.splay(n)
}

// Find looks up key. On a hit the matching node is splayed to the root; a
// miss leaves the tree shape untouched.
func (t *Tree[K, V]) Find(key K) (value V, ok bool) {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			t.splay(n)
			return n.value, true
		}
	}
	return value, false
}

// Len returns the number of nodes, counting duplicate keys separately.
func (t *Tree[K, V]) Len() int { return t.size }

// Root returns the entry at the root, which is the most recently inserted or
// found key.
func (t *Tree[K, V]) Root() (key K, value V, ok bool) {
	if t.root == nil {
		return key, value, false
	}
	return t.root.key, t.root.value, true
}

// Purge drops every node. Stats are kept.
func (t *Tree[K, V]) Purge() {
	t.root = nil
	t.size = 0
}

// Stats returns a snapshot of the restructuring counters.
func (t *Tree[K, V]) Stats() Stats { return t.stats }

// ResetStats zeroes the restructuring counters.
func (t *Tree[K, V]) ResetStats() { t.stats = Stats{} }
