package splay

// Walk calls fn for every entry in key order until fn returns false.
// It does not splay.
func (t *Tree[K, V]) Walk(fn func(key K, value V) bool) {
	// Iterative in-order walk; the tree can be a long spine after sorted
	// inserts, so recursion depth is not bounded by log(n).
	stack := make([]*node[K, V], 0, 32)
	n := t.root
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, n)
			n = n.left
		}
		n = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n.key, n.value) {
			return
		}
		n = n.right
	}
}

// Keys returns all keys in non-decreasing order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	t.Walk(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree[K, V]) Height() int {
	if t.root == nil {
		return 0
	}
	type level struct {
		n     *node[K, V]
		depth int
	}
	height := 0
	stack := []level{{t.root, 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		height = max(height, top.depth)
		if top.n.left != nil {
			stack = append(stack, level{top.n.left, top.depth + 1})
		}
		if top.n.right != nil {
			stack = append(stack, level{top.n.right, top.depth + 1})
		}
	}
	return height
}
