package splay

// splay moves n to the root one rotation at a time.
//
// Each case is expressed as single-level rotations of either n or its parent:
//   - zig: the parent is the root, rotate n once
//   - zig-zig: n and its parent are same-side children, rotate the parent then n
//   - zig-zag: n and its parent are opposite-side children, rotate n twice
//
// Every step lifts n by at least one level, so the loop ends with n at the root.
func (t *Tree[K, V]) splay(n *node[K, V]) {
	t.stats.Splays++
	for n.parent != nil {
		p := n.parent
		g := p.parent
		switch {
		case g == nil:
			t.stats.Zig++
			t.rotate(n)
		case (n == p.left) == (p == g.left):
			t.stats.ZigZig++
			t.rotate(p)
			t.rotate(n)
		default:
			t.stats.ZigZag++
			t.rotate(n)
			t.rotate(n)
		}
	}
}

// rotate lifts n one level above its parent.
func (t *Tree[K, V]) rotate(n *node[K, V]) {
	if n == n.parent.left {
		t.rotateRight(n.parent)
	} else {
		t.rotateLeft(n.parent)
	}
}

// rotateRight makes n's left child the root of n's subtree.
//
//	    n            l
//	   / \          / \
//	  l   c   =>   a   n
//	 / \              / \
//	a   b            b   c
func (t *Tree[K, V]) rotateRight(n *node[K, V]) {
	t.stats.Rotations++
	l := n.left
	n.left = l.right
	if l.right != nil {
		l.right.parent = n
	}
	t.replaceChild(n, l)
	l.right = n
	n.parent = l
}

// rotateLeft makes n's right child the root of n's subtree.
func (t *Tree[K, V]) rotateLeft(n *node[K, V]) {
	t.stats.Rotations++
	r := n.right
	n.right = r.left
	if r.left != nil {
		r.left.parent = n
	}
	t.replaceChild(n, r)
	r.left = n
	n.parent = r
}

// replaceChild puts c where n hangs from its parent, or at the root.
func (t *Tree[K, V]) replaceChild(n, c *node[K, V]) {
	c.parent = n.parent
	switch {
	case n.parent == nil:
		t.root = c
	case n == n.parent.left:
		n.parent.left = c
	default:
		n.parent.right = c
	}
}
