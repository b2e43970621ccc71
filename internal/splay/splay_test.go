package splay

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkTree verifies parent links and BST ordering of the whole tree.
func checkTree[K ordered, V any](t *testing.T, tr *Tree[K, V]) {
	t.Helper()
	if tr.root == nil {
		require.Equal(t, 0, tr.Len())
		return
	}
	require.Nil(t, tr.root.parent, "root must not have a parent")

	count := 0
	var visit func(n *node[K, V])
	visit = func(n *node[K, V]) {
		count++
		if n.left != nil {
			require.Same(t, n, n.left.parent, "left child of %v has wrong parent", n.key)
			require.LessOrEqual(t, n.left.key, n.key)
			visit(n.left)
		}
		if n.right != nil {
			require.Same(t, n, n.right.parent, "right child of %v has wrong parent", n.key)
			require.GreaterOrEqual(t, n.right.key, n.key)
			visit(n.right)
		}
		if n.left != nil && n.right != nil {
			require.NotSame(t, n.left, n.right)
		}
	}
	visit(tr.root)
	require.Equal(t, tr.Len(), count)
	require.True(t, slices.IsSorted(tr.Keys()), "in-order keys must be sorted: %v", tr.Keys())
}

// shape renders the tree in pre-order with explicit nil children.
func shape[K ordered, V any](tr *Tree[K, V]) string {
	var b strings.Builder
	var visit func(n *node[K, V])
	visit = func(n *node[K, V]) {
		if n == nil {
			b.WriteString(".")
			return
		}
		fmt.Fprintf(&b, "(%v ", n.key)
		visit(n.left)
		b.WriteString(" ")
		visit(n.right)
		b.WriteString(")")
	}
	visit(tr.root)
	return b.String()
}

type ordered interface{ ~int | ~string }

func TestEmptyTree(t *testing.T) {
	var tr Tree[int, string]
	_, ok := tr.Find(1)
	assert.False(t, ok)
	_, _, ok = tr.Root()
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Len())
	assert.Equal(t, 0, tr.Height())
	assert.Empty(t, tr.Keys())
}

func TestFindSplaysToRoot(t *testing.T) {
	tr := New[int, string]()
	tr.Insert(5, "five")
	tr.Insert(3, "three")
	tr.Insert(8, "eight")

	v, ok := tr.Find(3)
	require.True(t, ok)
	assert.Equal(t, "three", v)

	k, _, ok := tr.Root()
	require.True(t, ok)
	assert.Equal(t, 3, k)
	assert.Equal(t, []int{3, 5, 8}, tr.Keys())
	assert.Equal(t, "(3 . (5 . (8 . .)))", shape(tr))
	checkTree(t, tr)

	assert.Equal(t, Stats{Splays: 3, Rotations: 5, Zig: 1, ZigZig: 2}, tr.Stats())
}

func TestZigZag(t *testing.T) {
	tr := New[int, int]()
	tr.Insert(5, 0)
	tr.Insert(3, 0)
	assert.Equal(t, "(3 . (5 . .))", shape(tr))

	tr.Insert(4, 0)
	assert.Equal(t, "(4 (3 . .) (5 . .))", shape(tr))
	assert.Equal(t, Stats{Splays: 2, Rotations: 3, Zig: 1, ZigZag: 1}, tr.Stats())
	checkTree(t, tr)
}

func TestZigZigRotatesParentFirst(t *testing.T) {
	tr := New[int, int]()
	// Descending inserts zig once each and leave the right spine 1 -> 2 -> 3.
	tr.Insert(3, 0)
	tr.Insert(2, 0)
	tr.Insert(1, 0)
	assert.Equal(t, "(1 . (2 . (3 . .)))", shape(tr))

	tr.ResetStats()
	_, ok := tr.Find(3)
	require.True(t, ok)

	// Rotating the parent first gives the mirrored spine, not a balanced tree.
	assert.Equal(t, "(3 (2 (1 . .) .) .)", shape(tr))
	assert.Equal(t, Stats{Splays: 1, Rotations: 2, ZigZig: 1}, tr.Stats())
	checkTree(t, tr)
}

func TestInsertSplaysToRoot(t *testing.T) {
	tr := New[int, int]()
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		k := rng.Intn(200)
		tr.Insert(k, i)
		root, v, ok := tr.Root()
		require.True(t, ok)
		require.Equal(t, k, root)
		require.Equal(t, i, v)
	}
	checkTree(t, tr)
	assert.Equal(t, 500, tr.Len())
}

func TestRoundTrip(t *testing.T) {
	tr := New[string, int]()
	for i, k := range []string{"m", "c", "x", "a", "e", "q", "z"} {
		tr.Insert(k, i)
		v, ok := tr.Find(k)
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	checkTree(t, tr)
}

func TestMissKeepsShape(t *testing.T) {
	tr := New[int, int]()
	for _, k := range []int{50, 20, 70, 10, 30, 60, 80} {
		tr.Insert(k, k)
	}
	before := shape(tr)
	stats := tr.Stats()

	for _, k := range []int{0, 25, 55, 65, 99} {
		_, ok := tr.Find(k)
		assert.False(t, ok)
	}
	assert.Equal(t, before, shape(tr))
	assert.Equal(t, stats, tr.Stats())
}

func TestDuplicateKeysShadow(t *testing.T) {
	tr := New[int, string]()
	tr.Insert(5, "old")
	tr.Insert(5, "new")

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, []int{5, 5}, tr.Keys())
	v, ok := tr.Find(5)
	require.True(t, ok)
	assert.Equal(t, "new", v)
	checkTree(t, tr)
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	tr := New[int, int]()
	want := map[int]int{}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 3000; i++ {
		k := rng.Intn(400)
		if _, seen := want[k]; !seen && rng.Intn(2) == 0 {
			tr.Insert(k, k*2)
			want[k] = k * 2
			continue
		}
		v, ok := tr.Find(k)
		_, present := want[k]
		require.Equal(t, present, ok, "key %d", k)
		if ok {
			require.Equal(t, want[k], v)
			root, _, _ := tr.Root()
			require.Equal(t, k, root)
		}
	}
	checkTree(t, tr)
	require.Equal(t, len(want), tr.Len())
}

func TestWalkStopsEarly(t *testing.T) {
	tr := New[int, int]()
	for k := 10; k > 0; k-- {
		tr.Insert(k, k)
	}
	var got []int
	tr.Walk(func(k, _ int) bool {
		got = append(got, k)
		return k < 4
	})
	assert.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestHeightOfSortedInserts(t *testing.T) {
	tr := New[int, int]()
	for k := 0; k < 100; k++ {
		tr.Insert(k, k)
	}
	// Ascending inserts always attach at the root's right and zig once, so
	// the tree degenerates into a left spine.
	assert.Equal(t, 100, tr.Height())
	assert.Equal(t, uint64(99), tr.Stats().Zig)

	tr.Purge()
	assert.Equal(t, 0, tr.Len())
	_, ok := tr.Find(5)
	assert.False(t, ok)
}
