package workload

import (
	"context"
	"math/big"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memocache/internal/cache"
	"memocache/internal/splay"
)

func TestGenerateQueriesBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const n = 50
	queries := GenerateQueries(rng, n, 2000, 0.5)
	require.Len(t, queries, 2000)

	reads := 0
	for _, q := range queries {
		switch q.Kind {
		case Read:
			reads++
			require.True(t, 0 <= q.A && q.A <= q.B && q.B < n, "bad range %+v", q)
		case Update:
			require.True(t, 0 <= q.A && q.A < n, "bad index %+v", q)
			require.True(t, 1 <= q.B && q.B <= n, "bad value %+v", q)
		}
	}
	assert.InDelta(t, 1000, reads, 150)

	assert.Len(t, GenerateQueries(rng, n, 0, 0.5), 0)
	for _, q := range GenerateQueries(rng, n, 100, 1) {
		assert.Equal(t, Read, q.Kind)
	}
}

func TestCachedRangesMatchUncached(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	const n = 200
	arr := NewArray(rng, n)
	// A narrow key space makes cache hits and invalidations frequent.
	queries := GenerateQueries(rng, n, 5000, 0.7)
	for i := range queries {
		if queries[i].Kind == Read {
			queries[i].A %= 20
			queries[i].B = queries[i].A + queries[i].B%5
		}
	}

	plain := slices.Clone(arr)
	want, err := RunRanges(context.Background(), plain, queries, nil)
	require.NoError(t, err)
	assert.False(t, want.Cached)

	c, err := cache.NewRange[int64](16)
	require.NoError(t, err)
	got, err := RunRanges(context.Background(), arr, queries, c)
	require.NoError(t, err)

	assert.True(t, got.Cached)
	assert.Equal(t, want.Checksum, got.Checksum)
	assert.Equal(t, want.Reads, got.Reads)
	assert.Equal(t, want.Updates, got.Updates)
	assert.Equal(t, plain, arr)
	assert.NotZero(t, got.Stats.Hits)
	assert.NotZero(t, got.Stats.Invalidations)
	assert.LessOrEqual(t, c.Len(), 16)
}

func TestRunRangesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rng := rand.New(rand.NewSource(1))
	_, err := RunRanges(ctx, NewArray(rng, 10), GenerateQueries(rng, 10, 10, 0.5), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFib(t *testing.T) {
	want := map[int]int64{0: 0, 1: 1, 2: 1, 10: 55, 50: 12586269025, 90: 2880067194370816120}

	c, err := cache.New[int, *big.Int](1000)
	require.NoError(t, err)
	tree := splay.New[int, *big.Int]()
	for n, v := range want {
		assert.Equal(t, v, FibLRU(n, c).Int64(), "lru fib(%d)", n)
		assert.Equal(t, v, FibSplay(n, tree).Int64(), "splay fib(%d)", n)
	}

	// Beyond int64, both stores must still agree.
	big300, ok := new(big.Int).SetString("222232244629420445529739893461909967206666939096499764990979600", 10)
	require.True(t, ok)
	assert.Equal(t, 0, big300.Cmp(FibLRU(300, c)))
	assert.Equal(t, 0, big300.Cmp(FibSplay(300, tree)))
	assert.True(t, slices.IsSorted(tree.Keys()))
}

func TestFibLRUSmallCapacity(t *testing.T) {
	c, err := cache.New[int, *big.Int](2)
	require.NoError(t, err)
	assert.Equal(t, int64(6765), FibLRU(20, c).Int64())
	assert.LessOrEqual(t, c.Len(), 2)
}

func TestCompareFib(t *testing.T) {
	rows, err := CompareFib(context.Background(), []int{0, 10, 20}, 3, 100)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 20, rows[2].N)

	_, err = CompareFib(context.Background(), []int{1}, 1, 0)
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rows, err = CompareFib(ctx, []int{5}, 1, 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rows)
}
