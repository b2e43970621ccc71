package workload

import (
	"context"
	"math/big"
	"time"

	"github.com/apex/log"

	"memocache/internal/cache"
	"memocache/internal/splay"
)

// FibLRU returns the n-th Fibonacci number, memoising intermediate results
// in c. Entries evicted from c are simply recomputed.
func FibLRU(n int, c *cache.LRU[int, *big.Int]) *big.Int {
	if n <= 1 {
		return big.NewInt(int64(n))
	}
	if v, ok := c.Get(n); ok {
		return v
	}
	res := new(big.Int).Add(FibLRU(n-1, c), FibLRU(n-2, c))
	c.Put(n, res)
	return res
}

// FibSplay returns the n-th Fibonacci number, memoising intermediate results
// in t.
func FibSplay(n int, t *splay.Tree[int, *big.Int]) *big.Int {
	if n <= 1 {
		return big.NewInt(int64(n))
	}
	if v, ok := t.Find(n); ok {
		return v
	}
	res := new(big.Int).Add(FibSplay(n-1, t), FibSplay(n-2, t))
	t.Insert(n, res)
	return res
}

// FibRow is the average time of one Fibonacci evaluation per store.
type FibRow struct {
	N     int
	LRU   time.Duration
	Splay time.Duration
}

// CompareFib times repeats evaluations of Fib(n) for every n in values.
//
// A single LRU of the given capacity is shared by all n, matching a
// process-wide memoising decorator, while every n starts from a fresh splay
// tree that is reused across its repeats.
func CompareFib(ctx context.Context, values []int, repeats, capacity int) ([]FibRow, error) {
	lru, err := cache.New[int, *big.Int](capacity)
	if err != nil {
		return nil, err
	}

	rows := make([]FibRow, 0, len(values))
	for _, n := range values {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		row := FibRow{N: n}
		row.LRU = average(repeats, func() { FibLRU(n, lru) })

		tree := splay.New[int, *big.Int]()
		row.Splay = average(repeats, func() { FibSplay(n, tree) })

		log.WithFields(log.Fields{
			"n":         n,
			"lru":       row.LRU,
			"splay":     row.Splay,
			"rotations": tree.Stats().Rotations,
		}).Debug("fib timed")
		rows = append(rows, row)
	}
	return rows, nil
}

func average(repeats int, fn func()) time.Duration {
	start := time.Now()
	for i := 0; i < repeats; i++ {
		fn()
	}
	return time.Since(start) / time.Duration(repeats)
}
