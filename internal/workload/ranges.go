// Package workload drives the memo stores with the recomputation-heavy
// scenarios they are compared on: range sums under point updates, and
// memoised Fibonacci.
//
// Nothing here is needed to use the stores; the package is a caller of their
// public API only.
package workload

import (
	"context"
	"math/rand"
	"time"

	"github.com/apex/log"

	"memocache/internal/cache"
)

// checkEvery is how many queries run between context checks.
const checkEvery = 1024

// Kind tells range reads from point updates.
type Kind uint8

const (
	Read Kind = iota
	Update
)

func (k Kind) String() string {
	if k == Update {
		return "update"
	}
	return "read"
}

// Query is one step of the range-sum scenario. For a Read, A and B are the
// inclusive bounds L and R. For an Update, A is the index and B the new value.
type Query struct {
	Kind Kind
	A, B int
}

// NewArray returns n values drawn uniformly from [1, n].
func NewArray(rng *rand.Rand, n int) []int64 {
	arr := make([]int64, n)
	for i := range arr {
		arr[i] = int64(rng.Intn(n) + 1)
	}
	return arr
}

// GenerateQueries returns q queries over an array of length n. Each is a
// Read with probability readRatio, with 0 <= L <= R < n; otherwise an Update
// of a random index to a value in [1, n].
func GenerateQueries(rng *rand.Rand, n, q int, readRatio float64) []Query {
	queries := make([]Query, q)
	for i := range queries {
		if rng.Float64() < readRatio {
			l := rng.Intn(n)
			queries[i] = Query{Kind: Read, A: l, B: l + rng.Intn(n-l)}
		} else {
			queries[i] = Query{Kind: Update, A: rng.Intn(n), B: rng.Intn(n) + 1}
		}
	}
	return queries
}

// RangeReport summarises one run of the range-sum scenario.
type RangeReport struct {
	Elapsed  time.Duration
	Reads    int
	Updates  int
	Checksum int64 // sum of every read result
	Cached   bool
	Stats    cache.Stats
}

// RunRanges applies queries to arr in order. With a nil cache every read is
// summed directly; otherwise reads go through c and updates invalidate the
// ranges spanning the written index. arr is modified in place.
//
// The checksum of a cached run equals that of an uncached run over a copy of
// the same array and queries.
func RunRanges(ctx context.Context, arr []int64, queries []Query, c *cache.RangeCache[int64]) (RangeReport, error) {
	rep := RangeReport{Cached: c != nil}
	start := time.Now()

	for i, q := range queries {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
		}
		switch q.Kind {
		case Read:
			rep.Reads++
			rep.Checksum += rangeSum(arr, q.A, q.B, c)
		case Update:
			rep.Updates++
			arr[q.A] = int64(q.B)
			if c != nil {
				c.Invalidate(q.A)
			}
		}
	}

	rep.Elapsed = time.Since(start)
	if c != nil {
		rep.Stats = c.Stats()
	}
	log.WithFields(log.Fields{
		"cached":  rep.Cached,
		"reads":   rep.Reads,
		"updates": rep.Updates,
		"elapsed": rep.Elapsed,
	}).Debug("range scenario finished")
	return rep, nil
}

func rangeSum(arr []int64, l, r int, c *cache.RangeCache[int64]) int64 {
	key := cache.Range{L: l, R: r}
	if c != nil {
		if v, ok := c.Get(key); ok {
			return v
		}
	}
	var sum int64
	for _, v := range arr[l : r+1] {
		sum += v
	}
	if c != nil {
		c.Put(key, sum)
	}
	return sum
}
