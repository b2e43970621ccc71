package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"memocache/internal/workload"
)

func writeRangeReport(out io.Writer, without, with workload.RangeReport) {
	fmt.Fprintf(out, "queries: %s reads, %s updates\n",
		humanize.Comma(int64(with.Reads)), humanize.Comma(int64(with.Updates)))
	fmt.Fprintf(out, "Execution time without caching: %.2f seconds\n", without.Elapsed.Seconds())
	fmt.Fprintf(out, "Execution time with LRU-cache: %.2f seconds\n", with.Elapsed.Seconds())

	st := with.Stats
	lookups := st.Hits + st.Misses
	ratio := 0.0
	if lookups > 0 {
		ratio = 100 * float64(st.Hits) / float64(lookups)
	}
	fmt.Fprintf(out, "cache: %s hits / %s lookups (%.1f%%), %s evictions, %s invalidations\n",
		humanize.Comma(int64(st.Hits)), humanize.Comma(int64(lookups)), ratio,
		humanize.Comma(int64(st.Evictions)), humanize.Comma(int64(st.Invalidations)))
}

func writeFibTable(out io.Writer, rows []workload.FibRow) {
	fmt.Fprintf(out, "%-10s%-20s%-20s\n", "n", "LRU Cache Time (s)", "Splay Tree Time (s)")
	fmt.Fprintln(out, "--------------------------------------------------")
	for _, r := range rows {
		fmt.Fprintf(out, "%-10d%-20.9f%-20.9f\n", r.N, r.LRU.Seconds(), r.Splay.Seconds())
	}
}
