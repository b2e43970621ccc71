package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"slices"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"memocache/internal/cache"
	"memocache/internal/config"
	mylog "memocache/internal/log"
	"memocache/internal/splay"
	"memocache/internal/workload"
)

type cfgKey struct{}

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:  "memocache",
		Usage: "compare LRU and splay tree memoisation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML or TOML settings file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (default $" + mylog.EnvLevel + ", then info)",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "pseudo-random seed for generated workloads",
			},
		},
		Before: loadConfig,
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "walk through eviction, invalidation and splaying on tiny inputs",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runDemo(out)
				},
			},
			{
				Name:  "ranges",
				Usage: "range sums with point updates, with and without an LRU cache",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "capacity", Usage: "LRU capacity"},
					&cli.IntFlag{Name: "size", Usage: "array length"},
					&cli.IntFlag{Name: "queries", Usage: "number of queries"},
					&cli.FloatFlag{Name: "read-ratio", Usage: "fraction of queries that are range reads"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := fromContext(ctx)
					overrideInt(cmd, "capacity", &cfg.Ranges.Capacity)
					overrideInt(cmd, "size", &cfg.Ranges.Size)
					overrideInt(cmd, "queries", &cfg.Ranges.Queries)
					if cmd.IsSet("read-ratio") {
						cfg.Ranges.ReadRatio = cmd.Float("read-ratio")
					}
					if err := cfg.Validate(); err != nil {
						return err
					}
					return runRanges(ctx, out, cfg)
				},
			},
			{
				Name:  "fib",
				Usage: "memoised Fibonacci timed against both stores",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "capacity", Usage: "LRU capacity"},
					&cli.IntFlag{Name: "max", Usage: "exclusive upper bound of n"},
					&cli.IntFlag{Name: "step", Usage: "distance between successive n"},
					&cli.IntFlag{Name: "repeats", Usage: "evaluations averaged per n"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := fromContext(ctx)
					overrideInt(cmd, "capacity", &cfg.Fib.Capacity)
					overrideInt(cmd, "max", &cfg.Fib.Max)
					overrideInt(cmd, "step", &cfg.Fib.Step)
					overrideInt(cmd, "repeats", &cfg.Fib.Repeats)
					if err := cfg.Validate(); err != nil {
						return err
					}
					return runFib(ctx, out, cfg)
				},
			},
		},
	}
}

// loadConfig resolves settings once for every subcommand: defaults, then the
// --config file, then global flags.
func loadConfig(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	level := cfg.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if err := mylog.Init(level); err != nil {
		return ctx, err
	}
	if cmd.IsSet("seed") {
		cfg.Seed = cmd.Int("seed")
	}
	log.Debugf("config: %+v", cfg)
	return context.WithValue(ctx, cfgKey{}, cfg), nil
}

func fromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(cfgKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func overrideInt(cmd *cli.Command, name string, dst *int) {
	if cmd.IsSet(name) {
		*dst = int(cmd.Int(name))
	}
}

func runRanges(ctx context.Context, out io.Writer, cfg config.Config) error {
	rc := cfg.Ranges
	rng := rand.New(rand.NewSource(cfg.Seed))
	plain := workload.NewArray(rng, rc.Size)
	cached := slices.Clone(plain)
	queries := workload.GenerateQueries(rng, rc.Size, rc.Queries, rc.ReadRatio)
	log.WithFields(log.Fields{"size": rc.Size, "queries": rc.Queries, "capacity": rc.Capacity}).Info("running range scenario")

	without, err := workload.RunRanges(ctx, plain, queries, nil)
	if err != nil {
		return err
	}

	// Fresh cache so the cached run starts cold.
	c, err := cache.NewRange[int64](rc.Capacity)
	if err != nil {
		return err
	}
	with, err := workload.RunRanges(ctx, cached, queries, c)
	if err != nil {
		return err
	}
	if with.Checksum != without.Checksum {
		return fmt.Errorf("cached checksum %d differs from uncached %d", with.Checksum, without.Checksum)
	}

	writeRangeReport(out, without, with)
	return nil
}

func runFib(ctx context.Context, out io.Writer, cfg config.Config) error {
	values := cfg.Fib.FibValues()
	log.WithFields(log.Fields{"values": len(values), "repeats": cfg.Fib.Repeats}).Info("running fib comparison")

	rows, err := workload.CompareFib(ctx, values, cfg.Fib.Repeats, cfg.Fib.Capacity)
	if err != nil {
		return err
	}
	writeFibTable(out, rows)
	return nil
}

func runDemo(out io.Writer) error {
	lru, err := cache.New[int, string](2, cache.WithEvictCallback(func(k int, v string) {
		log.WithFields(log.Fields{"key": k, "value": v}).Info("evicted")
	}))
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "LRU eviction (capacity=2)")
	lru.Put(1, "a")
	lru.Put(2, "b")
	// Touch 1 so 2 becomes least recently used.
	if v, ok := lru.Get(1); ok {
		fmt.Fprintf(out, "  get 1 = %q (1 -> MRU)\n", v)
	}
	lru.Put(3, "c")
	if _, ok := lru.Get(2); !ok {
		fmt.Fprintln(out, "  get 2: missing (evicted as LRU)")
	}
	fmt.Fprintf(out, "  keys (MRU->LRU): %v\n", lru.Keys())

	fmt.Fprintln(out, "Range invalidation")
	rc, err := cache.NewRange[int](8)
	if err != nil {
		return err
	}
	for _, r := range []cache.Range{{L: 0, R: 4}, {L: 2, R: 2}, {L: 5, R: 9}} {
		rc.Put(r, r.R-r.L+1)
	}
	n := rc.Invalidate(2)
	fmt.Fprintf(out, "  write at 2 dropped %d entries, kept %v\n", n, rc.Keys())

	fmt.Fprintln(out, "Splay tree")
	tree := splay.New[int, string]()
	for _, k := range []int{5, 3, 8} {
		tree.Insert(k, fmt.Sprint(k))
	}
	tree.Find(3)
	root, _, _ := tree.Root()
	st := tree.Stats()
	keys := make([]string, 0, tree.Len())
	for _, k := range tree.Keys() {
		keys = append(keys, fmt.Sprint(k))
	}
	fmt.Fprintf(out, "  after find 3: root=%d in-order=[%s] rotations=%d\n", root, strings.Join(keys, " "), st.Rotations)
	return nil
}
