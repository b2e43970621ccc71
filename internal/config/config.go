// Package config loads workload settings from defaults, an optional YAML or
// TOML file, and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the knobs of the range-sum and Fibonacci workloads.
type Config struct {
	LogLevel string `yaml:"log_level" toml:"log_level"`
	Seed     int64  `yaml:"seed" toml:"seed"`
	Ranges   Ranges `yaml:"ranges" toml:"ranges"`
	Fib      Fib    `yaml:"fib" toml:"fib"`
}

// Ranges configures the range-sum / point-update scenario.
type Ranges struct {
	Capacity  int     `yaml:"capacity" toml:"capacity"`
	Size      int     `yaml:"size" toml:"size"`
	Queries   int     `yaml:"queries" toml:"queries"`
	ReadRatio float64 `yaml:"read_ratio" toml:"read_ratio"`
}

// Fib configures the memoised Fibonacci comparison over n = 0, Step, 2*Step, ... < Max.
type Fib struct {
	Capacity int `yaml:"capacity" toml:"capacity"`
	Max      int `yaml:"max" toml:"max"`
	Step     int `yaml:"step" toml:"step"`
	Repeats  int `yaml:"repeats" toml:"repeats"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Seed: 1,
		Ranges: Ranges{
			Capacity:  1000,
			Size:      100_000,
			Queries:   50_000,
			ReadRatio: 0.5,
		},
		Fib: Fib{
			Capacity: 1000,
			Max:      1000,
			Step:     50,
			Repeats:  100,
		},
	}
}

// Load returns Default overlaid with the file at path. An empty path returns
// the defaults. The format is chosen by extension: .yaml/.yml or .toml.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return Config{}, fmt.Errorf("%w: unsupported config extension %q", ErrInvalid, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	log.Debugf("using config file: %s", path)
	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot drive a workload.
func (c Config) Validate() error {
	switch {
	case c.Ranges.Capacity <= 0:
		return fmt.Errorf("%w: ranges.capacity must be positive, got %d", ErrInvalid, c.Ranges.Capacity)
	case c.Ranges.Size <= 0:
		return fmt.Errorf("%w: ranges.size must be positive, got %d", ErrInvalid, c.Ranges.Size)
	case c.Ranges.Queries < 0:
		return fmt.Errorf("%w: ranges.queries must not be negative, got %d", ErrInvalid, c.Ranges.Queries)
	case c.Ranges.ReadRatio < 0 || c.Ranges.ReadRatio > 1:
		return fmt.Errorf("%w: ranges.read_ratio must be within [0,1], got %g", ErrInvalid, c.Ranges.ReadRatio)
	case c.Fib.Capacity <= 0:
		return fmt.Errorf("%w: fib.capacity must be positive, got %d", ErrInvalid, c.Fib.Capacity)
	case c.Fib.Max < 0:
		return fmt.Errorf("%w: fib.max must not be negative, got %d", ErrInvalid, c.Fib.Max)
	case c.Fib.Step <= 0:
		return fmt.Errorf("%w: fib.step must be positive, got %d", ErrInvalid, c.Fib.Step)
	case c.Fib.Repeats <= 0:
		return fmt.Errorf("%w: fib.repeats must be positive, got %d", ErrInvalid, c.Fib.Repeats)
	}
	return nil
}

// FibValues lists the n values the Fibonacci comparison runs.
func (f Fib) FibValues() []int {
	values := make([]int, 0, f.Max/max(f.Step, 1)+1)
	for n := 0; n < f.Max; n += f.Step {
		values = append(values, n)
	}
	return values
}
