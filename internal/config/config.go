package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/sorting"
	"github.com/san-kum/algoviz/internal/traversal"
)

const (
	DefaultFamily    = "sorting"
	DefaultAlgorithm = "bubble"
	DefaultSize      = 20
	DefaultMax       = 100
	DefaultSeed      = 42
	DefaultRows      = 10
	DefaultCols      = 20
	DefaultSpeed     = 100 * time.Millisecond
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"

	maxSize = 10000
)

var (
	ErrInvalidSpeed   = errors.New("config: speed must not be negative")
	ErrInvalidHistory = errors.New("config: history limit must not be negative")
	ErrInvalidSize    = errors.New("config: size out of range")
	ErrInvalidGrid    = errors.New("config: grid needs a layout or positive dimensions")
	ErrInvalidLevel   = errors.New("config: unknown log level")
	ErrCountingRange  = errors.New("config: value range too wide for counting sort")
)

type Config struct {
	Family    string         `yaml:"family"`
	Algorithm string         `yaml:"algorithm"`
	Array     []int          `yaml:"array,omitempty"`
	Target    int            `yaml:"target"`
	Size      int            `yaml:"size"`
	Max       int            `yaml:"max"`
	Seed      uint64         `yaml:"seed"`
	Grid      GridConfig     `yaml:"grid"`
	Tree      []int          `yaml:"tree,omitempty"`
	Playback  PlaybackConfig `yaml:"playback"`
	Server    ServerConfig   `yaml:"server"`
	LogLevel  string         `yaml:"log_level"`
}

// GridConfig describes a pathfinding grid either as text rows or as an open
// Rows x Cols field searched corner to corner.
type GridConfig struct {
	Layout    []string `yaml:"layout,omitempty"`
	Rows      int      `yaml:"rows"`
	Cols      int      `yaml:"cols"`
	Heuristic string   `yaml:"heuristic,omitempty"`
}

type PlaybackConfig struct {
	Speed        time.Duration `yaml:"speed"`
	HistoryLimit int           `yaml:"history_limit"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Family:    DefaultFamily,
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		Max:       DefaultMax,
		Seed:      DefaultSeed,
		Grid:      GridConfig{Rows: DefaultRows, Cols: DefaultCols},
		Playback:  PlaybackConfig{Speed: DefaultSpeed},
		Server:    ServerConfig{Addr: DefaultAddr},
		LogLevel:  DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys missing from the file
// keep the value from base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy, so presets can be handed out and edited.
func (c *Config) Clone() *Config {
	out := *c
	out.Array = slices.Clone(c.Array)
	out.Tree = slices.Clone(c.Tree)
	out.Grid.Layout = slices.Clone(c.Grid.Layout)
	return &out
}

// Validate checks everything a run needs before any producer is built.
func (c *Config) Validate() error {
	family, err := catalog.ParseFamily(c.Family)
	if err != nil {
		return err
	}
	if _, err := catalog.NewRegistry().Lookup(family, catalog.Name(c.Algorithm)); err != nil {
		return err
	}
	if c.Playback.Speed < 0 {
		return ErrInvalidSpeed
	}
	if c.Playback.HistoryLimit < 0 {
		return ErrInvalidHistory
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch family {
	case catalog.Sorting, catalog.Searching:
		if len(c.Array) == 0 && (c.Size < 0 || c.Size > maxSize || c.Max < 0) {
			return fmt.Errorf("%w: size %d max %d", ErrInvalidSize, c.Size, c.Max)
		}
		if c.Algorithm == string(catalog.Counting) {
			span := uint64(max(c.Max, 0))
			if len(c.Array) > 0 {
				span = sorting.CountingSpan(c.Array)
			}
			if span > sorting.MaxCountingRange {
				return fmt.Errorf("%w: %d values, at most %d", ErrCountingRange, span, sorting.MaxCountingRange)
			}
		}
	case catalog.Pathfinding:
		if len(c.Grid.Layout) > 0 {
			if _, _, _, err := grid.Parse(c.Grid.Layout); err != nil {
				return fmt.Errorf("config: grid layout: %w", err)
			}
		} else if c.Grid.Rows <= 0 || c.Grid.Cols <= 0 {
			return ErrInvalidGrid
		}
	}
	return nil
}

// Input builds a fresh catalog input. Every call returns new slices and a
// new grid, so concurrent runs never share state.
func (c *Config) Input() (catalog.Input, error) {
	in := catalog.Input{Target: c.Target, Heuristic: c.Grid.Heuristic}

	family, err := catalog.ParseFamily(c.Family)
	if err != nil {
		return in, err
	}
	switch family {
	case catalog.Sorting:
		in.Array = c.array()
	case catalog.Searching:
		in.Array = c.array()
		slices.Sort(in.Array)
	case catalog.Pathfinding:
		if len(c.Grid.Layout) > 0 {
			g, start, end, err := grid.Parse(c.Grid.Layout)
			if err != nil {
				return in, fmt.Errorf("config: grid layout: %w", err)
			}
			in.Grid, in.Start, in.End = g, start, end
		} else {
			in.Grid = grid.New(c.Grid.Rows, c.Grid.Cols)
			in.End = grid.Point{Row: c.Grid.Rows - 1, Col: c.Grid.Cols - 1}
		}
	case catalog.Traversal:
		values := c.Tree
		if len(values) == 0 {
			values = c.array()
		}
		in.Tree = traversal.FromValues(values...)
	}
	return in, nil
}

func (c *Config) array() []int {
	if len(c.Array) > 0 {
		return slices.Clone(c.Array)
	}
	return RandomArray(c.Seed, c.Size, c.Max)
}

// RandomArray returns n values in [1, hi]. The same seed always gives the
// same values.
func RandomArray(seed uint64, n, hi int) []int {
	if n <= 0 {
		return []int{}
	}
	hi = max(hi, 1)
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]int, n)
	for i := range out {
		out[i] = r.IntN(hi) + 1
	}
	return out
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %s", ErrInvalidLevel, s)
}
