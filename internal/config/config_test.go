package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/san-kum/algoviz/internal/catalog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Family != "sorting" || cfg.Algorithm != "bubble" {
		t.Errorf("expected sorting/bubble, got %s/%s", cfg.Family, cfg.Algorithm)
	}
	if cfg.Playback.Speed <= 0 {
		t.Error("speed should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("searching", "example")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Target != 13 {
		t.Errorf("expected target 13, got %d", cfg.Target)
	}
	if cfg.Playback.Speed != DefaultSpeed {
		t.Errorf("expected default speed, got %v", cfg.Playback.Speed)
	}
}

func TestGetPreset_IsCopy(t *testing.T) {
	a := GetPreset("sorting", "example")
	a.Array[0] = -1
	b := GetPreset("sorting", "example")
	if b.Array[0] != 64 {
		t.Errorf("preset was modified through a returned copy: %v", b.Array)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("sorting", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "example"); cfg != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("sorting")
	want := []string{"duplicates", "example", "random", "reversed", "sorted"}
	if !slices.Equal(presets, want) {
		t.Errorf("expected %v, got %v", want, presets)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent family")
	}
}

func TestPresetsValidate(t *testing.T) {
	for family := range Presets {
		for _, name := range ListPresets(family) {
			cfg := GetPreset(family, name)
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", family, name, err)
				continue
			}
			if _, err := cfg.Input(); err != nil {
				t.Errorf("%s/%s input: %v", family, name, err)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"unknown family", func(c *Config) { c.Family = "graphs" }, catalog.ErrUnknownFamily},
		{"unknown algorithm", func(c *Config) { c.Algorithm = "bogo" }, catalog.ErrUnknownAlgorithm},
		{"negative speed", func(c *Config) { c.Playback.Speed = -time.Second }, ErrInvalidSpeed},
		{"negative history", func(c *Config) { c.Playback.HistoryLimit = -1 }, ErrInvalidHistory},
		{"huge size", func(c *Config) { c.Size = maxSize + 1 }, ErrInvalidSize},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLevel},
		{"empty grid", func(c *Config) {
			c.Family, c.Algorithm = "pathfinding", "bfs"
			c.Grid = GridConfig{}
		}, ErrInvalidGrid},
		{"counting extreme range", func(c *Config) {
			c.Algorithm = "counting"
			c.Array = []int{math.MaxInt, math.MinInt}
		}, ErrCountingRange},
		{"counting wide range", func(c *Config) {
			c.Algorithm = "counting"
			c.Array = []int{0, 3000000000}
		}, ErrCountingRange},
		{"counting wide random", func(c *Config) {
			c.Algorithm = "counting"
			c.Max = 1 << 30
		}, ErrCountingRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_CountingRangeAllowsOtherSorts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Algorithm = "quick"
	cfg.Array = []int{math.MaxInt, math.MinInt}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidate_BadLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Family, cfg.Algorithm = "pathfinding", "astar"
	cfg.Grid.Layout = []string{"S..", ".."}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a ragged layout")
	}
}

func TestInput(t *testing.T) {
	t.Run("searching sorts random input", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Family, cfg.Algorithm = "searching", "binary"
		in, err := cfg.Input()
		if err != nil {
			t.Fatal(err)
		}
		if len(in.Array) != DefaultSize || !slices.IsSorted(in.Array) {
			t.Errorf("expected %d sorted values, got %v", DefaultSize, in.Array)
		}
	})

	t.Run("open grid runs corner to corner", func(t *testing.T) {
		cfg := GetPreset("pathfinding", "open")
		in, err := cfg.Input()
		if err != nil {
			t.Fatal(err)
		}
		if in.Grid.Rows != 5 || in.End.Row != 4 || in.End.Col != 4 {
			t.Errorf("unexpected grid %dx%d end %v", in.Grid.Rows, in.Grid.Cols, in.End)
		}
	})

	t.Run("each call copies", func(t *testing.T) {
		cfg := GetPreset("sorting", "example")
		a, _ := cfg.Input()
		a.Array[0] = 0
		b, _ := cfg.Input()
		if b.Array[0] != 64 || cfg.Array[0] != 64 {
			t.Error("input array aliases the config")
		}
	})

	t.Run("traversal tree", func(t *testing.T) {
		in, err := GetPreset("traversal", "balanced").Input()
		if err != nil {
			t.Fatal(err)
		}
		if in.Tree.Size() != 7 || in.Tree.Height() != 3 {
			t.Errorf("expected 7 nodes of height 3, got %d/%d", in.Tree.Size(), in.Tree.Height())
		}
	})
}

func TestRandomArray(t *testing.T) {
	a := RandomArray(1, 50, 10)
	b := RandomArray(1, 50, 10)
	if !slices.Equal(a, b) {
		t.Error("same seed should give the same values")
	}
	for _, v := range a {
		if v < 1 || v > 10 {
			t.Fatalf("value %d out of range", v)
		}
	}
	if got := RandomArray(1, 0, 10); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("pathfinding", "maze")
	cfg.Playback.Speed = 250 * time.Millisecond

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Algorithm != "bfs" || !slices.Equal(got.Grid.Layout, cfg.Grid.Layout) {
		t.Errorf("unexpected round trip: %+v", got)
	}
	if got.Playback.Speed != 250*time.Millisecond {
		t.Errorf("expected speed 250ms, got %v", got.Playback.Speed)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("algorithm: dfs\nplayback:\n  speed: 5ms\n"), 0644); err != nil {
		t.Fatal(err)
	}
	base := GetPreset("pathfinding", "maze")
	got, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if got.Algorithm != "dfs" || got.Family != "pathfinding" {
		t.Errorf("expected dfs over the maze preset, got %s/%s", got.Family, got.Algorithm)
	}
	if !slices.Equal(got.Grid.Layout, base.Grid.Layout) {
		t.Error("layout from base was lost")
	}
	if got.Playback.Speed != 5*time.Millisecond {
		t.Errorf("expected speed 5ms, got %v", got.Playback.Speed)
	}
	if base.Algorithm != "bfs" {
		t.Error("base was modified")
	}
}
