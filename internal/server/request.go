package server

import (
	"errors"
	"fmt"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
)

// Inputs arriving over the network are capped well below what the CLI
// accepts; a quadratic sort over the CLI maximum records millions of steps.
const (
	maxInputLen = 512
	maxCells    = 4096
)

var (
	ErrInputTooLarge = errors.New("server: input too large")
	ErrUnknownPreset = errors.New("server: unknown preset")
)

// RunRequest names an algorithm and its input. Unset fields fall back to
// the preset, then to the defaults.
type RunRequest struct {
	Family    string   `json:"family" binding:"required"`
	Algorithm string   `json:"algorithm" binding:"required"`
	Preset    string   `json:"preset,omitempty"`
	Array     []int    `json:"array,omitempty"`
	Target    *int     `json:"target,omitempty"`
	Size      int      `json:"size,omitempty"`
	Max       int      `json:"max,omitempty"`
	Seed      uint64   `json:"seed,omitempty"`
	Layout    []string `json:"layout,omitempty"`
	Rows      int      `json:"rows,omitempty"`
	Cols      int      `json:"cols,omitempty"`
	Heuristic string   `json:"heuristic,omitempty"`
	Tree      []int    `json:"tree,omitempty"`
}

// Config resolves the request into a validated config.
func (r RunRequest) Config() (*config.Config, error) {
	family, err := catalog.ParseFamily(r.Family)
	if err != nil {
		return nil, err
	}
	cfg := config.DefaultConfig()
	if r.Preset != "" {
		p := config.GetPreset(string(family), r.Preset)
		if p == nil {
			return nil, fmt.Errorf("%w: %s/%s", ErrUnknownPreset, family, r.Preset)
		}
		cfg = p
	}
	cfg.Family = string(family)
	cfg.Algorithm = r.Algorithm
	if r.Array != nil {
		cfg.Array = r.Array
	}
	if r.Target != nil {
		cfg.Target = *r.Target
	}
	if r.Size > 0 {
		cfg.Size = r.Size
	}
	if r.Max > 0 {
		cfg.Max = r.Max
	}
	if r.Seed != 0 {
		cfg.Seed = r.Seed
	}
	if len(r.Layout) > 0 {
		cfg.Grid.Layout = r.Layout
	}
	if r.Rows > 0 {
		cfg.Grid.Rows = r.Rows
	}
	if r.Cols > 0 {
		cfg.Grid.Cols = r.Cols
	}
	if r.Heuristic != "" {
		cfg.Grid.Heuristic = r.Heuristic
	}
	if r.Tree != nil {
		cfg.Tree = r.Tree
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := checkLimits(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkLimits(cfg *config.Config) error {
	if len(cfg.Array) > maxInputLen || len(cfg.Tree) > maxInputLen || (len(cfg.Array) == 0 && cfg.Size > maxInputLen) {
		return fmt.Errorf("%w: at most %d values", ErrInputTooLarge, maxInputLen)
	}
	cells := cfg.Grid.Rows * cfg.Grid.Cols
	if len(cfg.Grid.Layout) > 0 {
		cells = len(cfg.Grid.Layout) * len(cfg.Grid.Layout[0])
	}
	if cfg.Family == string(catalog.Pathfinding) && cells > maxCells {
		return fmt.Errorf("%w: at most %d cells", ErrInputTooLarge, maxCells)
	}
	return nil
}
