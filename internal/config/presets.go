package config

import "slices"

var Presets = map[string]map[string]*Config{
	"sorting": {
		"example": {
			Family: "sorting", Algorithm: "bubble",
			Array: []int{64, 34, 25, 12, 22, 11, 90},
		},
		"reversed": {
			Family: "sorting", Algorithm: "insertion",
			Array: []int{10, 9, 8, 7, 6, 5, 4, 3, 2, 1},
		},
		"sorted": {
			Family: "sorting", Algorithm: "bubble",
			Array: []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		"duplicates": {
			Family: "sorting", Algorithm: "counting",
			Array: []int{5, 3, 5, 1, 3, 3, 9, 1, 5},
		},
		"random": {
			Family: "sorting", Algorithm: "quick",
			Size: 30, Max: 100, Seed: 7,
		},
	},
	"searching": {
		"example": {
			Family: "searching", Algorithm: "binary",
			Array: []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25}, Target: 13,
		},
		"missing": {
			Family: "searching", Algorithm: "jump",
			Array: []int{1, 3, 5, 7, 9, 11, 13, 15, 17, 19, 21, 23, 25}, Target: 8,
		},
	},
	"pathfinding": {
		"open": {
			Family: "pathfinding", Algorithm: "astar",
			Grid: GridConfig{Rows: 5, Cols: 5},
		},
		"wall": {
			Family: "pathfinding", Algorithm: "dijkstra",
			Grid: GridConfig{Layout: []string{
				"S.......",
				"......#.",
				"######..",
				"........",
				"......E.",
			}},
		},
		"mud": {
			Family: "pathfinding", Algorithm: "dijkstra",
			Grid: GridConfig{Layout: []string{
				"S~~~~~E",
				".......",
			}},
		},
		"maze": {
			Family: "pathfinding", Algorithm: "bfs",
			Grid: GridConfig{Layout: []string{
				"S.#.....",
				".##.###.",
				"....#...",
				"##.##.#.",
				"...#..#E",
			}},
		},
	},
	"traversal": {
		"balanced": {
			Family: "traversal", Algorithm: "inorder",
			Tree: []int{50, 30, 70, 20, 40, 60, 80},
		},
	},
}

// GetPreset returns a copy of the named preset filled in over the defaults,
// or nil when the family or preset is unknown.
func GetPreset(family, preset string) *Config {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	p, ok := familyPresets[preset]
	if !ok {
		return nil
	}
	return p.over(DefaultConfig())
}

// over lays the set fields of p on top of base.
func (p *Config) over(base *Config) *Config {
	out := base.Clone()
	out.Family, out.Algorithm = p.Family, p.Algorithm
	out.Array = slices.Clone(p.Array)
	out.Target = p.Target
	if p.Size > 0 {
		out.Size, out.Max, out.Seed = p.Size, p.Max, p.Seed
	}
	if len(p.Grid.Layout) > 0 || p.Grid.Rows > 0 {
		out.Grid = GridConfig{
			Layout:    slices.Clone(p.Grid.Layout),
			Rows:      p.Grid.Rows,
			Cols:      p.Grid.Cols,
			Heuristic: p.Grid.Heuristic,
		}
	}
	out.Tree = slices.Clone(p.Tree)
	return out
}

// ListPresets returns the preset names of a family in sorted order.
func ListPresets(family string) []string {
	familyPresets, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(familyPresets))
	for name := range familyPresets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
