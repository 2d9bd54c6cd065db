package compare

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/config"
)

// Scenario is a scripted batch of comparisons loaded from yaml.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep compares Algorithms on one input. Preset, given as
// "family/name", supplies the input; the inline fields override it. Sizes
// turns the step into a sweep of random inputs of each size.
type ScenarioStep struct {
	Preset        string   `yaml:"preset,omitempty"`
	Algorithms    []string `yaml:"algorithms"`
	Sizes         []int    `yaml:"sizes,omitempty"`
	config.Config `yaml:",inline"`
}

type StepResult struct {
	Family catalog.Family
	Runs   []Run
	Sweep  []SweepPoint
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("compare: parse %s: %w", path, err)
	}
	return &scenario, nil
}

// resolve merges the step over its preset, or over the defaults.
func (s ScenarioStep) resolve() (*config.Config, error) {
	base := config.DefaultConfig()
	if s.Preset != "" {
		family, name, ok := strings.Cut(s.Preset, "/")
		if !ok || family == "" || name == "" {
			return nil, fmt.Errorf("compare: preset %q is not family/name", s.Preset)
		}
		if base = config.GetPreset(family, name); base == nil {
			return nil, fmt.Errorf("compare: unknown preset %q", s.Preset)
		}
	}
	cfg := base.Clone()
	if s.Family != "" {
		cfg.Family = s.Family
	}
	if len(s.Array) > 0 {
		cfg.Array = s.Array
	}
	if s.Target != 0 {
		cfg.Target = s.Target
	}
	if s.Size > 0 {
		cfg.Size = s.Size
	}
	if s.Max > 0 {
		cfg.Max = s.Max
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if len(s.Grid.Layout) > 0 || s.Grid.Rows > 0 {
		cfg.Grid = s.Grid
	}
	if len(s.Tree) > 0 {
		cfg.Tree = s.Tree
	}
	return cfg, nil
}

// RunScenario executes the steps in order. Each step runs its algorithms
// concurrently.
func RunScenario(ctx context.Context, scenario *Scenario, reg *catalog.Registry, logger *slog.Logger) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	for i, st := range scenario.Steps {
		cfg, err := st.resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		family, err := catalog.ParseFamily(cfg.Family)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		names := make([]catalog.Name, len(st.Algorithms))
		for j, a := range st.Algorithms {
			names[j] = catalog.Name(a)
		}
		if len(names) == 0 {
			for _, e := range reg.List(family) {
				names = append(names, e.Name)
			}
		}
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "family", family, "algorithms", len(names))

		res := StepResult{Family: family}
		if len(st.Sizes) > 0 {
			res.Sweep, err = Sweep(ctx, reg, family, names, st.Sizes, cfg)
		} else {
			res.Runs, err = Compare(ctx, reg, family, names, cfg.Input)
		}
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}
	return results, nil
}
