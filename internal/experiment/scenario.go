package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slosh/internal/config"
)

// Scenario is a sequence of runs loaded from YAML.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run of a scenario. Preset picks the base configuration,
// Script names a built-in script whose events come before Events.
type Step struct {
	Name        string             `yaml:"name"`
	Preset      string             `yaml:"preset"`
	Script      string             `yaml:"script"`
	Events      []Event            `yaml:"events"`
	Duration    float64            `yaml:"duration"`
	Seed        int64              `yaml:"seed"`
	RecordEvery int                `yaml:"record_every"`
	Params      map[string]float64 `yaml:"params"`
	SaveAs      string             `yaml:"save_as"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

// Config resolves a step against base, which is used when no preset is named.
func (s Step) Config(base *config.Config, registry *Registry) (Config, error) {
	sim := base.Clone()
	if s.Preset != "" {
		p, err := config.GetPreset(s.Preset)
		if err != nil {
			return Config{}, err
		}
		sim = p
	}
	if s.Duration > 0 {
		sim.Duration = s.Duration
	}
	if s.Seed != 0 {
		sim.Seed = s.Seed
	}

	script := Script{Name: s.Name}
	if s.Script != "" {
		named, err := registry.Get(s.Script)
		if err != nil {
			return Config{}, err
		}
		script.Events = append(script.Events, named.Events...)
		if script.Name == "" {
			script.Name = named.Name
		}
	}
	script.Events = append(script.Events, s.Events...)
	if s.SaveAs != "" {
		script.Name = s.SaveAs
	}

	return Config{
		Sim:         sim,
		Script:      script,
		RecordEvery: s.RecordEvery,
		Params:      s.Params,
	}, nil
}

// RunScenario runs every step in order and stops at the first failure,
// returning the results so far.
func RunScenario(ctx context.Context, sc *Scenario, registry *Registry, base *config.Config, logger *slog.Logger) ([]*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]*Result, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		logger.Info("running step", "step", i+1, "of", len(sc.Steps), "name", step.Name)

		cfg, err := step.Config(base, registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		if cfg.Script.Name == "" {
			cfg.Script.Name = fmt.Sprintf("%s-%d", sc.Name, i+1)
		}

		res, err := Run(ctx, cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		results = append(results, res)
	}

	return results, nil
}
