package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Sweep runs one script across evenly spaced values of an engine parameter.
type Sweep struct {
	Base    Config
	Param   string
	Min     float64
	Max     float64
	Steps   int
	Workers int
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
	Stable  bool
}

func RunSweep(ctx context.Context, sw Sweep, logger *slog.Logger) ([]SweepResult, error) {
	if sw.Steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sw.Steps)
	}
	if sw.Param == "" {
		return nil, fmt.Errorf("sweep needs a parameter")
	}

	stride := (sw.Max - sw.Min) / float64(sw.Steps-1)
	jobs := make([]Config, sw.Steps)
	for i := range jobs {
		cfg := sw.Base
		cfg.Sim = sw.Base.Sim.Clone()
		cfg.RecordEvery = 0
		cfg.Params = make(map[string]float64, len(sw.Base.Params)+1)
		for k, v := range sw.Base.Params {
			cfg.Params[k] = v
		}
		cfg.Params[sw.Param] = sw.Min + float64(i)*stride
		jobs[i] = cfg
	}

	results, err := runAll(ctx, jobs, sw.Workers, logger)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(results))
	for i, r := range results {
		out[i] = SweepResult{
			Value:   jobs[i].Params[sw.Param],
			Metrics: r.Metrics,
			Stable:  r.Metrics["stability"] == 1,
		}
	}
	return out, nil
}

// RunTrials repeats a run under consecutive seeds starting at seedStart.
// Seeds change which nodes random splashes hit.
func RunTrials(ctx context.Context, base Config, n int, seedStart int64, workers int, logger *slog.Logger) ([]*Result, error) {
	jobs := make([]Config, n)
	for i := range jobs {
		cfg := base
		cfg.Sim = base.Sim.Clone()
		cfg.Sim.Seed = seedStart + int64(i)
		jobs[i] = cfg
	}
	return runAll(ctx, jobs, workers, logger)
}

// TrialStats counts results that kept every node within the stability bound
// for the whole run.
func TrialStats(results []*Result) (stable, unstable int) {
	for _, r := range results {
		if r.Metrics["stability"] == 1 {
			stable++
		} else {
			unstable++
		}
	}
	return
}

func runAll(ctx context.Context, jobs []Config, workers int, logger *slog.Logger) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]*Result, len(jobs))
	errs := make([]error, len(jobs))
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[idx], errs[idx] = Run(ctx, jobs[idx], logger)
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("run %d: %w", i, err)
		}
	}
	return results, nil
}
