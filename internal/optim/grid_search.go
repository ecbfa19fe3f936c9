package optim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/slosh/internal/experiment"
)

// GridSearch tries every combination of candidate parameter values and keeps
// the one that minimises a metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("param %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// Result is the best point found. Evaluated counts every run; Rejected
// counts those that failed the accept filter.
type Result struct {
	Params    map[string]float64
	Value     float64
	Evaluated int
	Rejected  int
}

// Search runs base once per grid point with the point's values as parameter
// overrides. accept may veto a run, for example one that went unstable; nil
// accepts everything. A metric that is negative counts as not reached and is
// never chosen.
func (g *GridSearch) Search(ctx context.Context, base experiment.Config, metricName string, accept func(*experiment.Result) bool, logger *slog.Logger) (*Result, error) {
	res := &Result{Value: math.Inf(1)}
	s := search{base: base, metric: metricName, accept: accept, logger: logger, best: res}
	if err := s.recurse(ctx, g, 0, map[string]float64{}); err != nil {
		return nil, err
	}
	if res.Params == nil {
		return res, fmt.Errorf("no grid point produced %s", metricName)
	}
	return res, nil
}

type search struct {
	base   experiment.Config
	metric string
	accept func(*experiment.Result) bool
	logger *slog.Logger
	best   *Result
}

func (s *search) recurse(ctx context.Context, g *GridSearch, depth int, current map[string]float64) error {
	if depth == len(g.paramNames) {
		cfg := s.base
		cfg.Sim = s.base.Sim.Clone()
		cfg.Params = make(map[string]float64, len(s.base.Params)+len(current))
		for k, v := range s.base.Params {
			cfg.Params[k] = v
		}
		for k, v := range current {
			cfg.Params[k] = v
		}

		result, err := experiment.Run(ctx, cfg, s.logger)
		if err != nil {
			return err
		}
		s.best.Evaluated++

		if s.accept != nil && !s.accept(result) {
			s.best.Rejected++
			return nil
		}
		val, ok := result.Metrics[s.metric]
		if !ok {
			return fmt.Errorf("unknown metric %s", s.metric)
		}
		if val >= 0 && val < s.best.Value {
			s.best.Value = val
			s.best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				s.best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := s.recurse(ctx, g, depth+1, newParams); err != nil {
			return err
		}
	}
	return nil
}

// Stable accepts runs that never crossed the stability bound.
func Stable(r *experiment.Result) bool {
	return r.Metrics["stability"] == 1
}
