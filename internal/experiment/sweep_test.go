package experiment

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRunSweep(t *testing.T) {
	idle, _ := NewRegistry().Get("idle")
	sw := Sweep{
		Base:    Config{Sim: seeded(), Script: idle, Ticks: 300},
		Param:   "dampening",
		Min:     0.02,
		Max:     0.06,
		Steps:   3,
		Workers: 2,
	}
	results, err := RunSweep(context.Background(), sw, quiet)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	want := []float64{0.02, 0.04, 0.06}
	if len(results) != len(want) {
		t.Fatalf("got %d results", len(results))
	}
	for i, r := range results {
		if math.Abs(r.Value-want[i]) > 1e-12 {
			t.Errorf("result %d value %v, want %v", i, r.Value, want[i])
		}
		if !r.Stable {
			t.Errorf("dampening %v unstable: %v", r.Value, r.Metrics)
		}
	}
	if sw.Base.Params != nil {
		t.Error("sweep mutated the base params")
	}
}

func TestRunSweepValidates(t *testing.T) {
	if _, err := RunSweep(context.Background(), Sweep{Base: Config{Sim: seeded()}, Param: "tension", Steps: 1}, quiet); err == nil {
		t.Error("expected error for one step")
	}
	if _, err := RunSweep(context.Background(), Sweep{Base: Config{Sim: seeded()}, Steps: 3}, quiet); err == nil {
		t.Error("expected error for missing param")
	}
}

func TestRunTrialsDeterministic(t *testing.T) {
	splash, _ := NewRegistry().Get("splash")
	base := Config{Sim: seeded(), Script: splash, Ticks: 500}

	a, err := RunTrials(context.Background(), base, 4, 1, 4, quiet)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunTrials(context.Background(), base, 4, 1, 1, quiet)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if diff := cmp.Diff(a[i].Final.Positions, b[i].Final.Positions); diff != "" {
			t.Errorf("trial %d differs between runs:\n%s", i, diff)
		}
	}

	stable, unstable := TrialStats(a)
	if stable != 4 || unstable != 0 {
		t.Errorf("stable=%d unstable=%d", stable, unstable)
	}
	if base.Sim.Seed != 1 {
		t.Error("trials mutated the base config")
	}
}
