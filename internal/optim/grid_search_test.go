package optim

import (
	"context"
	"testing"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/experiment"
	"github.com/san-kum/slosh/internal/logging"
)

var quiet = logging.Discard().Logger

func base(t *testing.T) experiment.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	cfg.Fill = 50
	idle, err := experiment.NewRegistry().Get("idle")
	if err != nil {
		t.Fatal(err)
	}
	return experiment.Config{Sim: cfg, Script: idle, Ticks: 400}
}

func TestGridSearchFindsFastestSettle(t *testing.T) {
	g, err := NewGridSearch(
		[]string{"fillSmoothing", "dampening"},
		[][]float64{{0.02, 0.05, 0.1}, {0.02, 0.04}},
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.Search(context.Background(), base(t), "settle_ticks", Stable, quiet)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Evaluated != 6 {
		t.Errorf("evaluated %d points, want 6", res.Evaluated)
	}
	if res.Params["fillSmoothing"] != 0.1 {
		t.Errorf("best params %v, want fillSmoothing 0.1", res.Params)
	}
	if res.Value < 0 || res.Value > 60 {
		t.Errorf("settle ticks %v", res.Value)
	}
}

func TestGridSearchUnknownMetric(t *testing.T) {
	g, _ := NewGridSearch([]string{"tension"}, [][]float64{{0.025}})
	if _, err := g.Search(context.Background(), base(t), "nope", nil, quiet); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestNewGridSearchValidates(t *testing.T) {
	if _, err := NewGridSearch([]string{"a", "b"}, [][]float64{{1}}); err == nil {
		t.Error("expected error for mismatched ranges")
	}
	if _, err := NewGridSearch([]string{"a"}, [][]float64{{}}); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 1, 5)
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if got := Linspace(3, 9, 1); len(got) != 1 || got[0] != 3 {
		t.Errorf("single point: %v", got)
	}
}
