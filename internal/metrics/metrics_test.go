package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/slosh/internal/dynamo"
)

func TestEnergyUsesSnapshotSpread(t *testing.T) {
	m := NewEnergy()
	// pe = 0.5*spread*(4+4)
	m.Observe(dynamo.Snapshot{Spread: 0.25, Positions: []float64{0, 2, 0}, Velocities: []float64{0, 0, 0}})
	m.Observe(dynamo.Snapshot{Spread: 0.45, Positions: []float64{0, 2, 0}, Velocities: []float64{0, 0, 0}})
	if got := m.Value(); math.Abs(got-(1+1.8)/2) > 1e-12 {
		t.Errorf("expected mean 1.4, got %f", got)
	}
}

func TestEnergyMean(t *testing.T) {
	m := NewEnergy()
	m.Observe(dynamo.Snapshot{Positions: []float64{0, 0}, Velocities: []float64{2, 0}})
	m.Observe(dynamo.Snapshot{Positions: []float64{0, 0}, Velocities: []float64{0, 0}})
	if m.Value() != 1 {
		t.Errorf("expected mean 1, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestPeak(t *testing.T) {
	m := NewPeak()
	m.Observe(dynamo.Snapshot{Positions: []float64{1, -7, 3}})
	m.Observe(dynamo.Snapshot{Positions: []float64{5, 0, 0}})
	m.Observe(dynamo.Snapshot{})
	if m.Value() != 7 {
		t.Errorf("expected peak 7, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10)
	if m.Value() != 1 {
		t.Error("expected 1 with no samples")
	}
	m.Observe(dynamo.Snapshot{Positions: []float64{1, 2}})
	m.Observe(dynamo.Snapshot{Positions: []float64{1, 12}})
	m.Observe(dynamo.Snapshot{Positions: []float64{math.NaN()}})
	m.Observe(dynamo.Snapshot{Positions: []float64{-3}})
	if m.Value() != 0.5 {
		t.Errorf("expected 0.5, got %f", m.Value())
	}
}

func TestTiltLag(t *testing.T) {
	m := NewTiltLag()
	m.Observe(dynamo.Snapshot{Angle: 3, AngleTarget: -3})
	want := 2*math.Pi - 6
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("expected short-arc lag %f, got %f", want, m.Value())
	}
}

func TestSettle(t *testing.T) {
	m := NewSettle(0.01)
	if m.Value() != -1 {
		t.Error("expected -1 before settling")
	}

	fill := 0.0
	for tick := 1; tick <= 200; tick++ {
		fill += (0.81 - fill) * 0.05
		m.Observe(dynamo.Snapshot{Tick: tick, Fill: fill, FillTarget: 0.81})
	}
	// 0.95^n <= 0.01 first holds at n = 90
	if m.Value() != 89 {
		t.Errorf("expected settle after 89 ticks, got %f", m.Value())
	}
}

func TestStandard(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Standard(60) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}
