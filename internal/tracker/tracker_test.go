package tracker

import (
	"math"
	"testing"
)

func TestFillTarget(t *testing.T) {
	tests := []struct {
		percent float64
		want    float64
	}{
		{0, 0},
		{-10, 0},
		{math.NaN(), 0},
		{50, 0.525},
		{80, 0.81},
		{100, 1},
		{250, 1},
		{1e-9, 0.05},
	}

	for _, tt := range tests {
		got := FillTarget(tt.percent, DefaultMinVisible)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("FillTarget(%v) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestFillConverges(t *testing.T) {
	f := NewFill(0.05, DefaultMinVisible)
	f.SetPercent(50)
	f.SetPercent(50)

	for i := 0; i < 2000; i++ {
		f.Tick()
	}
	if math.Abs(f.Current-0.525) > 1e-12 {
		t.Errorf("expected 0.525, got %.15f", f.Current)
	}
	if !f.Settled(1e-9) {
		t.Error("expected settled fill")
	}
}

func TestFillMonotonic(t *testing.T) {
	f := NewFill(0.05, DefaultMinVisible)
	f.SetPercent(100)
	prev := f.Current
	for i := 0; i < 300; i++ {
		cur := f.Tick()
		if cur < prev || cur > f.Target {
			t.Fatalf("tick %d: fill %f not moving monotonically toward %f", i, cur, f.Target)
		}
		prev = cur
	}
}

func TestFillSetTargetClamps(t *testing.T) {
	f := NewFill(0.05, DefaultMinVisible)
	f.SetTarget(3)
	if f.Target != 1 {
		t.Errorf("expected 1, got %f", f.Target)
	}
	f.SetTarget(-1)
	if f.Target != 0 {
		t.Errorf("expected 0, got %f", f.Target)
	}
}

func TestOrientationShortestPath(t *testing.T) {
	o := NewOrientation(0.05)
	o.Current = -3.0
	o.SetTarget(3.0)

	if o.Gap() > 0 {
		t.Fatalf("expected negative rotation across the seam, got %f", o.Gap())
	}

	for i := 0; i < 1000; i++ {
		o.Tick()
		if math.Abs(o.Gap()) > math.Pi {
			t.Fatalf("tick %d: gap %f exceeds π", i, o.Gap())
		}
		if o.Current <= -math.Pi || o.Current > math.Pi {
			t.Fatalf("tick %d: angle %f left (-π, π]", i, o.Current)
		}
	}

	if math.Abs(o.Gap()) > 1e-9 {
		t.Errorf("expected convergence, gap %g", o.Gap())
	}
}

func TestOrientationWrapsTarget(t *testing.T) {
	o := NewOrientation(0.05)
	o.SetTarget(2*math.Pi + 0.5)
	if math.Abs(o.Target-0.5) > 1e-12 {
		t.Errorf("expected wrapped target 0.5, got %f", o.Target)
	}
}

func TestReset(t *testing.T) {
	f := NewFill(0.05, DefaultMinVisible)
	f.SetPercent(40)
	f.Tick()
	f.Reset()
	o := NewOrientation(0.05)
	o.SetTarget(1)
	o.Tick()
	o.Reset()
	if f.Current != 0 || f.Target != 0 || o.Current != 0 || o.Target != 0 {
		t.Error("expected zeroed trackers")
	}
}
