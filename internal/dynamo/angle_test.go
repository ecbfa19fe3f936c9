package dynamo

import (
	"math"
	"testing"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{-3 * math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{10 * math.Pi, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		got := WrapAngle(tt.in)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("WrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWrapAngleRange(t *testing.T) {
	for a := -20.0; a <= 20.0; a += 0.037 {
		w := WrapAngle(a)
		if w <= -math.Pi || w > math.Pi {
			t.Fatalf("WrapAngle(%v) = %v outside (-π, π]", a, w)
		}
		if math.Abs(math.Sin(w)-math.Sin(a)) > 1e-9 || math.Abs(math.Cos(w)-math.Cos(a)) > 1e-9 {
			t.Fatalf("WrapAngle(%v) = %v is not equivalent", a, w)
		}
	}
}

func TestShortestArcCrossesSeam(t *testing.T) {
	d := ShortestArc(3.0, -3.0)
	want := 2*math.Pi - 6.0
	if math.Abs(d-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, d)
	}

	d = ShortestArc(-3.0, 3.0)
	if math.Abs(d+want) > 1e-12 {
		t.Errorf("expected %v, got %v", -want, d)
	}
}

func TestLerpAngleConverges(t *testing.T) {
	current, target := -3.0, 3.0
	prev := math.Abs(ShortestArc(current, target))

	for i := 0; i < 1000; i++ {
		current = LerpAngle(current, target, 0.05)
		gap := math.Abs(ShortestArc(current, target))
		if gap > math.Pi {
			t.Fatalf("tick %d: gap %v exceeds π", i, gap)
		}
		if gap > prev+1e-12 {
			t.Fatalf("tick %d: gap grew from %v to %v", i, prev, gap)
		}
		prev = gap
	}

	if prev > 1e-9 {
		t.Errorf("expected convergence, remaining gap %v", prev)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(1000, 0, 60) != 60 {
		t.Error("expected upper clamp")
	}
	if Clamp(-5, 0, 60) != 0 {
		t.Error("expected lower clamp")
	}
	if Clamp(math.NaN(), 0, 60) != 0 {
		t.Error("expected NaN to clamp to lower bound")
	}
	if Clamp(Clamp(500, 0, 60), 0, 60) != Clamp(500, 0, 60) {
		t.Error("clamp should be idempotent")
	}
}

func TestClock(t *testing.T) {
	var c Clock
	for i := 0; i < 10; i++ {
		c.Advance(0.1)
	}
	if math.Abs(c.Phase-1.0) > 1e-12 {
		t.Errorf("expected phase 1.0, got %f", c.Phase)
	}
	if c.Ticks != 10 {
		t.Errorf("expected 10 ticks, got %d", c.Ticks)
	}

	c.Reset()
	if c.Phase != 0 || c.Ticks != 0 {
		t.Error("expected zeroed clock after reset")
	}
}
