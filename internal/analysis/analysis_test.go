package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/slosh/internal/dynamo"
)

func sine(n int, freq, rate, offset float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = offset + math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

func TestPowerSpectrumDominant(t *testing.T) {
	// 512 samples at 64 Hz puts 4 Hz exactly on bin 32.
	spec, err := PowerSpectrum(sine(512, 4, 64, 10), 64)
	if err != nil {
		t.Fatal(err)
	}
	if got := spec.Dominant(); math.Abs(got-4) > 1e-9 {
		t.Errorf("expected 4 Hz, got %f", got)
	}
	if spec.Power[0] > 1e-9 {
		t.Errorf("expected DC removed, got %g", spec.Power[0])
	}
}

func TestPowerSpectrumTooShort(t *testing.T) {
	if _, err := PowerSpectrum([]float64{1, 2}, 60); !errors.Is(err, dynamo.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	s, err := Summarize([]float64{1, 2, 3, 4}, 60)
	if err != nil {
		t.Fatal(err)
	}
	if s.Mean != 2.5 || s.Min != 1 || s.Max != 4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if _, err := Summarize(nil, 60); !errors.Is(err, dynamo.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestPhasePortrait(t *testing.T) {
	p := NewPhasePortrait(1)
	for i := 0; i < 100; i++ {
		a := float64(i) * 0.1
		p.OnTick(dynamo.Snapshot{
			Positions:  []float64{0, math.Cos(a)},
			Velocities: []float64{0, -math.Sin(a)},
		})
	}
	p.OnTick(dynamo.Snapshot{Positions: []float64{0}})
	if len(p.Points) != 100 {
		t.Fatalf("expected 100 points, got %d", len(p.Points))
	}

	art := p.ASCII(40, 20)
	if lines := strings.Count(art, "\n"); lines != 20 {
		t.Errorf("expected 20 lines, got %d", lines)
	}
	if !strings.Contains(art, "•") || !strings.Contains(art, "┼") {
		t.Errorf("expected points and axes:\n%s", art)
	}
}
