package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/physics"
)

// Energy is the mean surface energy over the observed ticks, each tick
// weighted by the spread the mesh ran with.
type Energy struct {
	name    string
	samples int
	total   float64
}

func NewEnergy() *Energy {
	return &Energy{name: "surface_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s dynamo.Snapshot) {
	e.total += physics.SurfaceEnergy(s.Positions, s.Velocities, s.Spread)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// Peak is the largest absolute node displacement seen.
type Peak struct {
	name string
	peak float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_amplitude"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(s dynamo.Snapshot) {
	if len(s.Positions) == 0 {
		return
	}
	hi := math.Max(floats.Max(s.Positions), -floats.Min(s.Positions))
	p.peak = math.Max(p.peak, hi)
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Reset() { p.peak = 0 }
