package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/slosh/internal/dynamo"
)

// Params tune the spring mesh. Tension pulls each node toward its ambient
// target, Dampening bleeds velocity, Spread couples neighbours and MaxForce
// bounds a single injected impulse.
type Params struct {
	Tension   float64
	Dampening float64
	Spread    float64
	Passes    int
	MaxForce  float64
	Wave      Wave
}

func DefaultParams() Params {
	return Params{
		Tension:   0.015,
		Dampening: 0.04,
		Spread:    0.25,
		Passes:    3,
		MaxForce:  60,
		Wave:      DefaultWave(10),
	}
}

// Mesh is a 1-D chain of damped oscillators sampled left to right across the
// surface. Node 0 and node N-1 are free ends; there is no wraparound.
type Mesh struct {
	nodes  []dynamo.Node
	deltas []float64
	p      Params
}

func NewMesh(n int, p Params) *Mesh {
	if n < 2 {
		n = 2
	}
	return &Mesh{
		nodes:  make([]dynamo.Node, n),
		deltas: make([]float64, n-1),
		p:      p,
	}
}

func (m *Mesh) Len() int { return len(m.nodes) }

func (m *Mesh) Params() Params { return m.p }

func (m *Mesh) SetParams(p Params) { m.p = p }

// Tick advances every node by one step at the given clock phase.
func (m *Mesh) Tick(phase float64) {
	k, c := m.p.Tension, m.p.Dampening
	for i := range m.nodes {
		n := &m.nodes[i]
		a := -k*(n.Position-m.p.Wave.Target(i, phase)) - c*n.Velocity
		n.Velocity += a
		n.Position += n.Velocity
	}

	for pass := 0; pass < m.p.Passes; pass++ {
		m.spread()
	}
}

// spread runs one coupling pass. Deltas are taken from the positions as they
// stood before the pass so the update does not depend on sweep direction.
func (m *Mesh) spread() {
	s := m.p.Spread
	for i := 0; i < len(m.deltas); i++ {
		m.deltas[i] = s * (m.nodes[i].Position - m.nodes[i+1].Position)
	}
	for i, d := range m.deltas {
		m.nodes[i].Velocity -= d
		m.nodes[i+1].Velocity += d
	}
	for i, d := range m.deltas {
		m.nodes[i].Position -= d
		m.nodes[i+1].Position += d
	}
}

// Inject adds a velocity impulse to node i, clamped to ±MaxForce. It returns
// the impulse actually applied; an out-of-range index applies nothing.
func (m *Mesh) Inject(i int, impulse float64) float64 {
	if i < 0 || i >= len(m.nodes) {
		return 0
	}
	impulse = dynamo.Finite(impulse)
	if lim := m.p.MaxForce; lim > 0 {
		impulse = dynamo.Clamp(impulse, -lim, lim)
	}
	m.nodes[i].Velocity += impulse
	return impulse
}

func (m *Mesh) Sample(i int) float64 {
	if i < 0 || i >= len(m.nodes) {
		return 0
	}
	return m.nodes[i].Position
}

func (m *Mesh) Velocity(i int) float64 {
	if i < 0 || i >= len(m.nodes) {
		return 0
	}
	return m.nodes[i].Velocity
}

func (m *Mesh) Node(i int) dynamo.Node {
	if i < 0 || i >= len(m.nodes) {
		return dynamo.Node{}
	}
	return m.nodes[i]
}

// Positions copies node positions into dst, growing it if needed.
func (m *Mesh) Positions(dst []float64) []float64 {
	dst = grow(dst, len(m.nodes))
	for i, n := range m.nodes {
		dst[i] = n.Position
	}
	return dst
}

func (m *Mesh) Velocities(dst []float64) []float64 {
	dst = grow(dst, len(m.nodes))
	for i, n := range m.nodes {
		dst[i] = n.Velocity
	}
	return dst
}

func (m *Mesh) Reset() {
	clear(m.nodes)
}

// Energy is SurfaceEnergy of the current state under the mesh's own spread.
func (m *Mesh) Energy() float64 {
	return SurfaceEnergy(m.Positions(nil), m.Velocities(nil), m.p.Spread)
}

// SurfaceEnergy is the kinetic energy of the nodes plus the potential held in
// the neighbour couplings.
func SurfaceEnergy(pos, vel []float64, spread float64) float64 {
	ke := 0.5 * floats.Dot(vel, vel)
	pe := 0.0
	for i := 0; i+1 < len(pos); i++ {
		d := pos[i] - pos[i+1]
		pe += 0.5 * spread * d * d
	}
	return ke + pe
}

// Peak is the largest absolute displacement in the mesh.
func (m *Mesh) Peak() float64 {
	peak := 0.0
	for _, n := range m.nodes {
		peak = math.Max(peak, math.Abs(n.Position))
	}
	return peak
}

func (m *Mesh) GetParams() map[string]float64 {
	return map[string]float64{
		"tension":   m.p.Tension,
		"dampening": m.p.Dampening,
		"spread":    m.p.Spread,
		"passes":    float64(m.p.Passes),
		"maxForce":  m.p.MaxForce,
		"ambient":   m.p.Wave.Amplitude,
	}
}

func (m *Mesh) SetParam(name string, v float64) error {
	switch name {
	case "tension":
		m.p.Tension = v
	case "dampening":
		m.p.Dampening = v
	case "spread":
		m.p.Spread = v
	case "passes":
		m.p.Passes = int(v)
	case "maxForce":
		m.p.MaxForce = v
	case "ambient":
		m.p.Wave.Amplitude = v
	default:
		return fmt.Errorf("unknown mesh parameter %q", name)
	}
	return nil
}

func grow(dst []float64, n int) []float64 {
	if cap(dst) < n {
		return make([]float64, n)
	}
	return dst[:n]
}
