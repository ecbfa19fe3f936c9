package metrics

import (
	"math"

	"github.com/san-kum/slosh/internal/dynamo"
)

// TiltLag is the mean angular distance between the measured tilt and the
// displayed one.
type TiltLag struct {
	name    string
	sum     float64
	samples int
}

func NewTiltLag() *TiltLag {
	return &TiltLag{
		name: "tilt_lag",
	}
}

func (l *TiltLag) Name() string {
	return l.name
}

func (l *TiltLag) Observe(s dynamo.Snapshot) {
	l.sum += math.Abs(dynamo.ShortestArc(s.Angle, s.AngleTarget))
	l.samples++
}

func (l *TiltLag) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *TiltLag) Reset() {
	l.sum = 0
	l.samples = 0
}

// Settle records the first tick at which the fill came within a relative
// tolerance of its target. It reports -1 until that happens. A target change
// restarts the count.
type Settle struct {
	name   string
	tol    float64
	target float64
	since  int
	at     int
}

func NewSettle(tol float64) *Settle {
	return &Settle{name: "settle_ticks", tol: tol, at: -1}
}

func (s *Settle) Name() string { return s.name }

func (s *Settle) Observe(snap dynamo.Snapshot) {
	if snap.FillTarget != s.target {
		s.target, s.since, s.at = snap.FillTarget, snap.Tick, -1
	}
	if s.at >= 0 {
		return
	}
	if math.Abs(snap.Fill-snap.FillTarget) <= s.tol*math.Max(snap.FillTarget, 1e-9) {
		s.at = snap.Tick - s.since
	}
}

func (s *Settle) Value() float64 { return float64(s.at) }

func (s *Settle) Reset() {
	s.target, s.since, s.at = 0, 0, -1
}

// Standard is the metric set the CLI attaches to every run.
func Standard(stabilityBound float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewEnergy(),
		NewPeak(),
		NewStability(stabilityBound),
		NewTiltLag(),
		NewSettle(0.01),
	}
}
