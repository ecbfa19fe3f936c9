package sensor

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// SyntheticSource fakes a hand-held device: a slow tilt wobble with jitter
// and a sharp shake every so often. It is seeded so runs repeat exactly.
type SyntheticSource struct {
	Rate       time.Duration
	Wobble     float64
	Period     time.Duration
	ShakeEvery time.Duration
	Offset     float64

	rng *rand.Rand
	t   time.Duration
}

func NewSyntheticSource(seed int64, offset float64) *SyntheticSource {
	return &SyntheticSource{
		Rate:       time.Second / 60,
		Wobble:     0.35,
		Period:     6 * time.Second,
		ShakeEvery: 4 * time.Second,
		Offset:     offset,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Next returns the sample one Rate after the previous one.
func (s *SyntheticSource) Next() Sample {
	s.t += s.Rate
	phase := 2 * math.Pi * s.t.Seconds() / s.Period.Seconds()
	angle := s.Wobble*math.Sin(phase) + 0.02*s.rng.NormFloat64()

	g := GravityFor(angle, s.Offset)
	m := Vec3{X: 0.3 * s.rng.NormFloat64(), Y: 0.3 * s.rng.NormFloat64()}
	if s.ShakeEvery > 0 && s.t%s.ShakeEvery < s.Rate {
		m.X += 8 + 6*s.rng.Float64()
		m.Y -= 6 + 4*s.rng.Float64()
	}
	return Sample{Gravity: &g, Motion: &m, At: s.t}
}

func (s *SyntheticSource) Run(ctx context.Context, emit func(Sample)) error {
	tick := time.NewTicker(s.Rate)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			emit(s.Next())
		}
	}
}
