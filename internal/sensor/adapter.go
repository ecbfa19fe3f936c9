package sensor

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/san-kum/slosh/internal/dynamo"
)

// Config calibrates how raw readings become engine messages.
type Config struct {
	// TiltOffset is added to atan2(x, y). π suits sensors that report
	// gravity-inclusive acceleration as the reaction to gravity.
	TiltOffset     float64
	ShakeThreshold float64
	ShakeGain      float64
}

func DefaultConfig() Config {
	return Config{TiltOffset: math.Pi, ShakeThreshold: 10, ShakeGain: 2}
}

type Stats struct {
	Samples int64
	Ignored int64
	Shakes  int64
	Dropped int64
}

// Adapter turns samples into TiltUpdate and Impulse messages. Handle may be
// called from any goroutine; it never touches engine state directly.
type Adapter struct {
	cfg    Config
	sink   dynamo.Sink
	logger *slog.Logger

	samples, ignored, shakes, dropped atomic.Int64
}

func NewAdapter(sink dynamo.Sink, cfg Config, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{cfg: cfg, sink: sink, logger: logger}
}

func (a *Adapter) Handle(s Sample) {
	if s.Gravity == nil {
		a.ignored.Add(1)
		return
	}
	a.samples.Add(1)

	a.post(dynamo.Tilt(Angle(*s.Gravity, a.cfg.TiltOffset)))

	if s.Motion == nil {
		return
	}
	if shake := Shake(*s.Motion); shake > a.cfg.ShakeThreshold {
		a.shakes.Add(1)
		a.post(dynamo.Splash(shake * a.cfg.ShakeGain))
	}
}

func (a *Adapter) post(m dynamo.Message) {
	if !a.sink.Post(m) {
		if a.dropped.Add(1) == 1 {
			a.logger.Warn("engine inbox full, dropping sensor input", "kind", m.Kind)
		}
	}
}

func (a *Adapter) Stats() Stats {
	return Stats{
		Samples: a.samples.Load(),
		Ignored: a.ignored.Load(),
		Shakes:  a.shakes.Load(),
		Dropped: a.dropped.Load(),
	}
}
