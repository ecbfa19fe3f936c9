package engine

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/physics"
	"github.com/san-kum/slosh/internal/render"
	"github.com/san-kum/slosh/internal/tracker"
)

// Engine owns one liquid surface. Every method except Post must be called
// from the goroutine that ticks it.
type Engine struct {
	cfg      *config.Config
	clock    dynamo.Clock
	mesh     *physics.Mesh
	fill     *tracker.Fill
	tilt     *tracker.Orientation
	palette  render.Palette
	rng      *rand.Rand
	logger   *slog.Logger
	inbox    chan dynamo.Message
	dropped  atomic.Int64
	interval time.Duration
	acc      time.Duration

	width, height float64
	positions     []float64

	observers []dynamo.Observer
	metrics   []dynamo.Metric
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

func WithObserver(o dynamo.Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

func WithMetric(m dynamo.Metric) Option {
	return func(e *Engine) { e.metrics = append(e.metrics, m) }
}

// New builds an engine from a validated copy of cfg. A zero seed seeds the
// splash generator from the wall clock.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()
	palette, _ := cfg.Palette()

	e := &Engine{
		cfg:      cfg,
		mesh:     physics.NewMesh(cfg.Mesh.Nodes, cfg.MeshParams()),
		fill:     tracker.NewFill(cfg.Smoothing.Fill, cfg.Smoothing.MinVisible),
		tilt:     tracker.NewOrientation(cfg.Smoothing.Tilt),
		palette:  palette,
		inbox:    make(chan dynamo.Message, cfg.QueueSize),
		interval: cfg.Interval(),
		width:    cfg.Viewport.Width,
		height:   cfg.Viewport.Height,
	}
	e.fill.SetPercent(cfg.Fill)
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	}
	return e, nil
}

func (e *Engine) Config() *config.Config { return e.cfg.Clone() }

func (e *Engine) Len() int { return e.mesh.Len() }

func (e *Engine) Node(i int) dynamo.Node { return e.mesh.Node(i) }

func (e *Engine) Fill() float64 { return e.fill.Current }

func (e *Engine) FillTarget() float64 { return e.fill.Target }

func (e *Engine) Angle() float64 { return e.tilt.Current }

func (e *Engine) Phase() float64 { return e.clock.Phase }

func (e *Engine) Ticks() int { return e.clock.Ticks }

func (e *Engine) Energy() float64 { return e.mesh.Energy() }

// Dropped counts messages refused because the inbox was full.
func (e *Engine) Dropped() int64 { return e.dropped.Load() }

func (e *Engine) AddObserver(o dynamo.Observer) { e.observers = append(e.observers, o) }

func (e *Engine) AddMetric(m dynamo.Metric) { e.metrics = append(e.metrics, m) }

func (e *Engine) Metrics() map[string]float64 {
	out := make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// SetFill sets the fill target from a percentage. Repeating a value is a
// no-op.
func (e *Engine) SetFill(percent float64) {
	e.fill.SetPercent(percent)
}

func (e *Engine) SetTilt(angle float64) {
	e.tilt.SetTarget(angle)
}

// Splash pushes a random node with force clamped to [0, max force] and
// returns the node it hit.
func (e *Engine) Splash(force float64) int {
	force = dynamo.Clamp(force, 0, e.mesh.Params().MaxForce)
	i := e.rng.Intn(e.mesh.Len())
	e.mesh.Inject(i, force)
	return i
}

// Inject pushes node i directly. Out-of-range indices are ignored.
func (e *Engine) Inject(i int, impulse float64) float64 {
	return e.mesh.Inject(i, impulse)
}

// Resize changes the viewport. Non-positive sizes are ignored.
func (e *Engine) Resize(w, h float64) {
	if !(w > 0 && h > 0) {
		return
	}
	e.width, e.height = w, h
}

func (e *Engine) Size() (float64, float64) { return e.width, e.height }

// Post queues a message for the next tick. It is safe to call from any
// goroutine and never blocks; a full inbox drops the message.
func (e *Engine) Post(m dynamo.Message) bool {
	select {
	case e.inbox <- m:
		return true
	default:
		if e.dropped.Add(1)%100 == 1 {
			e.logger.Debug("inbox full", "kind", m.Kind, "dropped", e.dropped.Load())
		}
		return false
	}
}

func (e *Engine) drain() {
	for n := cap(e.inbox); n > 0; n-- {
		select {
		case m := <-e.inbox:
			e.apply(m)
		default:
			return
		}
	}
}

func (e *Engine) apply(m dynamo.Message) {
	switch m.Kind {
	case dynamo.TiltUpdate:
		e.SetTilt(m.Value)
	case dynamo.FillUpdate:
		e.SetFill(m.Value)
	case dynamo.Impulse:
		if m.Node == dynamo.RandomNode {
			e.Splash(m.Value)
		} else {
			e.Inject(m.Node, m.Value)
		}
	}
}

// Step runs exactly one tick: queued input, clock, trackers, then the mesh.
func (e *Engine) Step() {
	e.drain()
	phase := e.clock.Advance(e.cfg.Mesh.WaveSpeed)
	e.fill.Tick()
	e.tilt.Tick()
	e.mesh.Tick(phase)

	if len(e.observers) == 0 && len(e.metrics) == 0 {
		return
	}
	s := e.Snapshot()
	for _, m := range e.metrics {
		m.Observe(s)
	}
	for _, o := range e.observers {
		o.OnTick(s)
	}
}

// Tick advances by wall time dt in fixed steps and returns how many ran.
// Backlog beyond MaxCatchUp steps is discarded rather than replayed.
func (e *Engine) Tick(dt time.Duration) int {
	if dt <= 0 || e.interval <= 0 {
		return 0
	}
	e.acc += dt
	steps := 0
	for e.acc >= e.interval && steps < e.cfg.MaxCatchUp {
		e.Step()
		e.acc -= e.interval
		steps++
	}
	if e.acc >= e.interval {
		e.acc %= e.interval
	}
	return steps
}

func (e *Engine) Snapshot() dynamo.Snapshot {
	return dynamo.Snapshot{
		Tick:        e.clock.Ticks,
		Time:        float64(e.clock.Ticks) * e.interval.Seconds(),
		Phase:       e.clock.Phase,
		Fill:        e.fill.Current,
		FillTarget:  e.fill.Target,
		Angle:       e.tilt.Current,
		AngleTarget: e.tilt.Target,
		Spread:      e.mesh.Params().Spread,
		Positions:   e.mesh.Positions(nil),
		Velocities:  e.mesh.Velocities(nil),
	}
}

func (e *Engine) Frame() render.Frame {
	e.positions = e.mesh.Positions(e.positions)
	return render.Render(render.Input{
		Positions: e.positions,
		Fill:      e.fill.Current,
		Angle:     e.tilt.Current,
		Width:     e.width,
		Height:    e.height,
		Palette:   e.palette,
	})
}

// Reset returns the surface to rest, upright and empty, discarding queued
// input. The fill then rises again towards the configured level. Observers
// and metrics stay attached; metrics are cleared.
func (e *Engine) Reset() {
drained:
	for {
		select {
		case <-e.inbox:
		default:
			break drained
		}
	}
	e.clock.Reset()
	e.mesh.Reset()
	e.fill.Reset()
	e.fill.SetPercent(e.cfg.Fill)
	e.tilt.Reset()
	e.acc = 0
	for _, m := range e.metrics {
		m.Reset()
	}
}

func (e *Engine) SetParam(name string, v float64) error {
	switch name {
	case "waveSpeed":
		e.cfg.Mesh.WaveSpeed = v
		return nil
	case "fillSmoothing":
		e.fill.Smoothing = dynamo.Clamp(v, 0, 1)
		return nil
	case "tiltSmoothing":
		e.tilt.Smoothing = dynamo.Clamp(v, 0, 1)
		return nil
	}
	return e.mesh.SetParam(name, v)
}

func (e *Engine) GetParams() map[string]float64 {
	p := e.mesh.GetParams()
	p["waveSpeed"] = e.cfg.Mesh.WaveSpeed
	p["fillSmoothing"] = e.fill.Smoothing
	p["tiltSmoothing"] = e.tilt.Smoothing
	return p
}
