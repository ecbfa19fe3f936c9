package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/engine"
	"github.com/san-kum/slosh/internal/metrics"
	"github.com/san-kum/slosh/internal/sensor"
	"github.com/san-kum/slosh/internal/storage"
)

// StabilityBound is the node displacement the stability metric tolerates.
const StabilityBound = 100.0

// Event is one scripted input. Any combination of fields may be set; they
// are applied in field order before the tick numbered At. Sample is a raw
// sensor line routed through the adapter.
type Event struct {
	At     int      `yaml:"at"`
	Fill   *float64 `yaml:"fill,omitempty"`
	Splash *float64 `yaml:"splash,omitempty"`
	Tilt   *float64 `yaml:"tilt,omitempty"`
	Strike *Strike  `yaml:"strike,omitempty"`
	Sample string   `yaml:"sample,omitempty"`
}

type Strike struct {
	Node  int     `yaml:"node"`
	Force float64 `yaml:"force"`
}

func FillAt(at int, percent float64) Event { return Event{At: at, Fill: &percent} }
func SplashAt(at int, force float64) Event { return Event{At: at, Splash: &force} }
func TiltAt(at int, angle float64) Event   { return Event{At: at, Tilt: &angle} }
func SampleAt(at int, line string) Event   { return Event{At: at, Sample: line} }

func StrikeAt(at, node int, force float64) Event {
	return Event{At: at, Strike: &Strike{Node: node, Force: force}}
}

type Script struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Events      []Event `yaml:"events"`
}

type Config struct {
	Sim         *config.Config
	Script      Script
	Ticks       int // zero runs Sim.Duration
	RecordEvery int // zero records nothing
	Params      map[string]float64
}

type Result struct {
	Name    string
	Ticks   int
	Metrics map[string]float64
	Params  map[string]float64
	Records []storage.Record
	Final   dynamo.Snapshot
	Dropped int64
	Sensor  sensor.Stats
	Elapsed time.Duration
}

// Metadata describes the result for the run store.
func (r *Result) Metadata(cfg *config.Config, source string) storage.RunMetadata {
	return storage.RunMetadata{
		Preset:    cfg.Preset,
		Source:    source,
		Timestamp: time.Now(),
		Seed:      cfg.Seed,
		TickRate:  cfg.TickRate,
		Ticks:     r.Ticks,
		Nodes:     cfg.Mesh.Nodes,
		Params:    r.Params,
		Metrics:   r.Metrics,
	}
}

type step struct {
	Event
	sample *sensor.Sample
}

type Experiment struct {
	cfg      Config
	logger   *slog.Logger
	engine   *engine.Engine
	adapter  *sensor.Adapter
	recorder *storage.Recorder
	timeline []step
}

func New(cfg Config, logger *slog.Logger) *Experiment {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Sim == nil {
		cfg.Sim = config.DefaultConfig()
	}
	return &Experiment{cfg: cfg, logger: logger}
}

// Setup builds the engine, applies parameter overrides and parses the
// timeline. With no metrics given the standard set is attached.
func (e *Experiment) Setup(ms ...dynamo.Metric) error {
	if len(ms) == 0 {
		ms = metrics.Standard(StabilityBound)
	}
	opts := []engine.Option{engine.WithLogger(e.logger)}
	for _, m := range ms {
		opts = append(opts, engine.WithMetric(m))
	}
	if e.cfg.RecordEvery > 0 {
		e.recorder = storage.NewRecorder(e.cfg.RecordEvery)
		opts = append(opts, engine.WithObserver(e.recorder))
	}

	eng, err := engine.New(e.cfg.Sim, opts...)
	if err != nil {
		return err
	}
	for name, v := range e.cfg.Params {
		if err := eng.SetParam(name, v); err != nil {
			return fmt.Errorf("param %s: %w", name, err)
		}
	}

	timeline := make([]step, len(e.cfg.Script.Events))
	for i, ev := range e.cfg.Script.Events {
		if ev.At < 0 {
			return fmt.Errorf("event %d: negative tick %d", i, ev.At)
		}
		timeline[i] = step{Event: ev}
		if ev.Sample != "" {
			s, err := sensor.ParseSample(ev.Sample)
			if err != nil {
				return fmt.Errorf("event %d: %w", i, err)
			}
			timeline[i].sample = &s
		}
	}
	sort.SliceStable(timeline, func(i, j int) bool { return timeline[i].At < timeline[j].At })

	e.engine = eng
	e.adapter = sensor.NewAdapter(eng, e.cfg.Sim.SensorConfig(), e.logger)
	e.timeline = timeline
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	ticks := e.cfg.Ticks
	if ticks <= 0 {
		ticks = e.cfg.Sim.Ticks()
	}

	start := time.Now()
	next := 0
	for t := 0; t < ticks; t++ {
		if t%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for next < len(e.timeline) && e.timeline[next].At <= t {
			e.apply(e.timeline[next])
			next++
		}
		e.engine.Step()
	}
	if left := len(e.timeline) - next; left > 0 {
		e.logger.Warn("events past end of run", "count", left, "ticks", ticks)
	}

	res := &Result{
		Name:    e.cfg.Script.Name,
		Ticks:   ticks,
		Metrics: e.engine.Metrics(),
		Params:  e.engine.GetParams(),
		Final:   e.engine.Snapshot(),
		Dropped: e.engine.Dropped(),
		Sensor:  e.adapter.Stats(),
		Elapsed: time.Since(start),
	}
	if e.recorder != nil {
		res.Records = e.recorder.Records
	}
	e.logger.Debug("experiment done", "name", res.Name, "ticks", ticks, "elapsed", res.Elapsed)
	return res, nil
}

func (e *Experiment) apply(s step) {
	if s.Fill != nil {
		e.engine.SetFill(*s.Fill)
	}
	if s.Splash != nil {
		e.engine.Splash(*s.Splash)
	}
	if s.Tilt != nil {
		e.engine.SetTilt(*s.Tilt)
	}
	if s.Strike != nil {
		e.engine.Inject(s.Strike.Node, s.Strike.Force)
	}
	if s.sample != nil {
		e.adapter.Handle(*s.sample)
	}
}

// Engine exposes the engine for attaching observers between Setup and Run.
func (e *Experiment) Engine() *engine.Engine {
	return e.engine
}

// Run is New, Setup and Run in one call.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) (*Result, error) {
	exp := New(cfg, logger)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
