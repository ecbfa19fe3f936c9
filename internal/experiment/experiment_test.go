package experiment

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/logging"
	"github.com/san-kum/slosh/internal/physics"
)

var quiet = logging.Discard().Logger

func seeded() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	return cfg
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	want := []string{"fill", "idle", "ripple", "shake", "splash", "tilt"}
	if diff := cmp.Diff(want, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	for _, name := range r.List() {
		s, err := r.Get(name)
		if err != nil || s.Name != name || len(s.Events) == 0 {
			t.Errorf("Get(%q) = %+v, %v", name, s, err)
		}
	}
	if _, err := r.Get("flood"); err == nil {
		t.Error("expected error for unknown script")
	}
}

func TestRunIdleSettles(t *testing.T) {
	idle, _ := NewRegistry().Get("idle")
	res, err := Run(context.Background(), Config{Sim: seeded(), Script: idle, Ticks: 2000}, quiet)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Ticks != 2000 || res.Final.Tick != 2000 {
		t.Errorf("ran %d ticks, final tick %d", res.Ticks, res.Final.Tick)
	}
	if math.Abs(res.Final.Fill-0.525) > 1e-9 {
		t.Errorf("fill %v, want 0.525", res.Final.Fill)
	}
	for _, name := range []string{"surface_energy", "peak_amplitude", "stability", "tilt_lag", "settle_ticks"} {
		if _, ok := res.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if res.Metrics["stability"] != 1 {
		t.Errorf("stability %v, want 1", res.Metrics["stability"])
	}
}

func TestRunUsesDuration(t *testing.T) {
	cfg := seeded()
	cfg.Duration = 0.5
	res, err := Run(context.Background(), Config{Sim: cfg}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if res.Ticks != 30 {
		t.Errorf("got %d ticks, want 30", res.Ticks)
	}
}

func TestRecordEvery(t *testing.T) {
	res, err := Run(context.Background(), Config{Sim: seeded(), Ticks: 100, RecordEvery: 10}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Records) != 10 {
		t.Fatalf("got %d records, want 10", len(res.Records))
	}
	if res.Records[0].Tick != 10 || res.Records[9].Tick != 100 {
		t.Errorf("record ticks %d..%d", res.Records[0].Tick, res.Records[9].Tick)
	}
}

func TestEventsSortedByTick(t *testing.T) {
	script := Script{Events: []Event{FillAt(50, 80), FillAt(0, 10)}}
	res, err := Run(context.Background(), Config{Sim: seeded(), Script: script, Ticks: 100}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Final.FillTarget-0.81) > 1e-12 {
		t.Errorf("fill target %v, want 0.81", res.Final.FillTarget)
	}
}

func TestShakeScriptGoesThroughAdapter(t *testing.T) {
	shake, _ := NewRegistry().Get("shake")
	res, err := Run(context.Background(), Config{Sim: seeded(), Script: shake, Ticks: 300}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sensor.Samples != 4 || res.Sensor.Shakes != 2 || res.Sensor.Dropped != 0 {
		t.Errorf("sensor stats %+v", res.Sensor)
	}
}

func TestSetupErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		is   error
	}{
		{"bad sample", Config{Script: Script{Events: []Event{SampleAt(0, "1,2")}}}, dynamo.ErrMalformedSample},
		{"negative tick", Config{Script: Script{Events: []Event{FillAt(-1, 50)}}}, nil},
		{"unknown param", Config{Params: map[string]float64{"viscosity": 1}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.Sim = seeded()
			err := New(tt.cfg, quiet).Setup()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("expected %v, got %v", tt.is, err)
			}
		})
	}
}

func TestParamsApplied(t *testing.T) {
	cfg := Config{Sim: seeded(), Ticks: 1, Params: map[string]float64{"tension": 0.02}}
	res, err := Run(context.Background(), cfg, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if res.Params["tension"] != 0.02 {
		t.Errorf("tension %v, want 0.02", res.Params["tension"])
	}
}

func TestRunNotSetup(t *testing.T) {
	if _, err := New(Config{}, quiet).Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Config{Sim: seeded(), Ticks: 1000}, quiet)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMetadata(t *testing.T) {
	cfg := seeded()
	cfg.Preset = "lively"
	res := &Result{Ticks: 42, Metrics: map[string]float64{"stability": 1}}
	meta := res.Metadata(cfg, "synthetic")
	if meta.Preset != "lively" || meta.Source != "synthetic" || meta.Ticks != 42 || meta.Seed != 1 {
		t.Errorf("metadata %+v", meta)
	}
}

func TestEnergyUsesOverriddenSpread(t *testing.T) {
	script := Script{Name: "kick", Events: []Event{SplashAt(0, 60)}}
	res, err := Run(context.Background(), Config{
		Sim:    seeded(),
		Script: script,
		Ticks:  1,
		Params: map[string]float64{"spread": 0.45},
	}, quiet)
	if err != nil {
		t.Fatal(err)
	}
	if res.Final.Spread != 0.45 {
		t.Fatalf("snapshot spread %v, want 0.45", res.Final.Spread)
	}
	want := physics.SurfaceEnergy(res.Final.Positions, res.Final.Velocities, 0.45)
	if got := res.Metrics["surface_energy"]; math.Abs(got-want) > 1e-9 {
		t.Errorf("surface_energy %v, want %v", got, want)
	}
}
