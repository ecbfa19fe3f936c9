package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/slosh/internal/dynamo"
	"github.com/san-kum/slosh/internal/physics"
	"github.com/san-kum/slosh/internal/render"
	"github.com/san-kum/slosh/internal/sensor"
)

const (
	DefaultNodes      = 50
	DefaultTension    = 0.015
	DefaultDampening  = 0.04
	DefaultSpread     = 0.25
	DefaultPasses     = 3
	DefaultAmbient    = 10.0
	DefaultWaveSpeed  = 0.1
	DefaultMaxForce   = 60.0
	DefaultSmoothing  = 0.05
	DefaultMinVisible = 0.05
	DefaultTickRate   = 60.0
	DefaultQueueSize  = 64
	DefaultMaxCatchUp = 5
	DefaultWidth      = 800
	DefaultHeight     = 600
	DefaultDuration   = 10.0

	maxNodes    = 4096
	maxTickRate = 1000.0
)

type Config struct {
	Preset     string          `yaml:"preset,omitempty"`
	Seed       int64           `yaml:"seed"`
	TickRate   float64         `yaml:"tick_rate"`
	QueueSize  int             `yaml:"queue_size"`
	MaxCatchUp int             `yaml:"max_catch_up"`
	Duration   float64         `yaml:"duration"`
	Fill       float64         `yaml:"fill"`
	Mesh       MeshConfig      `yaml:"mesh"`
	Smoothing  SmoothingConfig `yaml:"smoothing"`
	Sensor     SensorConfig    `yaml:"sensor"`
	Render     RenderConfig    `yaml:"render"`
	Viewport   ViewportConfig  `yaml:"viewport"`
}

type MeshConfig struct {
	Nodes     int        `yaml:"nodes"`
	Tension   float64    `yaml:"tension"`
	Dampening float64    `yaml:"dampening"`
	Spread    float64    `yaml:"spread"`
	Passes    int        `yaml:"passes"`
	Ambient   float64    `yaml:"ambient"`
	WaveSpeed float64    `yaml:"wave_speed"`
	MaxForce  float64    `yaml:"max_force"`
	Wave      WaveConfig `yaml:"wave"`
}

type WaveConfig struct {
	K1    float64 `yaml:"k1"`
	K2    float64 `yaml:"k2"`
	Freq  float64 `yaml:"freq"`
	Ratio float64 `yaml:"ratio"`
}

type SmoothingConfig struct {
	Fill       float64 `yaml:"fill"`
	Tilt       float64 `yaml:"tilt"`
	MinVisible float64 `yaml:"min_visible"`
}

type SensorConfig struct {
	TiltOffset     float64 `yaml:"tilt_offset"`
	ShakeThreshold float64 `yaml:"shake_threshold"`
	ShakeGain      float64 `yaml:"shake_gain"`
}

type RenderConfig struct {
	LowMax    float64 `yaml:"low_max"`
	MidMax    float64 `yaml:"mid_max"`
	LowColor  string  `yaml:"low_color"`
	MidColor  string  `yaml:"mid_color"`
	HighColor string  `yaml:"high_color"`
	Alpha     float64 `yaml:"alpha"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func DefaultConfig() *Config {
	w := physics.DefaultWave(DefaultAmbient)
	return &Config{
		TickRate:   DefaultTickRate,
		QueueSize:  DefaultQueueSize,
		MaxCatchUp: DefaultMaxCatchUp,
		Duration:   DefaultDuration,
		Mesh: MeshConfig{
			Nodes:     DefaultNodes,
			Tension:   DefaultTension,
			Dampening: DefaultDampening,
			Spread:    DefaultSpread,
			Passes:    DefaultPasses,
			Ambient:   DefaultAmbient,
			WaveSpeed: DefaultWaveSpeed,
			MaxForce:  DefaultMaxForce,
			Wave:      WaveConfig{K1: w.K1, K2: w.K2, Freq: w.Freq, Ratio: w.Ratio},
		},
		Smoothing: SmoothingConfig{
			Fill:       DefaultSmoothing,
			Tilt:       DefaultSmoothing,
			MinVisible: DefaultMinVisible,
		},
		Sensor: SensorConfig{
			TiltOffset:     math.Pi,
			ShakeThreshold: 10,
			ShakeGain:      2,
		},
		Render: RenderConfig{
			LowMax:    0.25,
			MidMax:    0.75,
			LowColor:  "#3b82f6",
			MidColor:  "#8b5cf6",
			HighColor: "#ef4444",
			Alpha:     0.9,
		},
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	}
}

// Load reads a YAML file. A "preset" key selects the base the rest of the
// file is layered on; otherwise the defaults are the base.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		p, err := GetPreset(head.Preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	checks := []struct {
		field string
		value any
		ok    bool
	}{
		{"mesh.nodes", c.Mesh.Nodes, c.Mesh.Nodes >= 2 && c.Mesh.Nodes <= maxNodes},
		{"mesh.tension", c.Mesh.Tension, within(c.Mesh.Tension, 0, 1)},
		{"mesh.dampening", c.Mesh.Dampening, within(c.Mesh.Dampening, 0, 1)},
		{"mesh.spread", c.Mesh.Spread, within(c.Mesh.Spread, 0, 0.5)},
		{"mesh.passes", c.Mesh.Passes, c.Mesh.Passes >= 0 && c.Mesh.Passes <= 16},
		{"mesh.ambient", c.Mesh.Ambient, c.Mesh.Ambient >= 0},
		{"mesh.wave_speed", c.Mesh.WaveSpeed, c.Mesh.WaveSpeed >= 0},
		{"mesh.max_force", c.Mesh.MaxForce, c.Mesh.MaxForce > 0},
		{"smoothing.fill", c.Smoothing.Fill, c.Smoothing.Fill > 0 && c.Smoothing.Fill <= 1},
		{"smoothing.tilt", c.Smoothing.Tilt, c.Smoothing.Tilt > 0 && c.Smoothing.Tilt <= 1},
		{"smoothing.min_visible", c.Smoothing.MinVisible, c.Smoothing.MinVisible >= 0 && c.Smoothing.MinVisible < 1},
		{"sensor.shake_threshold", c.Sensor.ShakeThreshold, c.Sensor.ShakeThreshold >= 0},
		{"sensor.shake_gain", c.Sensor.ShakeGain, c.Sensor.ShakeGain >= 0},
		{"sensor.tilt_offset", c.Sensor.TiltOffset, !math.IsNaN(c.Sensor.TiltOffset) && !math.IsInf(c.Sensor.TiltOffset, 0)},
		{"render.low_max", c.Render.LowMax, within(c.Render.LowMax, 0, c.Render.MidMax)},
		{"render.mid_max", c.Render.MidMax, within(c.Render.MidMax, c.Render.LowMax, 1)},
		{"render.alpha", c.Render.Alpha, within(c.Render.Alpha, 0, 1)},
		{"viewport.width", c.Viewport.Width, c.Viewport.Width > 0},
		{"viewport.height", c.Viewport.Height, c.Viewport.Height > 0},
		{"tick_rate", c.TickRate, c.TickRate > 0 && c.TickRate <= maxTickRate},
		{"queue_size", c.QueueSize, c.QueueSize >= 1},
		{"max_catch_up", c.MaxCatchUp, c.MaxCatchUp >= 1},
		{"duration", c.Duration, c.Duration >= 0},
		{"fill", c.Fill, within(c.Fill, 0, 100)},
	}
	for _, chk := range checks {
		if !chk.ok {
			return &dynamo.ConfigError{Field: chk.field, Value: chk.value, Wrapped: dynamo.ErrInvalidConfig}
		}
	}
	if _, err := c.Palette(); err != nil {
		return &dynamo.ConfigError{Field: "render", Value: err, Wrapped: dynamo.ErrInvalidConfig}
	}
	return nil
}

func within(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}

func (c *Config) MeshParams() physics.Params {
	return physics.Params{
		Tension:   c.Mesh.Tension,
		Dampening: c.Mesh.Dampening,
		Spread:    c.Mesh.Spread,
		Passes:    c.Mesh.Passes,
		MaxForce:  c.Mesh.MaxForce,
		Wave: physics.Wave{
			Amplitude: c.Mesh.Ambient,
			K1:        c.Mesh.Wave.K1,
			K2:        c.Mesh.Wave.K2,
			Freq:      c.Mesh.Wave.Freq,
			Ratio:     c.Mesh.Wave.Ratio,
		},
	}
}

func (c *Config) SensorConfig() sensor.Config {
	return sensor.Config{
		TiltOffset:     c.Sensor.TiltOffset,
		ShakeThreshold: c.Sensor.ShakeThreshold,
		ShakeGain:      c.Sensor.ShakeGain,
	}
}

func (c *Config) Palette() (render.Palette, error) {
	p := render.Palette{LowMax: c.Render.LowMax, MidMax: c.Render.MidMax}
	var err error
	if p.Low, err = render.ParseHex(c.Render.LowColor, c.Render.Alpha); err != nil {
		return p, err
	}
	if p.Mid, err = render.ParseHex(c.Render.MidColor, c.Render.Alpha); err != nil {
		return p, err
	}
	if p.High, err = render.ParseHex(c.Render.HighColor, c.Render.Alpha); err != nil {
		return p, err
	}
	return p, nil
}

// Interval is the fixed tick length.
func (c *Config) Interval() time.Duration {
	return time.Duration(float64(time.Second) / c.TickRate)
}

// Ticks is the number of fixed ticks covering Duration seconds.
func (c *Config) Ticks() int {
	return int(math.Round(c.Duration * c.TickRate))
}

func (c *Config) String() string {
	return fmt.Sprintf("nodes=%d tension=%g dampening=%g spread=%g ambient=%g",
		c.Mesh.Nodes, c.Mesh.Tension, c.Mesh.Dampening, c.Mesh.Spread, c.Mesh.Ambient)
}
