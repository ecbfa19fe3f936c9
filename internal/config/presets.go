package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/slosh/internal/dynamo"
)

const DefaultPreset = "classic"

// Presets are named tunings layered over DefaultConfig.
var Presets = map[string]func(c *Config){
	"classic": func(c *Config) {},
	"lively": func(c *Config) {
		c.Mesh.Nodes = 60
		c.Mesh.Tension = 0.025
		c.Mesh.Dampening = 0.015
	},
	"calm": func(c *Config) {
		c.Mesh.Ambient = 4
		c.Mesh.WaveSpeed = 0.05
		c.Mesh.Dampening = 0.06
		c.Sensor.ShakeThreshold = 14
	},
	"stormy": func(c *Config) {
		c.Mesh.Ambient = 18
		c.Mesh.WaveSpeed = 0.16
		c.Mesh.Dampening = 0.02
		c.Mesh.MaxForce = 80
		c.Sensor.ShakeThreshold = 6
		c.Sensor.ShakeGain = 3
	},
	// glass follows the ambient wave rigidly with no coupling, so splashes
	// vanish on the next tick.
	"glass": func(c *Config) {
		c.Mesh.Tension = 1
		c.Mesh.Dampening = 1
		c.Mesh.Spread = 0
		c.Mesh.Passes = 0
		c.Mesh.Wave.Ratio = 0
	},
}

func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	cfg.Preset = name
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
