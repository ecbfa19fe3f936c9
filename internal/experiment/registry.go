package experiment

import (
	"fmt"
	"math"
	"sort"
)

// Registry holds the built-in scripts by name.
type Registry struct {
	scripts map[string]func() Script
}

func NewRegistry() *Registry {
	r := &Registry{scripts: make(map[string]func() Script)}

	r.scripts["idle"] = func() Script {
		return Script{
			Name:        "idle",
			Description: "half full, ambient motion only",
			Events:      []Event{FillAt(0, 50)},
		}
	}
	r.scripts["fill"] = func() Script {
		return Script{
			Name:        "fill",
			Description: "steps the fill level through every colour band",
			Events: []Event{
				FillAt(0, 10),
				FillAt(300, 50),
				FillAt(600, 90),
				FillAt(900, 0),
			},
		}
	}
	r.scripts["splash"] = func() Script {
		return Script{
			Name:        "splash",
			Description: "three full-force splashes two seconds apart",
			Events: []Event{
				FillAt(0, 50),
				SplashAt(120, 60),
				SplashAt(240, 60),
				SplashAt(360, 60),
			},
		}
	}
	r.scripts["tilt"] = func() Script {
		return Script{
			Name:        "tilt",
			Description: "rocks the tank, then crosses the upside-down seam",
			Events: []Event{
				FillAt(0, 50),
				TiltAt(120, 0.6),
				TiltAt(360, -0.6),
				TiltAt(600, math.Pi-0.1),
				TiltAt(720, -math.Pi+0.1),
			},
		}
	}
	r.scripts["shake"] = func() Script {
		return Script{
			Name:        "shake",
			Description: "upright sensor samples with strong motion",
			Events: []Event{
				FillAt(0, 50),
				SampleAt(60, "0,9.81,0"),
				SampleAt(120, "0,9.81,0,12,8,0"),
				SampleAt(180, "0,9.81,0,-9,-7,0"),
				SampleAt(240, "0,9.81,0,1,1,0"),
			},
		}
	}
	r.scripts["ripple"] = func() Script {
		return Script{
			Name:        "ripple",
			Description: "one strike at the left wall",
			Events:      []Event{FillAt(0, 50), StrikeAt(60, 0, 60)},
		}
	}

	return r
}

func (r *Registry) Get(name string) (Script, error) {
	fn, ok := r.scripts[name]
	if !ok {
		return Script{}, fmt.Errorf("unknown script: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
