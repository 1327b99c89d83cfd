package config

import (
	"slices"

	"github.com/san-kum/landscape/internal/dynamo"
)

// Preset changes a subset of the defaults.
type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"default": {
		Description: "m=1, λ=1 from (2, 1) with lr=0.1, dt=0.05",
		Apply:       func(*Config) {},
	},
	"near-vacuum": {
		Description: "start next to the φ- vacuum; the path barely moves",
		Apply: func(c *Config) {
			c.Descent.Initial = dynamo.FieldPoint{Plus: 0.1, Minus: 2.3}
		},
	},
	"symmetric": {
		Description: "start on the φ- = 0 ridge; the path slides to φ+ = 0 and stalls on the saddle",
		Apply: func(c *Config) {
			c.Descent.Initial = dynamo.FieldPoint{Plus: 2.5, Minus: 0}
			c.Descent.Frames = 300
		},
	},
	"heavy": {
		Description: "m=2, λ=0.5; deep wells far from the origin",
		Apply: func(c *Config) {
			c.Params = ParamsConfig{M: 2, Lambda: 0.5}
			c.Descent.Initial = dynamo.FieldPoint{Plus: 3, Minus: 2}
			c.Descent.LearningRate = 0.05
			c.Surface.Extent = 8
		},
	},
	"overshoot": {
		Description: "step size far past the stability limit; the run diverges",
		Apply: func(c *Config) {
			c.Descent.LearningRate = 50
			c.Descent.Dt = 1
			c.Descent.Frames = 40
		},
	},
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg
}

// Apply overlays a preset on an existing config.
func (c *Config) Apply(name string) bool {
	p, ok := Presets[name]
	if !ok {
		return false
	}
	p.Apply(c)
	return true
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
