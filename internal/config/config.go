// Package config loads run parameters from YAML on top of embedded defaults.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/sim"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type Config struct {
	Params    ParamsConfig    `yaml:"params"`
	Descent   DescentConfig   `yaml:"descent"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Animation AnimationConfig `yaml:"animation"`
}

type ParamsConfig struct {
	M      float64 `yaml:"m"`
	Lambda float64 `yaml:"lambda"`
}

type DescentConfig struct {
	Initial          dynamo.FieldPoint `yaml:"initial"`
	LearningRate     float64           `yaml:"learning_rate"`
	Dt               float64           `yaml:"dt"`
	Frames           int               `yaml:"frames"`
	StopOnDivergence bool              `yaml:"stop_on_divergence"`
}

// SurfaceConfig controls the sampled grid; the axes run over [-Extent, Extent].
type SurfaceConfig struct {
	Extent     float64 `yaml:"extent"`
	Resolution int     `yaml:"resolution"`
}

type AnimationConfig struct {
	FPS                int     `yaml:"fps"`
	Width              int     `yaml:"width"`
	Height             int     `yaml:"height"`
	StabilityThreshold float64 `yaml:"stability_threshold"`
}

func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load reads path over the embedded defaults. An empty path yields the
// defaults alone.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

func (c *Config) Validate() error {
	if err := c.ModelParams().Validate(); err != nil {
		return err
	}
	if !positive(c.Descent.LearningRate) {
		return invalid("descent.learning_rate must be positive, got %v", c.Descent.LearningRate)
	}
	if !positive(c.Descent.Dt) {
		return invalid("descent.dt must be positive, got %v", c.Descent.Dt)
	}
	if c.Descent.Frames < 0 {
		return invalid("descent.frames must not be negative, got %d", c.Descent.Frames)
	}
	if !c.Descent.Initial.IsValid() {
		return invalid("descent.initial must be finite, got %v", c.Descent.Initial)
	}
	if !positive(c.Surface.Extent) {
		return invalid("surface.extent must be positive, got %v", c.Surface.Extent)
	}
	if c.Surface.Resolution < 2 {
		return invalid("surface.resolution must be at least 2, got %d", c.Surface.Resolution)
	}
	if c.Animation.FPS <= 0 {
		return invalid("animation.fps must be positive, got %d", c.Animation.FPS)
	}
	if c.Animation.Width <= 0 || c.Animation.Height <= 0 {
		return invalid("animation size must be positive, got %dx%d", c.Animation.Width, c.Animation.Height)
	}
	return nil
}

func (c *Config) ModelParams() dynamo.Params {
	return dynamo.Params{M: c.Params.M, Lambda: c.Params.Lambda}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Initial:       c.Descent.Initial,
		LearningRate:  c.Descent.LearningRate,
		Dt:            c.Descent.Dt,
		Frames:        c.Descent.Frames,
		ValidateState: c.Descent.StopOnDivergence,
	}
}

// FrameInterval is the delay between animation frames.
func (c *Config) FrameInterval() time.Duration {
	if c.Animation.FPS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Second / time.Duration(c.Animation.FPS)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{dynamo.ErrInvalidConfig}, args...)...)
}
