package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/landscape/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params.M != 1 || cfg.Params.Lambda != 1 {
		t.Errorf("expected m=1 λ=1, got m=%v λ=%v", cfg.Params.M, cfg.Params.Lambda)
	}
	if cfg.Descent.Initial != (dynamo.FieldPoint{Plus: 2, Minus: 1}) {
		t.Errorf("expected initial (2, 1), got %v", cfg.Descent.Initial)
	}
	if cfg.Descent.LearningRate != 0.1 || cfg.Descent.Dt != 0.05 {
		t.Errorf("expected lr=0.1 dt=0.05, got lr=%v dt=%v", cfg.Descent.LearningRate, cfg.Descent.Dt)
	}
	if cfg.Descent.Frames != 200 {
		t.Errorf("expected 200 frames, got %d", cfg.Descent.Frames)
	}
	if cfg.Surface.Extent != 3.5 || cfg.Surface.Resolution != 50 {
		t.Errorf("expected extent 3.5 resolution 50, got %v %d", cfg.Surface.Extent, cfg.Surface.Resolution)
	}
	if cfg.FrameInterval() != 100*time.Millisecond {
		t.Errorf("expected 100ms interval, got %v", cfg.FrameInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "params:\n  lambda: 2\ndescent:\n  frames: 10\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Params.Lambda != 2 {
		t.Errorf("expected λ=2, got %v", cfg.Params.Lambda)
	}
	if cfg.Params.M != 1 {
		t.Errorf("expected default m=1 to survive overlay, got %v", cfg.Params.M)
	}
	if cfg.Descent.Frames != 10 {
		t.Errorf("expected 10 frames, got %d", cfg.Descent.Frames)
	}
	if cfg.Descent.LearningRate != 0.1 {
		t.Errorf("expected default learning rate, got %v", cfg.Descent.LearningRate)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("params: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("heavy")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("expected %+v, got %+v", *cfg, *loaded)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero lambda", func(c *Config) { c.Params.Lambda = 0 }, dynamo.ErrUndefinedPotential},
		{"zero learning rate", func(c *Config) { c.Descent.LearningRate = 0 }, dynamo.ErrInvalidConfig},
		{"negative dt", func(c *Config) { c.Descent.Dt = -1 }, dynamo.ErrInvalidConfig},
		{"negative frames", func(c *Config) { c.Descent.Frames = -1 }, dynamo.ErrInvalidConfig},
		{"coarse grid", func(c *Config) { c.Surface.Resolution = 1 }, dynamo.ErrInvalidConfig},
		{"zero extent", func(c *Config) { c.Surface.Extent = 0 }, dynamo.ErrInvalidConfig},
		{"zero fps", func(c *Config) { c.Animation.FPS = 0 }, dynamo.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestSimConfig(t *testing.T) {
	cfg := DefaultConfig()
	sc := cfg.SimConfig()
	if sc.Frames != 200 || sc.LearningRate != 0.1 || sc.Dt != 0.05 || !sc.ValidateState {
		t.Errorf("unexpected sim config %+v", sc)
	}
	if p := cfg.ModelParams(); p != dynamo.DefaultParams() {
		t.Errorf("expected default params, got %+v", p)
	}
}
