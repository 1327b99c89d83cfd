package config

import (
	"slices"
	"testing"
)

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("near-vacuum")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Descent.Initial.Minus != 2.3 {
		t.Errorf("expected φ- 2.3, got %f", cfg.Descent.Initial.Minus)
	}
	if cfg.Params.Lambda != 1 {
		t.Errorf("expected untouched defaults, got λ=%f", cfg.Params.Lambda)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if DefaultConfig().Apply("nonexistent") {
		t.Error("expected Apply to report unknown preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(names))
	}
	if !slices.IsSorted(names) {
		t.Errorf("expected sorted names, got %v", names)
	}
	if !slices.Contains(names, "default") {
		t.Error("expected default preset")
	}
}
