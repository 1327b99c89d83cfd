package viz

import (
	"math"
	"testing"
)

func TestViridis_Ends(t *testing.T) {
	cm := Viridis()
	tests := []struct {
		t    float64
		want string
	}{
		{0, "#440154"},
		{-3, "#440154"},
		{math.NaN(), "#440154"},
		{1, "#fde725"},
		{7, "#fde725"},
	}
	for _, tt := range tests {
		if got := cm.Hex(tt.t); got != tt.want {
			t.Errorf("Hex(%v): expected %s, got %s", tt.t, tt.want, got)
		}
	}
}

func TestColormap_Palette(t *testing.T) {
	cm := Viridis()
	p := cm.Palette(16)
	if len(p) != 16 {
		t.Fatalf("expected 16 colours, got %d", len(p))
	}
	first := cm.RGBA(0)
	if p[0] != first {
		t.Errorf("expected first entry %v, got %v", first, p[0])
	}
	// viridis gets brighter towards the top
	lo, hi := cm.At(0.1), cm.At(0.9)
	l1, _, _ := lo.Lab()
	l2, _, _ := hi.Lab()
	if l2 <= l1 {
		t.Errorf("expected increasing lightness, got %f then %f", l1, l2)
	}
}

func TestNewColormap_Errors(t *testing.T) {
	if _, err := NewColormap("#000000"); err == nil {
		t.Error("expected error for single stop")
	}
	if _, err := NewColormap("#000000", "not-a-colour"); err == nil {
		t.Error("expected error for bad hex")
	}
}

func TestNormalize(t *testing.T) {
	if Normalize(5, 0, 10) != 0.5 {
		t.Error("expected midpoint to map to 0.5")
	}
	if Normalize(5, 1, 1) != 0 {
		t.Error("expected empty range to map to 0")
	}
}
