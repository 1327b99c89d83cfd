package viz

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

var viridisStops = []string{
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// Colormap interpolates between evenly spaced colour stops in CIE-L*a*b*.
type Colormap struct {
	stops []colorful.Color
}

func NewColormap(hexes ...string) (*Colormap, error) {
	if len(hexes) < 2 {
		return nil, fmt.Errorf("colormap needs at least two stops, got %d", len(hexes))
	}
	cm := &Colormap{stops: make([]colorful.Color, len(hexes))}
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("colormap stop %d: %w", i, err)
		}
		cm.stops[i] = c
	}
	return cm, nil
}

// Viridis is the perceptually uniform map used for the energy surface.
func Viridis() *Colormap {
	cm, err := NewColormap(viridisStops...)
	if err != nil {
		panic(err)
	}
	return cm
}

// At returns the colour for t in [0, 1]; values outside are clamped and NaN
// maps to the low end.
func (cm *Colormap) At(t float64) colorful.Color {
	last := len(cm.stops) - 1
	if math.IsNaN(t) || t <= 0 {
		return cm.stops[0]
	}
	if t >= 1 {
		return cm.stops[last]
	}
	pos := t * float64(last)
	i := int(pos)
	return cm.stops[i].BlendLab(cm.stops[i+1], pos-float64(i)).Clamped()
}

func (cm *Colormap) Hex(t float64) string {
	return cm.At(t).Hex()
}

// RGBA returns the colour for t as an opaque 8-bit colour.
func (cm *Colormap) RGBA(t float64) color.RGBA {
	r, g, b := cm.At(t).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Palette samples n evenly spaced colours.
func (cm *Colormap) Palette(n int) color.Palette {
	p := make(color.Palette, n)
	for i := range p {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p[i] = cm.RGBA(t)
	}
	return p
}

// Normalize maps v into [0, 1] over [lo, hi].
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}
