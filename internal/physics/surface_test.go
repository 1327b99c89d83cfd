package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
)

func TestSampleSurface(t *testing.T) {
	pot := NewPotential(dynamo.DefaultParams())
	s, err := SampleSurface(pot, 3.5, 50)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	c, r := s.Dims()
	if c != 50 || r != 50 {
		t.Fatalf("expected 50x50 grid, got %dx%d", c, r)
	}
	if s.X(0) != -3.5 || s.X(49) != 3.5 || s.Y(0) != -3.5 || s.Y(49) != 3.5 {
		t.Errorf("axes do not span [-3.5, 3.5]: x=[%v,%v] y=[%v,%v]", s.X(0), s.X(49), s.Y(0), s.Y(49))
	}

	e, _ := pot.Evaluate(dynamo.FieldPoint{Plus: s.X(10), Minus: s.Y(30)})
	if s.Z(10, 30) != e.Total {
		t.Errorf("expected Z(10,30)=%v, got %v", e.Total, s.Z(10, 30))
	}

	if s.Min() > s.Max() {
		t.Errorf("min %v greater than max %v", s.Min(), s.Max())
	}
	if math.Abs(s.Extent()-3.5) > 1e-12 {
		t.Errorf("expected extent 3.5, got %v", s.Extent())
	}
}

func TestSampleSurface_Invalid(t *testing.T) {
	pot := NewPotential(dynamo.DefaultParams())

	tests := []struct {
		name       string
		extent     float64
		resolution int
	}{
		{"resolution 1", 3.5, 1},
		{"zero extent", 0, 10},
		{"NaN extent", math.NaN(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SampleSurface(pot, tt.extent, tt.resolution)
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	_, err := SampleSurface(NewPotential(dynamo.Params{M: 1}), 1, 4)
	if !errors.Is(err, dynamo.ErrUndefinedPotential) {
		t.Errorf("expected ErrUndefinedPotential, got %v", err)
	}
}
