package physics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/landscape/internal/dynamo"
)

// Surface is V sampled on a square grid. It satisfies plotter.GridXYZ.
type Surface struct {
	xs, ys   []float64
	z        [][]float64
	min, max float64
}

// SampleSurface evaluates pot on resolution×resolution nodes spanning
// [-extent, extent] in both fields.
func SampleSurface(pot dynamo.Potential, extent float64, resolution int) (*Surface, error) {
	if resolution < 2 {
		return nil, fmt.Errorf("%w: resolution %d < 2", dynamo.ErrInvalidConfig, resolution)
	}
	if !(extent > 0) {
		return nil, fmt.Errorf("%w: extent %v", dynamo.ErrInvalidConfig, extent)
	}

	s := &Surface{
		xs:  make([]float64, resolution),
		ys:  make([]float64, resolution),
		z:   make([][]float64, resolution),
		min: math.Inf(1),
		max: math.Inf(-1),
	}
	floats.Span(s.xs, -extent, extent)
	floats.Span(s.ys, -extent, extent)

	for r, y := range s.ys {
		s.z[r] = make([]float64, resolution)
		for c, x := range s.xs {
			e, err := pot.Evaluate(dynamo.FieldPoint{Plus: x, Minus: y})
			if err != nil {
				return nil, err
			}
			s.z[r][c] = e.Total
			s.min = math.Min(s.min, e.Total)
			s.max = math.Max(s.max, e.Total)
		}
	}
	return s, nil
}

func (s *Surface) Dims() (c, r int)   { return len(s.xs), len(s.ys) }
func (s *Surface) X(c int) float64    { return s.xs[c] }
func (s *Surface) Y(r int) float64    { return s.ys[r] }
func (s *Surface) Z(c, r int) float64 { return s.z[r][c] }
func (s *Surface) Min() float64       { return s.min }
func (s *Surface) Max() float64       { return s.max }
func (s *Surface) Extent() float64    { return s.xs[len(s.xs)-1] }
