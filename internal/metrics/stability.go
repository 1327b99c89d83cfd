package metrics

import (
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
)

// Stability is the fraction of observations whose fields stay within
// threshold and are finite.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(step int, p dynamo.FieldPoint, eval dynamo.Evaluation) {
	s.samples++
	if !p.IsValid() || math.Abs(p.Plus) > s.threshold || math.Abs(p.Minus) > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
