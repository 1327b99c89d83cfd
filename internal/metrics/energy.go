package metrics

import (
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
)

// EnergyDrop is the total decrease of V from the first observation to the
// most recent one.
type EnergyDrop struct {
	name    string
	initial float64
	current float64
	samples int
}

func NewEnergyDrop() *EnergyDrop {
	return &EnergyDrop{name: "energy_drop"}
}

func (e *EnergyDrop) Name() string { return e.name }

func (e *EnergyDrop) Observe(step int, p dynamo.FieldPoint, eval dynamo.Evaluation) {
	if e.samples == 0 {
		e.initial = eval.Total
	}
	e.current = eval.Total
	e.samples++
}

func (e *EnergyDrop) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.initial - e.current
}

func (e *EnergyDrop) Reset() {
	e.initial = 0
	e.current = 0
	e.samples = 0
}

// Monotonicity is the fraction of steps on which V did not increase. Plain
// gradient descent with a small enough step scores 1.
type Monotonicity struct {
	name      string
	prev      float64
	samples   int
	nonRising int
}

func NewMonotonicity() *Monotonicity {
	return &Monotonicity{name: "monotonicity"}
}

func (m *Monotonicity) Name() string { return m.name }

func (m *Monotonicity) Observe(step int, p dynamo.FieldPoint, eval dynamo.Evaluation) {
	if m.samples > 0 && eval.Total <= m.prev {
		m.nonRising++
	}
	m.prev = eval.Total
	m.samples++
}

func (m *Monotonicity) Value() float64 {
	if m.samples < 2 {
		return 1.0
	}
	return float64(m.nonRising) / float64(m.samples-1)
}

func (m *Monotonicity) Reset() {
	m.prev = 0
	m.samples = 0
	m.nonRising = 0
}

// PathLength accumulates the Euclidean distance travelled in field space.
type PathLength struct {
	name    string
	prev    dynamo.FieldPoint
	total   float64
	samples int
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (l *PathLength) Name() string { return l.name }

func (l *PathLength) Observe(step int, p dynamo.FieldPoint, eval dynamo.Evaluation) {
	if l.samples > 0 {
		l.total += p.Sub(l.prev).Norm()
	}
	l.prev = p
	l.samples++
}

func (l *PathLength) Value() float64 {
	if math.IsNaN(l.total) {
		return math.Inf(1)
	}
	return l.total
}

func (l *PathLength) Reset() {
	l.prev = dynamo.FieldPoint{}
	l.total = 0
	l.samples = 0
}
