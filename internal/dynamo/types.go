package dynamo

import (
	"fmt"
	"math"
)

// FieldPoint is a position in the two-field space.
type FieldPoint struct {
	Plus  float64 `json:"phi_plus" yaml:"phi_plus"`
	Minus float64 `json:"phi_minus" yaml:"phi_minus"`
}

func (p FieldPoint) IsValid() bool {
	return isFinite(p.Plus) && isFinite(p.Minus)
}

func (p FieldPoint) Sub(other FieldPoint) FieldPoint {
	return FieldPoint{Plus: p.Plus - other.Plus, Minus: p.Minus - other.Minus}
}

func (p FieldPoint) Norm() float64 {
	return math.Hypot(p.Plus, p.Minus)
}

func (p FieldPoint) String() string {
	return fmt.Sprintf("(φ+=%.4f, φ-=%.4f)", p.Plus, p.Minus)
}

// Params holds the physical constants of the potential.
type Params struct {
	M      float64 `json:"m" yaml:"m"`
	Lambda float64 `json:"lambda" yaml:"lambda"`
}

func DefaultParams() Params {
	return Params{M: 1.0, Lambda: 1.0}
}

// Validate reports ErrUndefinedPotential for a zero coupling and
// ErrParameterBounds for non-finite constants.
func (p Params) Validate() error {
	if !isFinite(p.M) || !isFinite(p.Lambda) {
		return fmt.Errorf("%w: m=%v lambda=%v", ErrParameterBounds, p.M, p.Lambda)
	}
	if p.Lambda == 0 {
		return ErrUndefinedPotential
	}
	return nil
}

// Evaluation is the potential at a point, split into its contributions.
type Evaluation struct {
	Total   float64 `json:"total"`
	Plus    float64 `json:"term_plus"`
	Minus   float64 `json:"term_minus"`
	Quartic float64 `json:"term_quartic"`
	Const   float64 `json:"term_const"`
}

// Terms returns the four contributions in display order.
func (e Evaluation) Terms() [4]float64 {
	return [4]float64{e.Plus, e.Minus, e.Quartic, e.Const}
}

// Potential is implemented by models that can evaluate V and its gradient.
type Potential interface {
	Evaluate(p FieldPoint) (Evaluation, error)
	Gradient(p FieldPoint) (gp, gm float64, err error)
}

// Integrator advances a point one step down the potential.
type Integrator interface {
	Step(pot Potential, p FieldPoint, learningRate, dt float64) (FieldPoint, error)
}

// Observer is notified after every recorded entry, including the initial one.
type Observer interface {
	OnStep(step int, p FieldPoint, eval Evaluation)
}

type Metric interface {
	Name() string
	Observe(step int, p FieldPoint, eval Evaluation)
	Value() float64
	Reset()
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
