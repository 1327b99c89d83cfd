package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
)

// Potential is the symmetric-breaking two-field potential. Methods are pure
// and safe for concurrent use as long as Params is not modified concurrently.
type Potential struct {
	Params dynamo.Params
}

func NewPotential(p dynamo.Params) *Potential {
	return &Potential{Params: p}
}

func (v *Potential) Evaluate(p dynamo.FieldPoint) (dynamo.Evaluation, error) {
	return EvaluatePotential(p, v.Params)
}

func (v *Potential) Gradient(p dynamo.FieldPoint) (float64, float64, error) {
	return Gradient(p, v.Params)
}

// EvaluatePotential returns V at p and its four term contributions.
func EvaluatePotential(p dynamo.FieldPoint, params dynamo.Params) (dynamo.Evaluation, error) {
	if params.Lambda == 0 {
		return dynamo.Evaluation{}, dynamo.ErrUndefinedPotential
	}
	m2 := params.M * params.M
	pp2, pm2 := p.Plus*p.Plus, p.Minus*p.Minus

	e := dynamo.Evaluation{
		Plus:    0.5 * m2 * pp2,
		Minus:   -0.5 * m2 * pm2,
		Quartic: (params.Lambda / 24.0) * (pp2*pp2 + pm2*pm2),
		Const:   (3 * m2 * m2) / (2 * params.Lambda),
	}
	e.Total = e.Plus + e.Minus + e.Quartic + e.Const
	return e, nil
}

// Gradient returns (∂V/∂φ+, ∂V/∂φ−) in closed form.
func Gradient(p dynamo.FieldPoint, params dynamo.Params) (float64, float64, error) {
	if params.Lambda == 0 {
		return 0, 0, dynamo.ErrUndefinedPotential
	}
	m2 := params.M * params.M
	c := params.Lambda / 6.0
	gp := m2*p.Plus + c*p.Plus*p.Plus*p.Plus
	gm := -m2*p.Minus + c*p.Minus*p.Minus*p.Minus
	return gp, gm, nil
}

// Hessian returns the diagonal second derivatives. The mixed derivative is
// identically zero because the fields do not couple.
func (v *Potential) Hessian(p dynamo.FieldPoint) (float64, float64, error) {
	if v.Params.Lambda == 0 {
		return 0, 0, dynamo.ErrUndefinedPotential
	}
	m2 := v.Params.M * v.Params.M
	h := v.Params.Lambda / 2.0
	return m2 + h*p.Plus*p.Plus, -m2 + h*p.Minus*p.Minus, nil
}

// Vacuum is the analytic pair of minima at φ+ = 0, φ− = ±sqrt(6m²/λ).
type Vacuum struct {
	Points [2]dynamo.FieldPoint
	Energy float64
}

func (v *Potential) Vacuum() (Vacuum, error) {
	if err := v.Params.Validate(); err != nil {
		return Vacuum{}, err
	}
	sq := 6 * v.Params.M * v.Params.M / v.Params.Lambda
	if sq < 0 {
		return Vacuum{}, fmt.Errorf("%w: 6m²/λ = %.4g", dynamo.ErrNoVacuum, sq)
	}
	phi := math.Sqrt(sq)
	vac := Vacuum{Points: [2]dynamo.FieldPoint{{Plus: 0, Minus: phi}, {Plus: 0, Minus: -phi}}}
	e, err := v.Evaluate(vac.Points[0])
	if err != nil {
		return Vacuum{}, err
	}
	vac.Energy = e.Total
	return vac, nil
}

// Nearest returns the vacuum on the same side of φ− = 0 as p.
func (vac Vacuum) Nearest(p dynamo.FieldPoint) dynamo.FieldPoint {
	if p.Minus < 0 {
		return vac.Points[1]
	}
	return vac.Points[0]
}

func (v *Potential) GetParams() map[string]float64 {
	return map[string]float64{"m": v.Params.M, "lambda": v.Params.Lambda}
}

func (v *Potential) SetParam(name string, value float64) error {
	switch name {
	case "m":
		v.Params.M = value
	case "lambda":
		if value == 0 {
			return dynamo.ErrUndefinedPotential
		}
		v.Params.Lambda = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", dynamo.ErrParameterBounds, name)
	}
	return nil
}
