package integrators

import "github.com/san-kum/landscape/internal/dynamo"

// Euler is explicit forward Euler on the gradient flow dφ/dt = −lr·∇V.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(pot dynamo.Potential, p dynamo.FieldPoint, learningRate, dt float64) (dynamo.FieldPoint, error) {
	gp, gm, err := pot.Gradient(p)
	if err != nil {
		return p, err
	}
	return dynamo.FieldPoint{
		Plus:  p.Plus - learningRate*gp*dt,
		Minus: p.Minus - learningRate*gm*dt,
	}, nil
}
