// Package physics provides the two-field potential and its surface sampling.
//
// [Potential] evaluates
//
//	V = ½m²φ+² − ½m²φ−² + (λ/24)(φ+⁴ + φ−⁴) + 3m⁴/(2λ)
//
// together with its closed-form gradient. It implements [dynamo.Potential]
// and [dynamo.Configurable]. A zero coupling is reported as
// [dynamo.ErrUndefinedPotential] rather than an infinite value:
//
//	pot := physics.NewPotential(dynamo.Params{M: 1, Lambda: 1})
//	eval, err := pot.Evaluate(dynamo.FieldPoint{Plus: 2, Minus: 1})
//
// [SampleSurface] evaluates the potential over a square grid for plotting.
package physics
