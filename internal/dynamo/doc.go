// Package dynamo provides the shared data types for potential descent runs.
//
// The package defines the values passed between the model, the integrator and
// the presentation layer:
//
//   - [FieldPoint]: the pair of scalar fields (phi_plus, phi_minus)
//   - [Params]: the mass scale m and quartic coupling lambda
//   - [Evaluation]: the potential total plus its four term contributions
//   - [Trajectory]: append-only record of every visited point
//
// # Example
//
//	pot := physics.NewPotential(dynamo.Params{M: 1, Lambda: 1})
//	d, _ := sim.New(pot, sim.DefaultConfig())
//	result, _ := d.Run()
//	for i, e := range result.Trajectory.All() {
//		fmt.Println(i, e.Point, e.Potential)
//	}
//
// # Thread Safety
//
// [Params], [FieldPoint] and [Evaluation] are plain values. A [Trajectory] is
// owned by exactly one run loop while it is being written; readers must wait
// for the run to finish.
package dynamo
