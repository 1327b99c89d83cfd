// Package analysis inspects finished descents.
//
//   - [Convergence]: measured contraction toward the nearest vacuum against
//     the rate predicted by the Hessian there
//   - [SeparationExponent]: growth rate of the gap between two nearby descents
//   - [ParamScan]: final points of a descent across a range of one parameter
//   - [FieldPathToASCII]: the path in the (φ+, φ−) plane as text
//
// A descent is stable near the vacuum when every Hessian eigenvalue κ
// satisfies |1 − lr·dt·κ| < 1:
//
//	rep, err := analysis.Convergence(traj, pot, lr, dt)
//	if err == nil && !rep.Stable {
//	    // the step size overshoots the wells
//	}
package analysis
