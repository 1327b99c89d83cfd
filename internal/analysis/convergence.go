package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
)

type ConvergenceReport struct {
	Target          dynamo.FieldPoint
	InitialDistance float64
	FinalDistance   float64
	// MeasuredRate is the geometric mean of d[k+1]/d[k] over the finite
	// part of the trajectory.
	MeasuredRate float64
	// PredictedRate is max |1 − lr·dt·κ| over the Hessian eigenvalues κ at
	// Target.
	PredictedRate float64
	Curvature     [2]float64
	// StepLimit is the largest lr·dt for which the vacuum is attracting.
	StepLimit float64
	Stable    bool
	Samples   int
	Diverged  bool
}

// Convergence compares the observed approach to the vacuum on the side of
// the final finite point with the linearised prediction.
func Convergence(traj *dynamo.Trajectory, pot *physics.Potential, learningRate, dt float64) (ConvergenceReport, error) {
	if traj.Len() == 0 {
		return ConvergenceReport{}, fmt.Errorf("%w: empty trajectory", dynamo.ErrInvalidConfig)
	}
	vac, err := pot.Vacuum()
	if err != nil {
		return ConvergenceReport{}, err
	}

	end := traj.Len()
	rep := ConvergenceReport{}
	if bad := traj.FirstInvalid(); bad >= 0 {
		end = bad
		rep.Diverged = true
	}
	if end == 0 {
		return rep, &dynamo.SimulationError{Step: 0, Point: traj.At(0).Point, Wrapped: dynamo.ErrDiverged}
	}

	last := traj.At(end - 1).Point
	rep.Target = vac.Nearest(last)
	kp, km, err := pot.Hessian(rep.Target)
	if err != nil {
		return ConvergenceReport{}, err
	}
	rep.Curvature = [2]float64{kp, km}

	eta := learningRate * dt
	rep.PredictedRate = math.Max(math.Abs(1-eta*kp), math.Abs(1-eta*km))
	rep.StepLimit = 2 / math.Max(kp, km)
	rep.Stable = rep.PredictedRate < 1

	rep.InitialDistance = traj.At(0).Point.Sub(rep.Target).Norm()
	rep.FinalDistance = last.Sub(rep.Target).Norm()

	sumLog := 0.0
	prev := rep.InitialDistance
	for i := 1; i < end; i++ {
		d := traj.At(i).Point.Sub(rep.Target).Norm()
		if prev > 1e-12 && d > 0 {
			sumLog += math.Log(d / prev)
			rep.Samples++
		}
		prev = d
	}
	if rep.Samples > 0 {
		rep.MeasuredRate = math.Exp(sumLog / float64(rep.Samples))
	}
	return rep, nil
}

// SeparationExponent runs a second descent displaced by perturbation along
// φ+ next to the first and returns the mean logarithmic growth rate of their
// separation per unit time. The gap is renormalised after every step so the
// estimate follows the local linearisation. Negative values mean nearby
// starts are pulled together.
func SeparationExponent(
	pot dynamo.Potential,
	integ dynamo.Integrator,
	x0 dynamo.FieldPoint,
	learningRate, dt float64,
	frames int,
	perturbation float64,
) (float64, error) {
	if perturbation <= 0 {
		return 0, fmt.Errorf("%w: perturbation must be positive", dynamo.ErrInvalidConfig)
	}

	x := x0
	xp := dynamo.FieldPoint{Plus: x0.Plus + perturbation, Minus: x0.Minus}
	d0 := perturbation

	sumLog := 0.0
	count := 0

	for step := 1; step <= frames; step++ {
		var err error
		if x, err = integ.Step(pot, x, learningRate, dt); err != nil {
			return 0, err
		}
		if xp, err = integ.Step(pot, xp, learningRate, dt); err != nil {
			return 0, err
		}
		if !x.IsValid() || !xp.IsValid() {
			return 0, &dynamo.SimulationError{Step: step, Point: x, Wrapped: dynamo.ErrDiverged}
		}

		sep := xp.Sub(x).Norm()
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / d0)
		count++

		scale := d0 / sep
		xp = dynamo.FieldPoint{
			Plus:  x.Plus + (xp.Plus-x.Plus)*scale,
			Minus: x.Minus + (xp.Minus-x.Minus)*scale,
		}
	}

	if count == 0 {
		return 0, nil
	}
	return sumLog / (float64(count) * dt), nil
}
