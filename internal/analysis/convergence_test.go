package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/integrators"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/sim"
)

func defaultRun(t *testing.T) *dynamo.Trajectory {
	t.Helper()
	traj, err := sim.Run(dynamo.FieldPoint{Plus: 2, Minus: 1}, dynamo.DefaultParams(), 0.1, 0.05, 200)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return traj
}

func TestConvergence_Default(t *testing.T) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	rep, err := Convergence(defaultRun(t), pot, 0.1, 0.05)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rep.Target != (dynamo.FieldPoint{Plus: 0, Minus: math.Sqrt(6)}) {
		t.Errorf("expected upper vacuum as target, got %v", rep.Target)
	}
	if math.Abs(rep.Curvature[0]-1) > 1e-12 || math.Abs(rep.Curvature[1]-2) > 1e-12 {
		t.Errorf("expected curvature (1, 2), got %v", rep.Curvature)
	}
	if math.Abs(rep.PredictedRate-0.995) > 1e-12 {
		t.Errorf("expected predicted rate 0.995, got %f", rep.PredictedRate)
	}
	if math.Abs(rep.StepLimit-1) > 1e-12 {
		t.Errorf("expected step limit 1, got %f", rep.StepLimit)
	}
	if !rep.Stable || rep.Diverged {
		t.Errorf("expected stable, non-diverged report: %+v", rep)
	}
	if rep.Samples != 200 {
		t.Errorf("expected 200 samples, got %d", rep.Samples)
	}
	// Every per-axis contraction factor along this path lies in [0.99, 0.9972].
	if rep.MeasuredRate < 0.989 || rep.MeasuredRate > 0.998 {
		t.Errorf("measured rate %f outside expected band", rep.MeasuredRate)
	}
	if rep.FinalDistance >= rep.InitialDistance {
		t.Errorf("expected approach: %f -> %f", rep.InitialDistance, rep.FinalDistance)
	}
}

func TestConvergence_Overshoot(t *testing.T) {
	params := dynamo.DefaultParams()
	traj, err := sim.Run(dynamo.FieldPoint{Plus: 2, Minus: 1}, params, 50, 1, 40)
	if !errors.Is(err, dynamo.ErrDiverged) {
		t.Fatalf("expected divergence, got %v", err)
	}

	rep, err := Convergence(traj, physics.NewPotential(params), 50, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rep.Diverged {
		t.Error("expected diverged report")
	}
	if rep.Stable {
		t.Error("lr·dt = 50 should exceed the step limit")
	}
}

func TestConvergence_Errors(t *testing.T) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	if _, err := Convergence(dynamo.NewTrajectory(0), pot, 0.1, 0.05); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for empty trajectory, got %v", err)
	}

	neg := physics.NewPotential(dynamo.Params{M: 1, Lambda: -1})
	if _, err := Convergence(defaultRun(t), neg, 0.1, 0.05); !errors.Is(err, dynamo.ErrNoVacuum) {
		t.Errorf("expected ErrNoVacuum, got %v", err)
	}
}

func TestSeparationExponent(t *testing.T) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	exp, err := SeparationExponent(pot, integrators.NewEuler(), dynamo.FieldPoint{Plus: 2, Minus: 1}, 0.1, 0.05, 200, 1e-6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Curvature along φ+ runs from 3 at the start to 1 at φ+ = 0, so the
	// exponent sits between -0.3 and -0.1.
	if exp > -0.09 || exp < -0.31 {
		t.Errorf("expected exponent in [-0.31, -0.09], got %f", exp)
	}

	if _, err := SeparationExponent(pot, integrators.NewEuler(), dynamo.FieldPoint{}, 0.1, 0.05, 10, 0); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for zero perturbation, got %v", err)
	}

	_, err = SeparationExponent(pot, integrators.NewEuler(), dynamo.FieldPoint{Plus: 2, Minus: 1}, 50, 1, 40, 1e-6)
	if !errors.Is(err, dynamo.ErrDiverged) {
		t.Errorf("expected ErrDiverged, got %v", err)
	}
}
