package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for potential evaluation and descent runs.
var (
	// ErrUndefinedPotential indicates lambda == 0, which leaves the constant
	// term and the cubic gradient coefficient undefined.
	ErrUndefinedPotential = errors.New("dynamo: potential undefined (lambda is zero)")

	// ErrDiverged indicates the iterate left the finite reals.
	ErrDiverged = errors.New("dynamo: descent diverged (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrNoVacuum indicates the parameters admit no real minimum.
	ErrNoVacuum = errors.New("dynamo: no real vacuum for these parameters")

	// ErrFrameLimit indicates Step was called after the last frame.
	ErrFrameLimit = errors.New("dynamo: frame limit reached")

	// ErrInvalidConfig indicates a run configuration that cannot be executed.
	ErrInvalidConfig = errors.New("dynamo: invalid run configuration")
)

// SimulationError wraps an error with the step and point where it occurred.
type SimulationError struct {
	Step    int
	Point   FieldPoint
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d %s: %v", e.Step, e.Point, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
