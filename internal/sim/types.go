package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
)

// Config holds the run parameters of a descent.
type Config struct {
	Initial       dynamo.FieldPoint
	LearningRate  float64
	Dt            float64
	Frames        int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Initial:       dynamo.FieldPoint{Plus: 2.0, Minus: 1.0},
		LearningRate:  0.1,
		Dt:            0.05,
		Frames:        200,
		ValidateState: true,
	}
}

func (c Config) validate() error {
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return fmt.Errorf("%w: learning rate must be positive, got %v", dynamo.ErrInvalidConfig, c.LearningRate)
	}
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frame count must not be negative, got %d", dynamo.ErrInvalidConfig, c.Frames)
	}
	if !c.Initial.IsValid() {
		return fmt.Errorf("%w: initial point %v is not finite", dynamo.ErrInvalidConfig, c.Initial)
	}
	return nil
}

// Result is what a run hands to the presentation layer.
type Result struct {
	Trajectory *dynamo.Trajectory
	// Last holds the term contributions of the most recent entry.
	Last       dynamo.Evaluation
	Metrics    map[string]float64
	StepsTaken int
	Diverged   bool
	Errors     []error
}
