package viz

import (
	"fmt"

	"github.com/san-kum/landscape/internal/dynamo"
)

// Frame is one trajectory entry together with its term breakdown.
type Frame struct {
	Index  int
	Total  int
	Point  dynamo.FieldPoint
	Values dynamo.Evaluation
}

// Frames evaluates every entry of traj. Total is the number of steps, so the
// initial entry is frame 0 of Total.
func Frames(traj *dynamo.Trajectory, pot dynamo.Potential) ([]Frame, error) {
	out := make([]Frame, traj.Len())
	for i, e := range traj.All() {
		eval, err := pot.Evaluate(e.Point)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out[i] = Frame{Index: i, Total: traj.Len() - 1, Point: e.Point, Values: eval}
	}
	return out, nil
}

// Counter is the frame line shown above the plot.
func (f Frame) Counter() string {
	return fmt.Sprintf("Frame: %d/%d", f.Index, f.Total)
}

// Annotation is the state and term breakdown block shown next to the plot.
func (f Frame) Annotation() string {
	return fmt.Sprintf("Current State:\n"+
		"  φ+ = %.3f\n"+
		"  φ- = %.3f\n"+
		"  V_total = %.3f\n\n"+
		"Term Contributions:\n"+
		"  T1 (φ+²): %.3f\n"+
		"  T2 (φ-²): %.3f\n"+
		"  T3 (φ⁴):  %.3f\n"+
		"  T4 (Const): %.3f",
		f.Point.Plus, f.Point.Minus, f.Values.Total,
		f.Values.Plus, f.Values.Minus, f.Values.Quartic, f.Values.Const)
}
