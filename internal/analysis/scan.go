package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/sim"
)

// Tunable is a potential whose parameters can be changed between runs.
type Tunable interface {
	dynamo.Potential
	dynamo.Configurable
}

// ScanPoint is the outcome of one descent in a parameter scan.
type ScanPoint struct {
	Param     float64
	Final     dynamo.FieldPoint
	Potential float64
	Diverged  bool
	Err       error
}

// ParamScan sweeps one parameter of pot over [lo, hi] and runs a full
// descent with cfg at each value. Values the model rejects are kept with
// Err set. The parameter is restored before returning.
func ParamScan(pot Tunable, integ dynamo.Integrator, name string, lo, hi float64, steps int, cfg sim.Config) ([]ScanPoint, error) {
	orig, ok := pot.GetParams()[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown parameter %q", dynamo.ErrParameterBounds, name)
	}
	defer func() { _ = pot.SetParam(name, orig) }()

	if steps <= 1 {
		steps = 2
	}
	delta := (hi - lo) / float64(steps-1)

	results := make([]ScanPoint, 0, steps)
	for i := 0; i < steps; i++ {
		param := lo + float64(i)*delta
		pt := ScanPoint{Param: param}

		if err := pot.SetParam(name, param); err != nil {
			pt.Err = err
			results = append(results, pt)
			continue
		}

		d, err := sim.New(pot, cfg, sim.WithIntegrator(integ))
		if err != nil {
			if errors.Is(err, dynamo.ErrInvalidConfig) {
				return nil, err
			}
			pt.Err = err
			results = append(results, pt)
			continue
		}
		res, err := d.Run()
		if err != nil {
			pt.Err = err
		}
		pt.Final = d.Point()
		pt.Potential = res.Last.Total
		pt.Diverged = res.Diverged
		results = append(results, pt)
	}
	return results, nil
}

// ScanToASCII plots the final φ− of each scan point against the parameter.
func ScanToASCII(data []ScanPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		if p.Err != nil || !p.Final.IsValid() {
			continue
		}
		v := p.Final.Minus
		if !found {
			minVal, maxVal = v, v
			found = true
			continue
		}
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := blankCanvas(width, height)
	for i, p := range data {
		if p.Err != nil || !p.Final.IsValid() {
			continue
		}
		col := min(i*width/len(data), width-1)
		row := height - 1 - int((p.Final.Minus-minVal)/(maxVal-minVal)*float64(height-1))
		if row >= 0 && row < height {
			canvas[row][col] = '•'
		}
	}
	return canvasString(canvas)
}

func blankCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func canvasString(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
