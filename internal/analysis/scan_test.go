package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/integrators"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/sim"
)

func TestParamScan_Lambda(t *testing.T) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	cfg := sim.DefaultConfig()
	cfg.Frames = 2000

	pts, err := ParamScan(pot, integrators.NewEuler(), "lambda", 0.5, 4, 8, cfg)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(pts) != 8 {
		t.Fatalf("expected 8 points, got %d", len(pts))
	}
	for _, p := range pts {
		if p.Err != nil || p.Diverged {
			t.Fatalf("λ=%f: unexpected failure %v", p.Param, p.Err)
		}
		want := math.Sqrt(6 / p.Param)
		if math.Abs(p.Final.Minus-want) > 1e-3 {
			t.Errorf("λ=%f: expected φ- near %f, got %f", p.Param, want, p.Final.Minus)
		}
	}
	if pot.Params.Lambda != 1 {
		t.Errorf("expected λ restored to 1, got %f", pot.Params.Lambda)
	}
}

func TestParamScan_ZeroCrossing(t *testing.T) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	cfg := sim.DefaultConfig()
	cfg.Frames = 10

	pts, err := ParamScan(pot, integrators.NewEuler(), "lambda", -1, 1, 3, cfg)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !errors.Is(pts[1].Err, dynamo.ErrUndefinedPotential) {
		t.Errorf("expected λ=0 to be rejected, got %v", pts[1].Err)
	}
	if pts[0].Err != nil || pts[2].Err != nil {
		t.Errorf("expected λ=±1 to run, got %v / %v", pts[0].Err, pts[2].Err)
	}
}

func TestParamScan_UnknownParam(t *testing.T) {
	pot := physics.NewPotential(dynamo.DefaultParams())
	_, err := ParamScan(pot, integrators.NewEuler(), "mu", 0, 1, 3, sim.DefaultConfig())
	if !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected ErrParameterBounds, got %v", err)
	}
}

func TestScanToASCII(t *testing.T) {
	if ScanToASCII(nil, 10, 5) != "" {
		t.Error("expected empty output for no data")
	}
	data := []ScanPoint{
		{Param: 1, Final: dynamo.FieldPoint{Minus: 2}},
		{Param: 2, Final: dynamo.FieldPoint{Minus: 1}},
		{Param: 3, Err: dynamo.ErrUndefinedPotential},
	}
	out := ScanToASCII(data, 12, 6)
	if strings.Count(out, "•") != 2 {
		t.Errorf("expected 2 plotted points, got:\n%s", out)
	}
	if strings.Count(out, "\n") != 6 {
		t.Errorf("expected 6 rows, got %d", strings.Count(out, "\n"))
	}
}
