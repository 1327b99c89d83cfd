package sweep

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/metrics"
	"github.com/san-kum/landscape/internal/sim"
)

func TestScan_Order(t *testing.T) {
	rates := []float64{0.01, 0.1, 0.5, 50}
	base := sim.DefaultConfig()
	base.Dt = 1
	base.Frames = 40

	outs, err := Scan(context.Background(), dynamo.DefaultParams(), base, rates, WithWorkers(2))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if len(outs) != len(rates) {
		t.Fatalf("expected %d outcomes, got %d", len(rates), len(outs))
	}
	for i, o := range outs {
		if o.LearningRate != rates[i] {
			t.Errorf("outcome %d: expected rate %f, got %f", i, rates[i], o.LearningRate)
		}
	}
	if !outs[3].Diverged {
		t.Error("expected lr=50, dt=1 to diverge")
	}
	for _, o := range outs[:3] {
		if o.Diverged || o.Err != nil {
			t.Errorf("lr=%f: unexpected failure %v", o.LearningRate, o.Err)
		}
	}
}

func TestScan_MatchesSequentialRun(t *testing.T) {
	base := sim.DefaultConfig()
	outs, err := Scan(context.Background(), dynamo.DefaultParams(), base, []float64{0.1})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	traj, err := sim.Run(base.Initial, dynamo.DefaultParams(), 0.1, base.Dt, base.Frames)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	last, _ := traj.Last()
	if outs[0].Final != last.Point {
		t.Errorf("expected %v, got %v", last.Point, outs[0].Final)
	}
	if outs[0].Steps != base.Frames {
		t.Errorf("expected %d steps, got %d", base.Frames, outs[0].Steps)
	}
}

func TestScan_Metrics(t *testing.T) {
	build := func() []dynamo.Metric {
		return []dynamo.Metric{metrics.NewEnergyDrop(), metrics.NewMonotonicity()}
	}
	outs, err := Scan(context.Background(), dynamo.DefaultParams(), sim.DefaultConfig(), []float64{0.05, 0.1, 0.2}, WithMetrics(build))
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	for _, o := range outs {
		if o.Metrics["energy_drop"] <= 0 {
			t.Errorf("lr=%f: expected positive energy drop, got %f", o.LearningRate, o.Metrics["energy_drop"])
		}
		if o.Metrics["monotonicity"] != 1 {
			t.Errorf("lr=%f: expected monotone descent, got %f", o.LearningRate, o.Metrics["monotonicity"])
		}
	}
}

func TestScan_Errors(t *testing.T) {
	_, err := Scan(context.Background(), dynamo.Params{M: 1, Lambda: 0}, sim.DefaultConfig(), []float64{0.1})
	if !errors.Is(err, dynamo.ErrUndefinedPotential) {
		t.Errorf("expected ErrUndefinedPotential, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Scan(ctx, dynamo.DefaultParams(), sim.DefaultConfig(), []float64{0.1, 0.2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	outs, err := Scan(context.Background(), dynamo.DefaultParams(), sim.DefaultConfig(), []float64{-1})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !errors.Is(outs[0].Err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected per-rate ErrInvalidConfig, got %v", outs[0].Err)
	}
}

func TestLowest(t *testing.T) {
	outs := []Outcome{
		{LearningRate: 0.1, Potential: 0.5},
		{LearningRate: 1, Potential: 0.01},
		{LearningRate: 50, Potential: math.Inf(1), Diverged: true},
		{LearningRate: -1, Err: dynamo.ErrInvalidConfig},
	}
	best, err := Lowest(outs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.LearningRate != 1 {
		t.Errorf("expected lr=1, got %f", best.LearningRate)
	}

	if _, err := Lowest(outs[2:]); err == nil {
		t.Error("expected error when nothing converged")
	}
}
