// Package sweep runs the same descent under several learning rates at once.
// It reports how each step size behaves; it never picks one on the caller's
// behalf.
package sweep

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/sim"
)

// Outcome is the result of one learning rate.
type Outcome struct {
	LearningRate float64
	Final        dynamo.FieldPoint
	Potential    float64
	Steps        int
	Diverged     bool
	Metrics      map[string]float64
	Err          error
}

type Scanner struct {
	params  dynamo.Params
	base    sim.Config
	workers int
	metrics func() []dynamo.Metric
	logger  *slog.Logger
}

type Option func(*Scanner)

// WithWorkers caps the number of concurrent descents. Values below one mean
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(s *Scanner) { s.workers = n }
}

// WithMetrics installs a fresh metric set per descent; metrics hold state
// and cannot be shared between goroutines.
func WithMetrics(build func() []dynamo.Metric) Option {
	return func(s *Scanner) { s.metrics = build }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewScanner(params dynamo.Params, base sim.Config, opts ...Option) *Scanner {
	s := &Scanner{
		params: params,
		base:   base,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = runtime.GOMAXPROCS(0)
	}
	return s
}

// Scan descends once per rate. Outcomes are returned in the order of rates.
// A diverging rate is a normal outcome; only an undefined potential or a
// cancelled context fails the whole scan.
func (s *Scanner) Scan(ctx context.Context, rates []float64) ([]Outcome, error) {
	if err := s.params.Validate(); err != nil {
		return nil, err
	}
	pot := physics.NewPotential(s.params)

	out := make([]Outcome, len(rates))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, lr := range rates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = s.descend(pot, lr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Info("sweep finished", "rates", len(rates), "workers", s.workers)
	return out, nil
}

func (s *Scanner) descend(pot *physics.Potential, lr float64) Outcome {
	o := Outcome{LearningRate: lr}

	cfg := s.base
	cfg.LearningRate = lr

	var opts []sim.Option
	if s.metrics != nil {
		opts = append(opts, sim.WithMetrics(s.metrics()...))
	}
	d, err := sim.New(pot, cfg, opts...)
	if err != nil {
		o.Err = err
		return o
	}
	res, err := d.Run()
	if err != nil {
		o.Err = err
	}
	o.Final = d.Point()
	o.Potential = res.Last.Total
	o.Steps = res.StepsTaken
	o.Diverged = res.Diverged
	o.Metrics = res.Metrics

	if o.Diverged {
		s.logger.Debug("rate diverged", "learning_rate", lr, "step", res.StepsTaken)
	}
	return o
}

// Scan is a convenience wrapper for a one-off sweep.
func Scan(ctx context.Context, params dynamo.Params, base sim.Config, rates []float64, opts ...Option) ([]Outcome, error) {
	return NewScanner(params, base, opts...).Scan(ctx, rates)
}

// Lowest returns the finite, non-diverged outcome with the smallest final
// potential.
func Lowest(outs []Outcome) (Outcome, error) {
	best := Outcome{Potential: math.Inf(1)}
	found := false
	for _, o := range outs {
		if o.Err != nil || o.Diverged || !o.Final.IsValid() {
			continue
		}
		if o.Potential < best.Potential {
			best = o
			found = true
		}
	}
	if !found {
		return Outcome{}, errors.New("sweep: every learning rate failed or diverged")
	}
	return best, nil
}
