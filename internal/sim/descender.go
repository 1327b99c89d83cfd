package sim

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/integrators"
	"github.com/san-kum/landscape/internal/physics"
)

// Descender owns one descent: the current point, the trajectory and the
// step counter. Step and Run are its only mutators. It is not safe for
// concurrent use.
type Descender struct {
	pot        dynamo.Potential
	integrator dynamo.Integrator
	cfg        Config
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *slog.Logger

	point    dynamo.FieldPoint
	last     dynamo.Evaluation
	traj     *dynamo.Trajectory
	steps    int
	diverged bool
	errs     []error
}

type Option func(*Descender)

func WithIntegrator(i dynamo.Integrator) Option {
	return func(d *Descender) { d.integrator = i }
}

func WithMetrics(ms ...dynamo.Metric) Option {
	return func(d *Descender) { d.metrics = append(d.metrics, ms...) }
}

func WithObservers(obs ...dynamo.Observer) Option {
	return func(d *Descender) { d.observers = append(d.observers, obs...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(d *Descender) {
		if l != nil {
			d.logger = l
		}
	}
}

// New validates the configuration, evaluates the initial point and records
// it as entry zero. An undefined potential fails here, before any step.
func New(pot dynamo.Potential, cfg Config, opts ...Option) (*Descender, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	d := &Descender{
		pot:        pot,
		integrator: integrators.NewEuler(),
		cfg:        cfg,
		logger:     slog.New(slog.DiscardHandler),
		point:      cfg.Initial,
		traj:       dynamo.NewTrajectory(cfg.Frames + 1),
	}
	for _, opt := range opts {
		opt(d)
	}

	eval, err := pot.Evaluate(cfg.Initial)
	if err != nil {
		return nil, fmt.Errorf("evaluating initial point: %w", err)
	}
	for _, m := range d.metrics {
		m.Reset()
	}
	d.record(cfg.Initial, eval)
	return d, nil
}

// Step advances one frame and returns the new current point. A non-finite
// result is still recorded and reported as an error wrapping ErrDiverged.
func (d *Descender) Step() (dynamo.FieldPoint, error) {
	if d.steps >= d.cfg.Frames {
		return d.point, dynamo.ErrFrameLimit
	}
	if d.diverged && d.cfg.ValidateState {
		return d.point, &dynamo.SimulationError{Step: d.steps, Point: d.point, Wrapped: dynamo.ErrDiverged}
	}

	next, err := d.integrator.Step(d.pot, d.point, d.cfg.LearningRate, d.cfg.Dt)
	if err != nil {
		return d.point, &dynamo.SimulationError{Step: d.steps + 1, Point: d.point, Wrapped: err}
	}
	eval, err := d.pot.Evaluate(next)
	if err != nil {
		return d.point, &dynamo.SimulationError{Step: d.steps + 1, Point: next, Wrapped: err}
	}

	d.steps++
	d.record(next, eval)

	if !next.IsValid() || math.IsNaN(eval.Total) || math.IsInf(eval.Total, 0) {
		serr := &dynamo.SimulationError{Step: d.steps, Point: next, Wrapped: dynamo.ErrDiverged}
		if !d.diverged {
			d.diverged = true
			d.errs = append(d.errs, serr)
			d.logger.Warn("descent diverged",
				"step", d.steps,
				"learning_rate", d.cfg.LearningRate,
				"dt", d.cfg.Dt,
			)
		}
		return next, serr
	}
	return next, nil
}

// Run executes the remaining frames in order. With ValidateState set the
// loop stops at the first divergence; the partial result is still returned.
func (d *Descender) Run() (*Result, error) {
	d.logger.Info("descent started",
		"frames", d.cfg.Frames,
		"learning_rate", d.cfg.LearningRate,
		"dt", d.cfg.Dt,
		"phi_plus", d.point.Plus,
		"phi_minus", d.point.Minus,
	)

	for d.steps < d.cfg.Frames {
		if _, err := d.Step(); err != nil {
			if errors.Is(err, dynamo.ErrDiverged) {
				if d.cfg.ValidateState {
					break
				}
				continue
			}
			return d.Result(), err
		}
	}

	res := d.Result()
	d.logger.Info("descent finished",
		"steps", res.StepsTaken,
		"potential", res.Last.Total,
		"diverged", res.Diverged,
	)
	return res, nil
}

// Result snapshots the run so far.
func (d *Descender) Result() *Result {
	res := &Result{
		Trajectory: d.traj,
		Last:       d.last,
		Metrics:    make(map[string]float64, len(d.metrics)),
		StepsTaken: d.steps,
		Diverged:   d.diverged,
		Errors:     append([]error(nil), d.errs...),
	}
	for _, m := range d.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}

func (d *Descender) Point() dynamo.FieldPoint       { return d.point }
func (d *Descender) Last() dynamo.Evaluation        { return d.last }
func (d *Descender) Trajectory() *dynamo.Trajectory { return d.traj }
func (d *Descender) Steps() int                     { return d.steps }
func (d *Descender) Frames() int                    { return d.cfg.Frames }
func (d *Descender) Done() bool                     { return d.steps >= d.cfg.Frames }
func (d *Descender) Diverged() bool                 { return d.diverged }
func (d *Descender) Config() Config                 { return d.cfg }

func (d *Descender) record(p dynamo.FieldPoint, eval dynamo.Evaluation) {
	d.point = p
	d.last = eval
	d.traj.Append(p, eval.Total)
	for _, m := range d.metrics {
		m.Observe(d.steps, p, eval)
	}
	for _, obs := range d.observers {
		obs.OnStep(d.steps, p, eval)
	}
}

// Run descends from initial for frameCount Euler steps of V(params) and
// returns all frameCount+1 entries. Divergence does not shorten the
// trajectory; it is reported through the returned error.
func Run(initial dynamo.FieldPoint, params dynamo.Params, learningRate, dt float64, frameCount int) (*dynamo.Trajectory, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	d, err := New(physics.NewPotential(params), Config{
		Initial:      initial,
		LearningRate: learningRate,
		Dt:           dt,
		Frames:       frameCount,
	})
	if err != nil {
		return nil, err
	}
	res, err := d.Run()
	if err != nil {
		return res.Trajectory, err
	}
	if len(res.Errors) > 0 {
		return res.Trajectory, res.Errors[0]
	}
	return res.Trajectory, nil
}
