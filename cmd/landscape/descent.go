package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/landscape/internal/analysis"
	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/export"
	"github.com/san-kum/landscape/internal/integrators"
	"github.com/san-kum/landscape/internal/metrics"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/sim"
	"github.com/san-kum/landscape/internal/tui"
	"github.com/san-kum/landscape/internal/viz"
)

var (
	showPath    bool
	showHeatmap bool
	svgOut      string
	themeName   string
	plainOut    bool
	followOut   bool
)

const plotTitle = "Symmetrodynamic Gravity: Potential Energy Landscape"

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "run the descent and print a summary",
		Args:  cobra.NoArgs,
		RunE:  runDescent,
	}
	addDescentFlags(cmd)
	cmd.Flags().BoolVar(&showPath, "path", false, "draw the path in the field plane")
	cmd.Flags().BoolVar(&showHeatmap, "heatmap", false, "draw the path over a coloured top-down surface")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the path as SVG to this file")
	return cmd
}

func addLiveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&themeName, "theme", "viridis", fmt.Sprintf("player theme %v", viz.ThemeNames()))
	cmd.Flags().BoolVar(&plainOut, "plain", false, "print one line per step instead of the player")
	cmd.Flags().BoolVar(&followOut, "follow", false, "redraw a character map while the descent runs")
}

func newLiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "live",
		Short: "play the descent over the energy surface",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addDescentFlags(cmd)
	addLiveFlags(cmd)
	return cmd
}

// marks returns the two vacua, or nil when the potential has none.
func marks(pot *physics.Potential) []dynamo.FieldPoint {
	vac, err := pot.Vacuum()
	if err != nil {
		return nil
	}
	return vac.Points[:]
}

func descend(cfg *config.Config, pot *physics.Potential) (*sim.Result, error) {
	var vacua *[2]dynamo.FieldPoint
	if vac, err := pot.Vacuum(); err == nil {
		vacua = &vac.Points
	}
	d, err := sim.New(pot, cfg.SimConfig(),
		sim.WithMetrics(metrics.Default(vacua, cfg.Animation.StabilityThreshold)...),
		sim.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return d.Run()
}

// zeroed hides the sign of values that only differ from zero by rounding.
func zeroed(v float64) float64 {
	if math.Abs(v) < 5e-10 {
		return 0
	}
	return v
}

func printVacuum(pot *physics.Potential) {
	vac, err := pot.Vacuum()
	if err != nil {
		fmt.Printf("No real vacuum: %v\n", err)
		return
	}
	fmt.Printf("Predicted vacuum: φ+ = 0, φ- = ±%.3f\n", vac.Points[0].Minus)
	fmt.Printf("Predicted vacuum energy V = %.3f\n", zeroed(vac.Energy))
}

func runDescent(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pot := physics.NewPotential(cfg.ModelParams())

	start := time.Now()
	res, err := descend(cfg, pot)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	printVacuum(pot)
	fmt.Println()

	last, _ := res.Trajectory.Last()
	fmt.Printf("completed %d steps in %v\n", res.StepsTaken, elapsed)
	fmt.Printf("initial: %v  V = %.6f\n", res.Trajectory.At(0).Point, res.Trajectory.At(0).Potential)
	fmt.Printf("final:   %v  V = %.6f\n", last.Point, last.Potential)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, res.Metrics[name])
	}
	w.Flush()

	if rep, err := analysis.Convergence(res.Trajectory, pot, cfg.Descent.LearningRate, cfg.Descent.Dt); err != nil {
		logger.Info("convergence report skipped", "err", err)
	} else {
		fmt.Println("\nconvergence:")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  target\t%v\n", rep.Target)
		fmt.Fprintf(w, "  distance\t%.6f -> %.6f\n", rep.InitialDistance, rep.FinalDistance)
		fmt.Fprintf(w, "  rate (measured)\t%.6f\n", rep.MeasuredRate)
		fmt.Fprintf(w, "  rate (predicted)\t%.6f\n", rep.PredictedRate)
		fmt.Fprintf(w, "  curvature\t%.4f, %.4f\n", rep.Curvature[0], rep.Curvature[1])
		fmt.Fprintf(w, "  lr·dt limit\t%.6f\n", rep.StepLimit)
		fmt.Fprintf(w, "  stable\t%v\n", rep.Stable)
		w.Flush()
	}

	sep, err := analysis.SeparationExponent(pot, integrators.NewEuler(), cfg.Descent.Initial,
		cfg.Descent.LearningRate, cfg.Descent.Dt, cfg.Descent.Frames, 1e-6)
	if err != nil {
		logger.Info("separation exponent skipped", "err", err)
	} else {
		fmt.Printf("\nseparation exponent: %.6f\n", sep)
	}

	pots := res.Trajectory.Potentials()
	if n := res.Trajectory.FirstInvalid(); n >= 0 {
		pots = pots[:n]
	}
	if len(pots) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(pots,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("V per frame"),
		))
	}

	vac := marks(pot)
	if showPath {
		fmt.Println()
		fmt.Print(analysis.FieldPathToASCII(res.Trajectory.Points(), 60, 20, vac...))
	}
	if showHeatmap {
		surf, err := physics.SampleSurface(pot, cfg.Surface.Extent, cfg.Surface.Resolution)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.Heatmap(surf, res.Trajectory.Points(), viz.HeatmapOptions{Cols: 60, Rows: 24, Marks: vac}))
	}
	if svgOut != "" {
		svg := export.TrajectoryToSVG(res.Trajectory.Points(), 600, 600, "#ff0000", vac...)
		if svg == "" {
			logger.Warn("not enough finite points for svg", "file", svgOut)
		} else if err := os.WriteFile(svgOut, []byte(svg), 0o644); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
	}

	if res.Diverged && len(res.Errors) > 0 {
		return res.Errors[0]
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pot := physics.NewPotential(cfg.ModelParams())

	if plainOut || followOut || !tui.IsTerminal(os.Stdout) {
		return follow(cfg, pot, plainOut || !tui.IsTerminal(os.Stdout))
	}

	res, err := descend(cfg, pot)
	if err != nil {
		return err
	}
	surf, err := physics.SampleSurface(pot, cfg.Surface.Extent, cfg.Surface.Resolution)
	if err != nil {
		return err
	}
	player, err := viz.NewPlayer(res.Trajectory, pot, surf, viz.PlayerConfig{
		Title:    plotTitle,
		Interval: cfg.FrameInterval(),
		Theme:    themeName,
		Marks:    marks(pot),
	})
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(player, tea.WithAltScreen()).Run()
	return err
}

// follow streams the descent to stdout as it runs. Plain output is not
// paced so it can be piped.
func follow(cfg *config.Config, pot *physics.Potential, plain bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []tui.Option{tui.WithPlain(plain), tui.WithMarks(marks(pot)...)}
	if !plain {
		opts = append(opts, tui.WithFrameRate(cfg.Animation.FPS))
	}
	r := tui.NewLiveRenderer(os.Stdout, pot, cfg.Surface.Extent, cfg.Descent.Frames, opts...)
	r.Start()
	defer r.Stop()

	d, err := sim.New(pot, cfg.SimConfig(), sim.WithObservers(r), sim.WithLogger(logger))
	if err != nil {
		return err
	}

	var tick <-chan time.Time
	if !plain {
		ticker := time.NewTicker(cfg.FrameInterval())
		defer ticker.Stop()
		tick = ticker.C
	}

	for !d.Done() {
		if _, err := d.Step(); err != nil {
			if !errors.Is(err, dynamo.ErrDiverged) || cfg.Descent.StopOnDivergence {
				return err
			}
		}
		if tick == nil {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
	return nil
}
