package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/landscape/internal/analysis"
	"github.com/san-kum/landscape/internal/config"
	"github.com/san-kum/landscape/internal/dynamo"
	"github.com/san-kum/landscape/internal/export"
	"github.com/san-kum/landscape/internal/integrators"
	"github.com/san-kum/landscape/internal/metrics"
	"github.com/san-kum/landscape/internal/physics"
	"github.com/san-kum/landscape/internal/sweep"
	"github.com/san-kum/landscape/internal/viz"
)

var (
	exportTitle string
	meshStride  int
	withPath    bool
	zoom        float64
	rateList    string
	workers     int
	scanParam   string
	scanLo      float64
	scanHi      float64
	scanSteps   int
	saveTo      string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export FILE...",
		Short: "write the descent to files (gif, html, avi, png, pdf, svg, csv, json)",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runExport,
	}
	addDescentFlags(cmd)
	cmd.Flags().StringVar(&exportTitle, "title", plotTitle, "title drawn on frames and plots")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	for _, path := range args {
		if _, err := export.FormatFromPath(path); err != nil {
			return err
		}
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pot := physics.NewPotential(cfg.ModelParams())
	res, err := descend(cfg, pot)
	if err != nil {
		return err
	}
	if res.Diverged {
		logger.Warn("exporting a diverged descent", "steps", res.StepsTaken)
	}
	surf, err := physics.SampleSurface(pot, cfg.Surface.Extent, cfg.Surface.Resolution)
	if err != nil {
		return err
	}

	job := export.Job{
		Trajectory:   res.Trajectory,
		Potential:    pot,
		Surface:      surf,
		LearningRate: cfg.Descent.LearningRate,
		Dt:           cfg.Descent.Dt,
		Interval:     cfg.FrameInterval(),
		Width:        cfg.Animation.Width,
		Height:       cfg.Animation.Height,
		Title:        exportTitle,
		Marks:        marks(pot),
	}
	for _, path := range args {
		format, err := export.Write(path, job)
		if err != nil {
			return fmt.Errorf("exporting %s: %w", path, err)
		}
		logger.Info("exported", "file", path, "format", format, "frames", res.Trajectory.Len())
		fmt.Printf("wrote %s (%s)\n", path, format)
	}
	return nil
}

func newSurfaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "surface",
		Short: "render the energy surface as a wireframe",
		Args:  cobra.NoArgs,
		RunE:  runSurface,
	}
	addDescentFlags(cmd)
	cmd.Flags().IntVar(&meshStride, "stride", 5, "grid lines every n samples")
	cmd.Flags().BoolVar(&withPath, "with-path", false, "draw the descent path on the surface")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "camera zoom")
	cmd.Flags().StringVar(&svgOut, "svg", "", "also write the wireframe as SVG to this file")
	return cmd
}

func runSurface(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pot := physics.NewPotential(cfg.ModelParams())
	surf, err := physics.SampleSurface(pot, cfg.Surface.Extent, cfg.Surface.Resolution)
	if err != nil {
		return err
	}

	mesh := viz.SurfaceMesh(surf, meshStride)
	if withPath {
		res, err := descend(cfg, pot)
		if err != nil {
			return err
		}
		frames, err := viz.Frames(res.Trajectory, pot)
		if err != nil {
			return err
		}
		mesh.AddPath(viz.NewMeshScale(surf), frames)
	}

	canvas := viz.NewCanvas(80, 30)
	cam := viz.NewCamera()
	cam.Zoom = zoom
	viz.Render3D(canvas, mesh, cam)

	fmt.Printf("V over [-%.2f, %.2f]²: min %.4f, max %.4f\n", surf.Extent(), surf.Extent(), surf.Min(), surf.Max())
	fmt.Print(canvas.String())

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.CanvasToSVG(canvas, 4, "#35b779")), 0o644); err != nil {
			return fmt.Errorf("writing svg: %w", err)
		}
		logger.Info("wrote wireframe", "file", svgOut)
	}
	return nil
}

func newVacuumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vacuum",
		Short: "print the analytic vacuum and its stability limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pot := physics.NewPotential(cfg.ModelParams())
			vac, err := pot.Vacuum()
			if err != nil {
				return err
			}
			printVacuum(pot)

			hp, hm, err := pot.Hessian(vac.Points[0])
			if err != nil {
				return err
			}
			kmax := math.Max(hp, hm)
			step := cfg.Descent.LearningRate * cfg.Descent.Dt
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "curvature φ+\t%.6f\n", hp)
			fmt.Fprintf(w, "curvature φ-\t%.6f\n", hm)
			fmt.Fprintf(w, "lr·dt limit\t%.6f\n", 2/kmax)
			fmt.Fprintf(w, "lr·dt configured\t%.6f\n", step)
			fmt.Fprintf(w, "contraction per step\t%.6f\n", math.Max(math.Abs(1-step*hp), math.Abs(1-step*hm)))
			return w.Flush()
		},
	}
	addDescentFlags(cmd)
	return cmd
}

func parseRates(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	rates := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid rate %q: %w", p, err)
		}
		rates = append(rates, v)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: no learning rates given", dynamo.ErrInvalidConfig)
	}
	return rates, nil
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same descent under several learning rates",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addDescentFlags(cmd)
	cmd.Flags().StringVar(&rateList, "rates", "0.01,0.05,0.1,0.5,1,5", "comma separated learning rates")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel descents (0 = GOMAXPROCS)")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	rates, err := parseRates(rateList)
	if err != nil {
		return err
	}

	pot := physics.NewPotential(cfg.ModelParams())
	var vacua *[2]dynamo.FieldPoint
	if vac, err := pot.Vacuum(); err == nil {
		vacua = &vac.Points
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	outs, err := sweep.Scan(ctx, cfg.ModelParams(), cfg.SimConfig(), rates,
		sweep.WithWorkers(workers),
		sweep.WithMetrics(func() []dynamo.Metric {
			return metrics.Default(vacua, cfg.Animation.StabilityThreshold)
		}),
		sweep.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "lr\tfinal\tV\tsteps\tmonotonicity\tvacuum distance\tstatus")
	for _, o := range outs {
		status := "ok"
		switch {
		case o.Err != nil:
			status = o.Err.Error()
		case o.Diverged:
			status = "diverged"
		}
		dist, ok := o.Metrics["vacuum_distance"]
		if !ok {
			dist = math.NaN()
		}
		fmt.Fprintf(w, "%g\t%v\t%.6f\t%d\t%.3f\t%.6f\t%s\n",
			o.LearningRate, o.Final, o.Potential, o.Steps, o.Metrics["monotonicity"], dist, status)
	}
	w.Flush()

	if best, err := sweep.Lowest(outs); err == nil {
		fmt.Printf("\nlowest final V at lr=%g: %.6f\n", best.LearningRate, best.Potential)
	}
	return nil
}

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "sweep a model parameter and record where the descent ends",
		Args:  cobra.NoArgs,
		RunE:  runScan,
	}
	addDescentFlags(cmd)
	cmd.Flags().StringVar(&scanParam, "param", "lambda", "parameter to scan (m, lambda)")
	cmd.Flags().Float64Var(&scanLo, "from", 0.25, "first value")
	cmd.Flags().Float64Var(&scanHi, "to", 4, "last value")
	cmd.Flags().IntVar(&scanSteps, "steps", 16, "number of values")
	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pot := physics.NewPotential(cfg.ModelParams())
	points, err := analysis.ParamScan(pot, integrators.NewEuler(), scanParam, scanLo, scanHi, scanSteps, cfg.SimConfig())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tfinal\tV\tstatus\n", scanParam)
	for _, p := range points {
		status := "ok"
		switch {
		case p.Err != nil:
			status = p.Err.Error()
		case p.Diverged:
			status = "diverged"
		}
		fmt.Fprintf(w, "%g\t%v\t%.6f\t%s\n", p.Param, p.Final, p.Potential, status)
	}
	w.Flush()
	fmt.Println()
	fmt.Print(analysis.ScanToASCII(points, 60, 16))
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "  %s\t%s\n", name, config.Presets[name].Description)
			}
			return w.Flush()
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if saveTo != "" {
				if err := config.Save(saveTo, cfg); err != nil {
					return err
				}
				fmt.Printf("saved %s\n", saveTo)
				return nil
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		},
	}
	addDescentFlags(cmd)
	cmd.Flags().StringVar(&saveTo, "save", "", "write the configuration to this file instead")
	return cmd
}
