package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/landscape/internal/config"
)

var (
	configFile string
	presetName string
	logLevel   string
	logFormat  string

	mass       float64
	lambda     float64
	phiPlus    float64
	phiMinus   float64
	learnRate  float64
	dt         float64
	frames     int
	extent     float64
	resolution int
	fps        int
	width      int
	height     int

	logger *slog.Logger
)

// main registers the commands and exits with status 1 on any error. With no
// subcommand it opens the interactive player.
func main() {
	rootCmd := &cobra.Command{
		Use:           "landscape",
		Short:         "gradient descent on the two-field symmetry breaking potential",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel, logFormat)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
		RunE: runLive,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "apply a named preset on top of the config")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	addDescentFlags(rootCmd)
	addLiveFlags(rootCmd)

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newExportCmd(),
		newSurfaceCmd(),
		newVacuumCmd(),
		newSweepCmd(),
		newScanCmd(),
		newPresetsCmd(),
		newConfigCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
	}
}

// addDescentFlags registers the flags that override config values. Defaults
// are only shown in help; a flag takes effect when it is set explicitly.
func addDescentFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.Float64Var(&mass, "m", d.Params.M, "mass parameter m")
	f.Float64Var(&lambda, "lambda", d.Params.Lambda, "quartic coupling λ")
	f.Float64Var(&phiPlus, "phi-plus", d.Descent.Initial.Plus, "initial φ+")
	f.Float64Var(&phiMinus, "phi-minus", d.Descent.Initial.Minus, "initial φ-")
	f.Float64Var(&learnRate, "lr", d.Descent.LearningRate, "learning rate")
	f.Float64Var(&dt, "dt", d.Descent.Dt, "time step")
	f.IntVar(&frames, "frames", d.Descent.Frames, "number of descent steps")
	f.Float64Var(&extent, "extent", d.Surface.Extent, "surface half-width")
	f.IntVar(&resolution, "resolution", d.Surface.Resolution, "surface samples per axis")
	f.IntVar(&fps, "fps", d.Animation.FPS, "animation frames per second")
	f.IntVar(&width, "width", d.Animation.Width, "exported frame width in pixels")
	f.IntVar(&height, "height", d.Animation.Height, "exported frame height in pixels")
}

// loadConfig layers defaults, the config file, the preset and finally any
// flags set on cmd, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if presetName != "" && !cfg.Apply(presetName) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
	}

	f := cmd.Flags()
	if f.Changed("m") {
		cfg.Params.M = mass
	}
	if f.Changed("lambda") {
		cfg.Params.Lambda = lambda
	}
	if f.Changed("phi-plus") {
		cfg.Descent.Initial.Plus = phiPlus
	}
	if f.Changed("phi-minus") {
		cfg.Descent.Initial.Minus = phiMinus
	}
	if f.Changed("lr") {
		cfg.Descent.LearningRate = learnRate
	}
	if f.Changed("dt") {
		cfg.Descent.Dt = dt
	}
	if f.Changed("frames") {
		cfg.Descent.Frames = frames
	}
	if f.Changed("extent") {
		cfg.Surface.Extent = extent
	}
	if f.Changed("resolution") {
		cfg.Surface.Resolution = resolution
	}
	if f.Changed("fps") {
		cfg.Animation.FPS = fps
	}
	if f.Changed("width") {
		cfg.Animation.Width = width
	}
	if f.Changed("height") {
		cfg.Animation.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config loaded",
		"file", configFile,
		"preset", presetName,
		"m", cfg.Params.M,
		"lambda", cfg.Params.Lambda,
		"learning_rate", cfg.Descent.LearningRate,
		"dt", cfg.Descent.Dt,
		"frames", cfg.Descent.Frames,
	)
	return cfg, nil
}
