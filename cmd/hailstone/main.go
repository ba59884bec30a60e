package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/hailstone/internal/collatz"
	"github.com/san-kum/hailstone/internal/config"
	"github.com/san-kum/hailstone/internal/export"
	"github.com/san-kum/hailstone/internal/gui"
	"github.com/san-kum/hailstone/internal/input"
	"github.com/san-kum/hailstone/internal/paths"
	"github.com/san-kum/hailstone/internal/raster"
	"github.com/san-kum/hailstone/internal/render"
	"github.com/san-kum/hailstone/internal/view"
	"github.com/san-kum/hailstone/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var errInvalidArgument = errors.New("hailstone: max-seed must be an integer")

var (
	configFile string
	preset     string
	seed       int64
	logLevel   string
	pngOut     string
	svgOut     string
	configOut  string
	style      string
	scale      float64
	csvFile    string
)

// main registers the commands and runs the window explorer when no
// subcommand is given. It exits with status 1 on any error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "hailstone [max-seed]",
		Short: "draw every Collatz path up to max-seed as a turtle walk",
		Long: "hailstone draws the hailstone sequence of every seed from 2 to max-seed as a\n" +
			"path that turns one way on even steps and the other on odd steps. All paths\n" +
			"start at 1, so together they grow like a plant from a common root.\n\n" +
			gui.Usage,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: setupLogging,
		RunE:              runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "color seed (0 = time based)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug|info|warn|error)")

	tuiCmd := &cobra.Command{
		Use:   "tui [max-seed]",
		Short: "explore in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().Float64Var(&scale, "scale", 4, "logical pixels per braille dot")

	renderCmd := &cobra.Command{
		Use:   "render [max-seed]",
		Short: "draw all paths once and save a PNG (classic preset by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&pngOut, "out", "o", "hailstone.png", "output PNG path")
	renderCmd.Flags().StringVar(&style, "style", render.FatLines.String(), "lines, blobs or fat-lines")

	svgCmd := &cobra.Command{
		Use:   "svg [max-seed]",
		Short: "export all paths as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "-", "output path (- for stdout)")

	statsCmd := &cobra.Command{
		Use:   "stats [max-seed]",
		Short: "plot stopping times and peaks",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runStats,
	}
	statsCmd.Flags().StringVar(&csvFile, "csv", "", "also write per-seed stats to this CSV file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Printf("  %-8s max_seed=%-5d even=%.3f odd=%.3f\n",
					name, cfg.MaxSeed, cfg.Geometry.EvenAngle, cfg.Geometry.OddAngle)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}
			if configOut != "" && configOut != "-" {
				return config.Save(configOut, cfg)
			}
			return yaml.NewEncoder(os.Stdout).Encode(cfg)
		},
	}
	configCmd.Flags().StringVarP(&configOut, "out", "o", "-", "write to this file instead of stdout")

	rootCmd.AddCommand(tuiCmd, renderCmd, svgCmd, statsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	render.SetLogger(logger)
	return nil
}

// loadConfig starts from the named preset (or fallback), overlays the config
// file and applies flags. CLI flags win over the file, the file over the
// preset.
func loadConfig(cmd *cobra.Command, fallback string) (*config.Config, error) {
	name := preset
	if name == "" {
		name = fallback
	}
	cfg := config.DefaultConfig()
	if name != "" {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if cmd.Flags().Changed("seed") {
		cfg.RandSeed = seed
	}
	return cfg, nil
}

// setup resolves the configuration and the max-seed argument. Argument
// errors keep cobra's usage output; anything after that silences it.
func setup(cmd *cobra.Command, args []string, fallback string) (*config.Config, error) {
	cfg, err := loadConfig(cmd, fallback)
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", errInvalidArgument, args[0])
		}
		cfg.MaxSeed = n
	}
	if cfg.MaxSeed < 2 {
		return nil, &collatz.SeedError{Seed: cfg.MaxSeed, Wrapped: collatz.ErrInvalidSeed}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cmd.SilenceUsage = true
	return cfg, nil
}

func buildStore(ctx context.Context, cfg *config.Config) (*paths.Store, error) {
	colorSeed := cfg.Seed()
	store, err := paths.Build(ctx, cfg.MaxSeed, cfg.ColorBox(), rand.New(rand.NewSource(colorSeed)))
	if err != nil {
		return nil, err
	}
	slog.Debug("paths built", "max_seed", store.MaxSeed(), "paths", store.Count(), "color_seed", colorSeed)
	return store, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args, "")
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	fmt.Println(gui.Usage)

	st := view.New(cfg.Params(), cfg.Settings(), store.Count(), cfg.Window.Width, cfg.Window.Height)
	err = gui.Run(ctx, store, st, cfg.Options(), cfg.Window.Title, cfg.Render.FPS)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args, "")
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}

	cols := int(math.Ceil(float64(cfg.Window.Width) / (2 * scale)))
	rows := int(math.Ceil(float64(cfg.Window.Height) / (4 * scale)))
	canvas := viz.NewCanvas(cols, rows, scale)
	w, h := canvas.Size()

	st := view.New(cfg.Params(), cfg.Settings(), store.Count(), w, h)
	queue := input.NewQueue()
	ctrl := render.NewController(store, st, canvas, queue, cfg.Options())

	fps := cfg.Render.FPS
	if fps <= 0 {
		fps = 30
	}
	return viz.Run(ctx, ctrl, queue, canvas, store.Count(), time.Second/time.Duration(fps))
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args, "classic")
	if err != nil {
		return err
	}
	drawStyle, err := render.ParseStyle(style)
	if err != nil {
		return err
	}
	store, err := buildStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	surface := raster.NewSurface(cfg.Window.Width, cfg.Window.Height)
	defer surface.Close()
	surface.Path = pngOut

	if err := render.DrawAll(surface, store, cfg.Params(), drawStyle, cfg.Render.PathWidth, cfg.BackgroundColor()); err != nil {
		return err
	}
	slog.Info("image written", "path", pngOut, "paths", store.Count(), "style", drawStyle)
	return nil
}

func runSVG(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args, "")
	if err != nil {
		return err
	}
	store, err := buildStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if svgOut != "-" {
		f, err := os.Create(svgOut)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := export.PathsToSVG(w, store, cfg.Params(), cfg.Render.PathWidth, cfg.BackgroundColor()); err != nil {
		return err
	}
	if svgOut != "-" {
		slog.Info("svg written", "path", svgOut, "paths", store.Count())
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd, args, "")
	if err != nil {
		return err
	}
	stats, err := collatz.Survey(cmd.Context(), cfg.MaxSeed)
	if err != nil {
		return err
	}

	steps := make([]float64, len(stats))
	peaks := make([]float64, len(stats))
	for i, st := range stats {
		steps[i] = float64(st.StoppingTime)
		peaks[i] = math.Log10(float64(st.Peak))
	}

	fmt.Println(asciigraph.Plot(steps,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("stopping time, seeds 2..%d", cfg.MaxSeed)),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(peaks,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Precision(1),
		asciigraph.Caption("log10 peak value"),
	))

	if best, ok := collatz.Longest(stats); ok {
		fmt.Printf("\nlongest: seed %d takes %d steps (%d odd), peak %d\n",
			best.Seed, best.StoppingTime, best.Odd, best.Peak)
	}

	if csvFile != "" {
		return writeStatsCSV(csvFile, stats)
	}
	return nil
}

func writeStatsCSV(path string, stats []collatz.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"seed", "stopping_time", "odd_steps", "peak"}); err != nil {
		return err
	}
	for _, st := range stats {
		row := []string{
			strconv.FormatInt(st.Seed, 10),
			strconv.Itoa(st.StoppingTime),
			strconv.Itoa(st.Odd),
			strconv.FormatUint(st.Peak, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	slog.Info("stats written", "path", path, "rows", len(stats))
	return nil
}
