package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/impetus/internal/config"
	"github.com/san-kum/impetus/internal/export"
	"github.com/san-kum/impetus/internal/impetus"
	"github.com/san-kum/impetus/internal/sim"
	"github.com/san-kum/impetus/internal/storage"
	"github.com/san-kum/impetus/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	multiplier float64
	friction   float64
	noBounce   bool
	realtime   bool
	noSave     bool
	plotHeight int
	plotWidth  int
	svgPath    string
)

// main registers the commands and runs the live pad when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "impetus",
		Short:        "inertial drag motion lab",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".impetus", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Float64Var(&multiplier, "multiplier", 1, "drag multiplier")
	rootCmd.PersistentFlags().Float64Var(&friction, "friction", 0.92, "per-frame velocity decay")
	rootCmd.PersistentFlags().BoolVar(&noBounce, "no-bounce", false, "stop hard at bounds")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scripted throw",
		Args:  cobra.NoArgs,
		RunE:  runThrow,
	}
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "play the throw on the wall clock and print updates")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run and its trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "write the trace as an svg picture instead")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset] ...",
		Short: "run several presets side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE:  comparePresets,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMULT\tFRICTION\tBOUNCE\tBOUNDS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%t\t%s\n", name, p.Multiplier, p.Friction, p.Bounce, describeBounds(p))
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "impetus.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drag and throw a target with the mouse",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, compareCmd, presetsCmd, initCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// resolveConfig layers the preset, the config file and any explicitly set
// flags, in that order. It returns the config and the name runs are
// stored under.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	name := "default"
	if preset != "" {
		name = preset
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if preset == "" {
			name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("multiplier") {
		cfg.Multiplier = multiplier
	}
	if flags.Changed("friction") {
		cfg.Friction = friction
	}
	if flags.Changed("no-bounce") {
		cfg.Bounce = !noBounce
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func simConfig(cfg *config.Config, log *zap.Logger) sim.Config {
	opts := cfg.Options(impetus.DefaultOptions())
	opts.Logger = log
	return sim.Config{
		Options:  opts,
		Gesture:  cfg.Swipe(),
		FPS:      cfg.FPS,
		MaxTicks: cfg.MaxTicks,
	}
}

func runThrow(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := sim.New(log)
	out := cmd.OutOrStdout()

	if realtime {
		fmt.Fprintf(out, "%6s  %9s  %-13s  %10s  %10s\n", "tick", "time", "phase", "x", "y")
		return s.RunRealtime(ctx, simConfig(cfg, log), func(f sim.Frame) {
			fmt.Fprintf(out, "%6d  %7.1fms  %-13s  %10.3f  %10.3f\n",
				f.Tick, float64(f.Time)/float64(time.Millisecond), f.Phase, f.X, f.Y)
		})
	}

	fmt.Fprintf(out, "running %s throw...\n", name)
	start := time.Now()
	result, err := s.Run(ctx, simConfig(cfg, log))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "ticks: %d  updates: %d  settled: %t\n", result.Ticks, len(result.Frames), result.Settled)
	fmt.Fprintf(out, "final: (%.3f, %.3f)\n", result.Final.X, result.Final.Y)
	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range sortedKeys(result.Metrics) {
		fmt.Fprintf(out, "  %s: %.6f\n", m, result.Metrics[m])
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}
	log.Info("run saved", zap.String("id", runID), zap.String("dir", dataDir))
	fmt.Fprintf(out, "\nrun id: %s\n", runID)
	return nil
}

func comparePresets(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfgs := make([]sim.Config, len(args))
	for i, name := range args {
		p := config.GetPreset(name)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		cfgs[i] = simConfig(p, log)
	}

	start := time.Now()
	results, err := sim.New(log).RunAll(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "compared %d presets in %v\n\n", len(args), time.Since(start))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tTICKS\tSETTLED\tFINAL X\tFINAL Y\tTRAVEL\tOVERSHOOT")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%t\t%.3f\t%.3f\t%.3f\t%.3f\n",
			args[i], r.Ticks, r.Settled, r.Final.X, r.Final.Y, r.Metrics["travel"], r.Metrics["overshoot"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tTICKS\tSETTLED\tFINAL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\t(%.2f, %.2f)\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Settled,
			run.FinalX,
			run.FinalY,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("not enough data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s\n", meta.Preset)
	fmt.Fprintf(out, "updates: %d\n\n", len(frames))

	xs := make([]float64, len(frames))
	ys := make([]float64, len(frames))
	for i, f := range frames {
		xs[i], ys[i] = f.X, f.Y
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"x per update", xs},
		{"y per update", ys},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if svgPath == "" {
		return st.ExportJSON(cmd.OutOrStdout(), args[0])
	}

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	svg := export.TraceSVG(frames, meta.Bounds(), 800, 400)
	if svg == "" {
		return fmt.Errorf("not enough data to draw")
	}
	if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", svgPath)
	return nil
}

// runLive owns the terminal, so it logs nowhere unless --verbose.
func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if verbose {
		if log, err = newLogger(); err != nil {
			return err
		}
		defer log.Sync()
	}

	m, err := viz.NewModel(cfg, name, log)
	if err != nil {
		return err
	}
	return viz.Run(m)
}

func describeBounds(c *config.Config) string {
	if c.BoundX == nil && c.BoundY == nil {
		return "-"
	}
	var parts []string
	if c.BoundX != nil {
		parts = append(parts, fmt.Sprintf("x%v", c.BoundX))
	}
	if c.BoundY != nil {
		parts = append(parts, fmt.Sprintf("y%v", c.BoundY))
	}
	return strings.Join(parts, " ")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
