package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pondsim/internal/analysis"
	"github.com/san-kum/pondsim/internal/audio"
	"github.com/san-kum/pondsim/internal/automation"
	"github.com/san-kum/pondsim/internal/config"
	"github.com/san-kum/pondsim/internal/experiment"
	"github.com/san-kum/pondsim/internal/export"
	"github.com/san-kum/pondsim/internal/gui"
	"github.com/san-kum/pondsim/internal/optim"
	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
	"github.com/san-kum/pondsim/internal/storage"
	"github.com/san-kum/pondsim/internal/tui"
	"github.com/san-kum/pondsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	logLevel   string
	logJSON    bool

	preset   string
	script   string
	ticks    int
	seed     int64
	interval int
	probeX   int
	probeY   int
	origin   string

	watch      bool
	watchEvery int
	noSave     bool
	gifPath    string
	gifStep    int

	series  string
	svgPath string

	snapAt   int
	snapOut  string
	snapStep int

	frameRate int
	scale     int
	withAudio bool

	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	grid       []string
	maximize   bool

	outPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pondsim",
		Short:         "touch-driven ripple pond simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pondsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	rootCmd.Flags().IntVar(&frameRate, "fps", config.DefaultTUIFPS, "frame rate")

	runCmd := &cobra.Command{
		Use:   "run [mode]",
		Short: "run a scripted simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&watch, "watch", false, "print an ASCII thumbnail while running")
	runCmd.Flags().IntVar(&watchEvery, "watch-every", 5, "ticks between thumbnails")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&gifPath, "gif", "", "record an animated GIF")
	runCmd.Flags().IntVar(&gifStep, "gif-step", 8, "GIF downsampling factor")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run samples",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "all", "series to plot (mean, peak, probe, ripples, all)")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the series as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "spectrum, decay and statistics of the probe signal",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [mode]",
		Short: "render one frame to PNG or SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&snapAt, "at", 20, "tick to capture")
	snapshotCmd.Flags().StringVarP(&snapOut, "out", "o", "snapshot.png", "output file (.png or .svg)")
	snapshotCmd.Flags().IntVar(&snapStep, "svg-step", 8, "SVG downsampling factor")

	liveCmd := &cobra.Command{
		Use:   "live [mode]",
		Short: "interactive pond in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addPondFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultTUIFPS, "frame rate")
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "GIF path for recordings (g toggles)")

	guiCmd := &cobra.Command{
		Use:   "gui [mode]",
		Short: "interactive pond in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addPondFlags(guiCmd)
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultGUIFPS, "frame rate")
	guiCmd.Flags().IntVar(&scale, "scale", config.DefaultScale, "pixels per cell")
	guiCmd.Flags().BoolVar(&withAudio, "audio", false, "sonify the pond")

	benchCmd := &cobra.Command{
		Use:   "bench [mode]",
		Short: "benchmark tick and render throughput",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPond,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [script]",
		Short: "run the same script in every mode",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareModes,
	}
	addRunFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep one pond parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 20, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [mode]",
		Short: "parallel rain trials with consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addRunFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 8, "number of trials")

	tuneCmd := &cobra.Command{
		Use:   "tune [metric]",
		Short: "grid search pond parameters for the best metric value",
		Args:  cobra.ExactArgs(1),
		RunE:  tunePond,
	}
	addRunFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter range name=lo:hi:n (repeatable)")
	tuneCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, analyzeCmd, exportJSONCmd, exportCSVCmd,
		snapshotCmd, liveCmd, guiCmd, benchCmd, presetsCmd, scenarioCmd, compareCmd,
		sweepCmd, monteCarloCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if logJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
	return nil
}

func addPondFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&origin, "origin", "", "origin policy (nearest, peak, touched)")
}

func addRunFlags(cmd *cobra.Command) {
	addPondFlags(cmd)
	cmd.Flags().StringVar(&script, "script", config.DefaultScript, "input script")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to simulate")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&interval, "interval", 60, "script interval in ticks")
	cmd.Flags().IntVar(&probeX, "probe-x", 150, "probe x")
	cmd.Flags().IntVar(&probeY, "probe-y", 100, "probe y")
}

// loadConfig resolves defaults, then --config or --preset, then the mode
// argument, then explicitly set flags.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	mode := cfg.Pond.Mode
	if len(args) > 0 {
		mode = args[0]
	}
	if preset != "" {
		p := config.GetPreset(mode, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %s/%s (try: pondsim presets %s)", mode, preset, mode)
		}
		cfg = p
	}
	cfg.Pond.Mode = mode

	f := cmd.Flags()
	if f.Changed("origin") {
		cfg.Pond.OriginPolicy = origin
	}
	if f.Changed("script") {
		cfg.Run.Script = script
	}
	if f.Changed("ticks") {
		cfg.Run.Ticks = ticks
	}
	if f.Lookup("seed") != nil && (f.Changed("seed") || cfg.Run.Seed == 0) {
		cfg.Run.Seed = seed
	}
	if f.Changed("interval") {
		cfg.Run.Interval = interval
	}
	if f.Changed("probe-x") {
		cfg.Run.ProbeX = probeX
	}
	if f.Changed("probe-y") {
		cfg.Run.ProbeY = probeY
	}
	if f.Changed("fps") {
		cfg.GUI.FPS = frameRate
		cfg.TUI.FPS = frameRate
	}
	if f.Changed("scale") {
		cfg.GUI.Scale = scale
	}
	if f.Changed("audio") {
		cfg.Audio.Enabled = withAudio
	}

	return cfg, cfg.Validate()
}

func newPond(cfg *config.Config) (*pond.Pond, error) {
	pc, err := cfg.ToPond()
	if err != nil {
		return nil, err
	}
	return pond.New(pc)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry); err != nil {
		return err
	}
	simulator := exp.GetSimulator()
	simulator.SetLogger(slog.Default())

	if watch {
		cols, rows := thumbnailSize(cfg)
		r := tui.NewLiveRenderer(cfg.Pond.Mode+"/"+cfg.Run.Script, cfg.TUI.FPS, watchEvery, cols, rows)
		r.Start()
		defer r.Stop()
		simulator.AddObserver(r)
	}

	var rec *export.GIFRecorder
	if gifPath != "" {
		rec = export.NewGIFRecorder(cfg.Pond.Width, cfg.Pond.Height, gifStep, 4)
		simulator.AddObserver(rec)
	}

	ctx, stop := signalContext()
	defer stop()

	slog.Info("running simulation", "mode", cfg.Pond.Mode, "script", cfg.Run.Script,
		"ticks", cfg.Run.Ticks, "size", fmt.Sprintf("%dx%d", cfg.Pond.Width, cfg.Pond.Height))

	result, err := exp.Run(ctx)
	if err != nil {
		var runErr *sim.RunError
		if !errors.As(err, &runErr) || result == nil {
			return err
		}
		slog.Warn("run interrupted, keeping partial result", "tick", runErr.Tick)
	}

	if rec != nil {
		if err := rec.Save(gifPath); err != nil {
			return err
		}
		slog.Info("gif written", "path", gifPath, "frames", rec.Len())
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	if !noSave {
		st := storage.New(dataDir)
		runID, err := st.Save(cfg.Pond.Mode+"-"+cfg.Run.Script, storage.NewMetadata(cfg, result), result.Samples)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("ticks: %d  events: %d  samples: %d\n", result.Ticks, result.Events, len(result.Samples))
	printMetrics(result.Metrics)
	return nil
}

func thumbnailSize(cfg *config.Config) (int, int) {
	cell := max(cfg.TUI.CellSize, 1)
	cols := min(max(cfg.Pond.Width/cell, 1), 120)
	rows := min(max(cfg.Pond.Height/cell/2, 1), 40)
	return cols, rows
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tSCRIPT\tTIME\tTICKS\tSIZE\tEVENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dx%d\t%d\n",
			run.ID,
			run.Mode,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Pond.Width, run.Pond.Height,
			run.Events,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, samples, nil
}

func column(samples []sim.Sample, name string) ([]float64, error) {
	data := make([]float64, len(samples))
	for i, s := range samples {
		switch name {
		case "mean":
			data[i] = s.Mean
		case "peak":
			data[i] = s.Peak
		case "probe":
			data[i] = s.Probe
		case "ripples":
			data[i] = float64(s.Ripples)
		default:
			return nil, fmt.Errorf("unknown series %q", name)
		}
	}
	return data, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s  script: %s\n", meta.Mode, meta.Script)
	fmt.Printf("samples: %d\n\n", len(samples))

	names := []string{series}
	if series == "all" {
		names = []string{"mean", "peak", "probe", "ripples"}
	}

	for _, name := range names {
		data, err := column(samples, name)
		if err != nil {
			return err
		}
		caption := name + " vs tick"
		if name == "probe" {
			caption = fmt.Sprintf("probe (%d,%d) vs tick", meta.Probe[0], meta.Probe[1])
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()

		if svgPath != "" {
			path := svgPath
			if len(names) > 1 {
				ext := filepath.Ext(svgPath)
				path = strings.TrimSuffix(svgPath, ext) + "_" + name + ext
			}
			if err := os.WriteFile(path, []byte(export.SeriesToSVG(data, 800, 240, "#3b82f6")), 0644); err != nil {
				return err
			}
			slog.Info("svg written", "path", path)
		}
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data, _ := column(samples, "probe")
	rest := meta.Pond.DefaultValue

	dt := 1.0
	if len(samples) > 1 {
		dt = float64(samples[1].Tick - samples[0].Tick)
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("probe: (%d,%d)  rest: %.3f\n\n", meta.Probe[0], meta.Probe[1], rest)
	fmt.Println(analysis.Summarize(data))
	fmt.Println()

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 4 {
		graph := asciigraph.Plot(ps[:len(ps)/2],
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (probe)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freqs := analysis.Frequencies(len(data), dt)
	bins := make([]int, 0, len(ps))
	for k := 1; k < len(ps); k++ {
		bins = append(bins, k)
	}
	sort.Slice(bins, func(i, j int) bool { return ps[bins[i]] > ps[bins[j]] })
	fmt.Println("strongest components:")
	for _, k := range bins[:min(3, len(bins))] {
		fmt.Printf("  %.4f cycles/tick  power %.3g\n", freqs[k], ps[k])
	}

	freq, power := analysis.DominantFrequency(data, dt)
	fmt.Printf("dominant frequency: %.4f cycles/tick (power %.3g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.2f ticks\n", 1/freq)
	}

	if k, err := analysis.DecayExponent(data, rest); err == nil {
		fmt.Printf("decay exponent: %.3f\n", k)
	} else {
		fmt.Printf("decay exponent: n/a (%v)\n", err)
	}
	fmt.Printf("rest crossings: %d\n\n", len(analysis.Crossings(data, rest)))

	portrait := analysis.GeneratePhasePortrait(data)
	fmt.Println("phase portrait (level vs change):")
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 16))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if outPath != "" {
		return storage.ExportJSON(outPath, *meta, samples)
	}
	return storage.WriteJSON(os.Stdout, *meta, samples)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := newPond(cfg)
	if err != nil {
		return err
	}
	registry := experiment.NewRegistry()
	sc, err := registry.GetScript(cfg.Run.Script, experiment.ScriptParams{Interval: cfg.Run.Interval, Seed: cfg.Run.Seed})
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	var captured sim.Frame
	err = sim.New().RunWithCallback(ctx, p, sc, snapAt, func(f sim.Frame) bool {
		captured = f
		return f.Tick < snapAt
	})
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(snapOut)) {
	case ".svg":
		svg := export.FrameToSVG(captured.Pixels, captured.Width, captured.Height, snapStep, 4)
		err = os.WriteFile(snapOut, []byte(svg), 0644)
	default:
		err = export.WritePNG(snapOut, captured.Pixels, captured.Width, captured.Height)
	}
	if err != nil {
		return err
	}
	fmt.Printf("tick %d (%d ripples) written to %s\n", captured.Tick, captured.Ripples, snapOut)

	anchor := pond.Coordinate{X: cfg.Pond.AnchorX, Y: cfg.Pond.AnchorY}
	profile := analysis.RadialProfile(captured, anchor, min(64, max(cfg.Pond.Width, cfg.Pond.Height)))
	for i, v := range profile {
		if math.IsNaN(v) {
			profile[i] = cfg.Pond.DefaultValue
		}
	}
	if len(profile) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(profile,
			asciigraph.Height(8),
			asciigraph.Width(64),
			asciigraph.Caption(fmt.Sprintf("radial profile around %v", anchor)),
		))
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := newPond(cfg)
	if err != nil {
		return err
	}
	return viz.Run(p, viz.Options{
		FPS:     cfg.TUI.FPS,
		Probe:   cfg.Probe(),
		GIFPath: gifPath,
		GIFStep: max(cfg.Pond.Width/64, 1),
		Logger:  slog.Default(),
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	p, err := newPond(cfg)
	if err != nil {
		return err
	}

	opts := gui.Options{
		Title:  "pondsim :: " + cfg.Pond.Mode,
		Scale:  cfg.GUI.Scale,
		FPS:    cfg.GUI.FPS,
		HUD:    cfg.GUI.HUD,
		Logger: slog.Default(),
	}
	if cfg.Audio.Enabled {
		proc := audio.NewProcessor(cfg.Audio, cfg.Pond.DefaultValue, slog.Default())
		if err := proc.Start(); err != nil {
			slog.Warn("audio unavailable, continuing without sound", "err", err)
		} else {
			defer proc.Stop()
			opts.Audio = proc
		}
	}
	return gui.Run(p, opts)
}

func benchPond(cmd *cobra.Command, args []string) error {
	mode := pond.PropagatingRipple
	if len(args) > 0 {
		m, err := pond.ParseMode(args[0])
		if err != nil {
			return err
		}
		mode = m
	}

	fmt.Printf("benchmarking %s mode\n\n", mode)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tRIPPLES\tTICKS\tTIME\tTICKS/S\tMPX/S")

	const benchTicks = 100
	for _, size := range []int{64, 128, 256, 512, 1024} {
		for _, taps := range []int{1, 8} {
			cfg := pond.DefaultConfig()
			cfg.Width, cfg.Height = size, size
			cfg.Anchor = pond.Coordinate{X: size / 4, Y: size / 4}
			cfg.FingerWidth = max(size/64, 1)
			cfg.Mode = mode
			p, err := pond.New(cfg)
			if err != nil {
				return err
			}
			burst := experiment.Burst(0, taps)
			buf := make([]pond.Pixel, size*size)

			start := time.Now()
			for tick := 0; tick < benchTicks; tick++ {
				p.Tick(burst.Events(tick))
				p.Render(buf)
			}
			elapsed := time.Since(start)

			perSec := float64(benchTicks) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%d\t%d\t%v\t%.0f\t%.1f\n",
				size, size, p.ActiveRipples(), benchTicks, elapsed.Round(time.Microsecond), perSec,
				perSec*float64(size*size)/1e6)
		}
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	modes := config.ListModes()
	if len(args) > 0 {
		modes = args
	}
	for _, mode := range modes {
		presets := config.ListPresets(mode)
		if len(presets) == 0 {
			fmt.Printf("no presets for mode: %s\n", mode)
			continue
		}
		fmt.Printf("presets for %s:\n", mode)
		for _, p := range presets {
			fmt.Printf("  - %s\n", p)
		}
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	results, err := automation.RunScenario(ctx, sc, experiment.NewRegistry(), storage.New(dataDir), slog.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMODE\tSCRIPT\tTICKS\tMEAN\tPEAK\tRUN")
	for i, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.4f\t%.4f\t%s\n",
			i+1, r.Step.Mode, r.Step.Script, r.Result.Ticks,
			r.Result.Metrics["mean_level"], r.Result.Metrics["peak_level"], runID)
	}
	return w.Flush()
}

func compareModes(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		base.Run.Script = args[0]
	}

	ctx, stop := signalContext()
	defer stop()

	registry := experiment.NewRegistry()
	fmt.Printf("comparing modes with script %s (%d ticks)\n\n", base.Run.Script, base.Run.Ticks)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tMEAN\tPEAK\tLIT\tPROBE SD\tENERGY\tTIME")

	for _, mode := range config.ListModes() {
		cfg := *base
		cfg.Pond.Mode = mode
		exp := experiment.New(&cfg)
		if err := exp.Setup(registry); err != nil {
			return err
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		m := result.Metrics
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.3g\t%v\n",
			mode, m["mean_level"], m["peak_level"], m["lit_fraction"], m["probe"], m["energy"],
			result.Elapsed.Round(time.Millisecond))
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      base,
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, experiment.NewRegistry(), slog.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tMEAN\tPEAK\tENERGY\n", strings.ToUpper(args[0]))
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.3g\n", r.ParamValue, r.MeanLevel, r.PeakLevel, r.Energy)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	start := time.Now()
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:      base,
		NumTrials: trials,
		Seed:      base.Run.Seed,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tSEED\tTAPS\tMEAN\tPEAK\tSATURATED")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.4f\t%.4f\t%v\n", r.TrialID, r.Seed, r.Taps, r.MeanLevel, r.PeakLevel, r.Saturated)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	saturated, calm := automation.MonteCarloStats(results)
	fmt.Printf("\n%d trials in %v: %d saturated, %d calm\n", len(results), time.Since(start).Round(time.Millisecond), saturated, calm)
	return nil
}

func tunePond(cmd *cobra.Command, args []string) error {
	if len(grid) == 0 {
		return errors.New("at least one --grid range is required")
	}
	base, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}

	names := make([]string, len(grid))
	ranges := make([][]float64, len(grid))
	for i, g := range grid {
		names[i], ranges[i], err = optim.ParseRange(g)
		if err != nil {
			return err
		}
	}

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		cfg := *base
		for k, v := range params {
			if err := automation.SetParam(&cfg, k, v); err != nil {
				return nil, err
			}
		}
		exp := experiment.New(&cfg)
		return exp, exp.Setup(registry)
	}

	ctx, stop := signalContext()
	defer stop()

	search := optim.NewGridSearch(names, ranges)
	search.Maximize = maximize
	start := time.Now()
	best, err := search.Search(ctx, build, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("evaluated %d combinations in %v\n", best.Evaluated, time.Since(start).Round(time.Millisecond))
	fmt.Printf("best %s: %.6f\n", args[0], best.Value)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best.Params[name])
	}
	return nil
}
