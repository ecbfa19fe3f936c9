package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/slosh/internal/analysis"
	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/engine"
	"github.com/san-kum/slosh/internal/experiment"
	"github.com/san-kum/slosh/internal/export"
	"github.com/san-kum/slosh/internal/gui"
	"github.com/san-kum/slosh/internal/logging"
	"github.com/san-kum/slosh/internal/optim"
	"github.com/san-kum/slosh/internal/sensor"
	"github.com/san-kum/slosh/internal/storage"
	"github.com/san-kum/slosh/internal/viz"
)

// loadConfig resolves defaults, preset, config file and flags in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.GetPreset(preset)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %v)", err, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, logging.WrapError(err, "load config %s", configFile)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fill") {
		cfg.Fill = fill
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to --log-file when given. Full-screen views discard logs
// otherwise so they do not tear the display.
func newLogger(fullScreen bool) (*logging.Logger, io.Closer, error) {
	if logFile != "" {
		return logging.ToFile(logFile)
	}
	if fullScreen {
		return logging.Discard(), io.NopCloser(nil), nil
	}
	return logging.Default(), io.NopCloser(nil), nil
}

// openSource picks the sensor input from flags. No flag means keyboard only.
func openSource(cfg *config.Config, logger *slog.Logger) (sensor.Source, string, error) {
	switch {
	case serialPort != "":
		return sensor.NewSerialSource(serialPort, baud, logger), "serial " + serialPort, nil
	case replayFile != "":
		src, err := sensor.LoadReplay(replayFile, logger)
		if err != nil {
			return nil, "", logging.WrapError(err, "load replay %s", replayFile)
		}
		src.Speed, src.Loop = replaySpd, loopReplay
		return src, "replay " + filepath.Base(replayFile), nil
	case synthetic:
		return sensor.NewSyntheticSource(cfg.Seed, cfg.Sensor.TiltOffset), "synthetic", nil
	}
	return nil, "keyboard", nil
}

// startSensor pumps src into the engine inbox until ctx ends. The returned
// wait blocks until the pump has stopped.
func startSensor(ctx context.Context, src sensor.Source, e *engine.Engine, cfg *config.Config, logger *slog.Logger) (wait func()) {
	if src == nil {
		return func() {}
	}
	adapter := sensor.NewAdapter(e, cfg.SensorConfig(), logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sensor.Pump(ctx, src, adapter); err != nil {
			logger.Error("sensor stopped", "error", err)
		}
		logger.Info("sensor summary", "stats", fmt.Sprintf("%+v", adapter.Stats()))
	}()
	return wg.Wait
}

func interactive(cmd *cobra.Command, show func(*engine.Engine, string) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	e, err := engine.New(cfg, engine.WithLogger(logger.Logger))
	if err != nil {
		return err
	}
	src, name, err := openSource(cfg, logger.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	wait := startSensor(ctx, src, e, cfg, logger.Logger)
	err = show(e, name)
	cancel()
	wait()
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	return interactive(cmd, viz.Run)
}

func runGUI(cmd *cobra.Command, args []string) error {
	return interactive(cmd, gui.Run)
}

func scriptFromArgs(args []string, i int) (experiment.Script, error) {
	name := "idle"
	if len(args) > i {
		name = args[i]
	}
	return experiment.NewRegistry().Get(name)
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	script, err := scriptFromArgs(args, 0)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, experiment.NewRegistry().List())
	}
	source := "script " + script.Name
	if replayFile != "" {
		src, err := sensor.LoadReplay(replayFile, logger.Logger)
		if err != nil {
			return logging.WrapError(err, "load replay %s", replayFile)
		}
		script.Events = append(script.Events, experiment.ReplayEvents(src.Samples, cfg.Interval())...)
		source = "replay " + filepath.Base(replayFile)
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	fmt.Printf("running %s (%s) for %.1fs...\n", script.Name, cfg, cfg.Duration)
	res, err := experiment.Run(ctx, experiment.Config{Sim: cfg, Script: script, RecordEvery: recordEvery}, logger.Logger)
	if err != nil {
		return err
	}
	return saveResult(cfg, res, source)
}

func saveResult(cfg *config.Config, res *experiment.Result, source string) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(res.Metadata(cfg, source), res.Records)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d, frames stored: %d\n", res.Ticks, len(res.Records))
	if res.Sensor.Samples > 0 {
		fmt.Printf("sensor: %d samples, %d shakes, %d dropped\n", res.Sensor.Samples, res.Sensor.Shakes, res.Sensor.Dropped)
	}
	fmt.Println("\nmetrics:")
	printMetrics(res.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range sortedKeys(m) {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	w.Flush()
}

func listScripts(cmd *cobra.Command, args []string) error {
	r := experiment.NewRegistry()
	for _, name := range r.List() {
		s, _ := r.Get(name)
		fmt.Printf("  %-8s %s\n", name, s.Description)
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	sc, err := experiment.LoadScenario(args[0])
	if err != nil {
		return logging.WrapError(err, "load scenario %s", args[0])
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	fmt.Printf("scenario %s: %s\n", sc.Name, sc.Description)
	results, runErr := experiment.RunScenario(ctx, sc, experiment.NewRegistry(), cfg, logger.Logger)
	for i, res := range results {
		stepCfg, err := sc.Steps[i].Config(cfg, experiment.NewRegistry())
		if err != nil {
			return err
		}
		fmt.Printf("\n== %s\n", res.Name)
		if err := saveResult(stepCfg.Sim, res, "scenario "+sc.Name); err != nil {
			return err
		}
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := scriptFromArgs(args, 1)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	sw := experiment.Sweep{
		Base:    experiment.Config{Sim: cfg, Script: script},
		Param:   args[0],
		Min:     sweepMin,
		Max:     sweepMax,
		Steps:   sweepSteps,
		Workers: workers,
	}
	fmt.Printf("sweeping %s from %g to %g over %s\n\n", sw.Param, sw.Min, sw.Max, script.Name)
	results, err := experiment.RunSweep(ctx, sw, logging.Default().Logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tENERGY\tPEAK\tSTABILITY\tSETTLE")
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.3f\t%.2f\t%.3f\t%.0f\n", r.Value,
			r.Metrics["surface_energy"], r.Metrics["peak_amplitude"], r.Metrics["stability"], r.Metrics["settle_ticks"])
	}
	return w.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := scriptFromArgs(args, 0)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	start := cfg.Seed
	if start == 0 {
		start = 1
	}
	results, err := experiment.RunTrials(ctx, experiment.Config{Sim: cfg, Script: script}, trials, start, workers, logging.Default().Logger)
	if err != nil {
		return err
	}

	peaks := make([]float64, len(results))
	for i, r := range results {
		peaks[i] = r.Metrics["peak_amplitude"]
	}
	stable, unstable := experiment.TrialStats(results)
	sum, _ := analysis.Summarize(peaks, 1)
	fmt.Printf("%d trials of %s from seed %d\n", len(results), script.Name, start)
	fmt.Printf("stable: %d, unstable: %d\n", stable, unstable)
	fmt.Printf("peak amplitude: mean %.2f, std %.2f, range [%.2f, %.2f]\n", sum.Mean, sum.StdDev, sum.Min, sum.Max)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := scriptFromArgs(args, 0)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{Sim: cfg, Script: script}, logging.Default().Logger)
	if err := exp.Setup(); err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(node)
	exp.Engine().AddObserver(portrait)
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}
	if len(portrait.Points) == 0 {
		return fmt.Errorf("node %d out of range (0..%d)", node, cfg.Mesh.Nodes-1)
	}

	fmt.Printf("node %d: displacement (x) against velocity (y), %s\n\n", node, script.Name)
	fmt.Print(portrait.ASCII(70, 20))
	return nil
}

func exportFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := scriptFromArgs(args, 1)
	if err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{Sim: cfg, Script: script}, logging.Default().Logger)
	if err := exp.Setup(); err != nil {
		return err
	}
	if _, err := exp.Run(cmd.Context()); err != nil {
		return err
	}

	out := args[0]
	frame := exp.Engine().Frame()
	w, h := exp.Engine().Size()
	switch strings.ToLower(filepath.Ext(out)) {
	case ".svg":
		err = os.WriteFile(out, []byte(export.FrameToSVG(frame, int(w), int(h))), 0644)
	case ".png":
		err = export.SavePNG(out, frame, w, h)
	default:
		return fmt.Errorf("unsupported frame format %q (want .svg or .png)", filepath.Ext(out))
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (fill %.1f%%, %s band)\n", out, frame.Fill*100, frame.Band)
	return nil
}

func recordSensor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	src, name, err := openSource(cfg, logger.Logger)
	if err != nil {
		return err
	}
	if src == nil {
		return fmt.Errorf("record needs --serial, --replay or --synthetic")
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()
	ctx, stop := context.WithTimeout(ctx, time.Duration(cfg.Duration*float64(time.Second)))
	defer stop()

	var samples []sensor.Sample
	start := time.Now()
	fmt.Printf("recording %s for %.1fs...\n", name, cfg.Duration)
	err = src.Run(ctx, func(s sensor.Sample) {
		if s.At == 0 {
			s.At = time.Since(start)
		}
		samples = append(samples, s)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	defer f.Close()
	if err := sensor.WriteReplay(f, samples); err != nil {
		return err
	}
	fmt.Printf("wrote %d samples to %s\n", len(samples), args[0])
	return nil
}

// parseGrid reads "name=min:max:steps" axes.
func parseGrid(axes []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(axes))
	ranges := make([][]float64, 0, len(axes))
	for _, axis := range axes {
		name, rest, ok := strings.Cut(axis, "=")
		parts := strings.Split(rest, ":")
		if !ok || name == "" || len(parts) != 3 {
			return nil, nil, fmt.Errorf("bad grid %q, want param=min:max:steps", axis)
		}
		lo, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("grid %s: %w", name, err)
		}
		hi, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("grid %s: %w", name, err)
		}
		n, err := strconv.Atoi(parts[2])
		if err != nil || n < 1 {
			return nil, nil, fmt.Errorf("grid %s: bad step count %q", name, parts[2])
		}
		names = append(names, name)
		ranges = append(ranges, optim.Linspace(lo, hi, n))
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := scriptFromArgs(args, 0)
	if err != nil {
		return err
	}
	names, ranges, err := parseGrid(tuneGrid)
	if err != nil {
		return err
	}
	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd)
	defer cancel()

	fmt.Printf("tuning %s over %s for lowest %s\n\n", strings.Join(names, ", "), script.Name, tuneMetric)
	res, err := g.Search(ctx, experiment.Config{Sim: cfg, Script: script}, tuneMetric, optim.Stable, logging.Discard().Logger)
	if err != nil {
		return err
	}

	for _, k := range sortedKeys(res.Params) {
		fmt.Printf("  %-14s %g\n", k, res.Params[k])
	}
	fmt.Printf("\n%s = %g (%d runs, %d unstable)\n", tuneMetric, res.Value, res.Evaluated, res.Rejected)
	return nil
}
