package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/slosh/internal/config"
	"github.com/san-kum/slosh/internal/sensor"
)

var (
	dataDir    string
	configFile string
	preset     string
	seed       int64
	fill       float64
	duration   float64
	logFile    string
	// Sensor input
	serialPort string
	baud       int
	replayFile string
	replaySpd  float64
	loopReplay bool
	synthetic  bool
	// Runs
	recordEvery int
	column      string
	node        int
	pngOut      string
	// Sweeps
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	workers    int
	tuneGrid   []string
	tuneMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "slosh",
		Short:        "reactive liquid surface simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".slosh", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "preset name (see 'slosh presets')")
	pf.Int64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	pf.Float64Var(&fill, "fill", 0, "initial fill percent")
	pf.Float64Var(&duration, "duration", config.DefaultDuration, "simulated seconds for headless runs")
	pf.StringVar(&logFile, "log-file", "", "append logs to this file")

	addSensorFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal view driven by the keyboard or a sensor",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSensorFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "window view driven by the keyboard or a sensor",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
	addSensorFlags(guiCmd)

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "run a scripted simulation headless and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "store every Nth tick")
	runCmd.Flags().StringVar(&replayFile, "replay", "", "add a recorded sensor file to the timeline")

	scriptsCmd := &cobra.Command{
		Use:   "scripts",
		Short: "list built-in scripts",
		Args:  cobra.NoArgs,
		RunE:  listScripts,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [script]",
		Short: "run a script across a range of one parameter",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.005, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs, 0 uses every cpu")

	trialsCmd := &cobra.Command{
		Use:   "trials [script]",
		Short: "repeat a script under consecutive seeds",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrials,
	}
	trialsCmd.Flags().IntVar(&trials, "n", 20, "number of trials")
	trialsCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs, 0 uses every cpu")

	tuneCmd := &cobra.Command{
		Use:   "tune [script]",
		Short: "grid search parameters for the lowest metric value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringArrayVar(&tuneGrid, "grid", []string{"fillSmoothing=0.02:0.2:10"}, "param=min:max:steps, repeatable")
	tuneCmd.Flags().StringVar(&tuneMetric, "metric", "settle_ticks", "metric to minimise")

	phaseCmd := &cobra.Command{
		Use:   "phase [script]",
		Short: "phase portrait of one node",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&node, "node", 0, "node index")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "fill", "column: time, fill, target, angle, phase or nN")
	plotCmd.Flags().StringVar(&pngOut, "png", "", "write a png chart instead of printing")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "statistics and dominant frequency of a stored column",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&column, "column", "n0", "column to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export a run to JSON",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportJSON,
	}

	exportFrameCmd := &cobra.Command{
		Use:   "export-frame [file.svg|file.png] [script]",
		Short: "run a script and write the final frame as an image",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  exportFrame,
	}

	recordCmd := &cobra.Command{
		Use:   "record [file]",
		Short: "capture sensor samples into a replay file",
		Args:  cobra.ExactArgs(1),
		RunE:  recordSensor,
	}
	addSensorFlags(recordCmd)

	portsCmd := &cobra.Command{
		Use:   "ports",
		Short: "list serial ports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := sensor.Ports()
			if err != nil {
				return err
			}
			if len(ports) == 0 {
				fmt.Println("no serial ports found")
			}
			for _, p := range ports {
				fmt.Println(p)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				cfg, err := config.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-8s %s\n", name, cfg)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, guiCmd, runCmd, scriptsCmd, scenarioCmd, sweepCmd, trialsCmd, tuneCmd,
		phaseCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportFrameCmd, recordCmd, portsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSensorFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&serialPort, "serial", "", "read an accelerometer on this serial port")
	f.IntVar(&baud, "baud", sensor.DefaultBaud, "serial baud rate")
	f.StringVar(&replayFile, "replay", "", "replay a recorded sensor file")
	f.Float64Var(&replaySpd, "speed", 1, "replay speed")
	f.BoolVar(&loopReplay, "loop", false, "loop the replay")
	f.BoolVar(&synthetic, "synthetic", false, "simulate a hand-held device")
}
