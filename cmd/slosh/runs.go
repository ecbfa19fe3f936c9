package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/slosh/internal/analysis"
	"github.com/san-kum/slosh/internal/export"
	"github.com/san-kum/slosh/internal/storage"
)

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
	fmt.Fprintln(w, "ID\tPRESET\tSOURCE\tTIME\tTICKS\tNODES\tSTABILITY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.3f\n",
			run.ID,
			orDash(run.Preset),
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Nodes,
			run.Metrics["stability"],
		)
	}
	return w.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Record, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	records, err := st.LoadRecords(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, records, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	columns := strings.Split(column, ",")
	series := make(map[string][]float64, len(columns))
	for _, c := range columns {
		ys, err := storage.Series(records, c)
		if err != nil {
			return err
		}
		series[c] = ys
	}

	if pngOut != "" {
		xs, _ := storage.Series(records, "time")
		if err := export.SaveSeriesPNG(pngOut, meta.ID, "time (s)", column, xs, series); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", pngOut)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s, source: %s\n", orDash(meta.Preset), meta.Source)
	fmt.Printf("samples: %d\n\n", len(records))
	for _, c := range columns {
		graph := asciigraph.Plot(series[c],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(c+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}
	data, err := storage.Series(records, column)
	if err != nil {
		return err
	}

	rate := meta.TickRate
	if len(records) > 1 {
		if dt := records[1].Time - records[0].Time; dt > 0 {
			rate = 1 / dt
		}
	}

	spec, err := analysis.PowerSpectrum(data, rate)
	if err != nil {
		return err
	}
	sum, err := analysis.Summarize(data, rate)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s (%s)\n\n", meta.ID, column)
	plotData := spec.Power[1:max(2, len(spec.Power)/4)]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum ("+column+")"),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Printf("mean: %.4f  std: %.4f  range: [%.4f, %.4f]\n", sum.Mean, sum.StdDev, sum.Min, sum.Max)
	fmt.Printf("dominant frequency: %.3f hz\n", sum.Dominant)
	if sum.Dominant > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/sum.Dominant)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, records, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"tick", "time", "fill", "target", "angle"}
	for i := range records[0].Positions {
		header = append(header, fmt.Sprintf("n%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Tick),
			strconv.FormatFloat(r.Time, 'f', 6, 64),
			strconv.FormatFloat(r.Fill, 'f', 6, 64),
			strconv.FormatFloat(r.Target, 'f', 6, 64),
			strconv.FormatFloat(r.Angle, 'f', 6, 64),
		}
		for _, p := range r.Positions {
			row = append(row, strconv.FormatFloat(p, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, records, err := loadRun(args[0])
	if err != nil {
		return err
	}
	out := meta.ID + ".json"
	if len(args) > 1 {
		out = args[1]
	}
	if err := storage.ExportJSON(out, *meta, records); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", out, len(records))
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
