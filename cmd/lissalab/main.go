package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/curvelab/lissalab/internal/analysis"
	"github.com/curvelab/lissalab/internal/batch"
	"github.com/curvelab/lissalab/internal/config"
	"github.com/curvelab/lissalab/internal/curve"
	"github.com/curvelab/lissalab/internal/energy"
	"github.com/curvelab/lissalab/internal/export"
	"github.com/curvelab/lissalab/internal/gui"
	"github.com/curvelab/lissalab/internal/store"
	"github.com/curvelab/lissalab/internal/sweep"
	"github.com/curvelab/lissalab/internal/tui"
	"github.com/curvelab/lissalab/internal/viz"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string

	freqX      float64
	freqY      float64
	ampX       float64
	ampY       float64
	phaseX     float64
	phaseY     float64
	resolution int
	cycles     float64
	phaseStep  float64
	frameRate  int

	// output sizing
	plotWidth  int
	plotHeight int
	// energy options
	gridSize  int
	sigmaX2   float64
	sigmaY2   float64
	energyDt  float64
	workers   int
	energyPNG string
	// svg options
	svgOut    string
	svgWidth  int
	svgHeight int
	// gif options
	gifOut    string
	gifFrames int
	gifWidth  int
	gifHeight int
	// theme
	themeName string
	// sweep options
	sweepMin  float64
	sweepMax  float64
	sweepStep float64
	// batch options
	outDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lissalab",
		Short: "lissajous figure lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive viewer when no command given
			return runView(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lissalab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().Float64Var(&freqX, "freq-x", config.DefaultFreqX, "x frequency")
	rootCmd.PersistentFlags().Float64Var(&freqY, "freq-y", config.DefaultFreqY, "y frequency")
	rootCmd.PersistentFlags().Float64Var(&ampX, "amp-x", config.DefaultAmp, "x amplitude")
	rootCmd.PersistentFlags().Float64Var(&ampY, "amp-y", config.DefaultAmp, "y amplitude")
	rootCmd.PersistentFlags().Float64Var(&phaseX, "phase-x", 0, "x phase offset (rad)")
	rootCmd.PersistentFlags().Float64Var(&phaseY, "phase-y", 0, "y phase offset (rad)")
	rootCmd.PersistentFlags().IntVar(&resolution, "resolution", config.DefaultResolution, "samples per figure")
	rootCmd.PersistentFlags().Float64Var(&cycles, "cycles", config.DefaultCycles, "base periods to trace")
	rootCmd.PersistentFlags().Float64Var(&phaseStep, "phase-step", config.DefaultPhaseStep, "phase advance per frame (rad)")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFrameRate, "animation frame rate")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "interactive terminal viewer",
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&themeName, "theme", "", "color theme")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "windowed viewer with audio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			gui.Run(cfg)
			return nil
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "print the figure once",
		RunE:  plotFigure,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width in characters")
	plotCmd.Flags().IntVar(&plotHeight, "height", 25, "plot height in characters")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "sample the figure and save a trace",
		RunE:  saveTrace,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved traces",
		RunE:  listTraces,
	}

	showCmd := &cobra.Command{
		Use:   "show [trace_id]",
		Short: "plot a saved trace",
		Args:  cobra.ExactArgs(1),
		RunE:  showTrace,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [trace_id]",
		Short: "frequency analysis of the figure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeFigure,
	}

	energyCmd := &cobra.Command{
		Use:   "energy",
		Short: "exposure map of the scanned figure",
		RunE:  energyMap,
	}
	energyCmd.Flags().IntVar(&gridSize, "grid", 61, "grid side length")
	energyCmd.Flags().Float64Var(&sigmaX2, "sigma-x", 0.005, "squared x spot width")
	energyCmd.Flags().Float64Var(&sigmaY2, "sigma-y", 0.005, "squared y spot width")
	energyCmd.Flags().Float64Var(&energyDt, "dt", 0.001, "integration step")
	energyCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")
	energyCmd.Flags().StringVar(&energyPNG, "png", "", "also write a png image")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [trace_id]",
		Short: "export trace points to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [trace_id]",
		Short: "export trace data to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [trace_id]",
		Short: "render the figure to an SVG file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "lissajous.svg", "output file")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height in pixels")

	gifCmd := &cobra.Command{
		Use:   "gif",
		Short: "record the phase animation to a GIF",
		RunE:  recordGIF,
	}
	gifCmd.Flags().StringVar(&gifOut, "out", "lissajous.gif", "output file")
	gifCmd.Flags().IntVar(&gifFrames, "frames", 120, "number of frames")
	gifCmd.Flags().IntVar(&gifWidth, "width", 60, "canvas width in characters")
	gifCmd.Flags().IntVar(&gifHeight, "height", 25, "canvas height in characters")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s %g:%g\n", name, p.Curve.FreqX, p.Curve.FreqY)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "score a grid of frequency ratios",
		RunE:  sweepRatios,
	}
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "lowest frequency")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 5, "highest frequency")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 1, "frequency step")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render a scripted set of figures",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().StringVar(&outDir, "out", "renders", "output directory")

	rootCmd.AddCommand(viewCmd, guiCmd, plotCmd, traceCmd, listCmd, showCmd,
		analyzeCmd, energyCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd,
		gifCmd, presetsCmd, sweepCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers the figure parameters: preset, then config
// file, then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return config.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("freq-x") {
		cfg.Curve.FreqX = freqX
	}
	if flags.Changed("freq-y") {
		cfg.Curve.FreqY = freqY
	}
	if flags.Changed("amp-x") {
		cfg.Curve.AmpX = ampX
	}
	if flags.Changed("amp-y") {
		cfg.Curve.AmpY = ampY
	}
	if flags.Changed("phase-x") {
		cfg.Curve.PhaseX = phaseX
	}
	if flags.Changed("phase-y") {
		cfg.Curve.PhaseY = phaseY
	}
	if flags.Changed("resolution") {
		cfg.Curve.Resolution = resolution
	}
	if flags.Changed("cycles") {
		cfg.Curve.Cycles = cycles
	}
	if flags.Changed("phase-step") {
		cfg.Animation.PhaseStep = phaseStep
	}
	if flags.Changed("fps") {
		cfg.Animation.FrameRate = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if themeName != "" && !viz.SetTheme(themeName) {
		return fmt.Errorf("unknown theme: %s (available: %v)", themeName, viz.ThemeNames())
	}
	return tui.RunViewer(cfg)
}

func plotFigure(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()
	pts := curve.Sample(p)

	fmt.Print(viz.Plot(p, pts, plotWidth, plotHeight).String())

	if cycles, ok := curve.CyclesToClose(p.FreqX, p.FreqY); ok {
		fmt.Printf("\ncloses after %.2f base periods\n", cycles)
	} else {
		fmt.Println("\nfigure does not close")
	}
	return nil
}

func saveTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	start := time.Now()
	pts := curve.Sample(p)
	metrics := curve.Metrics(p, pts)

	traceID, err := st.Save(p, metrics, pts)
	if err != nil {
		return err
	}

	fmt.Printf("sampled %d points in %v\n", len(pts), time.Since(start))
	fmt.Printf("trace id: %s\n", traceID)
	fmt.Println("\nmetrics:")
	for name, val := range metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}
	return nil
}

func listTraces(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	traces, err := st.List()
	if err != nil {
		return err
	}

	if len(traces) == 0 {
		fmt.Println("no traces found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tFREQ\tPHASE Y\tCYCLES\tPOINTS")

	for _, tr := range traces {
		fmt.Fprintf(w, "%s\t%s\t%g:%g\t%.3f\t%.1f\t%d\n",
			tr.ID,
			tr.Timestamp.Format("2006-01-02 15:04:05"),
			tr.Params.FreqX,
			tr.Params.FreqY,
			tr.Params.PhaseY,
			tr.Params.Cycles,
			tr.Params.Resolution,
		)
	}

	return w.Flush()
}

func showTrace(cmd *cobra.Command, args []string) error {
	traceID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(traceID)
	if err != nil {
		return err
	}
	pts, err := st.LoadPoints(traceID)
	if err != nil {
		return err
	}
	if len(pts) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("trace: %s\n", meta.ID)
	fmt.Printf("freq: %g:%g  phase_y: %.3f\n\n", meta.Params.FreqX, meta.Params.FreqY, meta.Params.PhaseY)

	fmt.Print(viz.Plot(meta.Params, pts, 60, 25).String())
	fmt.Println()

	for _, axis := range []struct {
		name string
		get  func(curve.Point) float64
	}{
		{"x(t)", func(pt curve.Point) float64 { return pt.X }},
		{"y(t)", func(pt curve.Point) float64 { return pt.Y }},
	} {
		data := make([]float64, len(pts))
		for i, pt := range pts {
			data[i] = axis.get(pt)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(axis.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if len(meta.Metrics) > 0 {
		fmt.Println("metrics:")
		for name, val := range meta.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
	}
	return nil
}

func analyzeFigure(cmd *cobra.Command, args []string) error {
	p, pts, _, err := tracePoints(cmd, args)
	if err != nil {
		return err
	}

	for _, spec := range []struct {
		name     string
		spectrum analysis.Spectrum
		expected float64
	}{
		{"x axis", analysis.XSpectrum(p, pts), p.FreqX},
		{"y axis", analysis.YSpectrum(p, pts), p.FreqY},
	} {
		plotData := spec.spectrum.Magnitudes
		if len(plotData) > 128 {
			plotData = plotData[:128]
		}
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", spec.name)),
		)
		fmt.Println(graph)
		fmt.Printf("dominant: %.3f rad/t (set: %.3f)\n\n", spec.spectrum.Dominant(), spec.expected)
	}

	if cycles, ok := curve.CyclesToClose(p.FreqX, p.FreqY); ok {
		fmt.Printf("figure closes after %.2f base periods\n", cycles)
	} else {
		fmt.Println("frequency ratio is irrational, figure never closes")
	}
	return nil
}

func energyMap(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()

	opts := energy.DefaultOptions()
	opts.GridSize = gridSize
	opts.SigmaX2 = sigmaX2
	opts.SigmaY2 = sigmaY2
	opts.Dt = energyDt
	if workers > 0 {
		opts.Workers = workers
	}

	start := time.Now()
	grid, err := energy.Map(context.Background(), p, opts)
	if err != nil {
		return err
	}
	fmt.Printf("integrated %dx%d grid in %v\n\n", gridSize, gridSize, time.Since(start))

	fmt.Print(viz.Heatmap(grid))

	if energyPNG != "" {
		if err := energy.SavePNG(energyPNG, grid); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", energyPNG)
	}
	return nil
}

// tracePoints resolves trace data for the export commands: a trace ID
// argument loads from the store, no argument samples the flag params.
func tracePoints(cmd *cobra.Command, args []string) (curve.Params, []curve.Point, map[string]float64, error) {
	if len(args) == 1 {
		st := store.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return curve.Params{}, nil, nil, err
		}
		pts, err := st.LoadPoints(args[0])
		if err != nil {
			return curve.Params{}, nil, nil, err
		}
		return meta.Params, pts, meta.Metrics, nil
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return curve.Params{}, nil, nil, err
	}
	p := cfg.Params()
	pts := curve.Sample(p)
	return p, pts, curve.Metrics(p, pts), nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, pts, _, err := tracePoints(cmd, args)
	if err != nil {
		return err
	}
	return store.ExportCSV(os.Stdout, pts)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	p, pts, metrics, err := tracePoints(cmd, args)
	if err != nil {
		return err
	}
	return store.ExportJSONStdout(p, pts, metrics)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, pts, _, err := tracePoints(cmd, args)
	if err != nil {
		return err
	}

	if err := export.SaveCurveSVG(svgOut, pts, svgWidth, svgHeight, "#00ff00"); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func sweepRatios(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	grid := sweep.Grid{
		FreqsX: sweep.Range(sweepMin, sweepMax, sweepStep),
		FreqsY: sweep.Range(sweepMin, sweepMax, sweepStep),
	}
	if len(grid.FreqsX) == 0 {
		return fmt.Errorf("empty sweep range %g..%g step %g", sweepMin, sweepMax, sweepStep)
	}

	n := workers
	if n < 1 {
		n = runtime.NumCPU()
	}

	start := time.Now()
	results, err := sweep.Run(context.Background(), cfg.Params(), grid, n)
	if err != nil {
		return err
	}
	fmt.Printf("scored %d ratios in %v\n\n", len(results), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RATIO\tCLOSES\tCYCLES\tPATH LEN\tCLOSURE ERR")
	for _, r := range results {
		closes := "no"
		cyclesCol := "-"
		if r.Closes {
			closes = "yes"
			cyclesCol = fmt.Sprintf("%.1f", r.Cycles)
		}
		fmt.Fprintf(w, "%g:%g\t%s\t%s\t%.3f\t%.2e\n",
			r.FreqX, r.FreqY, closes, cyclesCol,
			r.Metrics["path_length"], r.Metrics["closure_error"])
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := batch.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("running %s (%d steps)\n", scenario.Name, len(scenario.Steps))

	runner := &batch.Runner{OutDir: outDir, DataDir: dataDir}
	results, err := runner.Run(context.Background(), scenario)
	if err != nil {
		return err
	}

	for _, res := range results {
		fmt.Printf("  %s:", res.Name)
		for _, f := range res.Files {
			fmt.Printf(" %s", f)
		}
		if res.TraceID != "" {
			fmt.Printf(" trace=%s", res.TraceID)
		}
		fmt.Println()
	}
	return nil
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	p := cfg.Params()

	delay := 100 / cfg.Animation.FrameRate
	rec := export.NewRecorder(delay)

	for i := 0; i < gifFrames; i++ {
		pts := curve.Sample(p)
		rec.Capture(viz.Plot(p, pts, gifWidth, gifHeight))
		p.PhaseY = curve.WrapPhase(p.PhaseY + cfg.Animation.PhaseStep)
	}

	if err := rec.Save(gifOut); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d frames)\n", gifOut, gifFrames)
	return nil
}
