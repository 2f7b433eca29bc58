package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matheuswhite/aule/internal/analysis"
	"github.com/matheuswhite/aule/internal/config"
	"github.com/matheuswhite/aule/internal/export"
	"github.com/matheuswhite/aule/internal/loop"
	"github.com/matheuswhite/aule/internal/metrics"
	"github.com/matheuswhite/aule/internal/signal"
	"github.com/matheuswhite/aule/internal/store"
	"github.com/matheuswhite/aule/internal/sweep"
	"github.com/matheuswhite/aule/internal/viz"
)

var (
	dataDir    string
	configFile string
	dt         float64
	duration   float64
	kp         float64
	ki         float64
	kd         float64
	csvPath    string
	jsonPath   string
	saveRun    bool
	showPlot   bool
	amplitude  float64
	kpGrid     []float64
	kiGrid     []float64
	kdGrid     []float64
	rankIndex  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aule",
		Short: "control loop simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".aule", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a closed-loop scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().Float64Var(&dt, "dt", 0.001, "timestep in seconds")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	runCmd.Flags().Float64Var(&kp, "kp", 2.0, "pid kp")
	runCmd.Flags().Float64Var(&ki, "ki", 1.0, "pid ki")
	runCmd.Flags().Float64Var(&kd, "kd", 0.0, "pid kd")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "write trajectory CSV to path")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "write run document to path")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "persist the run in the data directory")
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "render the response chart")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	stepCmd := &cobra.Command{
		Use:   "step [preset]",
		Short: "open-loop step response of the plant",
		Args:  cobra.MaximumNArgs(1),
		RunE:  stepResponse,
	}
	stepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	stepCmd.Flags().Float64Var(&dt, "dt", 0.001, "timestep in seconds")
	stepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	stepCmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "step amplitude")
	stepCmd.Flags().BoolVar(&showPlot, "plot", false, "render the response chart")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "evaluate a grid of PID gains in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepGains,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	sweepCmd.Flags().Float64SliceVar(&kpGrid, "kp", []float64{0.5, 1, 2, 4}, "kp candidates")
	sweepCmd.Flags().Float64SliceVar(&kiGrid, "ki", []float64{0, 0.5, 1, 2}, "ki candidates")
	sweepCmd.Flags().Float64SliceVar(&kdGrid, "kd", []float64{0}, "kd candidates")
	sweepCmd.Flags().StringVar(&rankIndex, "rank", "iae", "index to rank by (iae, ise, itae)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, stepCmd, sweepCmd, presetsCmd, listCmd, plotCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the config in preset < file < flags order and
// returns it with its display name.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	scenario := "default"
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		scenario = args[0]
		cfg = config.GetPreset(scenario)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset %q (available: %v)", scenario, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		scenario = configFile
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("kp") {
		cfg.Controller.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.Controller.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.Controller.Kd = kd
	}
	return cfg, scenario, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	runner, clock, err := config.Build(cfg)
	if err != nil {
		return err
	}
	runner.AddIndex("iae", metrics.NewIAE[signal.Continuous]())
	runner.AddIndex("ise", metrics.NewISE[signal.Continuous]())
	runner.AddIndex("itae", metrics.NewITAE[signal.Continuous]())

	result, err := runner.Run(context.Background(), clock)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario)
	fmt.Printf("samples: %d\n", len(result.Times))
	if n := len(result.Outputs); n > 0 {
		fmt.Printf("final output: %.6f\n\n", result.Outputs[n-1])
	}
	fmt.Print(viz.Indices(result))

	if showPlot {
		fmt.Println()
		fmt.Print(viz.Plot(result))
	}

	if csvPath != "" {
		if err := export.CSV(csvPath, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvPath)
	}
	if jsonPath != "" {
		data := export.NewData(scenario, cfg.Solver, cfg.Controller.Type, cfg.Dt, cfg.Duration, result)
		if err := export.JSON(jsonPath, data); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonPath)
	}
	if saveRun {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(scenario, cfg.Solver, cfg.Controller.Type, cfg.Dt, cfg.Duration, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved run: %s\n", runID)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	runner, clock, err := config.Build(cfg)
	if err != nil {
		return err
	}
	return viz.Run(scenario, runner, clock)
}

func stepResponse(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	plant, err := config.BuildPlant(cfg)
	if err != nil {
		return err
	}

	resp := analysis.NewStepResponse(plant).
		WithStep(seconds(dt)).
		WithDuration(seconds(duration)).
		WithAmplitude(amplitude)

	info, err := resp.Run()
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n\n", scenario)
	fmt.Printf("final value:   %.6f\n", info.FinalValue)
	fmt.Printf("peak:          %.6f at %.4fs\n", info.Peak, info.PeakTime)
	fmt.Printf("rise time:     %.4fs\n", info.RiseTime)
	fmt.Printf("settling time: %.4fs\n", info.SettlingTime)
	fmt.Printf("overshoot:     %.2f%%\n", info.Overshoot*100)
	fmt.Printf("undershoot:    %.2f%%\n", info.Undershoot*100)

	if showPlot {
		setpoints := make([]float64, len(info.Y))
		for i := range setpoints {
			setpoints[i] = amplitude
		}
		fmt.Println()
		fmt.Print(viz.Plot(&loop.Result{Times: info.Times, Setpoints: setpoints, Outputs: info.Y}))
	}
	return nil
}

func sweepGains(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	points := sweep.Grid(kpGrid, kiGrid, kdGrid)
	s, err := sweep.New(cfg, points)
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario)
	fmt.Printf("evaluating %d gain combinations...\n\n", len(points))

	outcomes, err := s.Run(context.Background())
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		fmt.Printf("kp=%-6.3f ki=%-6.3f kd=%-6.3f  %s=%.6f\n",
			o.Point.Kp, o.Point.Ki, o.Point.Kd, rankIndex, o.Indices[rankIndex])
	}

	best, err := sweep.Best(outcomes, rankIndex)
	if err != nil {
		return err
	}
	fmt.Printf("\nbest: kp=%.3f ki=%.3f kd=%.3f (%s=%.6f)\n",
		best.Point.Kp, best.Point.Ki, best.Point.Kd, rankIndex, best.Indices[rankIndex])
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}
	for _, run := range runs {
		fmt.Printf("%-30s %-12s %-6s %6.1fs  %s\n",
			run.ID, run.Scenario, run.Controller, run.Duration,
			run.Timestamp.Format(time.RFC3339))
	}
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(result.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(result.Times))
	fmt.Print(viz.Plot(result))
	fmt.Println()
	fmt.Print(viz.PlotControl(result))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	result.Indices = meta.Indices

	data := export.NewData(meta.Scenario, meta.Solver, meta.Controller, meta.Dt, meta.Duration, result)
	return export.JSONStdout(data)
}

func seconds(s float64) time.Duration {
	return time.Duration(float64(time.Second) * s)
}
