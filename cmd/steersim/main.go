package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/steersim/internal/config"
	"github.com/san-kum/steersim/internal/experiment"
	"github.com/san-kum/steersim/internal/optim"
	"github.com/san-kum/steersim/internal/sim"
	"github.com/san-kum/steersim/internal/storage"
	"github.com/san-kum/steersim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	controller string
	vehicle    string
	// controller gains
	kp           float64
	ki           float64
	kd           float64
	kf           float64
	windupLimit  float64
	maxSteerRate float64
	alpha        float64
	// scenario shape
	amplitude float64
	frequency float64
	period    float64
	stepAt    float64
	roadRoll  float64
	noise     float64
	// plant
	plantGain float64
	plantTau  float64
	speed     float64
	// config file and preset
	configFile string
	preset     string
	// sweep
	sweepSpecs  []string
	sweepMetric string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "steersim",
		Short: "lateral steering control lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".steersim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a closed-loop simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addLoopFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addLoopFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [controller1] [controller2] ...",
		Short: "compare controllers on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareControllers,
	}
	addLoopFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario]",
		Short: "grid-search controller gains",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepGains,
	}
	addLoopFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepSpecs, "param", nil, "sweep spec, e.g. kp=0.2,0.5,0.8 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "tracking_rms", "metric to minimize")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, liveCmd, compareCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addLoopFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "sample interval")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&controller, "controller", "lateral", "controller")
	cmd.Flags().StringVar(&vehicle, "vehicle", "linear", "vehicle plant")
	cmd.Flags().Float64Var(&kp, "kp", 0.5, "proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", 0.1, "integral gain")
	cmd.Flags().Float64Var(&kd, "kd", 0.05, "derivative gain")
	cmd.Flags().Float64Var(&kf, "kf", 0.2, "feed-forward gain")
	cmd.Flags().Float64Var(&windupLimit, "windup", 0.9, "integral clamp bound")
	cmd.Flags().Float64Var(&maxSteerRate, "max-rate", 0.05, "steering rate limit")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.2, "target smoothing factor")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "target amplitude")
	cmd.Flags().Float64Var(&frequency, "frequency", 0.2, "target frequency (sine/chirp)")
	cmd.Flags().Float64Var(&period, "period", 4.0, "target period (slalom)")
	cmd.Flags().Float64Var(&stepAt, "step-at", 1.0, "step time (step)")
	cmd.Flags().Float64Var(&roadRoll, "road-roll", 0.0, "constant road-roll lataccel")
	cmd.Flags().Float64Var(&noise, "noise", 0.0, "measurement noise stddev")
	cmd.Flags().Float64Var(&plantGain, "gain", 2.0, "plant steady-state gain")
	cmd.Flags().Float64Var(&plantTau, "tau", 0.25, "plant time constant")
	cmd.Flags().Float64Var(&speed, "speed", 20.0, "vehicle speed")
}

// currentConfig collects the flag state into a single run config; the
// registry parameter maps all flatten from here.
func currentConfig() *config.Config {
	return &config.Config{
		Controller: controller,
		Vehicle:    vehicle,
		Dt:         dt,
		Duration:   duration,
		Seed:       seed,
		Scene: config.SceneConfig{
			Amplitude: amplitude,
			Frequency: frequency,
			Period:    period,
			StepAt:    stepAt,
			RoadRoll:  roadRoll,
			Noise:     noise,
		},
		Plant: config.PlantConfig{
			Gain:  plantGain,
			Tau:   plantTau,
			Speed: speed,
		},
		Gains: config.ControllerGains{
			Kp:           kp,
			Ki:           ki,
			Kd:           kd,
			Kf:           kf,
			WindupLimit:  windupLimit,
			MaxSteerRate: maxSteerRate,
			Alpha:        alpha,
		},
	}
}

func controllerParams() map[string]float64 {
	return currentConfig().GetControllerParams()
}

func scenarioParams() map[string]float64 {
	return currentConfig().GetScenarioParams()
}

func vehicleParams() map[string]float64 {
	return currentConfig().GetVehicleParams()
}

func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("controller") && cfg.Controller != "" {
		controller = cfg.Controller
	}
	if !cmd.Flags().Changed("vehicle") && cfg.Vehicle != "" {
		vehicle = cfg.Vehicle
	}
	if !cmd.Flags().Changed("kp") {
		kp = cfg.Gains.Kp
	}
	if !cmd.Flags().Changed("ki") {
		ki = cfg.Gains.Ki
	}
	if !cmd.Flags().Changed("kd") {
		kd = cfg.Gains.Kd
	}
	if !cmd.Flags().Changed("kf") {
		kf = cfg.Gains.Kf
	}
	if !cmd.Flags().Changed("windup") {
		windupLimit = cfg.Gains.WindupLimit
	}
	if !cmd.Flags().Changed("max-rate") {
		maxSteerRate = cfg.Gains.MaxSteerRate
	}
	if !cmd.Flags().Changed("alpha") {
		alpha = cfg.Gains.Alpha
	}
	if !cmd.Flags().Changed("amplitude") {
		amplitude = cfg.Scene.Amplitude
	}
	if !cmd.Flags().Changed("frequency") && cfg.Scene.Frequency != 0 {
		frequency = cfg.Scene.Frequency
	}
	if !cmd.Flags().Changed("period") && cfg.Scene.Period != 0 {
		period = cfg.Scene.Period
	}
	if !cmd.Flags().Changed("step-at") {
		stepAt = cfg.Scene.StepAt
	}
	if !cmd.Flags().Changed("road-roll") {
		roadRoll = cfg.Scene.RoadRoll
	}
	if !cmd.Flags().Changed("noise") {
		noise = cfg.Scene.Noise
	}
	if !cmd.Flags().Changed("gain") && cfg.Plant.Gain != 0 {
		plantGain = cfg.Plant.Gain
	}
	if !cmd.Flags().Changed("tau") && cfg.Plant.Tau != 0 {
		plantTau = cfg.Plant.Tau
	}
	if !cmd.Flags().Changed("speed") && cfg.Plant.Speed != 0 {
		speed = cfg.Plant.Speed
	}
	if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = cfg.Seed
	}
}

func buildLoop(registry *experiment.Registry, scenarioName string) (*sim.Loop, sim.Controller, sim.Vehicle, error) {
	sc, err := registry.GetScenario(scenarioName, scenarioParams())
	if err != nil {
		return nil, nil, nil, err
	}
	veh, err := registry.GetVehicle(vehicle, vehicleParams())
	if err != nil {
		return nil, nil, nil, err
	}
	ctrl, err := registry.GetController(controller, controllerParams())
	if err != nil {
		return nil, nil, nil, err
	}
	return sim.New(sc, veh, ctrl), ctrl, veh, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]

	if preset != "" {
		cfg := config.GetPreset(scenarioName, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scenarioName))
		}
		applyConfig(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	exp := experiment.New(experiment.Config{
		Scenario:   scenarioName,
		Vehicle:    vehicle,
		Controller: controller,
		Dt:         dt,
		Duration:   duration,
		Seed:       seed,
		Params:     controllerParams(),
	})

	sc, err := registry.GetScenario(scenarioName, scenarioParams())
	if err != nil {
		return err
	}
	veh, err := registry.GetVehicle(vehicle, vehicleParams())
	if err != nil {
		return err
	}
	ctrl, err := registry.GetController(controller, controllerParams())
	if err != nil {
		return err
	}

	if err := exp.Setup(sc, veh, ctrl, registry.DefaultMetrics(dt, maxSteerRate)); err != nil {
		return err
	}

	fmt.Printf("running %s scenario...\n", scenarioName)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(scenarioName, vehicle, controller, dt, duration, seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", len(result.Ticks))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tVEHICLE\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Vehicle,
			run.Controller,
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

	ticks, err := st.LoadTicks(runID)
	if err != nil {
		return err
	}

	if len(ticks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s, controller: %s\n", meta.Scenario, meta.Controller)
	fmt.Printf("samples: %d\n\n", len(ticks))

	desired := make([]float64, len(ticks))
	measured := make([]float64, len(ticks))
	steer := make([]float64, len(ticks))
	for i, tk := range ticks {
		desired[i] = tk.Desired
		measured[i] = tk.Measured
		steer[i] = tk.Steer
	}

	graph := asciigraph.PlotMany(
		[][]float64{desired, measured},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("desired vs measured lataccel"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(steer,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("steer command"),
	)
	fmt.Println(graph)

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, nil)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	ticks, err := st.LoadTicks(runID)
	if err != nil {
		return err
	}

	if len(ticks) == 0 {
		return fmt.Errorf("no data to export")
	}

	return storage.ExportCSV(os.Stdout, ticks)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	ticks, err := st.LoadTicks(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, ticks)
}

func runLive(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]

	registry := experiment.NewRegistry()
	loop, ctrl, veh, err := buildLoop(registry, scenarioName)
	if err != nil {
		return err
	}

	m := viz.NewModel(loop, ctrl, veh, dt, scenarioName)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareControllers(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]
	names := args[1:]

	registry := experiment.NewRegistry()

	fmt.Printf("comparing controllers on %s (dt=%.4f, duration=%.1fs)\n\n", scenarioName, dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTROLLER\tTRACKING_RMS\tEFFORT\tJERK\tSATURATION")

	for _, name := range names {
		sc, err := registry.GetScenario(scenarioName, scenarioParams())
		if err != nil {
			return err
		}
		veh, err := registry.GetVehicle(vehicle, vehicleParams())
		if err != nil {
			return err
		}
		ctrl, err := registry.GetController(name, controllerParams())
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		loop := sim.New(sc, veh, ctrl)
		for _, m := range registry.DefaultMetrics(dt, maxSteerRate) {
			loop.AddMetric(m)
		}

		result, err := loop.Run(context.Background(), sim.Config{Dt: dt, Duration: duration, Seed: seed})
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.6f\t%.4f\n",
			name,
			result.Metrics["tracking_rms"],
			result.Metrics["control_effort"],
			result.Metrics["steer_jerk"],
			result.Metrics["rate_saturation"],
		)
	}

	return w.Flush()
}

func sweepGains(cmd *cobra.Command, args []string) error {
	scenarioName := args[0]

	names, ranges, err := parseSweepSpecs(sweepSpecs)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		names = []string{"kp", "ki"}
		ranges = [][]float64{
			{0.2, 0.5, 0.8, 1.2},
			{0.02, 0.05, 0.1, 0.2},
		}
	}

	registry := experiment.NewRegistry()

	build := func(params map[string]float64) (*experiment.Experiment, error) {
		ctrlParams := controllerParams()
		for k, v := range params {
			ctrlParams[k] = v
		}

		sc, err := registry.GetScenario(scenarioName, scenarioParams())
		if err != nil {
			return nil, err
		}
		veh, err := registry.GetVehicle(vehicle, vehicleParams())
		if err != nil {
			return nil, err
		}
		ctrl, err := registry.GetController(controller, ctrlParams)
		if err != nil {
			return nil, err
		}

		exp := experiment.New(experiment.Config{
			Scenario:   scenarioName,
			Vehicle:    vehicle,
			Controller: controller,
			Dt:         dt,
			Duration:   duration,
			Seed:       seed,
			Params:     ctrlParams,
		})
		if err := exp.Setup(sc, veh, ctrl, registry.DefaultMetrics(dt, maxSteerRate)); err != nil {
			return nil, err
		}
		return exp, nil
	}

	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %v on %s (%d combinations), minimizing %s...\n\n",
		names, scenarioName, search.Combinations(), sweepMetric)

	res, err := search.Search(context.Background(), build, sweepMetric)
	if err != nil {
		return err
	}

	if res.Best == nil {
		return fmt.Errorf("no sweep combination produced a result")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(sweepMetric))
	for _, pt := range res.Trace {
		for _, name := range names {
			fmt.Fprintf(w, "%.4f\t", pt.Gains[name])
		}
		if pt.Skipped {
			fmt.Fprintln(w, "skipped")
		} else {
			fmt.Fprintf(w, "%.6f\n", pt.Score)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6f\n", sweepMetric, res.Score)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, res.Best[name])
	}

	return nil
}

func parseSweepSpecs(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))

	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, nil, fmt.Errorf("bad sweep spec %q, want name=v1,v2,...", spec)
		}

		parts := strings.Split(list, ",")
		vals := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad sweep value %q in %q", p, spec)
			}
			vals = append(vals, v)
		}

		names = append(names, name)
		ranges = append(ranges, vals)
	}

	return names, ranges, nil
}
