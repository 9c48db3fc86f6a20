package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"crowdsim/internal/engine"
	"crowdsim/internal/metrics"
	"crowdsim/internal/scenario"
	"crowdsim/internal/storage"
	"crowdsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	steps      int
	seed       int64
	workers    int
	frameRate  int
	numRuns    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crowdsim",
		Short: "pedestrian crowd simulation (Hirai-Tarui force model)",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".crowdsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-step series of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "dump a run's trajectory CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scenario.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a scenario with live terminal view",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run a scenario N times with consecutive seeds",
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, presetsCmd, liveCmd, ensembleCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "corridor", "built-in scenario")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep override")
	cmd.Flags().IntVar(&steps, "steps", 0, "step count override")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed override")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers override")
}

func loadScenario(cmd *cobra.Command) (*scenario.Scenario, error) {
	var sc *scenario.Scenario
	if configFile != "" {
		loaded, err := scenario.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		sc = loaded
	} else {
		sc = scenario.GetPreset(preset)
		if sc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, scenario.ListPresets())
		}
	}

	if cmd.Flags().Changed("dt") {
		sc.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		sc.Steps = steps
	}
	if cmd.Flags().Changed("seed") {
		sc.Seed = seed
	}
	if cmd.Flags().Changed("workers") {
		sc.Workers = workers
	}
	return sc, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := sc.Build()
	if err != nil {
		return err
	}
	sim.AddMetric(metrics.NewMeanSpeed())
	sim.AddMetric(metrics.NewKineticEnergy())
	sim.AddMetric(metrics.NewSpread())
	if len(sc.Exits) > 0 {
		sim.AddMetric(metrics.NewEvacuated(sc.BuildExits(), sc.Params.ExitRadius))
	}

	fmt.Printf("running %s (%d agents, %d steps)...\n", sc.Name, len(sc.Agents), sc.Steps)
	start := time.Now()

	result, err := sim.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(sc.Name, sc.Dt, sc.Seed, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, stepErr := range result.Errors {
		fmt.Printf("warning: %v\n", stepErr)
	}
	if len(result.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range result.Metrics {
			fmt.Printf("  %s: %.6f\n", name, val)
		}
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tDT\tAGENTS\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Agents,
			run.Seed,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(snaps))

	meanSpeed := make([]float64, len(snaps))
	spread := make([]float64, len(snaps))
	for i, snap := range snaps {
		var cx, cy float64
		for _, a := range snap {
			meanSpeed[i] += a.Vel.Norm()
			cx += a.Pos.X
			cy += a.Pos.Y
		}
		n := float64(len(snap))
		meanSpeed[i] /= n
		cx /= n
		cy /= n
		for _, a := range snap {
			dx, dy := a.Pos.X-cx, a.Pos.Y-cy
			spread[i] += dx*dx + dy*dy
		}
		spread[i] /= n
	}

	fmt.Println(asciigraph.Plot(meanSpeed,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean speed"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(spread,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("crowd spread (mean squared distance to centroid)"),
	))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snaps, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, snaps, times)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range snaps[0] {
		header = append(header,
			fmt.Sprintf("a%d_x", i), fmt.Sprintf("a%d_y", i),
			fmt.Sprintf("a%d_vx", i), fmt.Sprintf("a%d_vy", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, snap := range snaps {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, a := range snap {
			row = append(row,
				strconv.FormatFloat(a.Pos.X, 'f', 6, 64),
				strconv.FormatFloat(a.Pos.Y, 'f', 6, 64),
				strconv.FormatFloat(a.Vel.X, 'f', 6, 64),
				strconv.FormatFloat(a.Vel.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sim, err := sc.Build()
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(sim, sc, frameRate))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	model, agents, err := sc.BuildModel()
	if err != nil {
		return err
	}

	cfg := engine.Config{
		Dt:            sc.Dt,
		Steps:         sc.Steps,
		Workers:       sc.Workers,
		ValidateState: true,
	}

	fmt.Printf("running %s x%d (seeds %d..%d)...\n", sc.Name, numRuns, sc.Seed, sc.Seed+int64(numRuns)-1)
	start := time.Now()

	ens := engine.NewEnsemble(model, agents, numRuns, sc.Seed)
	results, err := ens.Run(context.Background(), cfg)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tSTEPS\tFINAL MEAN SPEED")
	for i, r := range results {
		final := r.Snapshots[len(r.Snapshots)-1]
		speed := 0.0
		for _, a := range final {
			speed += a.Vel.Norm()
		}
		if len(final) > 0 {
			speed /= float64(len(final))
		}
		fmt.Fprintf(w, "%d\t%d\t%.4f\n", sc.Seed+int64(i), r.StepsTaken, speed)
	}
	return w.Flush()
}
