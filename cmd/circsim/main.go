package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/circuit"
	"github.com/san-kum/circsim/internal/config"
	"github.com/san-kum/circsim/internal/export"
	"github.com/san-kum/circsim/internal/metrics"
	"github.com/san-kum/circsim/internal/netlist"
	"github.com/san-kum/circsim/internal/sim"
	"github.com/san-kum/circsim/internal/solver"
	"github.com/san-kum/circsim/internal/storage"
	"github.com/san-kum/circsim/internal/trace"
	"github.com/san-kum/circsim/internal/tui"
)

var (
	configFile    string
	dataDir       string
	verbose       bool
	frames        int
	frameRate     int
	traceIDs      []string
	plotID        string
	svgPath       string
	saveRun       bool
	exportJSON    bool
	stopOnBurnout bool
	counterIDs    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "circsim",
		Short: "lumped-element circuit simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory for archived runs")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().BoolVar(&counterIDs, "counter-ids", false, "deterministic counter ids instead of uuids")

	runCmd := &cobra.Command{
		Use:   "run [netlist]",
		Short: "simulate a circuit for a number of frames",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&frames, "frames", 0, "number of solve frames (default from config)")
	runCmd.Flags().StringSliceVar(&traceIDs, "trace", nil, "component ids to trace (default all)")
	runCmd.Flags().StringVar(&plotID, "plot", "", "plot a component's current after the run")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the plotted component's current as SVG")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "archive the run under the data directory")
	runCmd.Flags().BoolVar(&exportJSON, "json", false, "write recorded traces as JSON to stdout")
	runCmd.Flags().BoolVar(&stopOnBurnout, "stop-on-burnout", false, "end the run at the first burnout")

	solveCmd := &cobra.Command{
		Use:   "solve [netlist]",
		Short: "run a single solve and print component state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}

	viewCmd := &cobra.Command{
		Use:   "view [netlist]",
		Short: "watch the circuit solve live",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}
	viewCmd.Flags().IntVar(&frameRate, "fps", 0, "frames per second (default from config)")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "write an example circuit.yaml and circsim.yaml",
		RunE:  runInit,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list archived runs",
		RunE:  listRuns,
	}

	rootCmd.AddCommand(runCmd, solveCmd, viewCmd, initCmd, runsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if frames > 0 {
		cfg.Frames = frames
	}
	if frameRate > 0 {
		cfg.FrameRate = frameRate
	}
	if len(traceIDs) > 0 {
		cfg.Trace = traceIDs
	}
	if stopOnBurnout {
		cfg.StopOnBurnout = true
	}
	return cfg, nil
}

func idSource() circuit.IDSource {
	if counterIDs {
		return &circuit.CounterSource{}
	}
	return circuit.UUIDSource{}
}

func loadGraph(cfg *config.Config, args []string) (*circuit.Graph, *netlist.File, string, error) {
	path := cfg.Netlist
	if len(args) > 0 {
		path = args[0]
	}
	file, err := netlist.Load(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("loading netlist: %w", err)
	}
	g, err := netlist.Build(file, idSource())
	if err != nil {
		return nil, nil, "", fmt.Errorf("building circuit: %w", err)
	}
	return g, file, path, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, file, path, err := loadGraph(cfg, args)
	if err != nil {
		return err
	}
	slog.Debug("circuit loaded", "netlist", path,
		"components", len(g.Components()), "wires", len(g.Wires()))

	rec := trace.NewRecorder(cfg.Trace...)
	runner := sim.New(slog.Default())
	runner.AddObserver(rec)
	runner.AddMetric(metrics.NewConservation())
	runner.AddMetric(metrics.NewDissipation())
	runner.AddMetric(metrics.NewBurnouts())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx, g, sim.Config{
		Frames:        cfg.Frames,
		StopOnBurnout: cfg.StopOnBurnout,
	})
	if err != nil {
		slog.Warn("run interrupted", "error", err, "frames", result.FramesRun)
	}

	printState(g)
	printMetrics(result)

	if plotID != "" {
		plot, err := rec.Plot(plotID, trace.FieldCurrent, 10)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(plot)
	}

	if svgPath != "" {
		if plotID == "" {
			return fmt.Errorf("--svg requires --plot to choose a component")
		}
		s, ok := rec.Series(plotID)
		if !ok {
			return fmt.Errorf("no trace recorded for %q", plotID)
		}
		if err := os.WriteFile(svgPath, []byte(export.SeriesToSVG(s.Current, 640, 240, "#00ff00")), 0644); err != nil {
			return err
		}
		slog.Info("svg written", "path", svgPath, "component", plotID)
	}

	if exportJSON {
		if err := rec.WriteJSON(os.Stdout); err != nil {
			return err
		}
	}

	if saveRun {
		st := storage.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(file.Name, netlist.FromGraph(g, file.Name), result, rec)
		if err != nil {
			return err
		}
		slog.Info("run archived", "id", runID, "dir", cfg.DataDir)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, _, _, err := loadGraph(cfg, args)
	if err != nil {
		return err
	}
	solver.Solve(g)
	printState(g)
	fmt.Printf("\ncurrent residual: %.3e A\n", metrics.Residual(g))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, file, _, err := loadGraph(cfg, args)
	if err != nil {
		return err
	}
	return tui.Run(g, file.Name, cfg.FrameRate)
}

func runInit(cmd *cobra.Command, args []string) error {
	if err := netlist.Save("circuit.yaml", netlist.Example()); err != nil {
		return err
	}
	if err := config.Save("circsim.yaml", config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("wrote circuit.yaml and circsim.yaml")
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNETLIST\tFRAMES\tBURNOUTS\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Netlist, r.Frames, len(r.Burnouts), r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func printState(g *circuit.Graph) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCURRENT (A)\tDROP (V)\tPOWER (W)\tSTATE\tNODES")
	for _, c := range g.Components() {
		state := "ok"
		if c.State.Burnt {
			state = "BURNT"
		}
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%.6f\t%s\t%v\n",
			c.ID, c.Kind, c.State.Current, c.State.VoltageDrop, c.State.Power, state, c.State.Nodes)
	}
	w.Flush()
}

func printMetrics(result *sim.Result) {
	fmt.Printf("\nframes: %d\n", result.FramesRun)
	for name, value := range result.Metrics {
		fmt.Printf("%s: %.6g\n", name, value)
	}
	if len(result.Burnouts) > 0 {
		fmt.Printf("burnt: %v\n", result.Burnouts)
	}
}
