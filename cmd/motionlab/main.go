package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/loop"
	"github.com/san-kum/motionlab/internal/metrics"
	"github.com/san-kum/motionlab/internal/planner"
	"github.com/san-kum/motionlab/internal/store"
	"github.com/san-kum/motionlab/internal/viz"
)

var (
	configFile string
	dataDir    string
	jointFlag  int
	saveFlag   bool
	heightFlag int
	cyclesFlag int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "motionlab",
		Short: "Trajectory interpolation for robot motion control",
		Long:  "motionlab generates smooth per-cycle motion setpoints between sparse planner goals:\nspline polynomials for joints, slerp for orientation, cosine ramps for transitions.",
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for stored runs (overrides config)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate the configured segments and report metrics",
		RunE:  runRun,
	}
	runCmd.Flags().IntVarP(&jointFlag, "joint", "j", 0, "joint to plot")
	runCmd.Flags().IntVar(&heightFlag, "plot-height", 10, "plot height in rows")
	runCmd.Flags().IntVar(&cyclesFlag, "max-cycles", 0, "cycle bound (0 = unbounded)")
	runCmd.Flags().BoolVar(&saveFlag, "save", false, "persist the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Replay the configured segments in a live terminal view",
		RunE:  runLive,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored runs",
		RunE:  runRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write a stored run's samples as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	configCmd := &cobra.Command{
		Use:   "config init [path]",
		Short: "Write a default config file",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runConfigInit,
	}

	rootCmd.AddCommand(runCmd, liveCmd, runsCmd, exportCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
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
	return cfg, cfg.Validate()
}

func simulate(cfg *config.Config, maxCycles int) (*loop.Result, error) {
	segments, err := cfg.BuildSegments()
	if err != nil {
		return nil, err
	}

	l := loop.New(planner.NewSequence(segments))
	l.AddMetric(metrics.NewPathLength())
	l.AddMetric(metrics.NewPeakVelocity())
	l.AddMetric(metrics.NewSmoothness())

	return l.Run(context.Background(), cfg.StartPoint(), loop.Config{
		SampleTime: cfg.Robot.SampleTime,
		MaxCycles:  maxCycles,
	})
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, err := simulate(cfg, cyclesFlag)
	if err != nil {
		return err
	}

	fmt.Println(viz.Profile(result, jointFlag, heightFlag))
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "cycles\t%d\n", result.Cycles)
	fmt.Fprintf(w, "sessions\t%d\n", result.Sessions)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6f\n", name, value)
	}
	w.Flush()

	if saveFlag {
		st := store.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Robot.Name, cfg.Robot.SampleTime, result)
		if err != nil {
			return err
		}
		fmt.Println("saved run", runID)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	result, err := simulate(cfg, 0)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewLive(result, cfg.Robot.SampleTime))
	_, err = p.Run()
	return err
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runs, err := store.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tROBOT\tCYCLES\tSESSIONS\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Robot, r.Cycles, r.Sessions, r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	_, rows, err := store.New(cfg.DataDir).Load(args[0])
	if err != nil {
		return err
	}
	for _, row := range rows {
		for i, col := range row {
			if i > 0 {
				fmt.Print(",")
			}
			fmt.Print(col)
		}
		fmt.Println()
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := "motionlab.yaml"
	if len(args) == 2 {
		path = args[1]
	}
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println("wrote", path)
	return nil
}
