package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/odekit/internal/config"
	"github.com/san-kum/odekit/internal/problems"
	"github.com/san-kum/odekit/internal/solver"
	"github.com/san-kum/odekit/internal/storage"
	"github.com/san-kum/odekit/internal/tableau"
)

var (
	dataDir    string
	configFile string
	method     string
	dt         float64
	t1         float64
	tolerance  float64
	plotAxis   int
	saveRun    bool
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odekit",
		Short: "runge-kutta ODE integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odekit", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [problem]",
		Short: "integrate a problem",
		Args:  cobra.ExactArgs(1),
		RunE:  runProblem,
	}
	runCmd.Flags().StringVar(&method, "method", config.DefaultMethod, "runge-kutta method")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "initial timestep (0 uses the method default)")
	runCmd.Flags().Float64Var(&t1, "time", config.DefaultT1, "end time")
	runCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "local error tolerance")
	runCmd.Flags().IntVar(&plotAxis, "plot", 0, "state component to plot")
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save trajectory to the data directory")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a preset configuration")

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list built-in methods",
		RunE:  listMethods,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotAxis, "plot", 0, "state component to plot")

	rootCmd.AddCommand(runCmd, methodsCmd, listCmd, plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveMethod probes the implicit family first, then the explicit one,
// using the sentinel return to fall through.
func resolveMethod(name string) (tableau.Method, error) {
	if m := tableau.ImplicitFromName(name); m != tableau.MethodUnknown {
		return m, nil
	}
	if m := tableau.ExplicitFromName(name); m != tableau.MethodUnknown {
		return m, nil
	}

	names := make([]string, 0, len(tableau.Methods()))
	for _, m := range tableau.Methods() {
		names = append(names, m.String())
	}
	return tableau.MethodUnknown, fmt.Errorf("unknown method %q, pick one of:\n  %s",
		name, strings.Join(names, "\n  "))
}

func runProblem(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if preset != "" {
		p := config.GetPreset(args[0], preset)
		if p == nil {
			return fmt.Errorf("no preset %q for %s (have: %s)",
				preset, args[0], strings.Join(config.ListPresets(args[0]), ", "))
		}
		cfg = p.Normalized()
	}

	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("dt") {
		cfg.DT = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.T1 = t1
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	cfg.Problem = args[0]

	sys, err := problems.New(cfg.Problem)
	if err != nil {
		return err
	}
	m, err := resolveMethod(cfg.Method)
	if err != nil {
		return err
	}

	sol, err := solver.New(sys, m, cfg.SolverOptions())
	if err != nil {
		return err
	}
	res, err := sol.Run(context.Background(), cfg.T0, cfg.T1, sys.InitialState())
	if err != nil {
		return err
	}

	fmt.Printf("%s with %s: %d steps (%d rejected), %d evaluations, last dt %.3g\n",
		cfg.Problem, m, res.Steps, res.Rejected, res.Evaluations, res.LastDT)

	if plotAxis >= 0 && plotAxis < sys.Dim() {
		fmt.Println(asciigraph.Plot(res.Component(plotAxis),
			asciigraph.Height(15), asciigraph.Width(78),
			asciigraph.Caption(fmt.Sprintf("y%d(t)", plotAxis))))
	}

	if saveRun {
		store := storage.New(dataDir)
		if err := store.Init(); err != nil {
			return err
		}
		runID, err := store.Save(cfg.Problem, m.String(), cfg.T0, cfg.T1, cfg.Tolerance, res)
		if err != nil {
			return err
		}
		fmt.Printf("saved as %s\n", runID)
	}
	return nil
}

func listMethods(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTAGES\tORDER\tEMBEDDED\tFSAL\tFAMILY")

	for _, m := range tableau.Methods() {
		tab := tableau.For(m)
		family := "explicit"
		if m.IsImplicit() {
			family = "implicit"
		}
		embedded := "-"
		if tab.IsEmbedded() {
			embedded = fmt.Sprintf("%d", tab.Order2)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%v\t%s\n",
			int(m), tab.Name, tab.Stages(), tab.Order, embedded, tab.FSAL, family)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROBLEM\tMETHOD\tSPAN\tSTEPS\tREJECTED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t[%g, %g]\t%d\t%d\n",
			run.ID, run.Problem, run.Method, run.T0, run.T1, run.Steps, run.Rejected)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	_, states, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("run %s has no recorded states", args[0])
	}
	if plotAxis < 0 || plotAxis >= len(states[0]) {
		return fmt.Errorf("component %d out of range (state has %d)", plotAxis, len(states[0]))
	}

	series := make([]float64, len(states))
	for i, s := range states {
		series[i] = s[plotAxis]
	}
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(15), asciigraph.Width(78),
		asciigraph.Caption(fmt.Sprintf("%s y%d(t)", args[0], plotAxis))))
	return nil
}
