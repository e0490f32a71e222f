package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/keepaway/sim"
)

var (
	// CLI flags for the run command
	inputPath    string // Notes file describing the units
	scenarioPath string // Scenario YAML (alternative to --input)
	part         int    // Puzzle part preset (1: decay/20 rounds, 2: ring/10000 rounds)
	relief       string // Relief policy override
	rounds       int    // Round count override (-1 = use preset or scenario)
	runName      string // Label for results and metrics
	logLevel     string // Log verbosity level
	traceLevel   string // Trace verbosity: none, rounds, dispatches
	resultsDB    string // SQLite file recording finished runs
	metricsOut   string // Prometheus textfile output path

	// CLI flags for the solve command
	solveInputPath string // Notes file for solve

	// CLI flags for the runs and fmt commands
	runsDB       string // SQLite file to read runs from
	runID        string // Recorded run to show in full
	fmtInputPath string // Notes file to normalize
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "keepaway",
	Short: "Round-based item redistribution simulator",
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults(cmd *cobra.Command) {
	defaults, err := LoadEnvDefaults()
	if err != nil {
		logrus.Fatalf("Invalid environment: %v", err)
	}
	if f := cmd.Flag("log"); f != nil && !f.Changed && defaults.LogLevel != "" {
		logLevel = defaults.LogLevel
	}
	if f := cmd.Flags().Lookup("results-db"); f != nil && !f.Changed && defaults.ResultsDB != "" {
		resultsDB = defaults.ResultsDB
	}
	if f := cmd.Flags().Lookup("metrics-out"); f != nil && !f.Changed && defaults.MetricsOut != "" {
		metricsOut = defaults.MetricsOut
	}
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation for one configuration",
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvDefaults(cmd)
		setupLogging()

		opts := RunOptions{
			Name:         runName,
			InputPath:    inputPath,
			ScenarioPath: scenarioPath,
			Part:         part,
			Relief:       relief,
			Rounds:       rounds,
			TraceLevel:   traceLevel,
			ResultsDB:    resultsDB,
			MetricsOut:   metricsOut,
		}
		if _, err := ExecuteRun(context.Background(), opts, os.Stdout); err != nil {
			logrus.Fatalf("Run failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// solveCmd reproduces both puzzle parts for one notes file
var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Print the monkey business level for both puzzle parts",
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvDefaults(cmd)
		setupLogging()

		descs, err := readNotes(solveInputPath)
		if err != nil {
			logrus.Fatalf("Could not find input file: %v", err)
		}
		for _, p := range []int{1, 2} {
			preset := partPresets[p]
			score, err := solvePart(descs, preset.Relief, preset.Rounds)
			if err != nil {
				logrus.Fatalf("Part %d failed: %v", p, err)
			}
			fmt.Printf("Part %d: The level of monkey business after %d rounds is %d\n", p, preset.Rounds, score)
		}
	},
}

func solvePart(descs []sim.UnitDescriptor, relief sim.ReliefPolicy, rounds int) (uint64, error) {
	s, err := sim.NewSimulator(descs, sim.SimConfig{Relief: relief})
	if err != nil {
		return 0, err
	}
	if err := s.Run(rounds); err != nil {
		return 0, err
	}
	return s.MonkeyBusiness()
}

// runsCmd lists or shows runs recorded with --results-db
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs, or show one with --id",
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvDefaults(cmd)
		setupLogging()

		if cmd.Flags().Changed("results-db") {
			resultsDB = runsDB
		}
		if err := PrintRuns(context.Background(), resultsDB, runID, os.Stdout); err != nil {
			logrus.Fatalf("Could not read runs: %v", err)
		}
	},
}

// fmtCmd validates a notes file and prints it in canonical form
var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Validate a notes file and print it in canonical form",
	Run: func(cmd *cobra.Command, args []string) {
		applyEnvDefaults(cmd)
		setupLogging()

		if err := FormatNotes(fmtInputPath, os.Stdout); err != nil {
			logrus.Fatalf("Invalid notes: %v", err)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&inputPath, "input", "", "Notes file describing the units")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (alternative to --input)")
	runCmd.Flags().IntVar(&part, "part", 1, "Puzzle part preset: 1 (decay, 20 rounds) or 2 (ring, 10000 rounds)")
	runCmd.Flags().StringVar(&relief, "relief", "", "Relief policy override (decay, ring)")
	runCmd.Flags().IntVar(&rounds, "rounds", -1, "Round count override (-1 uses the preset or scenario)")
	runCmd.Flags().StringVar(&runName, "name", "", "Label for recorded results and metrics")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, rounds, dispatches)")
	runCmd.Flags().StringVar(&resultsDB, "results-db", "", "SQLite file to record the finished run in")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write run metrics to this Prometheus textfile")

	solveCmd.Flags().StringVar(&solveInputPath, "input", "input", "Notes file describing the units")

	runsCmd.Flags().StringVar(&runsDB, "results-db", "", "SQLite file holding recorded runs")
	runsCmd.Flags().StringVar(&runID, "id", "", "Show this run in full")

	fmtCmd.Flags().StringVar(&fmtInputPath, "input", "input", "Notes file to normalize")

	// Shared by every subcommand
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(fmtCmd)
}
