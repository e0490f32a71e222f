package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/keepaway/sim"
	"github.com/inference-sim/keepaway/sim/metrics"
	"github.com/inference-sim/keepaway/sim/notes"
	"github.com/inference-sim/keepaway/sim/results"
	"github.com/inference-sim/keepaway/sim/scenario"
	"github.com/inference-sim/keepaway/sim/trace"
)

// Part presets from the puzzle: part 1 is a short lossy run, part 2 a long exact one.
var partPresets = map[int]struct {
	Relief sim.ReliefPolicy
	Rounds int
}{
	1: {sim.BoundedDecay, 20},
	2: {sim.RingPreserving, 10000},
}

// RunOptions collects everything a single simulation run needs from the CLI.
type RunOptions struct {
	Name         string
	InputPath    string // notes file
	ScenarioPath string // scenario YAML; exclusive with InputPath
	Part         int    // 1 or 2; supplies relief and rounds unless overridden
	Relief       string // overrides Part/scenario when non-empty
	Rounds       int    // overrides Part/scenario when >= 0
	TraceLevel   string
	ResultsDB    string // record the run when non-empty
	MetricsOut   string // write a Prometheus textfile when non-empty
}

// RunReport is the outcome of one run.
type RunReport struct {
	Name           string
	RunID          string // set when the run was recorded
	Relief         sim.ReliefPolicy
	Rounds         int
	Inspections    []uint64
	MonkeyBusiness uint64
	Trace          *trace.TraceSummary // nil unless tracing was enabled
}

// ExecuteRun loads the units, runs the simulation, prints the results to w,
// and hands the outcome to the configured sinks.
func ExecuteRun(ctx context.Context, opts RunOptions, w io.Writer) (*RunReport, error) {
	descs, relief, rounds, name, err := resolveRun(opts)
	if err != nil {
		return nil, err
	}
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, fmt.Errorf("unknown trace level %q; valid: none, rounds, dispatches", opts.TraceLevel)
	}

	var st *trace.SimulationTrace
	if level := trace.TraceLevel(opts.TraceLevel); level != "" && level != trace.TraceLevelNone {
		st = trace.NewSimulationTrace(trace.TraceConfig{Level: level})
	}

	s, err := sim.NewSimulator(descs, sim.SimConfig{Relief: relief, Trace: st})
	if err != nil {
		return nil, err
	}
	progressEvery := max(rounds/10, 1)
	err = s.RunUntil(rounds, func(round int, s *sim.Simulator) {
		if round%progressEvery == 0 {
			logrus.Infof("[round %05d/%05d] %d items in flight", round, rounds, s.ItemCount())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("simulation failed: %w", err)
	}
	score, err := s.MonkeyBusiness()
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		Name:           name,
		Relief:         relief,
		Rounds:         rounds,
		Inspections:    s.Inspections(),
		MonkeyBusiness: score,
	}
	if st != nil {
		report.Trace = trace.Summarize(st)
	}

	if opts.ResultsDB != "" {
		if report.RunID, err = recordRun(ctx, opts.ResultsDB, report); err != nil {
			return nil, err
		}
		logrus.Infof("Recorded run %s in %s", report.RunID, opts.ResultsDB)
	}
	if opts.MetricsOut != "" {
		exporter := metrics.NewExporter()
		exporter.Observe(name, rounds, report.Inspections, score)
		if err := exporter.WriteTextfile(opts.MetricsOut); err != nil {
			return nil, fmt.Errorf("writing metrics: %w", err)
		}
	}

	PrintReport(w, report)
	return report, nil
}

func resolveRun(opts RunOptions) (descs []sim.UnitDescriptor, relief sim.ReliefPolicy, rounds int, name string, err error) {
	if (opts.InputPath == "") == (opts.ScenarioPath == "") {
		return nil, 0, 0, "", fmt.Errorf("exactly one of --input or --scenario is required")
	}

	rounds = -1
	reliefName := ""
	if opts.ScenarioPath != "" {
		spec, err := scenario.Load(opts.ScenarioPath)
		if err != nil {
			return nil, 0, 0, "", err
		}
		if err := spec.Validate(); err != nil {
			return nil, 0, 0, "", fmt.Errorf("invalid scenario %s: %w", opts.ScenarioPath, err)
		}
		if descs, err = spec.Descriptors(); err != nil {
			return nil, 0, 0, "", err
		}
		reliefName, rounds, name = spec.Relief, spec.Rounds, spec.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(opts.ScenarioPath), filepath.Ext(opts.ScenarioPath))
		}
	} else {
		if descs, err = readNotes(opts.InputPath); err != nil {
			return nil, 0, 0, "", err
		}
		preset, ok := partPresets[opts.Part]
		if !ok {
			return nil, 0, 0, "", fmt.Errorf("unknown part %d; valid: 1, 2", opts.Part)
		}
		reliefName, rounds = preset.Relief.String(), preset.Rounds
		name = fmt.Sprintf("%s-part%d", strings.TrimSuffix(filepath.Base(opts.InputPath), filepath.Ext(opts.InputPath)), opts.Part)
	}

	if opts.Relief != "" {
		reliefName = opts.Relief
	}
	if opts.Rounds >= 0 {
		rounds = opts.Rounds
	}
	if opts.Name != "" {
		name = opts.Name
	}
	if relief, err = sim.ParseReliefPolicy(reliefName); err != nil {
		return nil, 0, 0, "", err
	}
	return descs, relief, rounds, name, nil
}

func readNotes(path string) ([]sim.UnitDescriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open input: %w", err)
	}
	defer f.Close()
	descs, err := notes.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return descs, nil
}

func recordRun(ctx context.Context, path string, report *RunReport) (string, error) {
	store, err := results.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening results db: %w", err)
	}
	defer store.Close()
	return store.Record(ctx, results.Run{
		Name:           report.Name,
		Relief:         report.Relief.String(),
		Rounds:         report.Rounds,
		Inspections:    report.Inspections,
		MonkeyBusiness: report.MonkeyBusiness,
	})
}

// PrintReport writes a human-readable summary of a run.
func PrintReport(w io.Writer, r *RunReport) {
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Run                  : %s\n", r.Name)
	if r.RunID != "" {
		fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	}
	fmt.Fprintf(w, "Relief               : %s\n", r.Relief)
	fmt.Fprintf(w, "Rounds               : %d\n", r.Rounds)
	for i, n := range r.Inspections {
		fmt.Fprintf(w, "Monkey %d inspected items %d times.\n", i, n)
	}
	if r.Trace != nil {
		fmt.Fprintf(w, "Hand-offs traced     : %d (%d self-routed)\n", r.Trace.TotalDispatches, r.Trace.SelfRoutes)
		fmt.Fprintf(w, "Deepest queue        : %d\n", r.Trace.MaxQueueDepth)
	}
	fmt.Fprintf(w, "Monkey business      : %d\n", r.MonkeyBusiness)
}
