package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inference-sim/keepaway/sim/notes"
	"github.com/inference-sim/keepaway/sim/results"
)

// PrintRuns writes the runs recorded in the results database at path. With a
// non-empty id only that run is printed, including its per-unit counters.
func PrintRuns(ctx context.Context, path, id string, w io.Writer) error {
	if path == "" {
		return errors.New("a results database is required (--results-db or KEEPAWAY_RESULTS_DB)")
	}
	store, err := results.Open(path)
	if err != nil {
		return fmt.Errorf("opening results db: %w", err)
	}
	defer store.Close()

	if id != "" {
		run, err := store.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Run ID               : %s\n", run.ID)
		fmt.Fprintf(w, "Run                  : %s\n", run.Name)
		fmt.Fprintf(w, "Recorded             : %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Relief               : %s\n", run.Relief)
		fmt.Fprintf(w, "Rounds               : %d\n", run.Rounds)
		for i, n := range run.Inspections {
			fmt.Fprintf(w, "Monkey %d inspected items %d times.\n", i, n)
		}
		fmt.Fprintf(w, "Monkey business      : %d\n", run.MonkeyBusiness)
		return nil
	}

	runs, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}
	fmt.Fprintf(w, "%-20s  %-20s  %-15s  %6s  %s\n", "ID", "NAME", "RELIEF", "ROUNDS", "MONKEY BUSINESS")
	for _, r := range runs {
		fmt.Fprintf(w, "%-20s  %-20s  %-15s  %6d  %d\n", r.ID, r.Name, r.Relief, r.Rounds, r.MonkeyBusiness)
	}
	return nil
}

// FormatNotes parses and validates the notes file at path and writes it back
// in canonical form.
func FormatNotes(path string, w io.Writer) error {
	descs, err := readNotes(path)
	if err != nil {
		return err
	}
	for i, d := range descs {
		if err := d.Validate(i, len(descs)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	_, err = io.WriteString(w, strings.TrimSuffix(notes.Format(descs), "\n")+"\n")
	return err
}
