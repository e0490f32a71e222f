// Package testutil provides shared test infrastructure for the keepaway simulator.
// It consolidates golden dataset types and fixture loaders used across
// sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single expected run from the golden dataset.
type GoldenTestCase struct {
	Name           string   `json:"name"`
	Notes          string   `json:"notes"`  // notes file under testdata/
	Relief         string   `json:"relief"` // "decay" or "ring"
	Rounds         int      `json:"rounds"`
	Inspections    []uint64 `json:"inspections"`
	MonkeyBusiness uint64   `json:"monkey_business"`
}

// testdataDir resolves the repo root testdata/ directory relative to this
// source file: sim/internal/testutil/ → testdata/.
func testdataDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata")
}

// TestdataPath returns the absolute path of a file under testdata/.
func TestdataPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(testdataDir(t), name)
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	data, err := os.ReadFile(TestdataPath(t, "goldendataset.json"))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// LoadNotes returns the contents of a notes file under testdata/.
func LoadNotes(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(TestdataPath(t, name))
	if err != nil {
		t.Fatalf("Failed to read notes %s: %v", name, err)
	}
	return string(data)
}

// AssertCounters compares two inspection counter slices element by element.
func AssertCounters(t *testing.T, name string, want, got []uint64) {
	t.Helper()
	if len(want) != len(got) {
		t.Errorf("%s: got %d counters, want %d", name, len(got), len(want))
		return
	}
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("%s: unit %d inspections got %d, want %d", name, i, got[i], want[i])
		}
	}
}
