// Package scenario loads keepaway run scenarios from YAML. A scenario names the
// relief policy, the round count, and the units, either inline or by pointing
// at a notes file.
package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/keepaway/sim"
	"github.com/inference-sim/keepaway/sim/notes"
)

//go:embed scenario.schema.json
var schemaSource string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("scenario.schema.json", schemaSource)
})

// Spec is the top-level scenario configuration.
// Loaded from YAML via Load(path).
type Spec struct {
	Version string     `yaml:"version,omitempty"`
	Name    string     `yaml:"name,omitempty"`
	Relief  string     `yaml:"relief"`
	Rounds  int        `yaml:"rounds"`
	Notes   string     `yaml:"notes,omitempty"` // notes file, relative to the scenario file
	Units   []UnitSpec `yaml:"units,omitempty"`

	dir string // directory the scenario was loaded from
}

// UnitSpec defines one unit inline.
type UnitSpec struct {
	Items     []uint64      `yaml:"items"`
	Operation OperationSpec `yaml:"operation"`
	Test      TestSpec      `yaml:"test"`
}

// OperationSpec is the transform applied on inspection.
type OperationSpec struct {
	Op      string      `yaml:"op"`      // "add" or "multiply"
	Operand OperandSpec `yaml:"operand"` // "old" or a non-negative integer
}

// OperandSpec accepts either a YAML string or a bare integer.
type OperandSpec string

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *OperandSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: operand must be a scalar", node.Line)
	}
	*o = OperandSpec(node.Value)
	return nil
}

// TestSpec is the divisibility routing rule.
type TestSpec struct {
	DivisibleBy uint64 `yaml:"divisible_by"`
	IfTrue      int    `yaml:"if_true"`
	IfFalse     int    `yaml:"if_false"`
}

// Load reads, schema-checks, and strictly decodes a scenario file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	spec, err := Parse(data)
	if err != nil {
		return nil, err
	}
	spec.dir = filepath.Dir(path)
	return spec, nil
}

// Parse schema-checks and strictly decodes scenario YAML held in memory.
// A Notes path in the result is resolved against the working directory.
func Parse(data []byte) (*Spec, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if spec.Version == "" {
		logrus.Warnf("scenario %q has no version; assuming version 1", spec.Name)
		spec.Version = "1"
	}
	return &spec, nil
}

func validateSchema(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compiling scenario schema: %w", err)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	// round-trip through JSON so the validator sees JSON-native types
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("parsing scenario: %w", err)
	}
	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}
	return nil
}

// Validate checks the settings the schema cannot express.
func (s *Spec) Validate() error {
	if _, err := s.ReliefPolicy(); err != nil {
		return err
	}
	if s.Rounds < 0 {
		return fmt.Errorf("rounds must be non-negative, got %d", s.Rounds)
	}
	if (s.Notes == "") == (len(s.Units) == 0) {
		return fmt.Errorf("exactly one of notes or units is required")
	}
	for i, u := range s.Units {
		if u.Test.DivisibleBy == 0 {
			return fmt.Errorf("units[%d]: divisible_by must be >= 1", i)
		}
		if _, err := u.Operation.transform(); err != nil {
			return fmt.Errorf("units[%d]: %w", i, err)
		}
	}
	return nil
}

// ReliefPolicy returns the scenario's relief policy.
func (s *Spec) ReliefPolicy() (sim.ReliefPolicy, error) {
	return sim.ParseReliefPolicy(s.Relief)
}

// Descriptors returns the scenario's units as engine descriptors, reading the
// notes file when the scenario references one.
func (s *Spec) Descriptors() ([]sim.UnitDescriptor, error) {
	if s.Notes != "" {
		path := s.Notes
		if !filepath.IsAbs(path) {
			path = filepath.Join(s.dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening notes: %w", err)
		}
		defer f.Close()
		descs, err := notes.Parse(f)
		if err != nil {
			return nil, fmt.Errorf("parsing notes %s: %w", path, err)
		}
		return descs, nil
	}

	descs := make([]sim.UnitDescriptor, len(s.Units))
	for i, u := range s.Units {
		t, err := u.Operation.transform()
		if err != nil {
			return nil, fmt.Errorf("units[%d]: %w", i, err)
		}
		items := make([]sim.WorryLevel, len(u.Items))
		for j, v := range u.Items {
			items[j] = sim.WorryLevel(v)
		}
		descs[i] = sim.UnitDescriptor{
			Items:     items,
			Transform: t,
			Routing: sim.RoutingRule{
				Divisor: sim.WorryLevel(u.Test.DivisibleBy),
				IfTrue:  u.Test.IfTrue,
				IfFalse: u.Test.IfFalse,
			},
		}
	}
	return descs, nil
}

func (o OperationSpec) transform() (sim.Transform, error) {
	var t sim.Transform
	switch o.Op {
	case "add":
		t.Op = sim.OpAdd
	case "multiply":
		t.Op = sim.OpMultiply
	default:
		return t, fmt.Errorf("unknown op %q", o.Op)
	}
	if o.Operand == "old" {
		t.Operand = sim.OldOperand()
		return t, nil
	}
	v, err := strconv.ParseUint(string(o.Operand), 10, 64)
	if err != nil {
		return t, fmt.Errorf("invalid operand %q", o.Operand)
	}
	t.Operand = sim.ConstOperand(sim.WorryLevel(v))
	return t, nil
}
