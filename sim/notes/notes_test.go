package notes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/keepaway/sim"
	"github.com/inference-sim/keepaway/sim/internal/testutil"
)

func TestParse_SampleNotes(t *testing.T) {
	// GIVEN the worked example notes (including a whitespace-only separator line)
	text := testutil.LoadNotes(t, "sample_notes.txt")

	// WHEN parsed
	descs, err := ParseString(text)
	require.NoError(t, err)

	// THEN four units are described in order
	require.Len(t, descs, 4)
	assert.Equal(t, []sim.WorryLevel{79, 98}, descs[0].Items)
	assert.Equal(t, sim.Transform{Op: sim.OpMultiply, Operand: sim.ConstOperand(19)}, descs[0].Transform)
	assert.Equal(t, sim.RoutingRule{Divisor: 23, IfTrue: 2, IfFalse: 3}, descs[0].Routing)

	assert.Equal(t, []sim.WorryLevel{54, 65, 75, 74}, descs[1].Items)
	assert.Equal(t, sim.Transform{Op: sim.OpAdd, Operand: sim.ConstOperand(6)}, descs[1].Transform)

	assert.Equal(t, sim.Transform{Op: sim.OpMultiply, Operand: sim.OldOperand()}, descs[2].Transform)
	assert.Equal(t, sim.RoutingRule{Divisor: 17, IfTrue: 0, IfFalse: 1}, descs[3].Routing)
}

func TestFormat_RoundTrip(t *testing.T) {
	// GIVEN parsed sample notes
	descs, err := ParseString(testutil.LoadNotes(t, "sample_notes.txt"))
	require.NoError(t, err)

	// WHEN formatted and parsed again
	again, err := ParseString(Format(descs))

	// THEN the descriptors are identical
	require.NoError(t, err)
	assert.Equal(t, descs, again)
}

func TestParse_EmptyStartingItems(t *testing.T) {
	text := `Monkey 0:
  Starting items:
  Operation: new = old + old
  Test: divisible by 2
    If true: throw to monkey 1
    If false: throw to monkey 1

Monkey 1:
  Starting items: 3
  Operation: new = old + 1
  Test: divisible by 5
    If true: throw to monkey 0
    If false: throw to monkey 0
`
	descs, err := ParseString(text)
	require.NoError(t, err)
	require.Len(t, descs, 2)
	assert.Empty(t, descs[0].Items)
	assert.Equal(t, sim.OldOperand(), descs[0].Transform.Operand)
}

func TestParse_Errors(t *testing.T) {
	valid := strings.Split(strings.TrimSpace(testutil.LoadNotes(t, "sample_notes.txt")), "\n")[:6]
	replace := func(line int, text string) string {
		lines := append([]string(nil), valid...)
		lines[line] = text
		return strings.Join(lines, "\n")
	}

	tests := []struct {
		name string
		text string
		line int
	}{
		{"wrong unit number", replace(0, "Monkey 1:"), 1},
		{"bad header", replace(0, "Ape 0:"), 1},
		{"bad item", replace(1, "  Starting items: 79, x"), 2},
		{"unknown operator", replace(2, "  Operation: new = old / 19"), 3},
		{"bad operand", replace(2, "  Operation: new = old * y"), 3},
		{"zero divisor", replace(3, "  Test: divisible by 0"), 4},
		{"missing true branch", replace(4, "    If false: throw to monkey 2"), 5},
		{"bad destination", replace(5, "    If false: throw to monkey three"), 6},
		{"truncated block", strings.Join(valid[:4], "\n"), 4},
		{"missing separator", strings.Join(append(append([]string(nil), valid...), "Monkey 1:"), "\n"), 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.text)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, tc.line, pe.Line)
		})
	}
}

func TestParse_NoUnits(t *testing.T) {
	_, err := ParseString("\n\n")
	assert.Error(t, err)
}
