// Package notes parses the puzzle's textual notes into unit descriptors.
//
// A note block describes one unit:
//
//	Monkey 0:
//	  Starting items: 79, 98
//	  Operation: new = old * 19
//	  Test: divisible by 23
//	    If true: throw to monkey 2
//	    If false: throw to monkey 3
//
// Blocks are separated by blank lines and must be numbered 0..n-1 in order.
package notes

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inference-sim/keepaway/sim"
)

// ParseError reports a malformed line in a notes document.
type ParseError struct {
	Line int // 1-based
	Text string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (%q)", e.Line, e.Msg, e.Text)
}

// field order inside one block
const (
	fieldHeader = iota
	fieldItems
	fieldOperation
	fieldTest
	fieldIfTrue
	fieldIfFalse
	fieldDone
)

type parser struct {
	descs []sim.UnitDescriptor
	cur   sim.UnitDescriptor
	next  int // next expected field of the current block
}

// ParseString parses notes held in memory.
func ParseString(s string) ([]sim.UnitDescriptor, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads notes from r. Destination indices are not range-checked here;
// the engine rejects them when the simulator is built.
func Parse(r io.Reader) ([]sim.UnitDescriptor, error) {
	p := &parser{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			if err := p.endBlock(lineNo, text); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.line(lineNo, text); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	if err := p.endBlock(lineNo, ""); err != nil {
		return nil, err
	}
	if len(p.descs) == 0 {
		return nil, fmt.Errorf("notes describe no units")
	}
	return p.descs, nil
}

func (p *parser) endBlock(lineNo int, text string) error {
	switch p.next {
	case fieldHeader:
		return nil
	case fieldDone:
		p.descs = append(p.descs, p.cur)
		p.cur = sim.UnitDescriptor{}
		p.next = fieldHeader
		return nil
	}
	return &ParseError{Line: lineNo, Text: text, Msg: fmt.Sprintf("unit %d is incomplete", len(p.descs))}
}

func (p *parser) line(lineNo int, text string) error {
	fail := func(format string, args ...any) error {
		return &ParseError{Line: lineNo, Text: text, Msg: fmt.Sprintf(format, args...)}
	}

	switch p.next {
	case fieldHeader:
		rest, ok := strings.CutPrefix(text, "Monkey ")
		if !ok || !strings.HasSuffix(rest, ":") {
			return fail("expected unit header")
		}
		idx, err := strconv.Atoi(strings.TrimSuffix(rest, ":"))
		if err != nil {
			return fail("invalid unit number")
		}
		if idx != len(p.descs) {
			return fail("expected unit %d, got %d", len(p.descs), idx)
		}

	case fieldItems:
		rest, ok := strings.CutPrefix(text, "Starting items:")
		if !ok {
			return fail("expected starting items")
		}
		for _, f := range strings.Split(rest, ",") {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return fail("invalid worry level %q", f)
			}
			p.cur.Items = append(p.cur.Items, sim.WorryLevel(v))
		}

	case fieldOperation:
		rest, ok := strings.CutPrefix(text, "Operation: new = old ")
		if !ok {
			return fail("expected operation")
		}
		parts := strings.Fields(rest)
		if len(parts) != 2 {
			return fail("expected operator and operand")
		}
		switch parts[0] {
		case "+":
			p.cur.Transform.Op = sim.OpAdd
		case "*":
			p.cur.Transform.Op = sim.OpMultiply
		default:
			return fail("unknown operator %q", parts[0])
		}
		if parts[1] == "old" {
			p.cur.Transform.Operand = sim.OldOperand()
		} else {
			v, err := strconv.ParseUint(parts[1], 10, 64)
			if err != nil {
				return fail("invalid operand %q", parts[1])
			}
			p.cur.Transform.Operand = sim.ConstOperand(sim.WorryLevel(v))
		}

	case fieldTest:
		rest, ok := strings.CutPrefix(text, "Test: divisible by ")
		if !ok {
			return fail("expected divisibility test")
		}
		v, err := strconv.ParseUint(strings.TrimSpace(rest), 10, 64)
		if err != nil || v == 0 {
			return fail("invalid divisor")
		}
		p.cur.Routing.Divisor = sim.WorryLevel(v)

	case fieldIfTrue, fieldIfFalse:
		prefix := "If true: throw to monkey "
		if p.next == fieldIfFalse {
			prefix = "If false: throw to monkey "
		}
		rest, ok := strings.CutPrefix(text, prefix)
		if !ok {
			return fail("expected %q", strings.TrimSpace(prefix))
		}
		dest, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			return fail("invalid destination")
		}
		if p.next == fieldIfTrue {
			p.cur.Routing.IfTrue = dest
		} else {
			p.cur.Routing.IfFalse = dest
		}

	case fieldDone:
		return fail("expected blank line after unit %d", len(p.descs))
	}
	p.next++
	return nil
}

// Format renders descriptors back into the notes format accepted by Parse.
func Format(descs []sim.UnitDescriptor) string {
	var sb strings.Builder
	for i, d := range descs {
		if i > 0 {
			sb.WriteString("\n")
		}
		items := make([]string, len(d.Items))
		for j, v := range d.Items {
			items[j] = strconv.FormatUint(uint64(v), 10)
		}
		fmt.Fprintf(&sb, "Monkey %d:\n", i)
		fmt.Fprintf(&sb, "  Starting items: %s\n", strings.Join(items, ", "))
		fmt.Fprintf(&sb, "  Operation: %s\n", d.Transform)
		fmt.Fprintf(&sb, "  Test: divisible by %d\n", d.Routing.Divisor)
		fmt.Fprintf(&sb, "    If true: throw to monkey %d\n", d.Routing.IfTrue)
		fmt.Fprintf(&sb, "    If false: throw to monkey %d\n", d.Routing.IfFalse)
	}
	return sb.String()
}
