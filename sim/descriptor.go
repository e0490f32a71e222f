// Defines the immutable unit descriptors handed to the engine by a parser:
// the starting items, the transform applied on inspection, and the routing rule.

package sim

import (
	"fmt"
	"strconv"
)

// OpKind is the binary operation of a Transform.
type OpKind string

const (
	OpAdd      OpKind = "add"
	OpMultiply OpKind = "multiply"
)

// Symbol returns the operator as written in puzzle notes ("+" or "*").
func (k OpKind) Symbol() string {
	switch k {
	case OpAdd:
		return "+"
	case OpMultiply:
		return "*"
	}
	return "?"
}

// Operand is the right-hand side of a Transform: either the item's current
// value ("old") or a fixed constant.
type Operand struct {
	Old   bool
	Value WorryLevel // ignored when Old is set
}

// OldOperand returns the operand that resolves to the inspected item itself.
func OldOperand() Operand { return Operand{Old: true} }

// ConstOperand returns a fixed-value operand.
func ConstOperand(v WorryLevel) Operand { return Operand{Value: v} }

func (o Operand) resolve(old WorryLevel) WorryLevel {
	if o.Old {
		return old
	}
	return o.Value
}

func (o Operand) String() string {
	if o.Old {
		return "old"
	}
	return strconv.FormatUint(uint64(o.Value), 10)
}

// Transform is the operation a unit applies to each item it inspects.
type Transform struct {
	Op      OpKind
	Operand Operand
}

// Apply returns the transformed value, or an *OverflowError if the result
// does not fit in a WorryLevel.
func (t Transform) Apply(old WorryLevel) (WorryLevel, error) {
	rhs := uint64(t.Operand.resolve(old))
	var (
		v   uint64
		err error
	)
	switch t.Op {
	case OpAdd:
		v, err = checkedAdd(uint64(old), rhs)
	case OpMultiply:
		v, err = checkedMul(uint64(old), rhs)
	default:
		return 0, configError("unknown transform op %q", t.Op)
	}
	return WorryLevel(v), err
}

// ApplyMod returns Apply(old) mod m. The result is exact for any old and any
// m >= 1: the intermediate value is 128 bits wide, so nothing overflows.
func (t Transform) ApplyMod(old, m WorryLevel) (WorryLevel, error) {
	rhs := uint64(t.Operand.resolve(old))
	switch t.Op {
	case OpAdd:
		return WorryLevel(addMod(uint64(old), rhs, uint64(m))), nil
	case OpMultiply:
		return WorryLevel(mulMod(uint64(old), rhs, uint64(m))), nil
	}
	return 0, configError("unknown transform op %q", t.Op)
}

func (t Transform) String() string {
	return fmt.Sprintf("new = old %s %s", t.Op.Symbol(), t.Operand)
}

// RoutingRule sends an item to IfTrue when its value is divisible by Divisor,
// otherwise to IfFalse. Either destination may be the unit itself.
type RoutingRule struct {
	Divisor WorryLevel
	IfTrue  int
	IfFalse int
}

// Destination returns the unit index an item of value v is thrown to.
func (r RoutingRule) Destination(v WorryLevel) int {
	if v%r.Divisor == 0 {
		return r.IfTrue
	}
	return r.IfFalse
}

// UnitDescriptor is the read-only definition of one processing unit.
// Items are listed in arrival order (front of the queue first).
type UnitDescriptor struct {
	Items     []WorryLevel
	Transform Transform
	Routing   RoutingRule
}

// Validate checks the descriptor at position index against a set of unitCount units.
// Out-of-range destinations are reported as *RoutingError.
func (d UnitDescriptor) Validate(index, unitCount int) error {
	if d.Transform.Op != OpAdd && d.Transform.Op != OpMultiply {
		return configError("unit %d: unknown transform op %q", index, d.Transform.Op)
	}
	if d.Routing.Divisor < 1 {
		return configError("unit %d: divisor must be >= 1, got %d", index, d.Routing.Divisor)
	}
	for _, dest := range []int{d.Routing.IfTrue, d.Routing.IfFalse} {
		if dest < 0 || dest >= unitCount {
			return &RoutingError{Unit: index, Destination: dest, UnitCount: unitCount}
		}
	}
	return nil
}
