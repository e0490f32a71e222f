package sim

// sampleDescriptors returns the four-unit configuration from the puzzle's
// worked example.
func sampleDescriptors() []UnitDescriptor {
	return []UnitDescriptor{
		{
			Items:     []WorryLevel{79, 98},
			Transform: Transform{Op: OpMultiply, Operand: ConstOperand(19)},
			Routing:   RoutingRule{Divisor: 23, IfTrue: 2, IfFalse: 3},
		},
		{
			Items:     []WorryLevel{54, 65, 75, 74},
			Transform: Transform{Op: OpAdd, Operand: ConstOperand(6)},
			Routing:   RoutingRule{Divisor: 19, IfTrue: 2, IfFalse: 0},
		},
		{
			Items:     []WorryLevel{79, 60, 97},
			Transform: Transform{Op: OpMultiply, Operand: OldOperand()},
			Routing:   RoutingRule{Divisor: 13, IfTrue: 1, IfFalse: 3},
		},
		{
			Items:     []WorryLevel{74},
			Transform: Transform{Op: OpAdd, Operand: ConstOperand(3)},
			Routing:   RoutingRule{Divisor: 17, IfTrue: 0, IfFalse: 1},
		},
	}
}

// selfLoopDescriptor returns a single unit that throws every item back to itself.
func selfLoopDescriptor(items []WorryLevel, t Transform, divisor WorryLevel) []UnitDescriptor {
	return []UnitDescriptor{{
		Items:     items,
		Transform: t,
		Routing:   RoutingRule{Divisor: divisor, IfTrue: 0, IfFalse: 0},
	}}
}

func newSampleSimulator(relief ReliefPolicy) *Simulator {
	s, err := NewSimulator(sampleDescriptors(), SimConfig{Relief: relief})
	if err != nil {
		panic(err)
	}
	return s
}
