// Package trace provides hand-off recording for simulation runs.
// It has no dependencies on sim/ and stores pure data types only.
package trace

// DispatchRecord captures a single item hand-off between units.
type DispatchRecord struct {
	Round     int    // 1-based round in which the hand-off happened
	From      int    // inspecting unit
	To        int    // receiving unit
	Value     uint64 // worry level after relief
	SelfRoute bool   // From == To
}

// RoundRecord captures unit state at the end of a round.
type RoundRecord struct {
	Round       int
	Inspections []uint64 // cumulative counters, unit order
	QueueDepths []int    // items held per unit, unit order
}
