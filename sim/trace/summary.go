package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDispatches    int
	SelfRoutes         int
	UniqueTargets      int
	TargetDistribution map[int]int // unit index → items received
	RoundsRecorded     int
	MaxQueueDepth      int // deepest single queue seen at any round end
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDispatches = len(st.Dispatches)
	for _, d := range st.Dispatches {
		summary.TargetDistribution[d.To]++
		if d.SelfRoute {
			summary.SelfRoutes++
		}
	}
	summary.UniqueTargets = len(summary.TargetDistribution)

	summary.RoundsRecorded = len(st.Rounds)
	for _, r := range st.Rounds {
		for _, depth := range r.QueueDepths {
			if depth > summary.MaxQueueDepth {
				summary.MaxQueueDepth = depth
			}
		}
	}

	return summary
}
