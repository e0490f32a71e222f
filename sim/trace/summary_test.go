package trace

import "testing"

func TestSummarize_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN an empty trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDispatches})

	// WHEN summarized
	summary := Summarize(st)

	// THEN all counts are zero
	if summary.TotalDispatches != 0 || summary.SelfRoutes != 0 {
		t.Errorf("expected 0 dispatches, got %d (%d self)", summary.TotalDispatches, summary.SelfRoutes)
	}
	if summary.UniqueTargets != 0 {
		t.Errorf("expected 0 unique targets, got %d", summary.UniqueTargets)
	}
	if summary.RoundsRecorded != 0 || summary.MaxQueueDepth != 0 {
		t.Error("expected no round statistics")
	}
	if len(summary.TargetDistribution) != 0 {
		t.Error("expected empty target distribution")
	}
}

func TestSummarize_NilTrace_ZeroValues(t *testing.T) {
	summary := Summarize(nil)
	if summary.TotalDispatches != 0 || summary.TargetDistribution == nil {
		t.Errorf("unexpected summary for nil trace: %+v", summary)
	}
}

func TestSummarize_PopulatedTrace_CorrectCounts(t *testing.T) {
	// GIVEN a trace with hand-offs, one of them a self-route
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDispatches})
	st.RecordDispatch(DispatchRecord{Round: 1, From: 0, To: 3})
	st.RecordDispatch(DispatchRecord{Round: 1, From: 0, To: 3})
	st.RecordDispatch(DispatchRecord{Round: 1, From: 1, To: 1, SelfRoute: true})
	st.RecordDispatch(DispatchRecord{Round: 1, From: 2, To: 0})

	// WHEN summarized
	summary := Summarize(st)

	// THEN counts match
	if summary.TotalDispatches != 4 {
		t.Errorf("expected 4 dispatches, got %d", summary.TotalDispatches)
	}
	if summary.SelfRoutes != 1 {
		t.Errorf("expected 1 self-route, got %d", summary.SelfRoutes)
	}
	if summary.UniqueTargets != 3 {
		t.Errorf("expected 3 unique targets, got %d", summary.UniqueTargets)
	}
	if summary.TargetDistribution[3] != 2 {
		t.Errorf("expected unit 3 count 2, got %d", summary.TargetDistribution[3])
	}
}

func TestSummarize_RoundRecords_MaxQueueDepth(t *testing.T) {
	// GIVEN round records with known queue depths
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelRounds})
	st.RecordRound(RoundRecord{Round: 1, QueueDepths: []int{4, 6, 0, 0}})
	st.RecordRound(RoundRecord{Round: 2, QueueDepths: []int{5, 5, 0, 0}})

	// WHEN summarized
	summary := Summarize(st)

	// THEN the deepest queue across all rounds is reported
	if summary.RoundsRecorded != 2 {
		t.Errorf("expected 2 rounds, got %d", summary.RoundsRecorded)
	}
	if summary.MaxQueueDepth != 6 {
		t.Errorf("expected max queue depth 6, got %d", summary.MaxQueueDepth)
	}
}
