package trace

// TraceLevel controls the verbosity of run tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelRounds captures one RoundRecord per completed round.
	TraceLevelRounds TraceLevel = "rounds"
	// TraceLevelDispatches captures round records and every item hand-off.
	TraceLevelDispatches TraceLevel = "dispatches"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelRounds:     true,
	TraceLevelDispatches: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a simulation run.
type SimulationTrace struct {
	Config     TraceConfig
	Dispatches []DispatchRecord
	Rounds     []RoundRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Dispatches: make([]DispatchRecord, 0),
		Rounds:     make([]RoundRecord, 0),
	}
}

// WantsRounds reports whether round records should be captured. Safe on nil.
func (st *SimulationTrace) WantsRounds() bool {
	if st == nil {
		return false
	}
	return st.Config.Level == TraceLevelRounds || st.Config.Level == TraceLevelDispatches
}

// WantsDispatches reports whether hand-off records should be captured. Safe on nil.
func (st *SimulationTrace) WantsDispatches() bool {
	return st != nil && st.Config.Level == TraceLevelDispatches
}

// RecordDispatch appends a hand-off record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordRound appends a round record.
func (st *SimulationTrace) RecordRound(record RoundRecord) {
	st.Rounds = append(st.Rounds, record)
}
