// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/keepaway/sim/trace"
)

// RunState is the engine's position relative to a round boundary.
type RunState string

const (
	RoundIdle    RunState = "round-idle"    // between rounds, before round 1 and after the last
	RoundRunning RunState = "round-running" // mid-round, Cursor() is the unit taking its turn
)

// SimConfig carries the per-run settings that are not derived from descriptors.
type SimConfig struct {
	Relief ReliefPolicy
	// Trace receives round and hand-off records when non-nil; see trace.TraceLevel.
	Trace *trace.SimulationTrace
}

// Simulator is the core object that holds the unit arena, the common modulus,
// and the round loop. Units address each other only by index.
type Simulator struct {
	Units   []*ProcessingUnit
	Relief  ReliefPolicy
	Modulus WorryLevel // common modulus of all routing divisors, fixed before round 1
	Trace   *trace.SimulationTrace

	state  RunState
	cursor int
	round  int   // completed rounds
	err    error // first fatal error; the simulator refuses to continue after it
}

// NewSimulator builds one ProcessingUnit per descriptor and precomputes the
// common modulus. Descriptors are validated and copied; the caller keeps ownership.
func NewSimulator(descs []UnitDescriptor, cfg SimConfig) (*Simulator, error) {
	if len(descs) == 0 {
		return nil, configError("at least one unit is required")
	}
	if !cfg.Relief.IsValid() {
		return nil, configError("unknown relief policy %v", cfg.Relief)
	}
	for i, d := range descs {
		if err := d.Validate(i, len(descs)); err != nil {
			return nil, err
		}
	}
	modulus, err := CommonModulus(descs)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		Units:   make([]*ProcessingUnit, len(descs)),
		Relief:  cfg.Relief,
		Modulus: modulus,
		Trace:   cfg.Trace,
		state:   RoundIdle,
	}
	for i, d := range descs {
		s.Units[i] = newProcessingUnit(i, d)
	}
	return s, nil
}

// Run executes exactly rounds rounds. See RunUntil.
func (sim *Simulator) Run(rounds int) error {
	return sim.RunUntil(rounds, nil)
}

// RunUntil executes exactly rounds rounds, calling observe (if non-nil) after
// each completed round. Any error is fatal: the simulator stays in the state
// where it failed and every later call returns the same error.
func (sim *Simulator) RunUntil(rounds int, observe func(round int, s *Simulator)) error {
	if sim.err != nil {
		return sim.err
	}
	if rounds < 0 {
		return configError("round count must be non-negative, got %d", rounds)
	}
	logrus.Infof("Starting simulation: %d units, %d rounds, relief=%s, modulus=%d",
		len(sim.Units), rounds, sim.Relief, sim.Modulus)

	for i := 0; i < rounds; i++ {
		if err := sim.playRound(); err != nil {
			sim.err = err
			logrus.Errorf("[round %05d] simulation aborted: %v", sim.round+1, err)
			return err
		}
		if observe != nil {
			observe(sim.round, sim)
		}
	}
	logrus.Infof("[round %05d] Simulation ended", sim.round)
	return nil
}

// playRound gives every unit one turn in index order. A unit's thrown items
// reach their destination queues before the next unit's turn starts.
func (sim *Simulator) playRound() error {
	sim.state = RoundRunning
	current := sim.round + 1
	for i, u := range sim.Units {
		sim.cursor = i
		out, err := u.InspectAndDispatch(sim.Relief, sim.Modulus)
		// items inspected before a failure still reach their destinations
		for _, d := range out {
			if derr := sim.deliver(current, i, d); derr != nil {
				return derr
			}
		}
		if err != nil {
			return err
		}
	}
	sim.round = current
	sim.cursor = 0
	sim.state = RoundIdle

	if sim.Trace.WantsRounds() {
		sim.Trace.RecordRound(trace.RoundRecord{
			Round:       current,
			Inspections: sim.Inspections(),
			QueueDepths: sim.queueDepths(),
		})
	}
	logrus.Debugf("[round %05d] inspections=%v", current, sim.Inspections())
	return nil
}

func (sim *Simulator) deliver(round, from int, d Dispatch) error {
	if d.To < 0 || d.To >= len(sim.Units) {
		return &RoutingError{Unit: from, Destination: d.To, UnitCount: len(sim.Units)}
	}
	sim.Units[d.To].Receive(d.Value)
	if sim.Trace.WantsDispatches() {
		sim.Trace.RecordDispatch(trace.DispatchRecord{
			Round:     round,
			From:      from,
			To:        d.To,
			Value:     uint64(d.Value),
			SelfRoute: from == d.To,
		})
	}
	return nil
}

// State returns whether the simulator is between rounds or inside one.
func (sim *Simulator) State() RunState {
	return sim.state
}

// Cursor returns the index of the unit whose turn it is while RoundRunning.
func (sim *Simulator) Cursor() int {
	return sim.cursor
}

// Round returns the number of completed rounds.
func (sim *Simulator) Round() int {
	return sim.round
}

// Err returns the error that aborted the run, if any.
func (sim *Simulator) Err() error {
	return sim.err
}

// Inspections returns each unit's inspection counter, in unit order.
func (sim *Simulator) Inspections() []uint64 {
	counts := make([]uint64, len(sim.Units))
	for i, u := range sim.Units {
		counts[i] = u.Inspections
	}
	return counts
}

// Queues returns a copy of every unit's queue, in unit order.
func (sim *Simulator) Queues() [][]WorryLevel {
	queues := make([][]WorryLevel, len(sim.Units))
	for i, u := range sim.Units {
		queues[i] = u.Queue.Items()
	}
	return queues
}

// ItemCount returns the number of items held across all units.
func (sim *Simulator) ItemCount() int {
	n := 0
	for _, u := range sim.Units {
		n += u.Queue.Len()
	}
	return n
}

func (sim *Simulator) queueDepths() []int {
	depths := make([]int, len(sim.Units))
	for i, u := range sim.Units {
		depths[i] = u.Queue.Len()
	}
	return depths
}

// MonkeyBusiness returns the product of the two largest inspection counters.
func (sim *Simulator) MonkeyBusiness() (uint64, error) {
	return MonkeyBusiness(sim.Inspections())
}
