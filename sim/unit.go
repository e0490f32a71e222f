package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Dispatch is one inspected item on its way to another unit's queue.
type Dispatch struct {
	Value WorryLevel // worry level after transform and relief
	To    int        // destination unit index
}

// ProcessingUnit is the runtime state built from one UnitDescriptor: the items
// it currently holds and the number of inspections it has performed.
type ProcessingUnit struct {
	Index       int
	Queue       *ItemQueue
	Inspections uint64 // monotonically increasing, one per item drained

	transform Transform
	routing   RoutingRule
	out       []Dispatch // reused across turns
}

func newProcessingUnit(index int, d UnitDescriptor) *ProcessingUnit {
	return &ProcessingUnit{
		Index:     index,
		Queue:     NewItemQueue(d.Items),
		transform: d.Transform,
		routing:   d.Routing,
	}
}

// Receive appends a thrown item to the back of the unit's queue.
func (u *ProcessingUnit) Receive(v WorryLevel) {
	u.Queue.Enqueue(v)
}

// InspectAndDispatch drains the queue front to back. Each item is transformed,
// reduced by policy, routed, and counted, in that order. The unit's queue is
// empty when it returns without error.
//
// On error the failing item stays at the front of the queue, uncounted, and the
// dispatches built before it are returned alongside the error so that no item
// goes missing from a failed run.
//
// The returned slice is owned by the unit and is only valid until the next call.
func (u *ProcessingUnit) InspectAndDispatch(policy ReliefPolicy, modulus WorryLevel) ([]Dispatch, error) {
	u.out = u.out[:0]
	for {
		item, ok := u.Queue.Peek()
		if !ok {
			break
		}
		v, err := policy.Relieve(u.transform, item, modulus)
		if err != nil {
			return u.out, fmt.Errorf("unit %d inspecting %d: %w", u.Index, item, err)
		}
		u.Queue.Dequeue()
		to := u.routing.Destination(v)
		u.Inspections++
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Tracef("unit %d: %d -> %d, thrown to unit %d", u.Index, item, v, to)
		}
		u.out = append(u.out, Dispatch{Value: v, To: to})
	}
	return u.out, nil
}
