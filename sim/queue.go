// Implements the ItemQueue, which holds the items a unit has yet to inspect.
// Items are enqueued when thrown to the unit and dequeued on its turn.

package sim

import (
	"fmt"
	"strings"
)

// ItemQueue is a FIFO queue of worry levels, oldest first.
type ItemQueue struct {
	items []WorryLevel
}

// NewItemQueue returns a queue holding a copy of items in the given order.
func NewItemQueue(items []WorryLevel) *ItemQueue {
	return &ItemQueue{items: append([]WorryLevel(nil), items...)}
}

// Enqueue adds an item to the back of the queue.
func (q *ItemQueue) Enqueue(v WorryLevel) {
	q.items = append(q.items, v)
}

// Peek returns the item at the front of the queue without removing it.
func (q *ItemQueue) Peek() (v WorryLevel, ok bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[0], true
}

// Dequeue removes the item at the front of the queue.
// ok is false when the queue is empty.
func (q *ItemQueue) Dequeue() (v WorryLevel, ok bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	v = q.items[0]
	q.items = q.items[1:]
	if len(q.items) == 0 {
		// drop the drained backing array
		q.items = nil
	}
	return v, true
}

// Len returns the number of items in the queue.
func (q *ItemQueue) Len() int {
	return len(q.items)
}

// Items returns a copy of the queue contents, front first.
func (q *ItemQueue) Items() []WorryLevel {
	return append([]WorryLevel(nil), q.items...)
}

func (q *ItemQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range q.items {
		sb.WriteString(fmt.Sprint(uint64(v)))
		if i < len(q.items)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
