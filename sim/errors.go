package sim

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the engine. All three abort a run; callers match them
// with errors.Is, or errors.As for the typed variants below.
var (
	ErrRouting            = errors.New("routing error")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrConfiguration      = errors.New("configuration error")
)

// RoutingError reports a hand-off to a unit index outside [0, UnitCount).
type RoutingError struct {
	Unit        int // unit whose routing rule produced the destination
	Destination int // offending destination index
	UnitCount   int
}

func (e *RoutingError) Error() string {
	return fmt.Sprintf("unit %d routes to unit %d; valid destinations are [0, %d)",
		e.Unit, e.Destination, e.UnitCount)
}

func (e *RoutingError) Unwrap() error { return ErrRouting }

// OverflowError reports an operation whose result does not fit in 64 bits.
type OverflowError struct {
	Op string // "add" or "multiply"
	A  uint64
	B  uint64
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s of %d and %d overflows 64 bits", e.Op, e.A, e.B)
}

func (e *OverflowError) Unwrap() error { return ErrArithmeticOverflow }

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
