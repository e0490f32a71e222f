package sim

import (
	"fmt"
	"strings"
)

// ReliefPolicy selects how a transformed worry level is brought back into a
// bounded range. It is chosen once per run and applies to every unit and item.
type ReliefPolicy int

const (
	// BoundedDecay floor-divides every transformed value by DecayDivisor.
	// Lossy; paired with short runs.
	BoundedDecay ReliefPolicy = iota
	// RingPreserving reduces every transformed value modulo the common modulus
	// of all routing divisors, which leaves every routing decision unchanged.
	RingPreserving
)

// DecayDivisor is the fixed divisor used by BoundedDecay.
const DecayDivisor WorryLevel = 3

var reliefPolicyNames = map[string]ReliefPolicy{
	"decay":           BoundedDecay,
	"bounded-decay":   BoundedDecay,
	"ring":            RingPreserving,
	"ring-preserving": RingPreserving,
}

// ParseReliefPolicy maps a policy name ("decay", "bounded-decay", "ring",
// "ring-preserving") to its ReliefPolicy.
func ParseReliefPolicy(name string) (ReliefPolicy, error) {
	p, ok := reliefPolicyNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, configError("unknown relief policy %q; valid: decay, ring", name)
	}
	return p, nil
}

// IsValid reports whether p is one of the two defined policies.
func (p ReliefPolicy) IsValid() bool {
	return p == BoundedDecay || p == RingPreserving
}

func (p ReliefPolicy) String() string {
	switch p {
	case BoundedDecay:
		return "bounded-decay"
	case RingPreserving:
		return "ring-preserving"
	}
	return fmt.Sprintf("ReliefPolicy(%d)", int(p))
}

// Reduce applies the policy to a transformed value. modulus is only read by
// RingPreserving and must be >= 1.
func (p ReliefPolicy) Reduce(v, modulus WorryLevel) WorryLevel {
	if p == RingPreserving {
		return v % modulus
	}
	return v / DecayDivisor
}

// Relieve applies t to old and brings the result back into range. Under
// RingPreserving the transform is evaluated modulo modulus directly, so a
// valid configuration never overflows; BoundedDecay needs the full transformed
// value and reports *OverflowError when it does not fit.
func (p ReliefPolicy) Relieve(t Transform, old, modulus WorryLevel) (WorryLevel, error) {
	if p == RingPreserving {
		return t.ApplyMod(old, modulus)
	}
	v, err := t.Apply(old)
	if err != nil {
		return 0, err
	}
	return p.Reduce(v, modulus), nil
}

// CommonModulus returns the least common multiple of every distinct routing
// divisor in descs. Reducing any worry level modulo this value preserves the
// outcome of every unit's divisibility test.
func CommonModulus(descs []UnitDescriptor) (WorryLevel, error) {
	m := uint64(1)
	seen := make(map[WorryLevel]bool, len(descs))
	for i, d := range descs {
		div := d.Routing.Divisor
		if div < 1 {
			return 0, configError("unit %d: divisor must be >= 1, got %d", i, div)
		}
		if seen[div] {
			continue
		}
		seen[div] = true
		var err error
		if m, err = lcm(m, uint64(div)); err != nil {
			return 0, fmt.Errorf("computing common modulus: %w", err)
		}
	}
	return WorryLevel(m), nil
}
