// Worry levels and the checked arithmetic applied to them during inspection.
// Every operation that can grow a value reports overflow instead of wrapping.

package sim

import "math/bits"

// WorryLevel is the integer value carried by one item as it moves between units.
type WorryLevel uint64

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, &OverflowError{Op: "add", A: a, B: b}
	}
	return sum, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, &OverflowError{Op: "multiply", A: a, B: b}
	}
	return lo, nil
}

func gcd(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm returns the least common multiple of a and b, both >= 1.
func lcm(a, b uint64) (uint64, error) {
	return checkedMul(a/gcd(a, b), b)
}

// addMod returns (a + b) mod m for any a, b; m must be >= 1.
func addMod(a, b, m uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	return bits.Rem64(carry, sum, m)
}

// mulMod returns (a * b) mod m for any a, b; m must be >= 1.
func mulMod(a, b, m uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	return bits.Rem64(hi, lo, m)
}
