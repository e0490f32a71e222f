package sim

import (
	"fmt"
	"sort"
)

// TopN returns the n largest counters in descending order. If fewer than n
// counters exist, all of them are returned.
func TopN(counters []uint64, n int) []uint64 {
	sorted := append([]uint64(nil), counters...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// MonkeyBusiness returns the product of the two largest counters.
// Fewer than two counters is a configuration error.
func MonkeyBusiness(counters []uint64) (uint64, error) {
	if len(counters) < 2 {
		return 0, configError("monkey business needs at least two units, got %d", len(counters))
	}
	top := TopN(counters, 2)
	score, err := checkedMul(top[0], top[1])
	if err != nil {
		return 0, fmt.Errorf("ranking inspection counters: %w", err)
	}
	return score, nil
}
