// Package sim provides the round-based item-redistribution engine for keepaway.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - descriptor.go: UnitDescriptor, the immutable definition of one unit
//   - relief.go: the two worry reduction policies and the common modulus
//   - unit.go: ProcessingUnit and its inspect-and-dispatch drain
//   - simulator.go: the round loop and the hand-off between units
//   - ranking.go: reducing final counters to the monkey business score
//
// # Architecture
//
// The sim package holds the engine only. It never reads files or formats text.
// Collaborators live in sub-packages:
//   - sim/notes/: parser for the puzzle's textual notes format
//   - sim/scenario/: YAML scenario files with JSON Schema validation
//   - sim/trace/: round and hand-off trace recording
//   - sim/results/: SQLite store for finished runs
//   - sim/metrics/: Prometheus textfile export of run counters
//
// # Determinism
//
// A run is strictly sequential. Units take turns in index order, every item a
// unit throws lands in its destination queue before the next unit's turn, and
// the same descriptors, policy, and round count always produce the same counters.
package sim
