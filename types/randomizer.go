package types

// Randomizer is the source of randomness used by every placement decision.
//
// Implementations must be safe for concurrent use when shared by an Engine.
type Randomizer interface {
	// IntN returns a uniform integer in [0, n). n must be > 0.
	IntN(n int) int

	// Shuffle permutes n elements in place using Fisher-Yates, calling swap for
	// each exchange.
	Shuffle(n int, swap func(i, j int))
}
