// Package random provides the Fisher-Yates randomizer used by every placement decision.
package random

import (
	"math/rand/v2"
	"sync"

	"github.com/arloliu/seating/types"
)

// Source is a concurrency-safe types.Randomizer backed by a PCG generator.
type Source struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// Compile-time assertion that Source implements Randomizer.
var _ types.Randomizer = (*Source)(nil)

// New creates a randomizer seeded from the runtime's entropy source.
//
// Returns:
//   - *Source: Randomizer safe for concurrent use
func New() *Source {
	return NewSeeded(rand.Uint64())
}

// NewSeeded creates a deterministic randomizer, mainly for tests.
//
// Parameters:
//   - seed: Generator seed; equal seeds produce equal sequences
//
// Returns:
//   - *Source: Randomizer safe for concurrent use
func NewSeeded(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec // placement randomness, not security
}

// IntN returns a uniform integer in [0, n).
func (s *Source) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rng.IntN(n)
}

// Shuffle performs a Fisher-Yates shuffle over n elements.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		swap(i, j)
	}
}

// Shuffle permutes items in place.
func Shuffle[T any](r types.Randomizer, items []T) {
	r.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Perm returns a random permutation of [0, n).
func Perm(r types.Randomizer, n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	Shuffle(r, p)

	return p
}

// Pick returns a uniformly chosen element of items. items must not be empty.
func Pick[T any](r types.Randomizer, items []T) T {
	return items[r.IntN(len(items))]
}
