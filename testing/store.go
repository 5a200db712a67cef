package testing

import (
	"testing"

	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/store"
	"github.com/arloliu/seating/types"
)

// NewStore opens an in-memory badger store for a single test.
//
// The store logs through t and is closed automatically when the test completes.
//
// Parameters:
//   - t: Testing context for logging and cleanup
//   - opts: Extra store options (e.g. store.WithMaxTxnRetries)
//
// Returns:
//   - *store.Badger: Open in-memory store
func NewStore(t testing.TB, opts ...store.Option) *store.Badger {
	t.Helper()

	opts = append([]store.Option{store.WithLogger(NewTestLogger(t))}, opts...)
	st, err := store.NewBadger(opts...)
	if err != nil {
		t.Fatalf("Failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// SeededRandomizer returns a deterministic randomizer for reproducible placements.
func SeededRandomizer(seed uint64) types.Randomizer {
	return random.NewSeeded(seed)
}
