// Package testing provides test utilities for the seating engine.
//
// It follows Go's convention of shipping test helpers in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - NewStore: in-memory badger store, closed on test cleanup
//   - NewTestLogger: types.Logger writing through testing.T
//   - StartEmbeddedNATS: single NATS server with JetStream, for audit tests
//   - JetStream: JetStream context on a test connection
//   - SeededRandomizer: deterministic types.Randomizer
//   - AuditRecorder: in-memory audit sink
//
// Example usage:
//
//	import (
//	    "testing"
//	    seatingtest "github.com/arloliu/seating/testing"
//	)
//
//	func TestMyComponent(t *testing.T) {
//	    st := seatingtest.NewStore(t)
//	    _, nc := seatingtest.StartEmbeddedNATS(t)
//	    // ...
//	}
package testing
