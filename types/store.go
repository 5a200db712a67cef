package types

import "context"

// Reader reads records from the persistent store.
type Reader interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)

	// Scan calls fn for every key with the given prefix in key order.
	// Returning an error from fn stops the scan and propagates the error.
	Scan(prefix string, fn func(key string, value []byte) error) error
}

// Writer stages record writes.
type Writer interface {
	// Set stores value under key.
	Set(key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Txn is a read-modify-write transaction.
type Txn interface {
	Reader
	Writer
}

// Store is the transactional key-value store consumed by the engine.
//
// The engine relies on three primitives and nothing else:
//   - View: a consistent read-only snapshot
//   - Update: an isolated read-modify-write transaction with conflict detection;
//     every read key is checked for concurrent modification at commit
//   - Batch: an atomic write-only commit with no read-time conflict detection
//
// Implementations may retry Update internally on write conflicts and must return
// an error wrapping ErrTransient once they give up. Neither Update nor Batch may
// leave partial writes visible on failure.
type Store interface {
	// View runs fn against a read-only snapshot.
	View(ctx context.Context, fn func(r Reader) error) error

	// Update runs fn in a transaction and commits its writes atomically.
	// fn may be invoked more than once when the store retries a conflict.
	Update(ctx context.Context, fn func(tx Txn) error) error

	// Batch runs fn to stage writes and commits them atomically.
	Batch(ctx context.Context, fn func(w Writer) error) error
}
