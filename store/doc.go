// Package store provides the badger-backed implementation of types.Store.
//
// Records are JSON documents under string keys. Update maps onto a badger
// read-write transaction, whose commit fails with a conflict when any key read by
// the transaction was committed by someone else in the meantime; Batch maps onto a
// write-only transaction, which commits atomically and never conflicts because it
// reads nothing.
//
// An empty data directory opens an in-memory database, which is what tests use.
package store
