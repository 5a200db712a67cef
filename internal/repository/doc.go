// Package repository reads and writes table, participant and partition records.
//
// Functions operate on a types.Reader or types.Writer so that the same code runs
// inside a snapshot, a transaction or a write batch. Records are JSON documents
// keyed by the layout in internal/partition.
package repository
