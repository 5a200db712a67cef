// Package types provides core type definitions and interfaces for the seating engine.
//
// This package contains shared types that are used across multiple packages of the
// module. By keeping these types in a separate package, we avoid import cycles
// between the root seating package and its internal implementations.
//
// Key types:
//   - Table, Seat, Participant: persisted floor records
//   - Scope: (owner, partition) addressing, including aggregate views
//   - AssignmentResult: transient placement outcome returned to callers
//   - Store, Reader, Writer, Txn: the persistent store boundary
//   - Logger, MetricsCollector, AuditSink: ambient collaborators
package types
