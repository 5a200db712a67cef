// Package assignment implements the seat assignment engine.
//
// The Engine runs the placement operations against a types.Store:
//
//   - RebalanceAll: reseat participants round-robin across open tables
//   - FillWaiting: seat unseated participants at the least populated tables
//   - SnakeDraft: reseat active participants balancing chip stacks
//   - Move: move one participant to another seat
//   - BustOut: eliminate a participant and vacate their seat
//
// # Bulk Placements
//
// RebalanceAll, FillWaiting and SnakeDraft read the partition once, compute the
// whole layout with a planner from the strategy package, then commit it with a
// single write batch:
//
//  1. Store.View: load tables and participants of the partition
//  2. strategy.Plan*: compute the new seat layout in memory
//  3. Store.Batch: write every open table and every affected participant
//
// The batch performs no read-time conflict detection. A Move or BustOut that
// commits between steps 1 and 3 on the same tables is overwritten. Bulk placements
// are meant for a reseat break, not for live play.
//
// # Transactional Operations
//
// Move and BustOut run in one Store.Update. Reads observe a consistent snapshot
// and the store rejects the commit if a concurrent writer touched the same
// records; the store retries such conflicts before reporting types.ErrTransient.
//
// Every operation rewrites participant locations in the same commit as the seat
// arrays, so a participant's location always names the one seat that holds them.
package assignment
