package seating

import (
	"context"

	"github.com/arloliu/seating/types"
)

// Read-only operation names used for metrics.
const (
	opListTables       = "list_tables"
	opGetParticipant   = "get_participant"
	opListParticipants = "list_participants"
	opListPartitions   = "list_partitions"
)

// Tables lists the tables of a partition, or of every partition for an aggregate scope.
func (e *Engine) Tables(ctx context.Context, s Scope) ([]Table, error) {
	return run(ctx, e, opListTables, s,
		func(ctx context.Context, s Scope) ([]Table, error) {
			return e.roster.Tables(ctx, s)
		}, nil)
}

// CreateTable creates a standby table numbered after the partition's highest table.
func (e *Engine) CreateTable(ctx context.Context, s Scope, spec TableSpec) (*Table, error) {
	return run(ctx, e, types.ActionCreateTable, s,
		func(ctx context.Context, s Scope) (*Table, error) {
			return e.tables.Create(ctx, s, spec)
		}, describeTable)
}

// ActivateTable opens a table for seating.
func (e *Engine) ActivateTable(ctx context.Context, s Scope, tableID string) (*Table, error) {
	return run(ctx, e, types.ActionActivateTable, s,
		func(ctx context.Context, s Scope) (*Table, error) {
			return e.tables.Activate(ctx, s, tableID)
		}, describeTable)
}

// DeactivateTable returns an empty open table to standby.
//
// A table with seated participants is rejected with ErrInvalidTransition; close it instead.
func (e *Engine) DeactivateTable(ctx context.Context, s Scope, tableID string) (*Table, error) {
	return run(ctx, e, types.ActionDeactivateTable, s,
		func(ctx context.Context, s Scope) (*Table, error) {
			return e.tables.Deactivate(ctx, s, tableID)
		}, describeTable)
}

// ResizeSeats changes a table's seat count.
//
// Shrinking past an occupied seat fails with a *ResizeBlockedError naming the
// blocking seats and participants; nothing is written.
func (e *Engine) ResizeSeats(ctx context.Context, s Scope, tableID string, seats int) (*Table, error) {
	return run(ctx, e, types.ActionResizeSeats, s,
		func(ctx context.Context, s Scope) (*Table, error) {
			return e.tables.ResizeSeats(ctx, s, tableID, seats)
		}, describeTable)
}

// UpdateTable changes a table's display metadata.
func (e *Engine) UpdateTable(ctx context.Context, s Scope, tableID string, update TableUpdate) (*Table, error) {
	return run(ctx, e, types.ActionUpdateTable, s,
		func(ctx context.Context, s Scope) (*Table, error) {
			return e.tables.Update(ctx, s, tableID, update)
		}, describeTable)
}

// CloseTable relocates everyone seated at a table to the other open tables of
// its partition and returns the table to standby with empty seats.
//
// When the seated participants do not all fit elsewhere, the close fails with
// ErrNoRelocationTarget and nothing is written.
func (e *Engine) CloseTable(ctx context.Context, s Scope, tableID string) (*Redistribution, error) {
	return run(ctx, e, types.ActionCloseTable, s,
		func(ctx context.Context, s Scope) (*Redistribution, error) {
			return e.tables.Close(ctx, s, tableID)
		}, describeRedistribution(tableID))
}

// DeleteTable relocates everyone seated at a table like CloseTable, then removes the table.
func (e *Engine) DeleteTable(ctx context.Context, s Scope, tableID string) (*Redistribution, error) {
	return run(ctx, e, types.ActionDeleteTable, s,
		func(ctx context.Context, s Scope) (*Redistribution, error) {
			return e.tables.Delete(ctx, s, tableID)
		}, describeRedistribution(tableID))
}

// ReassignPartition moves tables into another partition of the owner in one
// write batch. Tables that cannot be located are reported as skipped, tables
// already in the destination as unchanged. A table whose number is taken in
// the destination gets the next free number there.
func (e *Engine) ReassignPartition(ctx context.Context, s Scope, tableIDs []string, destination string) (*ReassignReport, error) {
	return run(ctx, e, types.ActionReassignPartition, s,
		func(ctx context.Context, s Scope) (*ReassignReport, error) {
			return e.tables.ReassignPartition(ctx, s, tableIDs, destination)
		},
		func(r *ReassignReport) outcome {
			return outcome{
				partition: destination,
				details: map[string]any{
					"moved":      r.Moved,
					"skipped":    r.Skipped,
					"unchanged":  r.Unchanged,
					"renumbered": r.Renumbered,
				},
				noop:      len(r.Moved) == 0,
			}
		})
}

func describeTable(t *Table) outcome {
	return outcome{
		partition: t.PartitionID,
		details: map[string]any{
			"table":       t.ID,
			"tableNumber": t.TableNumber,
			"status":      t.Status,
			"seats":       len(t.Seats),
		},
	}
}

func describeRedistribution(tableID string) func(*Redistribution) outcome {
	return func(r *Redistribution) outcome {
		return outcome{
			details: map[string]any{"table": tableID, "relocated": r.Summary},
			results: r.Results,
		}
	}
}
