package types

import (
	"context"
	"time"
)

// Action names recorded to the audit sink after successful mutations.
const (
	ActionRebalanceAll      = "rebalance_all"
	ActionFillWaiting       = "fill_waiting"
	ActionSnakeDraft        = "snake_draft"
	ActionMoveSeat          = "move_seat"
	ActionBustOut           = "bust_out"
	ActionCreateTable       = "create_table"
	ActionActivateTable     = "activate_table"
	ActionDeactivateTable   = "deactivate_table"
	ActionResizeSeats       = "resize_seats"
	ActionCloseTable        = "close_table"
	ActionDeleteTable       = "delete_table"
	ActionUpdateTable       = "update_table"
	ActionReassignPartition = "reassign_partition"
	ActionCreateParticipant = "create_participant"
	ActionUpdateParticipant = "update_participant"
	ActionDeleteParticipant = "delete_participant"
	ActionCreatePartition   = "create_partition"
)

// ActionRecord is the structured record emitted after every successful mutation.
type ActionRecord struct {
	Action      string         `json:"action"`
	OwnerID     string         `json:"ownerId"`
	PartitionID string         `json:"partitionId"`
	Details     map[string]any `json:"details,omitempty"`
	At          time.Time      `json:"at"`
}

// AuditSink receives action records.
//
// Sinks are called synchronously after the mutation has committed. A sink error is
// logged by the caller and never turns a committed operation into a failure.
type AuditSink interface {
	Record(ctx context.Context, rec ActionRecord) error
}
