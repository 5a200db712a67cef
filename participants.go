package seating

import (
	"context"

	"github.com/arloliu/seating/types"
)

// CreateParticipant registers a participant, optionally seating them atomically.
func (e *Engine) CreateParticipant(ctx context.Context, s Scope, spec ParticipantSpec) (*Participant, error) {
	return run(ctx, e, types.ActionCreateParticipant, s,
		func(ctx context.Context, s Scope) (*Participant, error) {
			return e.roster.Create(ctx, s, spec)
		},
		func(p *Participant) outcome {
			o := describeParticipant(p)
			if ref := p.Ref(); ref != nil {
				o.results = []AssignmentResult{{ParticipantID: p.ID, ParticipantName: p.Name, To: *ref}}
			}

			return o
		})
}

// Participant reads one participant from whichever partition of the owner holds it.
func (e *Engine) Participant(ctx context.Context, s Scope, participantID string) (*Participant, error) {
	return run(ctx, e, opGetParticipant, s,
		func(ctx context.Context, s Scope) (*Participant, error) {
			return e.roster.Get(ctx, s, participantID)
		}, nil)
}

// Participants lists the participants of a partition or of an aggregate scope.
func (e *Engine) Participants(ctx context.Context, s Scope) ([]Participant, error) {
	return run(ctx, e, opListParticipants, s,
		func(ctx context.Context, s Scope) ([]Participant, error) {
			return e.roster.List(ctx, s)
		}, nil)
}

// UpdateChips sets a participant's chip count.
func (e *Engine) UpdateChips(ctx context.Context, s Scope, participantID string, chips int64) (*Participant, error) {
	return run(ctx, e, types.ActionUpdateParticipant, s,
		func(ctx context.Context, s Scope) (*Participant, error) {
			return e.roster.UpdateChips(ctx, s, participantID, chips)
		}, describeParticipant)
}

// SetParticipantStatus switches a participant between active and no-show.
// Use BustOut to eliminate a participant.
func (e *Engine) SetParticipantStatus(ctx context.Context, s Scope, participantID string, status ParticipantStatus) (*Participant, error) {
	return run(ctx, e, types.ActionUpdateParticipant, s,
		func(ctx context.Context, s Scope) (*Participant, error) {
			return e.roster.SetStatus(ctx, s, participantID, status)
		}, describeParticipant)
}

// DeleteParticipant removes a participant and releases any seat they hold.
func (e *Engine) DeleteParticipant(ctx context.Context, s Scope, participantID string) (*SeatRef, error) {
	return run(ctx, e, types.ActionDeleteParticipant, s,
		func(ctx context.Context, s Scope) (*SeatRef, error) {
			return e.roster.Delete(ctx, s, participantID)
		},
		func(ref *SeatRef) outcome {
			details := map[string]any{"participant": participantID}
			if ref != nil {
				details["seat"] = ref.String()
			}

			return outcome{details: details}
		})
}

// CreatePartition records a tournament for the owner. An empty ID is generated.
func (e *Engine) CreatePartition(ctx context.Context, ownerID string, p Partition) (*Partition, error) {
	return run(ctx, e, types.ActionCreatePartition, NewScope(ownerID, p.ID),
		func(ctx context.Context, _ Scope) (*Partition, error) {
			return e.roster.CreatePartition(ctx, ownerID, p)
		},
		func(created *Partition) outcome {
			return outcome{
				partition: created.ID,
				details:   map[string]any{"name": created.Name, "date": created.Date},
			}
		})
}

// Partitions lists the owner's tournaments ordered by date.
func (e *Engine) Partitions(ctx context.Context, ownerID string) ([]Partition, error) {
	return run(ctx, e, opListPartitions, NewScope(ownerID, ""),
		func(ctx context.Context, s Scope) ([]Partition, error) {
			return e.roster.ListPartitions(ctx, s.OwnerID)
		}, nil)
}

func describeParticipant(p *Participant) outcome {
	return outcome{
		partition: p.PartitionID,
		details: map[string]any{
			"participant": p.ID,
			"name":        p.Name,
			"chips":       p.Chips,
			"status":      p.Status,
		},
	}
}
