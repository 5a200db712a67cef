package seating

import (
	"context"

	"github.com/arloliu/seating/types"
)

// RebalanceAll reseats participants round-robin across every open table of the
// partition, shuffling both the participants and each table's seat order.
//
// Parameters:
//   - ctx: Context for cancellation
//   - s: Concrete partition scope
//   - participantIDs: Participants to seat; nil seats every active participant
//
// Returns:
//   - []AssignmentResult: One result per seated participant
//   - error: ErrNoOpenTables, ErrInsufficientSeats or a store failure
func (e *Engine) RebalanceAll(ctx context.Context, s Scope, participantIDs []string) ([]AssignmentResult, error) {
	return run(ctx, e, types.ActionRebalanceAll, s,
		func(ctx context.Context, s Scope) ([]AssignmentResult, error) {
			return e.placer.RebalanceAll(ctx, s, participantIDs)
		},
		func(results []AssignmentResult) outcome {
			return outcome{
				details: map[string]any{"placed": len(results), "results": results},
				results: results,
			}
		})
}

// FillWaiting seats unseated participants at the least populated open tables
// without moving anyone already seated.
//
// Returns:
//   - []AssignmentResult: One result per seated participant (empty when nobody waits)
//   - error: ErrInsufficientEmptySeats, ErrAlreadySeated or a store failure
func (e *Engine) FillWaiting(ctx context.Context, s Scope, participantIDs []string) ([]AssignmentResult, error) {
	return run(ctx, e, types.ActionFillWaiting, s,
		func(ctx context.Context, s Scope) ([]AssignmentResult, error) {
			return e.placer.FillWaiting(ctx, s, participantIDs)
		},
		func(results []AssignmentResult) outcome {
			return outcome{
				details: map[string]any{"placed": len(results), "results": results},
				results: results,
				noop:    len(results) == 0,
			}
		})
}

// SnakeDraft reseats every active participant so chip stacks are spread evenly
// across the open tables.
//
// An unbalanced draft still commits; the report carries Balanced=false and a warning.
func (e *Engine) SnakeDraft(ctx context.Context, s Scope) (*DraftReport, error) {
	return run(ctx, e, types.ActionSnakeDraft, s,
		func(ctx context.Context, s Scope) (*DraftReport, error) {
			return e.placer.SnakeDraft(ctx, s)
		},
		func(r *DraftReport) outcome {
			return outcome{
				details: map[string]any{
					"placed":   len(r.Results),
					"balanced": r.Balanced,
					"warning":  r.Warning,
					"tables":   r.Tables,
				},
				results: r.Results,
			}
		})
}

// Move moves one participant between two seats in a single transaction.
//
// A move onto the seat the participant already holds returns (nil, nil).
//
// Returns:
//   - *AssignmentResult: The move, or nil for a no-op
//   - error: ErrSeatOccupied, ErrSeatMismatch, ErrInvalidSeat, ErrTableNotOpen,
//     ErrTableNotFound or a store failure
func (e *Engine) Move(ctx context.Context, s Scope, participantID string, from, to SeatAddress) (*AssignmentResult, error) {
	return run(ctx, e, types.ActionMoveSeat, s,
		func(ctx context.Context, s Scope) (*AssignmentResult, error) {
			return e.placer.Move(ctx, s, participantID, from, to)
		},
		func(r *AssignmentResult) outcome {
			if r == nil {
				return outcome{noop: true}
			}

			return outcome{
				details: map[string]any{
					"participant": r.ParticipantID,
					"from":        r.From.String(),
					"to":          r.To.String(),
				},
				results: []AssignmentResult{*r},
			}
		})
}

// BustOut eliminates a participant and releases their seat.
//
// Busting an unseated participant is a no-op returning (nil, nil).
//
// Returns:
//   - *SeatRef: The released seat, or nil for a no-op
//   - error: ErrParticipantNotFound or a store failure
func (e *Engine) BustOut(ctx context.Context, s Scope, participantID string) (*SeatRef, error) {
	return run(ctx, e, types.ActionBustOut, s,
		func(ctx context.Context, s Scope) (*SeatRef, error) {
			return e.placer.BustOut(ctx, s, participantID)
		},
		func(ref *SeatRef) outcome {
			if ref == nil {
				return outcome{noop: true}
			}

			return outcome{details: map[string]any{"participant": participantID, "seat": ref.String()}}
		})
}
