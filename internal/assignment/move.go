package assignment

import (
	"context"
	"fmt"

	"github.com/arloliu/seating/internal/repository"
	"github.com/arloliu/seating/types"
)

// Move moves one participant from one seat to another in a single transaction.
//
// Source and destination tables are located independently, so they may belong to
// different partitions of the owner. A move with from == to returns (nil, nil)
// without touching the store.
//
// Parameters:
//   - ctx: Context for the store call
//   - s: Caller scope (may be stale or an aggregate view)
//   - participantID: Participant to move
//   - from: Seat the participant holds now
//   - to: Destination seat; must be empty and on an open table
//
// Returns:
//   - *types.AssignmentResult: The move, or nil for a no-op
//   - error: types.ErrTableNotFound, types.ErrSeatOccupied, types.ErrSeatMismatch,
//     types.ErrInvalidSeat, types.ErrTableNotOpen or a store error
func (e *Engine) Move(ctx context.Context, s types.Scope, participantID string, from, to types.SeatAddress) (*types.AssignmentResult, error) {
	if from == to {
		return nil, nil
	}
	if participantID == "" || from.TableID == "" || to.TableID == "" {
		return nil, fmt.Errorf("%w: participant, source and destination are required", types.ErrInvalidArgument)
	}
	if from.SeatIndex < 0 || to.SeatIndex < 0 {
		return nil, fmt.Errorf("%w: negative seat index", types.ErrInvalidSeat)
	}

	var res *types.AssignmentResult
	err := e.Store.Update(ctx, func(tx types.Txn) error {
		res = nil

		src, err := repository.FindTable(tx, s, from.TableID)
		if err != nil {
			return fmt.Errorf("source table %s: %w", from.TableID, err)
		}
		dst := src
		if to.TableID != from.TableID {
			dst, err = repository.FindTable(tx, s, to.TableID)
			if err != nil {
				return fmt.Errorf("destination table %s: %w", to.TableID, err)
			}
		}

		if !src.ValidSeatIndex(from.SeatIndex) {
			return fmt.Errorf("%w: seat %d on table %s with %d seats", types.ErrInvalidSeat, from.SeatIndex+1, src.DisplayName(), len(src.Seats))
		}
		if !dst.ValidSeatIndex(to.SeatIndex) {
			return fmt.Errorf("%w: seat %d on table %s with %d seats", types.ErrInvalidSeat, to.SeatIndex+1, dst.DisplayName(), len(dst.Seats))
		}
		if !src.Seats[from.SeatIndex].HeldBy(participantID) {
			return fmt.Errorf("%w: %s seat %d", types.ErrSeatMismatch, src.DisplayName(), from.SeatIndex+1)
		}
		if occupant, taken := dst.Seats[to.SeatIndex].Occupant(); taken {
			return fmt.Errorf("%w: %s seat %d holds %s", types.ErrSeatOccupied, dst.DisplayName(), to.SeatIndex+1, occupant)
		}
		if !dst.IsOpen() {
			return fmt.Errorf("%w: %s is %s", types.ErrTableNotOpen, dst.DisplayName(), dst.Status)
		}

		p, err := repository.FindParticipant(tx, s.WithPartition(src.PartitionID), participantID)
		if err != nil {
			return err
		}

		src.Seats[from.SeatIndex] = types.EmptySeat()
		dst.Seats[to.SeatIndex] = types.OccupiedBy(participantID)
		p.Location = dst.LocationOf(to.SeatIndex)

		if err := repository.PutTable(tx, src); err != nil {
			return err
		}
		if dst != src {
			if err := repository.PutTable(tx, dst); err != nil {
				return err
			}
		}
		if err := repository.PutParticipant(tx, p); err != nil {
			return err
		}

		res = &types.AssignmentResult{
			ParticipantID:   p.ID,
			ParticipantName: p.Name,
			From:            &types.SeatRef{TableID: src.ID, TableNumber: src.TableNumber, SeatIndex: from.SeatIndex},
			To:              types.SeatRef{TableID: dst.ID, TableNumber: dst.TableNumber, SeatIndex: to.SeatIndex},
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	e.Metrics.RecordParticipantsPlaced(types.ActionMoveSeat, 1)
	e.Logger.Info("moved participant", "participant", participantID, "from", res.From.String(), "to", res.To.String())

	return res, nil
}

// BustOut marks a participant busted and vacates every seat holding them.
//
// The participant's partition tables are scanned inside the transaction so that a
// duplicated seat entry is cleared as well. Busting an unseated participant is a
// no-op that returns (nil, nil) and writes nothing.
//
// Returns:
//   - *types.SeatRef: The seat that was vacated, or nil for a no-op
//   - error: types.ErrParticipantNotFound or a store error
func (e *Engine) BustOut(ctx context.Context, s types.Scope, participantID string) (*types.SeatRef, error) {
	if participantID == "" {
		return nil, fmt.Errorf("%w: participant id is required", types.ErrInvalidArgument)
	}

	var vacated *types.SeatRef
	err := e.Store.Update(ctx, func(tx types.Txn) error {
		vacated = nil

		p, err := repository.FindParticipant(tx, s, participantID)
		if err != nil {
			return err
		}

		holding, err := repository.TablesHolding(tx, s.WithPartition(p.PartitionID), p)
		if err != nil {
			return err
		}
		if len(holding) == 0 && !p.IsSeated() {
			return nil
		}

		vacated = p.Ref()
		for _, t := range holding {
			if vacated == nil {
				vacated = &types.SeatRef{TableID: t.ID, TableNumber: t.TableNumber, SeatIndex: t.SeatIndexOf(p.ID)}
			}
			t.Vacate(p.ID)
			if err := repository.PutTable(tx, t); err != nil {
				return err
			}
		}

		p.Status = types.ParticipantBusted
		p.Location = nil

		return repository.PutParticipant(tx, p)
	})
	if err != nil {
		return nil, err
	}

	if vacated == nil {
		e.Logger.Debug("bust-out of unseated participant ignored", "participant", participantID)
		return nil, nil
	}
	e.Logger.Info("participant busted", "participant", participantID, "seat", vacated.String())

	return vacated, nil
}
