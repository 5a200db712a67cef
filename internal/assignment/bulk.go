package assignment

import (
	"context"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/internal/repository"
	"github.com/arloliu/seating/strategy"
	"github.com/arloliu/seating/types"
)

// RebalanceAll reseats participants round-robin across the partition's open tables.
//
// Every open table is rewritten. Participants previously seated at an open table
// but not part of the input lose their seat.
//
// Parameters:
//   - ctx: Context for the store calls
//   - s: Concrete partition scope
//   - participantIDs: Participants to seat; empty means every active participant
//
// Returns:
//   - []types.AssignmentResult: One result per seated participant
//   - error: Precondition failure (no open tables, insufficient seats) or store error
func (e *Engine) RebalanceAll(ctx context.Context, s types.Scope, participantIDs []string) ([]types.AssignmentResult, error) {
	if err := partition.RequireConcrete(s); err != nil {
		return nil, err
	}
	snap, err := e.load(ctx, s)
	if err != nil {
		return nil, err
	}
	participants, err := selectParticipants(snap, participantIDs, snap.ActiveParticipants)
	if err != nil {
		return nil, err
	}

	plan, err := strategy.PlanRebalance(participants, snap.Tables, e.Randomizer)
	if err != nil {
		return nil, err
	}
	if err := e.apply(ctx, snap, plan); err != nil {
		return nil, err
	}

	e.Metrics.RecordParticipantsPlaced(types.ActionRebalanceAll, len(plan.Results))
	e.Logger.Info("rebalanced all participants",
		"scope", s.String(), "participants", len(plan.Results), "tables", len(plan.Tables))

	return plan.Results, nil
}

// FillWaiting seats unseated participants without moving anyone already seated.
//
// Parameters:
//   - ctx: Context for the store calls
//   - s: Concrete partition scope
//   - participantIDs: Participants to seat; empty means every active unseated participant
//
// Returns:
//   - []types.AssignmentResult: One result per seated participant
//   - error: types.ErrInsufficientEmptySeats, types.ErrAlreadySeated or a store error
func (e *Engine) FillWaiting(ctx context.Context, s types.Scope, participantIDs []string) ([]types.AssignmentResult, error) {
	if err := partition.RequireConcrete(s); err != nil {
		return nil, err
	}
	snap, err := e.load(ctx, s)
	if err != nil {
		return nil, err
	}
	waiting, err := selectParticipants(snap, participantIDs, snap.Unseated)
	if err != nil {
		return nil, err
	}
	if len(waiting) == 0 {
		return nil, nil
	}

	plan, err := strategy.PlanWaitingFill(waiting, snap.Tables, e.Randomizer)
	if err != nil {
		return nil, err
	}
	if err := e.apply(ctx, snap, plan); err != nil {
		return nil, err
	}

	e.Metrics.RecordParticipantsPlaced(types.ActionFillWaiting, len(plan.Results))
	e.Logger.Info("seated waiting participants", "scope", s.String(), "participants", len(plan.Results))

	return plan.Results, nil
}

// SnakeDraft reseats every active participant with a chip-balanced snake draft.
//
// A draft that commits with table sizes differing by more than one is not an
// error; the report carries Balanced=false and a warning.
//
// Returns:
//   - *types.DraftReport: Results, per-table stats and the balance verdict
//   - error: Precondition failure or store error
func (e *Engine) SnakeDraft(ctx context.Context, s types.Scope) (*types.DraftReport, error) {
	if err := partition.RequireConcrete(s); err != nil {
		return nil, err
	}
	snap, err := e.load(ctx, s)
	if err != nil {
		return nil, err
	}

	dp, err := strategy.PlanSnakeDraft(snap.Participants, snap.Tables, e.Randomizer)
	if err != nil {
		return nil, err
	}
	if err := e.apply(ctx, snap, &dp.Plan); err != nil {
		return nil, err
	}

	e.Metrics.RecordParticipantsPlaced(types.ActionSnakeDraft, len(dp.Results))
	if !dp.Report.Balanced {
		e.Metrics.RecordDraftImbalance(strategy.Spread(&dp.Report))
		e.Logger.Warn("snake draft committed unbalanced", "scope", s.String(), "warning", dp.Report.Warning)
	} else {
		e.Logger.Info("snake draft committed", "scope", s.String(), "participants", len(dp.Results))
	}

	return &dp.Report, nil
}

// apply commits a plan in one write batch.
//
// Besides the planned tables it writes:
//   - the new location of every placed participant
//   - a vacated seat on any non-planned table a placed participant used to hold,
//     including tables since reassigned to another partition
//   - a cleared location for participants evicted from a rewritten table,
//     wherever their record lives
func (e *Engine) apply(ctx context.Context, snap *repository.Snapshot, plan *strategy.Plan) error {
	tables := make(map[string]*types.Table, len(plan.Tables))
	planned := make(map[string]bool, len(plan.Tables))
	order := make([]string, 0, len(plan.Tables))
	for i := range plan.Tables {
		t := plan.Tables[i]
		tables[t.ID] = &t
		planned[t.ID] = true
		order = append(order, t.ID)
	}

	placed := make(map[string]*types.SeatLocation, len(plan.Results))
	for _, r := range plan.Results {
		placed[r.ParticipantID] = tables[r.To.TableID].LocationOf(r.To.SeatIndex)
	}

	// Stale seats on tables outside the plan (standby, closed, or moved to
	// another partition).
	for _, r := range plan.Results {
		if r.From == nil {
			continue
		}
		if planned[r.From.TableID] {
			continue
		}
		if _, seen := tables[r.From.TableID]; !seen {
			if old := snap.TableAnywhere(r.From.TableID); old != nil {
				c := old.Clone()
				tables[c.ID] = &c
				order = append(order, c.ID)
			}
		}
		if t, ok := tables[r.From.TableID]; ok {
			t.Vacate(r.ParticipantID)
		}
	}

	updated := make([]*types.Participant, 0, len(placed))
	for id, loc := range placed {
		p := snap.Participant(id)
		if p == nil {
			continue
		}
		c := *p
		c.Location = loc
		updated = append(updated, &c)
	}

	// Evictions: seated at a rewritten table before, nowhere in the plan now.
	for i := range plan.Tables {
		old := snap.Table(plan.Tables[i].ID)
		if old == nil {
			continue
		}
		for _, seat := range old.Seats {
			id, ok := seat.Occupant()
			if !ok {
				continue
			}
			if _, kept := placed[id]; kept {
				continue
			}
			if plan.Tables[i].SeatIndexOf(id) >= 0 {
				continue
			}
			p := snap.ParticipantAnywhere(id)
			if p == nil || p.Location == nil || p.Location.TableID != old.ID {
				continue
			}
			c := *p
			c.Location = nil
			updated = append(updated, &c)
		}
	}

	return e.Store.Batch(ctx, func(w types.Writer) error {
		for _, id := range order {
			if err := repository.PutTable(w, tables[id]); err != nil {
				return err
			}
		}
		for _, p := range updated {
			if err := repository.PutParticipant(w, p); err != nil {
				return err
			}
		}

		return nil
	})
}
