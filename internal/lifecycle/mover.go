package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/internal/repository"
	"github.com/arloliu/seating/types"
)

// Disposition is what happens to a vacated table.
type Disposition int

const (
	// DispositionClose resets the table to standby with empty seats.
	DispositionClose Disposition = iota

	// DispositionDelete removes the table record.
	DispositionDelete
)

// String returns the disposition name.
func (d Disposition) String() string {
	if d == DispositionDelete {
		return "delete"
	}

	return "close"
}

// Close vacates a table and returns it to standby with a fresh empty seat array.
//
// Seated participants are relocated to the other open tables of the table's
// partition. When no destination has room, nothing is written.
//
// Parameters:
//   - ctx: Context for the store call
//   - s: Caller scope; may be stale or an aggregate view
//   - tableID: Table to close
//
// Returns:
//   - *types.Redistribution: One result per relocated participant (empty for an empty table)
//   - error: types.ErrTableNotFound, types.ErrNoRelocationTarget or a store error
func (m *Manager) Close(ctx context.Context, s types.Scope, tableID string) (*types.Redistribution, error) {
	return m.vacate(ctx, s, tableID, DispositionClose)
}

// Delete vacates a table like Close and then removes its record.
func (m *Manager) Delete(ctx context.Context, s types.Scope, tableID string) (*types.Redistribution, error) {
	return m.vacate(ctx, s, tableID, DispositionDelete)
}

// vacate relocates every participant seated at tableID and applies the
// disposition, all in one transaction.
func (m *Manager) vacate(ctx context.Context, s types.Scope, tableID string, d Disposition) (*types.Redistribution, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}
	if err := partition.ValidateID("table", tableID); err != nil {
		return nil, err
	}

	var out *types.Redistribution
	err := m.Store.Update(ctx, func(tx types.Txn) error {
		out = &types.Redistribution{Results: []types.BalancingResult{}, Summary: []string{}}

		src, err := repository.FindTable(tx, s, tableID)
		if err != nil {
			return err
		}
		home := s.WithPartition(src.PartitionID)

		if src.OccupiedCount() > 0 {
			if err := m.relocate(tx, home, src, out); err != nil {
				return err
			}
		}

		if d == DispositionDelete {
			return repository.DeleteTable(tx, home, src.ID)
		}
		src.Status = types.TableStandby
		src.Seats = types.NewEmptySeats(len(src.Seats))

		return repository.PutTable(tx, src)
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("table vacated",
		"table", tableID, "disposition", d.String(), "relocated", len(out.Results))
	for _, line := range out.Summary {
		m.Logger.Debug("relocated participant", "move", line)
	}

	return out, nil
}

// relocate seats every occupant of src at the other open tables of the partition
// and writes the destination tables and participants. src itself is not written.
func (m *Manager) relocate(tx types.Txn, home types.Scope, src *types.Table, out *types.Redistribution) error {
	tables, err := repository.ListTables(tx, partition.ReadStrategyFor(home))
	if err != nil {
		return err
	}

	arena := newSeatArena(src.ID, tables)
	if arena.len() == 0 {
		return fmt.Errorf("%w: %s has no other open table in its partition",
			types.ErrNoRelocationTarget, src.DisplayName())
	}

	for idx, seat := range src.Seats {
		pid, ok := seat.Occupant()
		if !ok {
			continue
		}

		dst, dstIdx, err := arena.place(m.Randomizer, pid)
		if err != nil {
			return fmt.Errorf("%w: seat %d of %s", err, idx+1, src.DisplayName())
		}

		res := types.BalancingResult{
			ParticipantID: pid,
			From:          &types.SeatRef{TableID: src.ID, TableNumber: src.TableNumber, SeatIndex: idx},
			To:            types.SeatRef{TableID: dst.ID, TableNumber: dst.TableNumber, SeatIndex: dstIdx},
		}

		p, err := repository.FindParticipant(tx, home, pid)
		switch {
		case err == nil:
			p.Location = dst.LocationOf(dstIdx)
			if err := repository.PutParticipant(tx, p); err != nil {
				return err
			}
			res.ParticipantName = p.Name
		case errors.Is(err, types.ErrParticipantNotFound):
			// Seat held by a deleted participant; the seat still moves.
			m.Logger.Warn("relocating seat of unknown participant", "participant", pid)
			res.ParticipantName = pid
		default:
			return err
		}

		out.Results = append(out.Results, res)
		out.Summary = append(out.Summary,
			fmt.Sprintf("%s: %s -> %s", res.ParticipantName, res.From.String(), res.To.String()))
	}

	for _, t := range arena.touched() {
		if err := repository.PutTable(tx, t); err != nil {
			return err
		}
	}

	return nil
}

// seatArena tracks the occupancy of candidate destination tables while a single
// pass places participants, so one pass never over-fills a table.
type seatArena struct {
	tables   []*types.Table
	occupied []int
	dirty    []bool
}

func newSeatArena(excludeID string, tables []types.Table) *seatArena {
	a := &seatArena{}
	for i := range tables {
		t := &tables[i]
		if t.ID == excludeID || !t.IsOpen() {
			continue
		}
		a.tables = append(a.tables, t)
		a.occupied = append(a.occupied, t.OccupiedCount())
		a.dirty = append(a.dirty, false)
	}

	return a
}

func (a *seatArena) len() int {
	return len(a.tables)
}

// place seats pid at a random empty seat of a random least-occupied table. When
// that table has no empty seat, any table with room is used instead.
func (a *seatArena) place(rng types.Randomizer, pid string) (*types.Table, int, error) {
	i := random.Pick(rng, a.leastOccupied())
	if len(a.tables[i].EmptySeatIndices()) == 0 {
		withRoom := a.withRoom()
		if len(withRoom) == 0 {
			return nil, 0, types.ErrNoRelocationTarget
		}
		i = random.Pick(rng, withRoom)
	}

	t := a.tables[i]
	seat := random.Pick(rng, t.EmptySeatIndices())
	t.Seats[seat] = types.OccupiedBy(pid)
	a.occupied[i]++
	a.dirty[i] = true

	return t, seat, nil
}

func (a *seatArena) leastOccupied() []int {
	low := -1
	var idx []int
	for i, n := range a.occupied {
		switch {
		case low < 0 || n < low:
			low = n
			idx = append(idx[:0], i)
		case n == low:
			idx = append(idx, i)
		}
	}

	return idx
}

func (a *seatArena) withRoom() []int {
	var idx []int
	for i, t := range a.tables {
		if a.occupied[i] < len(t.Seats) {
			idx = append(idx, i)
		}
	}

	return idx
}

// touched returns the tables that received a participant.
func (a *seatArena) touched() []*types.Table {
	var out []*types.Table
	for i, t := range a.tables {
		if a.dirty[i] {
			out = append(out, t)
		}
	}

	return out
}
