package strategy

import (
	"fmt"

	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/types"
)

// PlanWaitingFill seats unseated participants without disturbing anyone already seated.
//
// For each participant in input order the planner finds the lowest occupancy among
// open tables that still have an empty seat, picks uniformly among the tables tied
// at that minimum, then picks uniformly among that table's empty seats.
//
// Parameters:
//   - waiting: Unseated participants, seated in this order
//   - tables: Tables of the partition; only open ones receive participants
//   - rng: Randomness source
//
// Returns:
//   - *Plan: Layout of every open table and one result per participant
//   - error: types.ErrAlreadySeated, types.ErrNoOpenTables,
//     types.ErrInsufficientEmptySeats or types.ErrNoEmptySeats
func PlanWaitingFill(waiting []types.Participant, tables []types.Table, rng types.Randomizer) (*Plan, error) {
	for i := range waiting {
		if waiting[i].IsSeated() {
			return nil, fmt.Errorf("%w: %s is at %s", types.ErrAlreadySeated, waiting[i].Name, waiting[i].Ref())
		}
	}

	open := openTables(tables)
	if len(waiting) == 0 {
		return &Plan{Tables: open}, nil
	}
	if len(open) == 0 {
		return nil, errNoOpenTables()
	}

	occupied := make([]int, len(open))
	empty := 0
	for i := range open {
		occupied[i] = open[i].OccupiedCount()
		empty += len(open[i].Seats) - occupied[i]
	}
	if empty < len(waiting) {
		return nil, fmt.Errorf("%w: %d waiting participants, %d empty seats",
			types.ErrInsufficientEmptySeats, len(waiting), empty)
	}

	plan := &Plan{Tables: open, Results: make([]types.AssignmentResult, 0, len(waiting))}
	for i := range waiting {
		p := &waiting[i]

		candidates := leastOccupied(open, occupied)
		if len(candidates) == 0 {
			return nil, fmt.Errorf("%w: no table can take %s", types.ErrNoEmptySeats, p.Name)
		}
		ti := random.Pick(rng, candidates)
		t := &open[ti]

		seats := t.EmptySeatIndices()
		if len(seats) == 0 {
			return nil, fmt.Errorf("%w: table %s is full, cannot seat %s", types.ErrNoEmptySeats, t.DisplayName(), p.Name)
		}
		idx := random.Pick(rng, seats)
		t.Seats[idx] = types.OccupiedBy(p.ID)
		occupied[ti]++
		plan.Results = append(plan.Results, result(p, t, idx))
	}

	return plan, nil
}

// leastOccupied returns the indices of tables with free seats tied at the lowest count.
func leastOccupied(tables []types.Table, occupied []int) []int {
	best := -1
	var tied []int
	for i := range tables {
		if occupied[i] >= len(tables[i].Seats) {
			continue
		}
		switch {
		case best < 0 || occupied[i] < best:
			best = occupied[i]
			tied = append(tied[:0], i)
		case occupied[i] == best:
			tied = append(tied, i)
		}
	}

	return tied
}
