package strategy

import (
	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/types"
)

// PlanRebalance reseats every given participant across the open tables.
//
// The algorithm:
//  1. Shuffle the participants (Fisher-Yates)
//  2. Deal them round-robin across the open tables (participant i goes to table
//     i mod k, skipping tables already at capacity)
//  3. Shuffle each table's seat indices and assign its participants in that order
//
// Every open table is rewritten; seats not dealt to anyone become empty.
//
// Parameters:
//   - participants: Participants to seat (typically every active participant)
//   - tables: Tables of the partition; only open ones receive participants
//   - rng: Randomness source
//
// Returns:
//   - *Plan: New layout of every open table and one result per participant
//   - error: types.ErrNoOpenTables or types.ErrInsufficientSeats, with counts
//
// Example:
//
//	plan, err := strategy.PlanRebalance(active, tables, random.New())
//	if errors.Is(err, types.ErrInsufficientSeats) {
//	    // open another table first
//	}
func PlanRebalance(participants []types.Participant, tables []types.Table, rng types.Randomizer) (*Plan, error) {
	open := openTables(tables)
	if len(open) == 0 {
		return nil, errNoOpenTables()
	}
	if seats := totalSeats(open); seats < len(participants) {
		return nil, errInsufficientSeats(len(participants), seats, len(open))
	}

	shuffled := make([]types.Participant, len(participants))
	copy(shuffled, participants)
	random.Shuffle(rng, shuffled)

	// Deal round-robin; a full table is skipped so mixed seat counts still fit.
	buckets := make([][]int, len(open))
	next := 0
	for i := range shuffled {
		for len(buckets[next]) >= len(open[next].Seats) {
			next = (next + 1) % len(open)
		}
		buckets[next] = append(buckets[next], i)
		next = (next + 1) % len(open)
	}

	plan := &Plan{Results: make([]types.AssignmentResult, 0, len(participants))}
	for ti := range open {
		t := &open[ti]
		t.Seats = types.NewEmptySeats(len(t.Seats))
		order := random.Perm(rng, len(t.Seats))
		for j, pi := range buckets[ti] {
			p := &shuffled[pi]
			t.Seats[order[j]] = types.OccupiedBy(p.ID)
			plan.Results = append(plan.Results, result(p, t, order[j]))
		}
	}
	plan.Tables = open

	return plan, nil
}
