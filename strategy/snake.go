package strategy

import (
	"fmt"
	"math"
	"sort"

	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/types"
)

// DraftPlan is a Plan plus the balance report of a snake draft.
type DraftPlan struct {
	Plan
	Report types.DraftReport
}

// PlanSnakeDraft reseats active participants so chip stacks are spread evenly.
//
// The algorithm:
//  1. Stable-sort participants by chips, descending (ties keep input order)
//  2. Shuffle the open-table order once for the whole draft
//  3. Walk the sorted list with a snake pointer over that order: forward across
//     all tables, then backward, clamping at the ends (0,1,2,2,1,0,0,1,...)
//  4. Track count, chip sum and top-25%/middle-50%/bottom-25% band counts per table
//  5. Assign each table's draftees to a random permutation of its seat indices
//
// Results are reported in draft order, highest stack first.
//
// A draft whose table sizes differ by more than one still succeeds; the report
// carries Balanced=false and a warning.
//
// Parameters:
//   - participants: Candidates; only status active participants are drafted
//   - tables: Tables of the partition; only open ones receive participants
//   - rng: Randomness source
//
// Returns:
//   - *DraftPlan: New layout, results and balance report
//   - error: types.ErrNoActiveParticipants, types.ErrNoOpenTables or types.ErrInsufficientSeats
func PlanSnakeDraft(participants []types.Participant, tables []types.Table, rng types.Randomizer) (*DraftPlan, error) {
	active := make([]types.Participant, 0, len(participants))
	for i := range participants {
		if participants[i].IsActive() {
			active = append(active, participants[i])
		}
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: nothing to draft", types.ErrNoActiveParticipants)
	}

	open := openTables(tables)
	if len(open) == 0 {
		return nil, errNoOpenTables()
	}
	n, k := len(active), len(open)
	if seats := totalSeats(open); seats < n {
		return nil, errInsufficientSeats(n, seats, k)
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Chips > active[j].Chips
	})

	top25Index := int(math.Ceil(float64(n) * 0.25))
	bottom25Index := int(math.Floor(float64(n) * 0.75))

	order := random.Perm(rng, k)
	drafted := make([]int, k)
	tableOf := make([]int, n)
	stats := make([]types.TableDraftStats, k)
	for i := range open {
		stats[i] = types.TableDraftStats{TableID: open[i].ID, TableNumber: open[i].TableNumber}
	}

	w := &snakeWalker{size: k, dir: 1}
	for i := range active {
		ti := order[w.pos]
		for drafted[ti] >= len(open[ti].Seats) {
			w.step()
			ti = order[w.pos]
		}
		drafted[ti]++
		tableOf[i] = ti

		st := &stats[ti]
		st.Count++
		st.ChipSum += active[i].Chips
		switch {
		case i < top25Index:
			st.Top++
		case i >= bottom25Index:
			st.Bottom++
		default:
			st.Middle++
		}

		w.step()
	}

	seatOrders := make([][]int, k)
	for ti := range open {
		open[ti].Seats = types.NewEmptySeats(len(open[ti].Seats))
		seatOrders[ti] = random.Perm(rng, len(open[ti].Seats))
	}

	dp := &DraftPlan{}
	dp.Results = make([]types.AssignmentResult, 0, n)
	filled := make([]int, k)
	for i := range active {
		ti := tableOf[i]
		t := &open[ti]
		idx := seatOrders[ti][filled[ti]]
		filled[ti]++
		t.Seats[idx] = types.OccupiedBy(active[i].ID)
		dp.Results = append(dp.Results, result(&active[i], t, idx))
	}
	dp.Tables = open

	lo, hi := countRange(stats)
	dp.Report = types.DraftReport{
		Results:  dp.Results,
		Tables:   stats,
		Balanced: hi-lo <= 1,
	}
	if !dp.Report.Balanced {
		dp.Report.Warning = fmt.Sprintf("draft is not perfectly balanced: table sizes range from %d to %d", lo, hi)
	}

	return dp, nil
}

// Spread returns max minus min table count of the report.
func Spread(r *types.DraftReport) int {
	lo, hi := countRange(r.Tables)
	return hi - lo
}

func countRange(stats []types.TableDraftStats) (lo, hi int) {
	for i, st := range stats {
		if i == 0 || st.Count < lo {
			lo = st.Count
		}
		if st.Count > hi {
			hi = st.Count
		}
	}

	return lo, hi
}

// snakeWalker moves a boustrophedon pointer over [0, size), clamping at the ends.
type snakeWalker struct {
	size int
	pos  int
	dir  int
}

func (w *snakeWalker) step() {
	next := w.pos + w.dir
	if next < 0 || next >= w.size {
		w.dir = -w.dir
		return
	}
	w.pos = next
}
