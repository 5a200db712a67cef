package strategy

import (
	"github.com/arloliu/seating/types"
)

// Plan is the outcome of a planner: the new seat layout of every open table and
// one result per placed participant.
//
// Tables are full replacements; a table absent from Tables is left untouched.
type Plan struct {
	// Tables holds the rewritten open tables in table-number order.
	Tables []types.Table

	// Results holds one entry per placed participant, in placement order.
	Results []types.AssignmentResult
}

// openTables returns clones of the open tables, preserving input order.
func openTables(tables []types.Table) []types.Table {
	open := make([]types.Table, 0, len(tables))
	for i := range tables {
		if tables[i].IsOpen() {
			open = append(open, tables[i].Clone())
		}
	}

	return open
}

func totalSeats(tables []types.Table) int {
	n := 0
	for i := range tables {
		n += len(tables[i].Seats)
	}

	return n
}

func seatRef(t *types.Table, idx int) types.SeatRef {
	return types.SeatRef{TableID: t.ID, TableNumber: t.TableNumber, SeatIndex: idx}
}

func result(p *types.Participant, t *types.Table, idx int) types.AssignmentResult {
	return types.AssignmentResult{
		ParticipantID:   p.ID,
		ParticipantName: p.Name,
		From:            p.Ref(),
		To:              seatRef(t, idx),
	}
}
