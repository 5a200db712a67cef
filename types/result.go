package types

import "fmt"

// SeatRef identifies a seat for reporting purposes.
type SeatRef struct {
	TableID     string `json:"tableId"`
	TableNumber int    `json:"tableNumber"`

	// SeatIndex is 0-based.
	SeatIndex int `json:"seatIndex"`
}

// SeatNumber returns the 1-based seat number.
func (r SeatRef) SeatNumber() int {
	return r.SeatIndex + 1
}

// String returns "T{table}-S{seat}".
func (r SeatRef) String() string {
	return fmt.Sprintf("T%d-S%d", r.TableNumber, r.SeatNumber())
}

// SeatAddress addresses a seat for a move request.
type SeatAddress struct {
	TableID string `json:"tableId"`

	// SeatIndex is 0-based.
	SeatIndex int `json:"seatIndex"`
}

// AssignmentResult reports one participant placement. It is returned to the caller
// for audit and notification and never stored.
type AssignmentResult struct {
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`

	// From is the prior seat, nil when the participant was unseated.
	From *SeatRef `json:"from,omitempty"`

	To SeatRef `json:"to"`
}

// BalancingResult reports one participant relocated off a closing or deleted table.
type BalancingResult = AssignmentResult

// TableDraftStats summarizes one table after a chip-balanced draft.
type TableDraftStats struct {
	TableID     string `json:"tableId"`
	TableNumber int    `json:"tableNumber"`
	Count       int    `json:"count"`
	ChipSum     int64  `json:"chipSum"`

	// Top, Middle and Bottom count drafted participants per chip band
	// (top 25%, middle 50%, bottom 25% of the sorted field).
	Top    int `json:"top"`
	Middle int `json:"middle"`
	Bottom int `json:"bottom"`
}

// DraftReport is the outcome of a chip-balanced snake draft.
type DraftReport struct {
	Results []AssignmentResult `json:"results"`
	Tables  []TableDraftStats  `json:"tables"`

	// Balanced is true when per-table counts differ by at most one.
	Balanced bool `json:"balanced"`

	// Warning is set when the draft committed but is not perfectly balanced.
	Warning string `json:"warning,omitempty"`
}

// Redistribution is the outcome of vacating a table on close or delete.
type Redistribution struct {
	Results []BalancingResult `json:"results"`

	// Summary holds one human-readable "from -> to" line per result, for logging.
	Summary []string `json:"summary"`
}
