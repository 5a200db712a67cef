package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// TableStatus is the lifecycle status of a physical table.
//
// Tables progress through:
//
//	TableStandby → TableOpen → TableStandby | deleted
//
// Only open tables receive participants from placement algorithms.
type TableStatus string

const (
	// TableStandby indicates the table exists but is not dealing.
	TableStandby TableStatus = "standby"

	// TableOpen indicates the table is dealing and accepts seat assignments.
	TableOpen TableStatus = "open"

	// TableClosed indicates the table has been taken out of play.
	TableClosed TableStatus = "closed"
)

// Valid reports whether the status is a known value.
func (s TableStatus) Valid() bool {
	switch s {
	case TableStandby, TableOpen, TableClosed:
		return true
	default:
		return false
	}
}

// Seat is one slot of a table's seat sequence.
//
// A seat is either empty or occupied by exactly one participant id. The zero
// value is an empty seat. Seats encode as JSON null when empty and as the
// participant id string when occupied.
type Seat struct {
	occupant string
}

// EmptySeat returns an unoccupied seat.
func EmptySeat() Seat {
	return Seat{}
}

// OccupiedBy returns a seat holding the given participant id.
// An empty id yields an empty seat.
func OccupiedBy(participantID string) Seat {
	return Seat{occupant: participantID}
}

// IsEmpty reports whether no participant holds the seat.
func (s Seat) IsEmpty() bool {
	return s.occupant == ""
}

// Occupant returns the participant id holding the seat.
//
// Returns:
//   - string: Participant id ("" when empty)
//   - bool: true if the seat is occupied
func (s Seat) Occupant() (string, bool) {
	return s.occupant, s.occupant != ""
}

// HeldBy reports whether the seat is occupied by the given participant.
func (s Seat) HeldBy(participantID string) bool {
	return participantID != "" && s.occupant == participantID
}

// MarshalJSON encodes an empty seat as null and an occupied seat as its id.
func (s Seat) MarshalJSON() ([]byte, error) {
	if s.IsEmpty() {
		return []byte("null"), nil
	}

	return json.Marshal(s.occupant)
}

// UnmarshalJSON decodes null (or "") as empty and a string as an occupant id.
func (s *Seat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		s.occupant = ""
		return nil
	}

	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("seat must be null or a participant id: %w", err)
	}
	s.occupant = id

	return nil
}

// NewEmptySeats returns a seat sequence of length n with every seat empty.
func NewEmptySeats(n int) []Seat {
	if n < 0 {
		n = 0
	}

	return make([]Seat, n)
}

// Table is a physical table on the tournament floor.
//
// Invariants maintained by every mutating operation:
//   - Seats[i] is empty or holds a participant whose Location points at this
//     table and seat number i+1
//   - a participant id appears in at most one seat across a partition
//   - Seats is never shortened past an occupied seat
type Table struct {
	// ID is the repository-assigned identifier.
	ID string `json:"id"`

	// OwnerID is the tenant owning the table.
	OwnerID string `json:"ownerId"`

	// PartitionID is the tournament the table currently belongs to.
	// Tables may be reassigned between partitions after creation.
	PartitionID string `json:"partitionId,omitempty"`

	// TableNumber orders tables for display and is unique within a partition.
	TableNumber int `json:"tableNumber"`

	// Name is an optional display label.
	Name string `json:"name,omitempty"`

	// Seats is the fixed-length seat sequence (length = configured max seats).
	Seats []Seat `json:"seats"`

	// Status is the table lifecycle status.
	Status TableStatus `json:"status"`

	// Position is a UI layout hint, opaque to the engine.
	Position json.RawMessage `json:"position,omitempty"`

	// BorderColor is display metadata, opaque to the engine.
	BorderColor string `json:"borderColor,omitempty"`

	// DealerID is the assigned dealer, opaque to the engine.
	DealerID string `json:"dealerId,omitempty"`
}

// DisplayName returns Name, or "T{TableNumber}" when no name is set.
func (t *Table) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}

	return "T" + strconv.Itoa(t.TableNumber)
}

// IsOpen reports whether the table accepts placements.
func (t *Table) IsOpen() bool {
	return t.Status == TableOpen
}

// OccupiedCount returns the number of occupied seats.
func (t *Table) OccupiedCount() int {
	n := 0
	for _, s := range t.Seats {
		if !s.IsEmpty() {
			n++
		}
	}

	return n
}

// EmptySeatIndices returns the 0-based indices of empty seats in seat order.
func (t *Table) EmptySeatIndices() []int {
	idx := make([]int, 0, len(t.Seats))
	for i, s := range t.Seats {
		if s.IsEmpty() {
			idx = append(idx, i)
		}
	}

	return idx
}

// SeatIndexOf returns the first seat index held by the participant, or -1.
func (t *Table) SeatIndexOf(participantID string) int {
	for i, s := range t.Seats {
		if s.HeldBy(participantID) {
			return i
		}
	}

	return -1
}

// Vacate empties every seat held by the participant and returns how many were cleared.
//
// Clearing every occurrence rather than the first keeps the table consistent even
// if a duplicate entry slipped in through an earlier bulk write.
func (t *Table) Vacate(participantID string) int {
	cleared := 0
	for i, s := range t.Seats {
		if s.HeldBy(participantID) {
			t.Seats[i] = EmptySeat()
			cleared++
		}
	}

	return cleared
}

// ValidSeatIndex reports whether idx addresses a seat of this table.
func (t *Table) ValidSeatIndex(idx int) bool {
	return idx >= 0 && idx < len(t.Seats)
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	c := t
	c.Seats = append([]Seat(nil), t.Seats...)
	if t.Position != nil {
		c.Position = append(json.RawMessage(nil), t.Position...)
	}

	return c
}

// LocationOf returns the participant location for seat index idx of this table.
func (t *Table) LocationOf(idx int) *SeatLocation {
	return &SeatLocation{TableID: t.ID, TableNumber: t.TableNumber, SeatNumber: idx + 1}
}
