package types

// ParticipantStatus is a participant's standing in the tournament.
type ParticipantStatus string

const (
	// ParticipantActive indicates the participant is still playing.
	ParticipantActive ParticipantStatus = "active"

	// ParticipantBusted indicates the participant has been eliminated.
	ParticipantBusted ParticipantStatus = "busted"

	// ParticipantNoShow indicates the participant registered but did not arrive.
	ParticipantNoShow ParticipantStatus = "no-show"
)

// Valid reports whether the status is a known value.
func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantActive, ParticipantBusted, ParticipantNoShow:
		return true
	default:
		return false
	}
}

// SeatLocation is a participant's denormalized seat pointer.
type SeatLocation struct {
	// TableID identifies the table regardless of its current partition.
	TableID string `json:"tableId"`

	// TableNumber mirrors the table's number for display.
	TableNumber int `json:"tableNumber"`

	// SeatNumber is the 1-based seat number.
	SeatNumber int `json:"seatNumber"`
}

// SeatIndex returns the 0-based seat index.
func (l SeatLocation) SeatIndex() int {
	return l.SeatNumber - 1
}

// Participant is a registered tournament entrant.
//
// Location must agree with exactly one table's seat sequence in the same commit,
// or be nil when the participant is unseated.
type Participant struct {
	ID          string            `json:"id"`
	OwnerID     string            `json:"ownerId"`
	PartitionID string            `json:"partitionId"`
	Name        string            `json:"name"`
	Chips       int64             `json:"chips"`
	Status      ParticipantStatus `json:"status"`
	Location    *SeatLocation     `json:"location,omitempty"`
}

// IsSeated reports whether the participant currently holds a seat.
func (p *Participant) IsSeated() bool {
	return p.Location != nil
}

// IsActive reports whether the participant is still playing.
func (p *Participant) IsActive() bool {
	return p.Status == ParticipantActive
}

// Ref returns the participant's current seat as a SeatRef, or nil when unseated.
func (p *Participant) Ref() *SeatRef {
	if p.Location == nil {
		return nil
	}

	return &SeatRef{
		TableID:     p.Location.TableID,
		TableNumber: p.Location.TableNumber,
		SeatIndex:   p.Location.SeatIndex(),
	}
}
