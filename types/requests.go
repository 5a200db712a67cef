package types

import "encoding/json"

// TableSpec describes a table to create. Zero fields take defaults.
type TableSpec struct {
	Name string `json:"name,omitempty"`

	// Seats is the seat count; 0 means the configured default.
	Seats int `json:"seats,omitempty"`

	Position    json.RawMessage `json:"position,omitempty"`
	BorderColor string          `json:"borderColor,omitempty"`
	DealerID    string          `json:"dealerId,omitempty"`
}

// TableUpdate changes display metadata. Nil fields are left unchanged.
type TableUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Position    json.RawMessage `json:"position,omitempty"`
	BorderColor *string         `json:"borderColor,omitempty"`
	DealerID    *string         `json:"dealerId,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u TableUpdate) Empty() bool {
	return u.Name == nil && u.Position == nil && u.BorderColor == nil && u.DealerID == nil
}

// ReassignReport is the outcome of moving tables to another partition.
type ReassignReport struct {
	// Moved lists tables now in the destination partition.
	Moved []string `json:"moved"`

	// Skipped lists tables whose current partition could not be determined.
	Skipped []string `json:"skipped,omitempty"`

	// Unchanged lists tables that already belonged to the destination.
	Unchanged []string `json:"unchanged,omitempty"`

	// Renumbered maps moved tables whose number was taken in the destination
	// to the number they were given there.
	Renumbered map[string]int `json:"renumbered,omitempty"`
}

// ParticipantSpec describes a participant to register.
type ParticipantSpec struct {
	Name  string `json:"name"`
	Chips int64  `json:"chips"`

	// Seat optionally seats the participant atomically with creation.
	Seat *SeatAddress `json:"seat,omitempty"`
}
