package types

import (
	"strings"
	"time"
)

// AllPartitions is the reserved partition token selecting every partition of an owner.
const AllPartitions = "ALL"

// DatePartitionPrefix prefixes synthetic partition tokens derived from a calendar
// date ("date:2006-01-02"). Such a token selects every partition of the owner whose
// Date matches.
const DatePartitionPrefix = "date:"

// dateLayout is the calendar date layout used by partitions and date tokens.
const dateLayout = "2006-01-02"

// Partition is a tournament: an isolated scope owning its own tables and participants.
type Partition struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	Name    string `json:"name"`

	// Date is the tournament day (YYYY-MM-DD), used by date-derived aggregate views.
	Date string `json:"date,omitempty"`
}

// Scope addresses records by (owner, partition).
//
// A scope whose PartitionID is AllPartitions or a date token is an aggregate view:
// it may be read through, but writes always target a concrete partition.
type Scope struct {
	OwnerID     string `json:"ownerId"`
	PartitionID string `json:"partitionId"`
}

// NewScope returns a scope for the given owner and partition token.
func NewScope(ownerID, partitionID string) Scope {
	return Scope{OwnerID: ownerID, PartitionID: partitionID}
}

// DateScope returns the aggregate scope covering partitions held on the given day.
func DateScope(ownerID string, day time.Time) Scope {
	return Scope{OwnerID: ownerID, PartitionID: DatePartitionPrefix + day.Format(dateLayout)}
}

// IsAggregate reports whether the scope is a cross-partition view.
func (s Scope) IsAggregate() bool {
	if s.PartitionID == AllPartitions {
		return true
	}
	_, ok := s.Date()

	return ok
}

// Date returns the calendar date of a date-derived token.
//
// Returns:
//   - string: Date in YYYY-MM-DD form ("" if not a date token)
//   - bool: true if the partition id is a well-formed date token
func (s Scope) Date() (string, bool) {
	if !strings.HasPrefix(s.PartitionID, DatePartitionPrefix) {
		return "", false
	}
	day := strings.TrimPrefix(s.PartitionID, DatePartitionPrefix)
	if _, err := time.Parse(dateLayout, day); err != nil {
		return "", false
	}

	return day, true
}

// WithPartition returns a copy of the scope pointing at another partition.
func (s Scope) WithPartition(partitionID string) Scope {
	s.PartitionID = partitionID
	return s
}

// Valid reports whether both owner and partition are set.
func (s Scope) Valid() bool {
	return s.OwnerID != "" && s.PartitionID != ""
}

// String returns "owner/partition".
func (s Scope) String() string {
	return s.OwnerID + "/" + s.PartitionID
}
