package partition

import (
	"fmt"
	"strings"

	"github.com/arloliu/seating/types"
)

// Record kinds as they appear in store keys.
const (
	KindTable       = "t"
	KindParticipant = "u"
)

// ValidateScope checks that owner and partition ids can be embedded in a key.
func ValidateScope(s types.Scope) error {
	if !s.Valid() {
		return fmt.Errorf("%w: owner and partition are required", types.ErrInvalidArgument)
	}
	if err := validateSegment("owner", s.OwnerID); err != nil {
		return err
	}

	return validateSegment("partition", s.PartitionID)
}

// RequireConcrete validates s and rejects aggregate views, which are read-only.
func RequireConcrete(s types.Scope) error {
	if err := ValidateScope(s); err != nil {
		return err
	}
	if s.IsAggregate() {
		return fmt.Errorf("%w: %q is a read-only view", types.ErrAggregateScope, s.PartitionID)
	}

	return nil
}

// ValidateID checks a single record id.
func ValidateID(kind, id string) error {
	return validateSegment(kind, id)
}

func validateSegment(name, v string) error {
	if v == "" {
		return fmt.Errorf("%w: empty %s id", types.ErrInvalidArgument, name)
	}
	if strings.Contains(v, "/") {
		return fmt.Errorf("%w: %s id %q contains '/'", types.ErrInvalidArgument, name, v)
	}

	return nil
}

// OwnerPrefix is the prefix of every table and participant key of an owner.
func OwnerPrefix(ownerID string) string {
	return "o/" + ownerID + "/p/"
}

// PartitionsPrefix is the prefix of the owner's partition records.
func PartitionsPrefix(ownerID string) string {
	return "o/" + ownerID + "/partitions/"
}

// PartitionPath is the key of a partition record.
func PartitionPath(ownerID, partitionID string) string {
	return PartitionsPrefix(ownerID) + partitionID
}

// TablesPrefix is the prefix of every table key in a partition.
func TablesPrefix(s types.Scope) string {
	return OwnerPrefix(s.OwnerID) + s.PartitionID + "/" + KindTable + "/"
}

// TablePath is the key of a table record.
func TablePath(s types.Scope, tableID string) string {
	return TablesPrefix(s) + tableID
}

// ParticipantsPrefix is the prefix of every participant key in a partition.
func ParticipantsPrefix(s types.Scope) string {
	return OwnerPrefix(s.OwnerID) + s.PartitionID + "/" + KindParticipant + "/"
}

// ParticipantPath is the key of a participant record.
func ParticipantPath(s types.Scope, participantID string) string {
	return ParticipantsPrefix(s) + participantID
}

// Key is a parsed table or participant key.
type Key struct {
	Scope types.Scope
	Kind  string
	ID    string
}

// ParseKey splits a table or participant key into its parts.
//
// Returns:
//   - Key: Parsed key
//   - bool: false if key is not a table or participant key
func ParseKey(key string) (Key, bool) {
	// o/{owner}/p/{partition}/{kind}/{id}
	parts := strings.Split(key, "/")
	if len(parts) != 6 || parts[0] != "o" || parts[2] != "p" {
		return Key{}, false
	}
	if parts[4] != KindTable && parts[4] != KindParticipant {
		return Key{}, false
	}

	return Key{
		Scope: types.NewScope(parts[1], parts[3]),
		Kind:  parts[4],
		ID:    parts[5],
	}, true
}
