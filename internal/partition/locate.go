package partition

import (
	"errors"

	"github.com/arloliu/seating/types"
)

// LocateTable finds which partition holds a table.
//
// The caller's partition is checked first (when it is concrete), then every
// partition of the owner. A caller context that is stale or an aggregate view
// still finds the table.
//
// Parameters:
//   - r: Store reader (snapshot or transaction)
//   - s: Caller scope
//   - tableID: Table to find
//
// Returns:
//   - types.Scope: Concrete scope holding the table
//   - []byte: Raw table record
//   - error: types.ErrTableNotFound if no partition holds it
func LocateTable(r types.Reader, s types.Scope, tableID string) (types.Scope, []byte, error) {
	found, raw, err := locate(r, s, func(scope types.Scope) string { return TablePath(scope, tableID) })
	if errors.Is(err, types.ErrNotFound) {
		return types.Scope{}, nil, types.ErrTableNotFound
	}

	return found, raw, err
}

// LocateParticipant finds which partition holds a participant.
//
// Returns types.ErrParticipantNotFound if no partition of the owner holds it.
func LocateParticipant(r types.Reader, s types.Scope, participantID string) (types.Scope, []byte, error) {
	found, raw, err := locate(r, s, func(scope types.Scope) string { return ParticipantPath(scope, participantID) })
	if errors.Is(err, types.ErrNotFound) {
		return types.Scope{}, nil, types.ErrParticipantNotFound
	}

	return found, raw, err
}

func locate(r types.Reader, s types.Scope, path func(types.Scope) string) (types.Scope, []byte, error) {
	if !s.IsAggregate() {
		raw, err := r.Get(path(s))
		if err == nil {
			return s, raw, nil
		}
		if !errors.Is(err, types.ErrNotFound) {
			return types.Scope{}, nil, err
		}
	}

	ids, err := AllOf(s.OwnerID).Partitions(r)
	if err != nil {
		return types.Scope{}, nil, err
	}
	for _, id := range ids {
		if id == s.PartitionID {
			continue
		}
		candidate := s.WithPartition(id)
		raw, err := r.Get(path(candidate))
		if err == nil {
			return candidate, raw, nil
		}
		if !errors.Is(err, types.ErrNotFound) {
			return types.Scope{}, nil, err
		}
	}

	return types.Scope{}, nil, types.ErrNotFound
}
