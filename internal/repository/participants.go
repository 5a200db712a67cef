package repository

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/types"
)

// GetParticipant reads a participant from exactly the given partition.
//
// Returns types.ErrParticipantNotFound if the partition does not hold it.
func GetParticipant(r types.Reader, s types.Scope, participantID string) (*types.Participant, error) {
	raw, err := r.Get(partition.ParticipantPath(s, participantID))
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrParticipantNotFound
	}
	if err != nil {
		return nil, err
	}
	p, err := decodeParticipant(raw)
	if err != nil {
		return nil, err
	}
	p.PartitionID = partition.ResolveParticipant(p, s.PartitionID)

	return p, nil
}

// FindParticipant reads a participant from whichever partition of the owner holds it.
func FindParticipant(r types.Reader, s types.Scope, participantID string) (*types.Participant, error) {
	found, raw, err := partition.LocateParticipant(r, s, participantID)
	if err != nil {
		return nil, err
	}
	p, err := decodeParticipant(raw)
	if err != nil {
		return nil, err
	}
	p.PartitionID = found.PartitionID
	if p.OwnerID == "" {
		p.OwnerID = found.OwnerID
	}

	return p, nil
}

// PutParticipant writes a participant under its own owner and partition.
func PutParticipant(w types.Writer, p *types.Participant) error {
	if p.OwnerID == "" || p.PartitionID == "" || p.ID == "" {
		return fmt.Errorf("%w: participant record needs owner, partition and id", types.ErrInvalidArgument)
	}

	return put(w, partition.ParticipantPath(types.NewScope(p.OwnerID, p.PartitionID), p.ID), p)
}

// DeleteParticipant removes a participant record.
func DeleteParticipant(w types.Writer, s types.Scope, participantID string) error {
	return w.Delete(partition.ParticipantPath(s, participantID))
}

// ListParticipants reads every participant covered by the strategy, ordered by name.
func ListParticipants(r types.Reader, rs partition.ReadStrategy) ([]types.Participant, error) {
	ids, err := rs.Partitions(r)
	if err != nil {
		return nil, err
	}

	var out []types.Participant
	for _, pid := range ids {
		s := rs.Scope().WithPartition(pid)
		err := r.Scan(partition.ParticipantsPrefix(s), func(_ string, raw []byte) error {
			p, err := decodeParticipant(raw)
			if err != nil {
				return err
			}
			p.PartitionID = pid
			out = append(out, *p)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}

		return out[i].ID < out[j].ID
	})

	return out, nil
}
