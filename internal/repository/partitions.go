package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/types"
)

// GetPartition reads a partition record.
func GetPartition(r types.Reader, ownerID, partitionID string) (*types.Partition, error) {
	raw, err := r.Get(partition.PartitionPath(ownerID, partitionID))
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrPartitionNotFound
	}
	if err != nil {
		return nil, err
	}

	var p types.Partition
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode partition: %w", err)
	}

	return &p, nil
}

// PutPartition writes a partition record.
func PutPartition(w types.Writer, p *types.Partition) error {
	return put(w, partition.PartitionPath(p.OwnerID, p.ID), p)
}

// ListPartitions reads every partition record of an owner, ordered by date then id.
func ListPartitions(r types.Reader, ownerID string) ([]types.Partition, error) {
	var out []types.Partition
	err := r.Scan(partition.PartitionsPrefix(ownerID), func(_ string, raw []byte) error {
		var p types.Partition
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode partition: %w", err)
		}
		out = append(out, p)

		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}

		return out[i].ID < out[j].ID
	})

	return out, nil
}
