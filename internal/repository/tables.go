package repository

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/types"
)

// GetTable reads a table from exactly the given partition.
//
// Returns types.ErrTableNotFound if the partition does not hold it.
func GetTable(r types.Reader, s types.Scope, tableID string) (*types.Table, error) {
	raw, err := r.Get(partition.TablePath(s, tableID))
	if errors.Is(err, types.ErrNotFound) {
		return nil, types.ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	t, err := decodeTable(raw)
	if err != nil {
		return nil, err
	}
	t.PartitionID = partition.Resolve(t, s.PartitionID)

	return t, nil
}

// FindTable reads a table from whichever partition of the owner holds it,
// trying the caller's partition first.
func FindTable(r types.Reader, s types.Scope, tableID string) (*types.Table, error) {
	found, raw, err := partition.LocateTable(r, s, tableID)
	if err != nil {
		return nil, err
	}
	t, err := decodeTable(raw)
	if err != nil {
		return nil, err
	}
	// The key is authoritative for where the record lives.
	t.PartitionID = found.PartitionID
	if t.OwnerID == "" {
		t.OwnerID = found.OwnerID
	}

	return t, nil
}

// PutTable writes a table under its own owner and partition.
func PutTable(w types.Writer, t *types.Table) error {
	if t.OwnerID == "" || t.PartitionID == "" || t.ID == "" {
		return fmt.Errorf("%w: table record needs owner, partition and id", types.ErrInvalidArgument)
	}

	return put(w, partition.TablePath(types.NewScope(t.OwnerID, t.PartitionID), t.ID), t)
}

// DeleteTable removes a table record.
func DeleteTable(w types.Writer, s types.Scope, tableID string) error {
	return w.Delete(partition.TablePath(s, tableID))
}

// ListTables reads every table covered by the strategy, ordered by table number.
func ListTables(r types.Reader, rs partition.ReadStrategy) ([]types.Table, error) {
	ids, err := rs.Partitions(r)
	if err != nil {
		return nil, err
	}

	var tables []types.Table
	for _, pid := range ids {
		s := rs.Scope().WithPartition(pid)
		err := r.Scan(partition.TablesPrefix(s), func(_ string, raw []byte) error {
			t, err := decodeTable(raw)
			if err != nil {
				return err
			}
			t.PartitionID = pid
			tables = append(tables, *t)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	SortTables(tables)

	return tables, nil
}

// SortTables orders tables by table number, then partition and id.
func SortTables(tables []types.Table) {
	sort.SliceStable(tables, func(i, j int) bool {
		a, b := tables[i], tables[j]
		if a.TableNumber != b.TableNumber {
			return a.TableNumber < b.TableNumber
		}
		if a.PartitionID != b.PartitionID {
			return a.PartitionID < b.PartitionID
		}

		return a.ID < b.ID
	})
}

// MaxTableNumber returns the highest table number in the list, or 0.
func MaxTableNumber(tables []types.Table) int {
	highest := 0
	for i := range tables {
		if tables[i].TableNumber > highest {
			highest = tables[i].TableNumber
		}
	}

	return highest
}

// TablesHolding returns every table that lists the participant in a seat: the
// tables of the scope's partition plus the table the participant's location
// points at, which may have been reassigned to another partition.
func TablesHolding(r types.Reader, s types.Scope, p *types.Participant) ([]*types.Table, error) {
	tables, err := ListTables(r, partition.ReadStrategyFor(s))
	if err != nil {
		return nil, err
	}

	var holding []*types.Table
	seen := make(map[string]bool)
	for i := range tables {
		if tables[i].SeatIndexOf(p.ID) >= 0 {
			holding = append(holding, &tables[i])
			seen[tables[i].ID] = true
		}
	}

	if p.Location != nil && !seen[p.Location.TableID] {
		t, err := FindTable(r, s, p.Location.TableID)
		switch {
		case errors.Is(err, types.ErrTableNotFound):
		case err != nil:
			return nil, err
		case t.SeatIndexOf(p.ID) >= 0:
			holding = append(holding, t)
		}
	}

	return holding, nil
}
