package partition

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/arloliu/seating/types"
)

// ReadStrategy decides which concrete partitions a read covers.
//
// Callers select one with ReadStrategyFor and never inspect the partition token
// themselves.
type ReadStrategy interface {
	// Partitions returns the concrete partition ids to read, in stable order.
	Partitions(r types.Reader) ([]string, error)

	// Aggregate reports whether the strategy spans more than one partition.
	// Aggregate views are read-only.
	Aggregate() bool

	// Scope returns the scope the strategy was built for.
	Scope() types.Scope
}

// ReadStrategyFor selects the read strategy for a scope.
//
//   - "ALL": every partition of the owner
//   - "date:YYYY-MM-DD": every partition record of the owner held on that day
//   - anything else: that partition only
func ReadStrategyFor(s types.Scope) ReadStrategy {
	if s.PartitionID == types.AllPartitions {
		return &fanOut{scope: s}
	}
	if day, ok := s.Date(); ok {
		return &fanOut{scope: s, date: day}
	}

	return &single{scope: s}
}

type single struct {
	scope types.Scope
}

func (s *single) Partitions(_ types.Reader) ([]string, error) {
	return []string{s.scope.PartitionID}, nil
}

func (s *single) Aggregate() bool { return false }

func (s *single) Scope() types.Scope { return s.scope }

// fanOut covers several partitions of one owner. An empty date means all of them.
type fanOut struct {
	scope types.Scope
	date  string
}

func (f *fanOut) Aggregate() bool { return true }

func (f *fanOut) Scope() types.Scope { return f.scope }

func (f *fanOut) Partitions(r types.Reader) ([]string, error) {
	seen := make(map[string]struct{})

	err := r.Scan(PartitionsPrefix(f.scope.OwnerID), func(_ string, value []byte) error {
		var p types.Partition
		if err := json.Unmarshal(value, &p); err != nil {
			return fmt.Errorf("decode partition record: %w", err)
		}
		if f.date == "" || p.Date == f.date {
			seen[p.ID] = struct{}{}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Records may exist in partitions that were never registered; ALL still covers them.
	if f.date == "" {
		err = r.Scan(OwnerPrefix(f.scope.OwnerID), func(key string, _ []byte) error {
			if k, ok := ParseKey(key); ok {
				seen[k.Scope.PartitionID] = struct{}{}
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids, nil
}

// AllOf returns the fan-out strategy over every partition of an owner.
func AllOf(ownerID string) ReadStrategy {
	return ReadStrategyFor(types.NewScope(ownerID, types.AllPartitions))
}
