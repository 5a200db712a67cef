// Package testutil provides store fixtures and invariant checks shared by engine tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/internal/repository"
	seatingtest "github.com/arloliu/seating/testing"
	"github.com/arloliu/seating/types"
)

// Fixture seeds and inspects one partition of an in-memory store.
type Fixture struct {
	T     *testing.T
	Store types.Store
	Scope types.Scope

	tables       int
	participants int
}

// NewFixture opens an in-memory store scoped to owner "club", partition "main".
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	return &Fixture{
		T:     t,
		Store: seatingtest.NewStore(t),
		Scope: types.NewScope("club", "main"),
	}
}

// In returns a fixture sharing the store but targeting another partition.
func (f *Fixture) In(partitionID string) *Fixture {
	c := *f
	c.Scope = f.Scope.WithPartition(partitionID)

	return &c
}

// AddTable writes a table with the given seat count and status and returns it.
func (f *Fixture) AddTable(seats int, status types.TableStatus) *types.Table {
	f.T.Helper()

	f.tables++
	t := &types.Table{
		ID:          fmt.Sprintf("%s-t%d", f.Scope.PartitionID, f.tables),
		OwnerID:     f.Scope.OwnerID,
		PartitionID: f.Scope.PartitionID,
		TableNumber: f.tables,
		Seats:       types.NewEmptySeats(seats),
		Status:      status,
	}
	f.batch(func(w types.Writer) error { return repository.PutTable(w, t) })

	return t
}

// AddParticipant writes an active, unseated participant and returns it.
func (f *Fixture) AddParticipant(name string, chips int64) *types.Participant {
	f.T.Helper()

	f.participants++
	p := &types.Participant{
		ID:          fmt.Sprintf("%s-p%d", f.Scope.PartitionID, f.participants),
		OwnerID:     f.Scope.OwnerID,
		PartitionID: f.Scope.PartitionID,
		Name:        name,
		Chips:       chips,
		Status:      types.ParticipantActive,
	}
	f.batch(func(w types.Writer) error { return repository.PutParticipant(w, p) })

	return p
}

// Seat places p at seat idx of table t, updating both records.
func (f *Fixture) Seat(p *types.Participant, t *types.Table, idx int) {
	f.T.Helper()

	t.Seats[idx] = types.OccupiedBy(p.ID)
	p.Location = t.LocationOf(idx)
	f.batch(func(w types.Writer) error {
		if err := repository.PutTable(w, t); err != nil {
			return err
		}

		return repository.PutParticipant(w, p)
	})
}

// SaveParticipant writes p as is.
func (f *Fixture) SaveParticipant(p *types.Participant) {
	f.T.Helper()
	f.batch(func(w types.Writer) error { return repository.PutParticipant(w, p) })
}

// SaveTable writes t as is.
func (f *Fixture) SaveTable(t *types.Table) {
	f.T.Helper()
	f.batch(func(w types.Writer) error { return repository.PutTable(w, t) })
}

// Table reads a table from the fixture's partition.
func (f *Fixture) Table(id string) *types.Table {
	f.T.Helper()

	var t *types.Table
	f.view(func(r types.Reader) error {
		var err error
		t, err = repository.FindTable(r, f.Scope, id)

		return err
	})

	return t
}

// Participant reads a participant from the fixture's partition.
func (f *Fixture) Participant(id string) *types.Participant {
	f.T.Helper()

	var p *types.Participant
	f.view(func(r types.Reader) error {
		var err error
		p, err = repository.FindParticipant(r, f.Scope, id)

		return err
	})

	return p
}

// TableExists reports whether any partition of the owner holds the table.
func (f *Fixture) TableExists(id string) bool {
	f.T.Helper()

	exists := true
	f.view(func(r types.Reader) error {
		_, _, err := partition.LocateTable(r, f.Scope, id)
		if err != nil {
			exists = false
		}

		return nil
	})

	return exists
}

// Dump returns every raw key and value of the owner, for byte-level comparisons.
func (f *Fixture) Dump() map[string]string {
	f.T.Helper()

	out := make(map[string]string)
	f.view(func(r types.Reader) error {
		return r.Scan("o/"+f.Scope.OwnerID+"/", func(key string, value []byte) error {
			out[key] = string(value)
			return nil
		})
	})

	return out
}

// RequireConsistent checks that no participant holds two seats and that every
// participant location agrees with exactly the seat that lists them.
func (f *Fixture) RequireConsistent() {
	f.T.Helper()

	var snap *repository.Snapshot
	f.view(func(r types.Reader) error {
		var err error
		snap, err = repository.Load(r, partition.ReadStrategyFor(f.Scope))

		return err
	})

	seats := make(map[string]types.SeatLocation)
	for i := range snap.Tables {
		t := &snap.Tables[i]
		for idx, s := range t.Seats {
			id, ok := s.Occupant()
			if !ok {
				continue
			}
			prev, dup := seats[id]
			require.False(f.T, dup, "participant %s holds %v and table %d seat %d", id, prev, t.TableNumber, idx+1)
			seats[id] = *t.LocationOf(idx)
		}
	}

	for i := range snap.Participants {
		p := &snap.Participants[i]
		loc, seated := seats[p.ID]
		if !seated {
			require.Nil(f.T, p.Location, "participant %s has a location but no seat", p.Name)
			continue
		}
		require.NotNil(f.T, p.Location, "participant %s holds a seat but has no location", p.Name)
		require.Equal(f.T, loc, *p.Location, "participant %s location disagrees with seats", p.Name)
	}
}

func (f *Fixture) batch(fn func(w types.Writer) error) {
	f.T.Helper()
	require.NoError(f.T, f.Store.Batch(context.Background(), fn))
}

func (f *Fixture) view(fn func(r types.Reader) error) {
	f.T.Helper()
	require.NoError(f.T, f.Store.View(context.Background(), fn))
}
