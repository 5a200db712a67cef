package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/internal/repository"
	"github.com/arloliu/seating/types"
)

// Manager runs table lifecycle operations against the store.
type Manager struct {
	Config

	// createLocks serializes table creation per partition so table numbers stay unique.
	createLocks *xsync.Map[string, *sync.Mutex]
}

// NewManager creates a manager with validated configuration.
//
// Parameters:
//   - cfg: Manager configuration (Store is required)
//
// Returns:
//   - *Manager: Ready manager
//   - error: Validation error if required fields are missing
func NewManager(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.SetDefaults()

	return &Manager{
		Config:      *cfg,
		createLocks: xsync.NewMap[string, *sync.Mutex](),
	}, nil
}

// Create opens a new table in standby with every seat empty.
//
// The table number is one above the highest number in the partition.
//
// Parameters:
//   - ctx: Context for the store call
//   - s: Concrete partition scope
//   - spec: Name, seat count and display metadata
//
// Returns:
//   - *types.Table: The created table
//   - error: types.ErrAggregateScope, types.ErrInvalidArgument or a store error
func (m *Manager) Create(ctx context.Context, s types.Scope, spec types.TableSpec) (*types.Table, error) {
	if err := partition.RequireConcrete(s); err != nil {
		return nil, err
	}
	seats := spec.Seats
	if seats == 0 {
		seats = m.DefaultMaxSeats
	}
	if seats < 1 {
		return nil, fmt.Errorf("%w: seat count %d", types.ErrInvalidArgument, seats)
	}

	mu, _ := m.createLocks.LoadOrStore(s.String(), &sync.Mutex{})
	mu.Lock()
	defer mu.Unlock()

	var created *types.Table
	err := m.Store.Update(ctx, func(tx types.Txn) error {
		tables, err := repository.ListTables(tx, partition.ReadStrategyFor(s))
		if err != nil {
			return err
		}

		created = &types.Table{
			ID:          uuid.NewString(),
			OwnerID:     s.OwnerID,
			PartitionID: s.PartitionID,
			TableNumber: repository.MaxTableNumber(tables) + 1,
			Name:        spec.Name,
			Seats:       types.NewEmptySeats(seats),
			Status:      types.TableStandby,
			Position:    spec.Position,
			BorderColor: spec.BorderColor,
			DealerID:    spec.DealerID,
		}

		return repository.PutTable(tx, created)
	})
	if err != nil {
		return nil, err
	}

	m.Logger.Info("table created", "scope", s.String(), "table", created.TableNumber, "seats", seats)

	return created, nil
}

// Activate promotes a table to open. Activating an open table is a no-op.
func (m *Manager) Activate(ctx context.Context, s types.Scope, tableID string) (*types.Table, error) {
	return m.mutate(ctx, s, tableID, func(_ types.Txn, t *types.Table) (bool, error) {
		if t.Status == types.TableOpen {
			return false, nil
		}
		t.Status = types.TableOpen

		return true, nil
	})
}

// Deactivate returns an empty open table to standby.
//
// A table with seated participants must be closed instead, so they are relocated.
func (m *Manager) Deactivate(ctx context.Context, s types.Scope, tableID string) (*types.Table, error) {
	return m.mutate(ctx, s, tableID, func(_ types.Txn, t *types.Table) (bool, error) {
		if t.Status == types.TableStandby {
			return false, nil
		}
		if n := t.OccupiedCount(); n > 0 {
			return false, fmt.Errorf("%w: %s has %d seated participants, close it instead",
				types.ErrInvalidTransition, t.DisplayName(), n)
		}
		t.Status = types.TableStandby

		return true, nil
	})
}

// ResizeSeats changes a table's seat count, keeping assignments in the retained range.
//
// Shrinking is rejected with *types.ResizeBlockedError when any seat beyond the new
// length is occupied; nothing is written in that case.
func (m *Manager) ResizeSeats(ctx context.Context, s types.Scope, tableID string, seats int) (*types.Table, error) {
	if seats < 1 {
		return nil, fmt.Errorf("%w: seat count %d", types.ErrInvalidArgument, seats)
	}

	return m.mutate(ctx, s, tableID, func(tx types.Txn, t *types.Table) (bool, error) {
		current := len(t.Seats)
		switch {
		case seats == current:
			return false, nil
		case seats > current:
			t.Seats = append(t.Seats, types.NewEmptySeats(seats-current)...)
			return true, nil
		}

		var blocking []types.BlockingSeat
		for idx := seats; idx < current; idx++ {
			id, ok := t.Seats[idx].Occupant()
			if !ok {
				continue
			}
			b := types.BlockingSeat{SeatNumber: idx + 1, ParticipantID: id}
			if p, err := repository.FindParticipant(tx, s.WithPartition(t.PartitionID), id); err == nil {
				b.ParticipantName = p.Name
			}
			blocking = append(blocking, b)
		}
		if len(blocking) > 0 {
			return false, &types.ResizeBlockedError{TableNumber: t.TableNumber, Requested: seats, Blocking: blocking}
		}
		t.Seats = t.Seats[:seats]

		return true, nil
	})
}

// Update changes a table's display metadata.
func (m *Manager) Update(ctx context.Context, s types.Scope, tableID string, u types.TableUpdate) (*types.Table, error) {
	return m.mutate(ctx, s, tableID, func(_ types.Txn, t *types.Table) (bool, error) {
		if u.Empty() {
			return false, nil
		}
		if u.Name != nil {
			t.Name = *u.Name
		}
		if u.Position != nil {
			t.Position = u.Position
		}
		if u.BorderColor != nil {
			t.BorderColor = *u.BorderColor
		}
		if u.DealerID != nil {
			t.DealerID = *u.DealerID
		}

		return true, nil
	})
}

// mutate runs fn on one table inside a transaction and writes it back when fn
// reports a change.
func (m *Manager) mutate(ctx context.Context, s types.Scope, tableID string, fn func(tx types.Txn, t *types.Table) (bool, error)) (*types.Table, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}

	var out *types.Table
	err := m.Store.Update(ctx, func(tx types.Txn) error {
		t, err := repository.FindTable(tx, s, tableID)
		if err != nil {
			return err
		}
		changed, err := fn(tx, t)
		if err != nil {
			return err
		}
		out = t
		if !changed {
			return nil
		}

		return repository.PutTable(tx, t)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// ReassignPartition moves tables into another partition of the same owner.
//
// Each table is copied under the same id into the destination and its source
// record removed, all in one write batch. Tables that cannot be located are
// skipped, not fatal; tables already in the destination are reported as
// unchanged. Seated participants keep their locations, which carry the table id.
//
// A moved table whose number is already used in the destination is given the
// next free number, and its occupants' locations are updated to match.
//
// Parameters:
//   - ctx: Context for the store calls
//   - s: Caller scope used to locate the tables (may be an aggregate view)
//   - tableIDs: Tables to move
//   - destination: Concrete destination partition id
//
// Returns:
//   - *types.ReassignReport: Moved, unchanged, skipped and renumbered tables
//   - error: types.ErrAggregateScope for an aggregate destination, or a store error
func (m *Manager) ReassignPartition(ctx context.Context, s types.Scope, tableIDs []string, destination string) (*types.ReassignReport, error) {
	dst := s.WithPartition(destination)
	if err := partition.RequireConcrete(dst); err != nil {
		return nil, err
	}

	// Numbering in the destination must not race with Create.
	mu, _ := m.createLocks.LoadOrStore(dst.String(), &sync.Mutex{})
	mu.Lock()
	defer mu.Unlock()

	type move struct {
		from  types.Scope
		table *types.Table
	}
	var (
		moves     []move
		relocated []*types.Participant
	)
	report := &types.ReassignReport{Moved: []string{}}

	err := m.Store.View(ctx, func(r types.Reader) error {
		existing, err := repository.ListTables(r, partition.ReadStrategyFor(dst))
		if err != nil {
			return err
		}
		taken := make(map[int]bool, len(existing))
		for i := range existing {
			taken[existing[i].TableNumber] = true
		}
		next := repository.MaxTableNumber(existing) + 1

		seen := make(map[string]bool, len(tableIDs))
		for _, id := range tableIDs {
			if seen[id] {
				continue
			}
			seen[id] = true

			t, err := repository.FindTable(r, s, id)
			if errors.Is(err, types.ErrTableNotFound) {
				report.Skipped = append(report.Skipped, id)
				continue
			}
			if err != nil {
				return err
			}
			if t.PartitionID == destination {
				report.Unchanged = append(report.Unchanged, id)
				continue
			}

			if taken[t.TableNumber] {
				if report.Renumbered == nil {
					report.Renumbered = make(map[string]int)
				}
				t.TableNumber = next
				report.Renumbered[t.ID] = next
				occupants, err := m.occupantsToRenumber(r, s, t)
				if err != nil {
					return err
				}
				relocated = append(relocated, occupants...)
			}
			taken[t.TableNumber] = true
			next = max(next, t.TableNumber+1)

			moves = append(moves, move{from: s.WithPartition(t.PartitionID), table: t})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return report, nil
	}

	err = m.Store.Batch(ctx, func(w types.Writer) error {
		for _, mv := range moves {
			mv.table.PartitionID = destination
			if err := repository.PutTable(w, mv.table); err != nil {
				return err
			}
			if err := repository.DeleteTable(w, mv.from, mv.table.ID); err != nil {
				return err
			}
		}
		for _, p := range relocated {
			if err := repository.PutParticipant(w, p); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, mv := range moves {
		report.Moved = append(report.Moved, mv.table.ID)
	}
	if len(report.Skipped) > 0 {
		m.Logger.Warn("skipped tables with unknown partition", "tables", report.Skipped)
	}
	m.Logger.Info("tables reassigned",
		"destination", destination, "tables", len(report.Moved), "renumbered", len(report.Renumbered))

	return report, nil
}

// occupantsToRenumber returns copies of t's occupants with their location
// updated to t's current number.
func (m *Manager) occupantsToRenumber(r types.Reader, s types.Scope, t *types.Table) ([]*types.Participant, error) {
	var out []*types.Participant
	for _, seat := range t.Seats {
		id, ok := seat.Occupant()
		if !ok {
			continue
		}
		p, err := repository.FindParticipant(r, s, id)
		if errors.Is(err, types.ErrParticipantNotFound) {
			m.Logger.Warn("renumbered table seats an unknown participant", "table", t.ID, "participant", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.Location == nil || p.Location.TableID != t.ID {
			continue
		}
		p.Location.TableNumber = t.TableNumber
		out = append(out, p)
	}

	return out, nil
}
