package roster

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/arloliu/seating/internal/logging"
	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/internal/repository"
	"github.com/arloliu/seating/types"
)

// Config holds roster configuration.
type Config struct {
	// Required dependencies
	Store types.Store

	// Optional dependencies
	Logger types.Logger // Logger (default: no-op)
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Store == nil {
		return errors.New("the Store is required")
	}

	return nil
}

// SetDefaults applies default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Logger == nil {
		c.Logger = logging.NewNop()
	}
}

// Service manages participant and partition records.
type Service struct {
	Config
}

// NewService creates a roster service with validated configuration.
func NewService(cfg *Config) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.SetDefaults()

	return &Service{Config: *cfg}, nil
}

// Create registers a participant in the scope's partition.
//
// When spec.Seat is set, the participant is seated at that seat in the same
// transaction; the seat must exist, be empty, and belong to an open table.
//
// Parameters:
//   - ctx: Context for the store call
//   - s: Concrete partition scope
//   - spec: Name, chip count and optional seat
//
// Returns:
//   - *types.Participant: The created participant
//   - error: types.ErrInvalidArgument, types.ErrSeatOccupied, types.ErrInvalidSeat,
//     types.ErrTableNotOpen, types.ErrTableNotFound or a store error
func (svc *Service) Create(ctx context.Context, s types.Scope, spec types.ParticipantSpec) (*types.Participant, error) {
	if err := partition.RequireConcrete(s); err != nil {
		return nil, err
	}
	if spec.Name == "" {
		return nil, fmt.Errorf("%w: participant name is required", types.ErrInvalidArgument)
	}
	if spec.Chips < 0 {
		return nil, fmt.Errorf("%w: chips must not be negative", types.ErrInvalidArgument)
	}

	p := &types.Participant{
		ID:          uuid.NewString(),
		OwnerID:     s.OwnerID,
		PartitionID: s.PartitionID,
		Name:        spec.Name,
		Chips:       spec.Chips,
		Status:      types.ParticipantActive,
	}

	err := svc.Store.Update(ctx, func(tx types.Txn) error {
		p.Location = nil
		if spec.Seat != nil {
			t, err := repository.FindTable(tx, s, spec.Seat.TableID)
			if err != nil {
				return err
			}
			idx := spec.Seat.SeatIndex
			if !t.ValidSeatIndex(idx) {
				return fmt.Errorf("%w: seat %d on table %s with %d seats", types.ErrInvalidSeat, idx+1, t.DisplayName(), len(t.Seats))
			}
			if occupant, taken := t.Seats[idx].Occupant(); taken {
				return fmt.Errorf("%w: %s seat %d holds %s", types.ErrSeatOccupied, t.DisplayName(), idx+1, occupant)
			}
			if !t.IsOpen() {
				return fmt.Errorf("%w: %s is %s", types.ErrTableNotOpen, t.DisplayName(), t.Status)
			}
			t.Seats[idx] = types.OccupiedBy(p.ID)
			p.Location = t.LocationOf(idx)
			if err := repository.PutTable(tx, t); err != nil {
				return err
			}
		}

		return repository.PutParticipant(tx, p)
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Info("participant registered", "scope", s.String(), "participant", p.ID, "seated", p.IsSeated())

	return p, nil
}

// Get reads a participant from whichever partition of the owner holds it.
func (svc *Service) Get(ctx context.Context, s types.Scope, participantID string) (*types.Participant, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}

	var p *types.Participant
	err := svc.Store.View(ctx, func(r types.Reader) error {
		var err error
		p, err = repository.FindParticipant(r, s, participantID)

		return err
	})

	return p, err
}

// List returns the participants of a partition or of an aggregate view.
func (svc *Service) List(ctx context.Context, s types.Scope) ([]types.Participant, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}

	var out []types.Participant
	err := svc.Store.View(ctx, func(r types.Reader) error {
		var err error
		out, err = repository.ListParticipants(r, partition.ReadStrategyFor(s))

		return err
	})

	return out, err
}

// Tables returns the tables of a partition or of an aggregate view.
func (svc *Service) Tables(ctx context.Context, s types.Scope) ([]types.Table, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}

	var out []types.Table
	err := svc.Store.View(ctx, func(r types.Reader) error {
		var err error
		out, err = repository.ListTables(r, partition.ReadStrategyFor(s))

		return err
	})

	return out, err
}

// UpdateChips sets a participant's chip count.
func (svc *Service) UpdateChips(ctx context.Context, s types.Scope, participantID string, chips int64) (*types.Participant, error) {
	if chips < 0 {
		return nil, fmt.Errorf("%w: chips must not be negative", types.ErrInvalidArgument)
	}

	return svc.mutate(ctx, s, participantID, func(p *types.Participant) error {
		p.Chips = chips
		return nil
	})
}

// SetStatus switches a participant between active and no-show.
//
// Busted is rejected: elimination must release the seat, which BustOut does.
func (svc *Service) SetStatus(ctx context.Context, s types.Scope, participantID string, status types.ParticipantStatus) (*types.Participant, error) {
	if status != types.ParticipantActive && status != types.ParticipantNoShow {
		return nil, fmt.Errorf("%w: status %q cannot be set directly", types.ErrInvalidArgument, status)
	}

	return svc.mutate(ctx, s, participantID, func(p *types.Participant) error {
		p.Status = status
		return nil
	})
}

func (svc *Service) mutate(ctx context.Context, s types.Scope, participantID string, fn func(p *types.Participant) error) (*types.Participant, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}

	var out *types.Participant
	err := svc.Store.Update(ctx, func(tx types.Txn) error {
		p, err := repository.FindParticipant(tx, s, participantID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		out = p

		return repository.PutParticipant(tx, p)
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Delete removes a participant, vacating any seat it holds in the same transaction.
//
// Returns:
//   - *types.SeatRef: The seat released, or nil if the participant was unseated
//   - error: types.ErrParticipantNotFound or a store error
func (svc *Service) Delete(ctx context.Context, s types.Scope, participantID string) (*types.SeatRef, error) {
	if err := partition.ValidateScope(s); err != nil {
		return nil, err
	}

	var released *types.SeatRef
	err := svc.Store.Update(ctx, func(tx types.Txn) error {
		released = nil

		p, err := repository.FindParticipant(tx, s, participantID)
		if err != nil {
			return err
		}
		home := s.WithPartition(p.PartitionID)

		holding, err := repository.TablesHolding(tx, home, p)
		if err != nil {
			return err
		}
		released = p.Ref()
		for _, t := range holding {
			if released == nil {
				released = &types.SeatRef{TableID: t.ID, TableNumber: t.TableNumber, SeatIndex: t.SeatIndexOf(p.ID)}
			}
			t.Vacate(p.ID)
			if err := repository.PutTable(tx, t); err != nil {
				return err
			}
		}

		return repository.DeleteParticipant(tx, home, p.ID)
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Info("participant deleted", "participant", participantID, "released", released != nil)

	return released, nil
}

// CreatePartition writes a tournament record. An empty ID is generated.
func (svc *Service) CreatePartition(ctx context.Context, ownerID string, p types.Partition) (*types.Partition, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.OwnerID = ownerID
	if err := partition.RequireConcrete(types.NewScope(ownerID, p.ID)); err != nil {
		return nil, err
	}
	if p.Date != "" {
		if _, ok := types.NewScope(ownerID, types.DatePartitionPrefix+p.Date).Date(); !ok {
			return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", types.ErrInvalidArgument, p.Date)
		}
	}

	err := svc.Store.Batch(ctx, func(w types.Writer) error {
		return repository.PutPartition(w, &p)
	})
	if err != nil {
		return nil, err
	}

	svc.Logger.Info("partition created", "owner", ownerID, "partition", p.ID, "date", p.Date)

	return &p, nil
}

// ListPartitions returns the owner's tournament records ordered by date.
func (svc *Service) ListPartitions(ctx context.Context, ownerID string) ([]types.Partition, error) {
	if err := partition.ValidateID("owner", ownerID); err != nil {
		return nil, err
	}

	var out []types.Partition
	err := svc.Store.View(ctx, func(r types.Reader) error {
		var err error
		out, err = repository.ListPartitions(r, ownerID)

		return err
	})

	return out, err
}
