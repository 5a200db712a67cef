package assignment

import (
	"context"
	"fmt"

	"github.com/arloliu/seating/internal/partition"
	"github.com/arloliu/seating/internal/repository"
	"github.com/arloliu/seating/types"
)

// Engine runs seat placements against the store.
//
// Engine is safe for concurrent use; it holds no per-call state.
type Engine struct {
	Config
}

// NewEngine creates an engine with validated configuration.
//
// Parameters:
//   - cfg: Engine configuration (Store is required)
//
// Returns:
//   - *Engine: Ready engine
//   - error: Validation error if required fields are missing
//
// Example:
//
//	eng, err := assignment.NewEngine(&assignment.Config{
//	    Store:  st,
//	    Logger: logger,
//	})
func NewEngine(cfg *Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.SetDefaults()

	return &Engine{Config: *cfg}, nil
}

// load reads a snapshot of one partition.
func (e *Engine) load(ctx context.Context, s types.Scope) (*repository.Snapshot, error) {
	var snap *repository.Snapshot
	err := e.Store.View(ctx, func(r types.Reader) error {
		var err error
		snap, err = repository.Load(r, partition.ReadStrategyFor(s))

		return err
	})

	return snap, err
}

// selectParticipants returns the participants with the given ids, or def() when ids is empty.
func selectParticipants(snap *repository.Snapshot, ids []string, def func() []types.Participant) ([]types.Participant, error) {
	if len(ids) == 0 {
		return def(), nil
	}

	out := make([]types.Participant, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p := snap.Participant(id)
		if p == nil {
			return nil, fmt.Errorf("%w: %s", types.ErrParticipantNotFound, id)
		}
		out = append(out, *p)
	}

	return out, nil
}
