package seating

import (
	"context"
	"fmt"
	"time"

	"github.com/arloliu/seating/audit"
	"github.com/arloliu/seating/internal/assignment"
	"github.com/arloliu/seating/internal/hooks"
	"github.com/arloliu/seating/internal/lifecycle"
	"github.com/arloliu/seating/internal/logging"
	"github.com/arloliu/seating/internal/metrics"
	"github.com/arloliu/seating/internal/random"
	"github.com/arloliu/seating/internal/roster"
	"github.com/arloliu/seating/types"
)

// Engine is the seat allocation and rebalancing engine.
//
// Every method is a single synchronous call: it runs one store transaction or
// one write batch, then emits an audit record, records metrics and calls hooks.
// Failures are returned as *OperationError and leave the store untouched.
//
// Engine is safe for concurrent use. Bulk placements (RebalanceAll, FillWaiting,
// SnakeDraft) read a snapshot and commit a batch without conflict detection; a
// Move or BustOut committed in between on the same tables is overwritten. Run
// bulk placements during a reseat break.
type Engine struct {
	cfg     Config
	store   Store
	placer  *assignment.Engine
	tables  *lifecycle.Manager
	roster  *roster.Service
	audit   AuditSink
	hooks   Hooks
	metrics MetricsCollector
	logger  Logger
}

// NewEngine creates a new seating engine.
//
// Parameters:
//   - cfg: Configuration; zero fields take defaults from DefaultConfig
//   - st: Persistent store (store.NewBadger, or any Store implementation)
//   - opts: Optional dependencies (WithLogger, WithMetrics, WithAuditSink, ...)
//
// Returns:
//   - *Engine: Ready engine
//   - error: ErrInvalidConfig or ErrStoreRequired
//
// Example:
//
//	st, err := store.NewBadger(store.WithDataDir("/var/lib/seatd"))
//	if err != nil {
//	    return err
//	}
//	cfg := seating.DefaultConfig()
//	eng, err := seating.NewEngine(&cfg, st, seating.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	results, err := eng.RebalanceAll(ctx, seating.NewScope("club", "main-event"), nil)
func NewEngine(cfg *Config, st Store, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}
	if st == nil {
		return nil, ErrStoreRequired
	}

	SetDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}
	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logging.NewNop()
	}
	auditSink := options.audit
	if auditSink == nil {
		auditSink = audit.NewNop()
	}
	rng := options.randomizer
	if rng == nil {
		rng = random.New()
	}

	cfg.ValidateWithWarnings(loggerInstance)

	placer, err := assignment.NewEngine(&assignment.Config{
		Store:      st,
		Randomizer: rng,
		Metrics:    metricsCollector,
		Logger:     loggerInstance,
	})
	if err != nil {
		return nil, err
	}
	tables, err := lifecycle.NewManager(&lifecycle.Config{
		Store:           st,
		DefaultMaxSeats: cfg.DefaultMaxSeats,
		Randomizer:      rng,
		Logger:          loggerInstance,
	})
	if err != nil {
		return nil, err
	}
	rosterSvc, err := roster.NewService(&roster.Config{Store: st, Logger: loggerInstance})
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:     *cfg,
		store:   st,
		placer:  placer,
		tables:  tables,
		roster:  rosterSvc,
		audit:   auditSink,
		hooks:   hooks.Fill(options.hooks),
		metrics: metricsCollector,
		logger:  loggerInstance,
	}, nil
}

// Config returns a copy of the engine configuration with defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}

// scope fills in the single-tenant partition when the caller named none.
func (e *Engine) scope(s Scope) Scope {
	if s.PartitionID == "" && e.cfg.SingleTenantPartition != "" {
		s.PartitionID = e.cfg.SingleTenantPartition
	}

	return s
}

// outcome describes a committed mutation for audit and hooks.
type outcome struct {
	// partition overrides the scope's partition in the audit record.
	partition string
	details   map[string]any
	results   []types.AssignmentResult

	// noop marks a successful call that changed nothing.
	noop bool
}

// run executes fn with the operation timeout and turns its result into an
// OperationError, metrics, an audit record and hook calls. describe is nil
// for read-only operations.
func run[T any](
	ctx context.Context,
	e *Engine,
	op string,
	s Scope,
	fn func(ctx context.Context, s Scope) (T, error),
	describe func(T) outcome,
) (T, error) {
	s = e.scope(s)
	ctx, cancel := context.WithTimeout(ctx, e.cfg.OperationTimeout)
	defer cancel()

	start := time.Now()
	out, err := fn(ctx, s)
	duration := time.Since(start).Seconds()

	if err != nil {
		opErr := types.NewOperationError(op, err, "")
		e.metrics.RecordOperation(op, duration, opErr.Class.String())
		e.logger.Warn("operation failed",
			"op", op, "scope", s.String(), "class", opErr.Class.String(), "error", err)
		if hookErr := e.hooks.OnError(ctx, op, opErr); hookErr != nil {
			e.logger.Error("OnError hook failed", "op", op, "error", hookErr)
		}

		var zero T
		return zero, opErr
	}
	e.metrics.RecordOperation(op, duration, "")

	if describe == nil {
		return out, nil
	}
	o := describe(out)
	if o.noop {
		return out, nil
	}

	rec := types.ActionRecord{
		Action:      op,
		OwnerID:     s.OwnerID,
		PartitionID: s.PartitionID,
		Details:     o.details,
		At:          time.Now().UTC(),
	}
	if o.partition != "" {
		rec.PartitionID = o.partition
	}
	if err := e.audit.Record(ctx, rec); err != nil {
		e.logger.Error("audit record failed", "op", op, "error", err)
	}

	if len(o.results) > 0 {
		if err := e.hooks.OnSeatsChanged(ctx, op, o.results); err != nil {
			e.logger.Error("OnSeatsChanged hook failed", "op", op, "error", err)
		}
	}

	return out, nil
}
