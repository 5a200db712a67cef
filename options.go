package seating

// Option configures an Engine with optional dependencies.
type Option func(*engineOptions)

// engineOptions holds optional Engine configuration.
type engineOptions struct {
	logger     Logger
	metrics    MetricsCollector
	audit      AuditSink
	randomizer Randomizer
	hooks      *Hooks
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	eng, err := seating.NewEngine(&cfg, st, seating.WithLogger(logging.NewSlogDefault()))
func WithLogger(logger Logger) Option {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	collector := metrics.NewPrometheus(prometheus.DefaultRegisterer, "seating")
//	eng, err := seating.NewEngine(&cfg, st, seating.WithMetrics(collector))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *engineOptions) {
		o.metrics = metrics
	}
}

// WithAuditSink sets the sink receiving one ActionRecord per successful mutation.
//
// Parameters:
//   - sink: AuditSink implementation (audit.NewJetStream, or a custom sink)
//
// Returns:
//   - Option: Functional option for NewEngine
func WithAuditSink(sink AuditSink) Option {
	return func(o *engineOptions) {
		o.audit = sink
	}
}

// WithRandomizer sets the source of randomness for every placement decision.
//
// Tests pass a seeded randomizer to make shuffles and tie-breaks reproducible.
//
// Parameters:
//   - r: Randomizer implementation; must be safe for concurrent use
//
// Returns:
//   - Option: Functional option for NewEngine
func WithRandomizer(r Randomizer) Option {
	return func(o *engineOptions) {
		o.randomizer = r
	}
}

// WithHooks sets event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions; nil callbacks are no-ops
//
// Returns:
//   - Option: Functional option for NewEngine
//
// Example:
//
//	hooks := &seating.Hooks{
//	    OnSeatsChanged: func(ctx context.Context, action string, results []seating.AssignmentResult) error {
//	        return notifyFloor(action, results)
//	    },
//	}
//	eng, err := seating.NewEngine(&cfg, st, seating.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *engineOptions) {
		o.hooks = hooks
	}
}
