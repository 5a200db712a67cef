package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/seating/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use so that an
// unused collector never touches the registry.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	operations         *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	participantsPlaced *prometheus.CounterVec
	draftImbalance     prometheus.Histogram
	txnConflicts       prometheus.Counter
	storeDuration      *prometheus.HistogramVec
	auditPublish       *prometheus.CounterVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "seating" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "seating"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.operations = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Total engine operations by operation and outcome class (ok on success).",
		}, []string{"op", "class"})

		p.operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Latency of engine operations in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms .. ~2s
		}, []string{"op"})

		p.participantsPlaced = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "participants_placed_total",
			Help:      "Participants seated or moved, by operation.",
		}, []string{"op"})

		p.draftImbalance = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "placement",
			Name:      "draft_imbalance_spread",
			Help:      "Max minus min table size of snake drafts that committed unbalanced.",
			Buckets:   []float64{2, 3, 4, 6, 8, 12},
		})

		p.txnConflicts = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "txn_conflicts_total",
			Help:      "Transaction commit conflicts, counted before retry.",
		})

		p.storeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Latency of store primitives (view, update, batch) in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2.5, 10),
		}, []string{"operation"})

		p.auditPublish = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "audit",
			Name:      "publish_total",
			Help:      "Audit record deliveries by result (success, failure).",
		}, []string{"result"})

		p.reg.MustRegister(p.operations)
		p.reg.MustRegister(p.operationDuration)
		p.reg.MustRegister(p.participantsPlaced)
		p.reg.MustRegister(p.draftImbalance)
		p.reg.MustRegister(p.txnConflicts)
		p.reg.MustRegister(p.storeDuration)
		p.reg.MustRegister(p.auditPublish)
	})
}

// RecordOperation increments the operation counter and observes its latency.
func (p *PrometheusCollector) RecordOperation(op string, duration float64, class string) {
	p.ensureRegistered()
	if class == "" {
		class = "ok"
	}
	p.operations.WithLabelValues(op, class).Inc()
	if duration >= 0 {
		p.operationDuration.WithLabelValues(op).Observe(duration)
	}
}

// RecordParticipantsPlaced adds count to the placement counter for op.
func (p *PrometheusCollector) RecordParticipantsPlaced(op string, count int) {
	p.ensureRegistered()
	if count <= 0 {
		return
	}
	p.participantsPlaced.WithLabelValues(op).Add(float64(count))
}

// RecordDraftImbalance observes the spread of an unbalanced draft.
func (p *PrometheusCollector) RecordDraftImbalance(spread int) {
	p.ensureRegistered()
	p.draftImbalance.Observe(float64(spread))
}

// RecordTxnConflict increments the conflict counter.
func (p *PrometheusCollector) RecordTxnConflict() {
	p.ensureRegistered()
	p.txnConflicts.Inc()
}

// RecordStoreOperationDuration observes store primitive latency.
func (p *PrometheusCollector) RecordStoreOperationDuration(operation string, duration float64) {
	p.ensureRegistered()
	p.storeDuration.WithLabelValues(operation).Observe(duration)
}

// RecordAuditPublish counts an audit delivery attempt.
func (p *PrometheusCollector) RecordAuditPublish(success bool) {
	p.ensureRegistered()
	result := "failure"
	if success {
		result = "success"
	}
	p.auditPublish.WithLabelValues(result).Inc()
}
