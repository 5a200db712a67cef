// Package metrics provides types.MetricsCollector implementations.
package metrics

import "github.com/arloliu/seating/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the default when no collector is configured.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	eng, err := seating.NewEngine(cfg, st, seating.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// OperationMetrics implementation

// RecordOperation discards the operation metric.
func (n *NopMetrics) RecordOperation(_ /* op */ string, _ /* duration */ float64, _ /* class */ string) {
}

// PlacementMetrics implementation

// RecordParticipantsPlaced discards the placement count.
func (n *NopMetrics) RecordParticipantsPlaced(_ /* op */ string, _ /* count */ int) {}

// RecordDraftImbalance discards the draft spread.
func (n *NopMetrics) RecordDraftImbalance(_ /* spread */ int) {}

// StoreMetrics implementation

// RecordTxnConflict discards the conflict counter.
func (n *NopMetrics) RecordTxnConflict() {}

// RecordStoreOperationDuration discards the store latency.
func (n *NopMetrics) RecordStoreOperationDuration(_ /* operation */ string, _ /* duration */ float64) {
}

// AuditMetrics implementation

// RecordAuditPublish discards the audit delivery outcome.
func (n *NopMetrics) RecordAuditPublish(_ /* success */ bool) {}
