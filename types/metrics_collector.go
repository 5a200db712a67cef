package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called concurrently from request goroutines and must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	OperationMetrics
	PlacementMetrics
	StoreMetrics
	AuditMetrics
}

// OperationMetrics defines metrics for public engine operations.
type OperationMetrics interface {
	// RecordOperation records one engine operation.
	//
	// Parameters:
	//   - op: Operation name (an Action* constant)
	//   - duration: Time taken in seconds
	//   - class: Failure class name ("" on success)
	RecordOperation(op string, duration float64, class string)
}

// PlacementMetrics defines metrics for seat placement outcomes.
type PlacementMetrics interface {
	// RecordParticipantsPlaced records how many participants an operation seated or moved.
	RecordParticipantsPlaced(op string, count int)

	// RecordDraftImbalance records a snake draft that committed without perfect balance.
	RecordDraftImbalance(spread int)
}

// StoreMetrics defines metrics for the persistent store.
type StoreMetrics interface {
	// RecordTxnConflict records a transaction commit conflict (before any retry).
	RecordTxnConflict()

	// RecordStoreOperationDuration records store primitive latency.
	//
	// Parameters:
	//   - operation: "view", "update" or "batch"
	//   - duration: Time taken in seconds
	RecordStoreOperationDuration(operation string, duration float64)
}

// AuditMetrics defines metrics for the audit collaborator.
type AuditMetrics interface {
	// RecordAuditPublish records an audit record delivery attempt.
	RecordAuditPublish(success bool)
}
