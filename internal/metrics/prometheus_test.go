package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestPrometheusCollector_Operations(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordOperation("rebalance_all", 0.01, "")
	p.RecordOperation("rebalance_all", 0.02, "")
	p.RecordOperation("move_seat", 0.01, "conflict")

	require.InDelta(t, 2, testutil.ToFloat64(p.operations.WithLabelValues("rebalance_all", "ok")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.operations.WithLabelValues("move_seat", "conflict")), 0)
	require.Equal(t, 2, testutil.CollectAndCount(p.operationDuration))
}

func TestPrometheusCollector_Placement(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordParticipantsPlaced("fill_waiting", 3)
	p.RecordParticipantsPlaced("fill_waiting", 0)
	p.RecordDraftImbalance(2)

	require.InDelta(t, 3, testutil.ToFloat64(p.participantsPlaced.WithLabelValues("fill_waiting")), 0)
	require.Equal(t, 1, testutil.CollectAndCount(p.draftImbalance))
}

func TestPrometheusCollector_StoreAndAudit(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg, "test")

	p.RecordTxnConflict()
	p.RecordTxnConflict()
	p.RecordStoreOperationDuration("update", 0.002)
	p.RecordAuditPublish(true)
	p.RecordAuditPublish(false)
	p.RecordAuditPublish(false)

	require.InDelta(t, 2, testutil.ToFloat64(p.txnConflicts), 0)
	require.InDelta(t, 1, testutil.ToFloat64(p.auditPublish.WithLabelValues("success")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(p.auditPublish.WithLabelValues("failure")), 0)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "test_store_txn_conflicts_total")
	require.Contains(t, names, "test_audit_publish_total")
}

func TestPrometheusCollector_Defaults(t *testing.T) {
	p := NewPrometheus(prometheus.NewRegistry(), "")
	require.Equal(t, "seating", p.namespace)
}
