package testing

import (
	"context"
	"sync"

	"github.com/arloliu/seating/types"
)

// AuditRecorder is an in-memory types.AuditSink that keeps every record.
//
// Example:
//
//	rec := seatingtest.NewAuditRecorder()
//	eng, _ := seating.NewEngine(&cfg, st, seating.WithAuditSink(rec))
//	// ... run operations ...
//	require.Equal(t, []string{"move_seat"}, rec.Actions())
type AuditRecorder struct {
	mu      sync.Mutex
	records []types.ActionRecord
	err     error
}

// Compile-time assertion that AuditRecorder implements AuditSink.
var _ types.AuditSink = (*AuditRecorder)(nil)

// NewAuditRecorder returns an empty recorder.
func NewAuditRecorder() *AuditRecorder {
	return &AuditRecorder{}
}

// Record implements types.AuditSink. The record is kept even when a failure
// was injected with FailWith.
func (r *AuditRecorder) Record(_ context.Context, rec types.ActionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, rec)

	return r.err
}

// FailWith makes every following Record call return err.
func (r *AuditRecorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.err = err
}

// Records returns a copy of the recorded records in order.
func (r *AuditRecorder) Records() []types.ActionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.ActionRecord, len(r.records))
	copy(out, r.records)

	return out
}

// Actions returns the action names of the recorded records in order.
func (r *AuditRecorder) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Action)
	}

	return out
}
