package audit

import (
	"context"

	"github.com/arloliu/seating/types"
)

// Nop is a sink that discards every record.
type Nop struct{}

// Compile-time assertion that Nop implements AuditSink.
var _ types.AuditSink = Nop{}

// NewNop returns a discarding sink.
func NewNop() types.AuditSink {
	return Nop{}
}

// Record implements types.AuditSink.
func (Nop) Record(context.Context, types.ActionRecord) error {
	return nil
}
