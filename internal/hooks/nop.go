// Package hooks provides default engine hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/seating/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// This is the default implementation used when no custom hooks are provided,
// eliminating the need for nil checks throughout the engine.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, string, []types.AssignmentResult) error = (*NopHooks)(nil).OnSeatsChanged
	_ func(context.Context, string, error) error                    = (*NopHooks)(nil).OnError
)

// NewNop creates a new no-op hooks implementation.
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnSeatsChanged: h.OnSeatsChanged,
		OnError:        h.OnError,
	}
}

// Fill returns h with every nil callback replaced by its no-op counterpart.
func Fill(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}
	if h.OnSeatsChanged != nil {
		out.OnSeatsChanged = h.OnSeatsChanged
	}
	if h.OnError != nil {
		out.OnError = h.OnError
	}

	return out
}

// OnSeatsChanged is a no-op implementation.
func (h *NopHooks) OnSeatsChanged(_ context.Context, _ string, _ []types.AssignmentResult) error {
	return nil
}

// OnError is a no-op implementation.
func (h *NopHooks) OnError(_ context.Context, _ string, _ error) error {
	return nil
}
