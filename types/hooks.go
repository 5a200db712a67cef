package types

import "context"

// Hooks defines callbacks for engine events.
//
// All hooks are optional. They run synchronously after the operation has
// committed and after the audit record was emitted; hook errors are logged and
// never change the operation result.
//
// Example:
//
//	hooks := &seating.Hooks{
//	    OnSeatsChanged: func(ctx context.Context, action string, results []seating.AssignmentResult) error {
//	        for _, r := range results {
//	            announce(r.ParticipantName, r.To)
//	        }
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnSeatsChanged is called when an operation seated or moved participants.
	OnSeatsChanged func(ctx context.Context, action string, results []AssignmentResult) error

	// OnError is called when an operation fails.
	OnError func(ctx context.Context, action string, err error) error
}
