package seating

import "github.com/arloliu/seating/types"

// Re-exported sentinel errors. Every Engine method returns a *OperationError
// wrapping one of these (or a store failure); use errors.Is to test for them
// and ClassOf to classify.
var (
	ErrInvalidConfig  = types.ErrInvalidConfig
	ErrStoreRequired  = types.ErrStoreRequired
	ErrTransient      = types.ErrTransient
	ErrAggregateScope = types.ErrAggregateScope

	ErrNoOpenTables           = types.ErrNoOpenTables
	ErrInsufficientSeats      = types.ErrInsufficientSeats
	ErrInsufficientEmptySeats = types.ErrInsufficientEmptySeats
	ErrNoActiveParticipants   = types.ErrNoActiveParticipants
	ErrNoEmptySeats           = types.ErrNoEmptySeats
	ErrTableNotOpen           = types.ErrTableNotOpen

	ErrTableNotFound       = types.ErrTableNotFound
	ErrParticipantNotFound = types.ErrParticipantNotFound
	ErrPartitionNotFound   = types.ErrPartitionNotFound
	ErrSeatOccupied        = types.ErrSeatOccupied
	ErrSeatMismatch        = types.ErrSeatMismatch
	ErrAlreadySeated       = types.ErrAlreadySeated

	ErrResizeBlocked      = types.ErrResizeBlocked
	ErrInvalidTransition  = types.ErrInvalidTransition
	ErrNoRelocationTarget = types.ErrNoRelocationTarget

	ErrInvalidArgument = types.ErrInvalidArgument
	ErrInvalidSeat     = types.ErrInvalidSeat
)

// ClassOf classifies an error returned by the Engine.
func ClassOf(err error) ErrorClass {
	return types.ClassOf(err)
}
