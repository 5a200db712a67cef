package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Sentinel errors for the seating engine.
//
// These errors provide type-safe error checking using errors.Is() and errors.As().
// Engine operations wrap them in *OperationError, which carries the operation name,
// a failure class and a human-readable detail with the counts involved.

// Engine construction errors.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStoreRequired is returned when no store is supplied.
	ErrStoreRequired = errors.New("store is required")
)

// Store errors.
var (
	// ErrNotFound is returned by Reader.Get when a key does not exist.
	ErrNotFound = errors.New("key not found")

	// ErrTransient is returned when a transaction keeps conflicting with concurrent
	// writers and the store gives up retrying.
	ErrTransient = errors.New("transient store conflict")
)

// Precondition errors - detected before any mutation.
var (
	// ErrNoOpenTables is returned when a placement needs at least one open table.
	ErrNoOpenTables = errors.New("no open tables")

	// ErrInsufficientSeats is returned when total open seats are fewer than participants.
	ErrInsufficientSeats = errors.New("insufficient seats")

	// ErrInsufficientEmptySeats is returned when empty open seats are fewer than participants.
	ErrInsufficientEmptySeats = errors.New("insufficient empty seats")

	// ErrNoActiveParticipants is returned when a draft finds nobody to seat.
	ErrNoActiveParticipants = errors.New("no active participants")

	// ErrNoEmptySeats is returned when a chosen table unexpectedly has no free seat.
	ErrNoEmptySeats = errors.New("no empty seats")

	// ErrAggregateScope is returned when a write targets an aggregate view.
	ErrAggregateScope = errors.New("operation requires a concrete partition")

	// ErrTableNotOpen is returned when a participant is moved onto a table that is not dealing.
	ErrTableNotOpen = errors.New("table is not open")
)

// Conflict errors - abort the transaction, nothing is written.
var (
	// ErrTableNotFound is returned when a table cannot be located.
	ErrTableNotFound = errors.New("table not found")

	// ErrParticipantNotFound is returned when a participant cannot be located.
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrPartitionNotFound is returned when a partition record does not exist.
	ErrPartitionNotFound = errors.New("partition not found")

	// ErrSeatOccupied is returned when the target seat already holds someone.
	ErrSeatOccupied = errors.New("seat occupied")

	// ErrSeatMismatch is returned when the source seat does not hold the participant.
	ErrSeatMismatch = errors.New("seat does not hold participant")

	// ErrAlreadySeated is returned when seating a participant who already holds a seat.
	ErrAlreadySeated = errors.New("participant already seated")
)

// Structural errors.
var (
	// ErrResizeBlocked is returned when shrinking a table would evict participants.
	ErrResizeBlocked = errors.New("resize would evict seated participants")

	// ErrInvalidTransition is returned for a table status change that is not allowed.
	ErrInvalidTransition = errors.New("invalid table status transition")
)

// Capacity errors.
var (
	// ErrNoRelocationTarget is returned when a vacated table's participants cannot
	// all be placed on other open tables.
	ErrNoRelocationTarget = errors.New("no open tables available for relocation")
)

// Argument errors.
var (
	// ErrInvalidArgument is returned for malformed requests.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidSeat is returned when a seat index is out of range.
	ErrInvalidSeat = errors.New("invalid seat index")
)

// ErrorClass classifies engine failures for callers.
type ErrorClass int

const (
	// ClassUnknown is an unclassified failure (usually an I/O or codec error).
	ClassUnknown ErrorClass = iota

	// ClassPrecondition is a failed precondition detected before any mutation.
	ClassPrecondition

	// ClassConflict is an aborted transaction (occupied seat, missing record).
	ClassConflict

	// ClassStructural is a structural rejection (resize eviction, bad transition).
	ClassStructural

	// ClassCapacity is a redistribution that found no room anywhere.
	ClassCapacity

	// ClassTransient is a store-level conflict the caller may retry.
	ClassTransient

	// ClassInvalid is a malformed request.
	ClassInvalid
)

// String returns the class name.
func (c ErrorClass) String() string {
	switch c {
	case ClassPrecondition:
		return "precondition"
	case ClassConflict:
		return "conflict"
	case ClassStructural:
		return "structural"
	case ClassCapacity:
		return "capacity"
	case ClassTransient:
		return "transient"
	case ClassInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

var sentinelClasses = []struct {
	err   error
	class ErrorClass
}{
	{ErrNoOpenTables, ClassPrecondition},
	{ErrInsufficientSeats, ClassPrecondition},
	{ErrInsufficientEmptySeats, ClassPrecondition},
	{ErrNoActiveParticipants, ClassPrecondition},
	{ErrNoEmptySeats, ClassPrecondition},
	{ErrAggregateScope, ClassPrecondition},
	{ErrTableNotOpen, ClassPrecondition},
	{ErrTableNotFound, ClassConflict},
	{ErrParticipantNotFound, ClassConflict},
	{ErrPartitionNotFound, ClassConflict},
	{ErrSeatOccupied, ClassConflict},
	{ErrSeatMismatch, ClassConflict},
	{ErrAlreadySeated, ClassConflict},
	{ErrResizeBlocked, ClassStructural},
	{ErrInvalidTransition, ClassStructural},
	{ErrNoRelocationTarget, ClassCapacity},
	{ErrTransient, ClassTransient},
	{ErrInvalidArgument, ClassInvalid},
	{ErrInvalidSeat, ClassInvalid},
	{ErrInvalidConfig, ClassInvalid},
}

// OperationError is the error returned by every engine operation.
type OperationError struct {
	// Op is the failing operation (an Action* name).
	Op string

	// Class is the failure classification.
	Class ErrorClass

	// Detail is a human-readable description including the counts involved.
	Detail string

	// Err is the underlying sentinel or cause.
	Err error
}

// NewOperationError wraps err for operation op, deriving the class from err.
//
// Parameters:
//   - op: Operation name
//   - err: Underlying error (usually a sentinel)
//   - format, args: Detail message
//
// Returns:
//   - *OperationError: Classified error
func NewOperationError(op string, err error, format string, args ...any) *OperationError {
	return &OperationError{
		Op:     op,
		Class:  ClassOf(err),
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

// Error implements error.
func (e *OperationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

// Unwrap returns the underlying error.
func (e *OperationError) Unwrap() error {
	return e.Err
}

// ClassOf classifies err.
//
// An *OperationError anywhere in the chain reports its own class; otherwise the
// first matching sentinel decides. Unrecognized errors are ClassUnknown.
func ClassOf(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	var opErr *OperationError
	if errors.As(err, &opErr) && opErr.Class != ClassUnknown {
		return opErr.Class
	}

	for _, sc := range sentinelClasses {
		if errors.Is(err, sc.err) {
			return sc.class
		}
	}

	return ClassUnknown
}

// BlockingSeat is an occupied seat that prevents a shrink.
type BlockingSeat struct {
	SeatNumber      int    `json:"seatNumber"`
	ParticipantID   string `json:"participantId"`
	ParticipantName string `json:"participantName"`
}

// ResizeBlockedError reports which seats prevent a table from shrinking.
type ResizeBlockedError struct {
	TableNumber int
	Requested   int
	Blocking    []BlockingSeat
}

// Error implements error.
func (e *ResizeBlockedError) Error() string {
	parts := make([]string, 0, len(e.Blocking))
	for _, b := range e.Blocking {
		name := b.ParticipantName
		if name == "" {
			name = b.ParticipantID
		}
		parts = append(parts, "seat "+strconv.Itoa(b.SeatNumber)+" ("+name+")")
	}

	return fmt.Sprintf("cannot resize table %d to %d seats: occupied %s",
		e.TableNumber, e.Requested, strings.Join(parts, ", "))
}

// Unwrap returns ErrResizeBlocked.
func (e *ResizeBlockedError) Unwrap() error {
	return ErrResizeBlocked
}
