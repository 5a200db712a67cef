package seating

import "github.com/arloliu/seating/types"

// Re-export types from the types package.
//
// Internal packages depend on types only; callers get the convenient
// seating.Table, seating.Logger and so on from here.
type (
	Table              = types.Table
	TableStatus        = types.TableStatus
	Seat               = types.Seat
	Participant        = types.Participant
	ParticipantStatus  = types.ParticipantStatus
	SeatLocation       = types.SeatLocation
	Partition          = types.Partition
	Scope              = types.Scope
	SeatRef            = types.SeatRef
	SeatAddress        = types.SeatAddress
	AssignmentResult   = types.AssignmentResult
	BalancingResult    = types.BalancingResult
	DraftReport        = types.DraftReport
	TableDraftStats    = types.TableDraftStats
	Redistribution     = types.Redistribution
	ReassignReport     = types.ReassignReport
	TableSpec          = types.TableSpec
	TableUpdate        = types.TableUpdate
	ParticipantSpec    = types.ParticipantSpec
	ActionRecord       = types.ActionRecord
	OperationError     = types.OperationError
	ErrorClass         = types.ErrorClass
	ResizeBlockedError = types.ResizeBlockedError
	BlockingSeat       = types.BlockingSeat
)

// Re-export interfaces from the types package for convenience.
type (
	Store            = types.Store
	Randomizer       = types.Randomizer
	AuditSink        = types.AuditSink
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export constants from the types package.
const (
	TableStandby = types.TableStandby
	TableOpen    = types.TableOpen
	TableClosed  = types.TableClosed

	ParticipantActive = types.ParticipantActive
	ParticipantBusted = types.ParticipantBusted
	ParticipantNoShow = types.ParticipantNoShow

	AllPartitions = types.AllPartitions

	ClassPrecondition = types.ClassPrecondition
	ClassConflict     = types.ClassConflict
	ClassStructural   = types.ClassStructural
	ClassCapacity     = types.ClassCapacity
	ClassTransient    = types.ClassTransient
	ClassInvalid      = types.ClassInvalid
)

// NewScope returns a scope for the given owner and partition token.
func NewScope(ownerID, partitionID string) Scope {
	return types.NewScope(ownerID, partitionID)
}
