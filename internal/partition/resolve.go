package partition

import "github.com/arloliu/seating/types"

// Resolve returns the authoritative partition of a table.
//
// A table keeps its own PartitionID after being reassigned, so it wins over the
// caller's context; fallback is used only when the record carries none.
//
// Parameters:
//   - table: Table record (may be nil)
//   - fallback: Caller-supplied partition id
//
// Returns:
//   - string: table.PartitionID if set, else fallback
func Resolve(table *types.Table, fallback string) string {
	if table != nil && table.PartitionID != "" {
		return table.PartitionID
	}

	return fallback
}

// ResolveParticipant is Resolve for participant records.
func ResolveParticipant(p *types.Participant, fallback string) string {
	if p != nil && p.PartitionID != "" {
		return p.PartitionID
	}

	return fallback
}
