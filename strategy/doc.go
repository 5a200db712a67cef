// Package strategy provides the seat placement planners.
//
// Planners are pure functions: they take a snapshot of tables and participants
// plus a types.Randomizer and return a Plan describing the new seat layout. They
// never touch the store, which keeps them deterministic under a seeded randomizer
// and lets the caller apply a plan in a single write batch.
//
// The package includes three planners:
//
//   - PlanRebalance: reseat every given participant, round-robin across open tables
//   - PlanWaitingFill: seat only unseated participants at the least populated tables
//   - PlanSnakeDraft: reseat active participants balancing chip stacks with a snake draft
//
// # Planner Selection Guide
//
// PlanRebalance:
//   - Start of play or a full reseat break
//   - Table sizes differ by at most one
//   - Every seat is a uniformly random pick
//
// PlanWaitingFill:
//   - Late registrations and alternates
//   - Seated participants are never disturbed
//
// PlanSnakeDraft:
//   - Final-table or day-two redraws where stack distribution matters
//   - Reports per-table chip bands and whether the draft is balanced
package strategy
