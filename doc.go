// Package seating is a seat allocation and rebalancing engine for live poker
// tournaments.
//
// Participants are seated at physical tables; tables open and close as the field
// shrinks, and seat counts stay balanced across tables. Every operation keeps two
// guarantees: no seat holds two participants, and no participant holds two seats.
//
// # Quick Start
//
//	st, err := store.NewBadger(store.WithDataDir("/var/lib/seatd"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	cfg := seating.DefaultConfig()
//	eng, err := seating.NewEngine(&cfg, st)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	scope := seating.NewScope("club", "main-event")
//	results, err := eng.RebalanceAll(ctx, scope, nil)
//
// # Scopes and Partitions
//
// Records belong to an owner and a partition (one tournament). A Scope names
// both. The partition token AllPartitions, or a "date:YYYY-MM-DD" token, selects
// an aggregate read-only view across partitions; writes need a concrete
// partition. Tables and participants are located across the owner's partitions
// when the caller's partition is stale, so a Move or CloseTable issued from an
// aggregate view reaches the right records.
//
// # Operations
//
// Placements:
//
//   - RebalanceAll: round-robin reseat of every active participant
//   - FillWaiting: seat unseated participants at the least populated tables
//   - SnakeDraft: chip-balanced reseat (top, middle and bottom stacks spread evenly)
//   - Move: one participant, one seat to another, in a transaction
//   - BustOut: eliminate a participant and release their seat
//
// Tables: CreateTable, ActivateTable, DeactivateTable, ResizeSeats, UpdateTable,
// CloseTable and DeleteTable (both relocate seated participants first) and
// ReassignPartition.
//
// # Errors
//
// Every failure is a *OperationError carrying the operation, a failure class
// and the underlying sentinel:
//
//	_, err := eng.ResizeSeats(ctx, scope, tableID, 6)
//	var blocked *seating.ResizeBlockedError
//	switch {
//	case errors.As(err, &blocked):
//	    // blocked.Blocking names the occupied seats
//	case seating.ClassOf(err) == seating.ClassTransient:
//	    // retry later
//	}
//
// A failed operation writes nothing.
//
// # Concurrency
//
// Move, BustOut, ResizeSeats, CloseTable and DeleteTable run in one store
// transaction with conflict detection. RebalanceAll, FillWaiting and SnakeDraft
// read a snapshot and write one batch: a Move committed between the two is
// overwritten. Run bulk placements while play is paused.
package seating
