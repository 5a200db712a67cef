// Package lifecycle manages tables: create, activate, deactivate, resize, close,
// delete, metadata updates and reassignment to another partition.
//
// Close and Delete of a table with seated participants go through the mover,
// which relocates every participant to the least populated open tables of the
// same partition in the same transaction that resets or removes the table. If
// any participant cannot be placed, nothing is written.
//
// # Status Transitions
//
//	standby --Activate--> open --Deactivate (empty only)--> standby
//	any     --Close-----> standby (seats emptied, participants relocated)
//	any     --Delete----> removed (participants relocated)
package lifecycle
