// Package roster registers participants and tournament partitions.
//
// A participant is created unseated, or seated atomically at an empty seat of an
// open table. Status changes here are limited to active and no-show; eliminating a
// participant goes through the assignment engine's bust-out so the seat is
// released in the same transaction. Deleting a participant clears any seat it
// holds first.
package roster
