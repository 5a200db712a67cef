// Package partition resolves which tournament partition a record belongs to.
//
// It owns the store key layout, the read strategies behind single-partition and
// aggregate ("ALL", "date:YYYY-MM-DD") views, and the lookups that find a table or
// participant when the caller's partition context is stale.
//
// Key layout:
//
//	o/{owner}/partitions/{partition}   partition record
//	o/{owner}/p/{partition}/t/{table}  table record
//	o/{owner}/p/{partition}/u/{id}     participant record
package partition
