// Package db executes recognized statements against the persistence
// store and fronts them with the facade the application calls.
//
// The Engine is the only component that mutates state. Every mutation
// flushes the whole store through the persistence layer before the call
// returns; a failed flush is logged and swallowed, so the session keeps
// its in-memory state and the caller never sees an error.
//
// DB is the compatibility surface: Run for effect, QueryAll and
// QueryFirst for reads, Wipe for the hard reset. The select pipeline is
// filter, aggregate, group-by-date, order, limit, with degraded inputs
// resolving to the widest harmless interpretation (an unfiltered scan
// or a zero-effect mutation).
package db
