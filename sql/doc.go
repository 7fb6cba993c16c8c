// Package sql recognizes the handful of statement shapes the diary app
// issues and classifies everything else as unsupported.
//
// This is pattern recognition, not a SQL implementation. The parser is a
// total function: it never returns an error, and text outside the dialect
// degrades to an explicit variant the executor maps to a harmless result
// (an empty read or a zero-effect mutation). The degradations are part of
// the contract:
//
//	SELECT * FROM t WHERE a = ? AND b = ?   // composed WHERE: no predicate
//	DELETE FROM t WHERE a = ? AND b = ?     // unrecognized: zero rows
//	UPDATE t SET a = ? WHERE name = ?       // not keyed on id: unsupported
//
// Supported shapes: SELECT with an optional single-column predicate
// (= ? / = literal / BETWEEN ? AND ?), COUNT(*) and SUM(col) projections
// (optionally COALESCE-wrapped, with AS alias), GROUP BY date, ORDER BY,
// LIMIT; INSERT INTO with a column list (OR REPLACE/IGNORE modifiers are
// discarded); DELETE FROM with no WHERE or a single equality; and
// UPDATE ... SET c=?,... WHERE id = ?.
package sql
