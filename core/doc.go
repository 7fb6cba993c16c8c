// Package core provides the record types shared by every layer of the
// emulated store.
//
// A Record is one emulated row: a column-to-scalar map carrying the
// synthetic "id" and "created_at" columns assigned at insert time. Tables
// is the whole-store (and persisted-blob) shape, table name to ordered
// row sequence.
//
// The package also holds the value coercion rules the executor relies on:
//
//	core.LooseEquals(5, "5")   // true: numeric vs its string form
//	core.Compare("10", 9)      // 1: numeric comparison when both coerce
//	core.FormatValue(3.0)      // "3": whole floats render as integers
//
// Records restored from a JSON blob hold float64 numbers where the live
// session held ints; the coercion helpers treat both forms alike.
package core
