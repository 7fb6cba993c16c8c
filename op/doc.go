// Package op provides per-table accessors over the persistence store.
// The engine works through TableOp so statement execution never touches
// the store's table map directly.
package op
