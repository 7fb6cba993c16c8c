package db

// ExecResult is the effect summary of a mutation. Inserts report the
// generated id; deletes and updates report the rows they touched.
// Degraded statements report zero on both.
type ExecResult struct {
	GeneratedID  int64
	RowsAffected int
}
