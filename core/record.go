package core

// Record is one emulated row: column name to scalar (or nil), plus the
// synthetic "id" and "created_at" columns stamped at insert time.
type Record map[string]any

// Tables is the whole-store shape, and also the persisted blob shape:
// table name to its ordered row sequence.
type Tables map[string][]Record

// ID returns the record's synthetic id, coerced to int64. Records restored
// from a JSON blob carry float64 ids; both forms coerce the same way.
func (r Record) ID() (int64, bool) {
	f, ok := AsFloat(r["id"])
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// CreatedAt returns the RFC 3339 insert timestamp, or "" when absent.
func (r Record) CreatedAt() string {
	s, _ := r["created_at"].(string)
	return s
}

// Clone returns a shallow per-column copy. Values are scalars, so a
// column-level copy is a full copy.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Clone deep-copies the table map down to individual records.
func (t Tables) Clone() Tables {
	out := make(Tables, len(t))
	for name, rows := range t {
		copied := make([]Record, len(rows))
		for i, row := range rows {
			copied[i] = row.Clone()
		}
		out[name] = copied
	}
	return out
}
