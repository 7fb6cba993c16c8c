package op

import (
	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
)

type TableOp struct {
	Name  string
	Store *ps.Store
}

func For(store *ps.Store, name string) TableOp {
	return TableOp{Name: name, Store: store}
}

// Rows returns a snapshot of the table. Tables materialize on first
// insert, so an unknown name is just an empty snapshot.
func (op TableOp) Rows() []core.Record {
	return op.Store.Rows(op.Name)
}

func (op TableOp) Count() int {
	return len(op.Rows())
}

// NextID computes the id the next insert receives over a row slice:
// one past the current maximum, never below 1. Ids restored from a
// blob arrive as float64 and still count toward the maximum.
func NextID(rows []core.Record) int64 {
	var max int64
	for _, row := range rows {
		if id, ok := row.ID(); ok && id > max {
			max = id
		}
	}
	return max + 1
}

// Append inserts a row and flushes.
func (op TableOp) Append(row core.Record) ps.Outcome {
	return op.Store.Mutate(func(tables core.Tables) bool {
		tables[op.Name] = append(tables[op.Name], row)
		return true
	})
}

// Replace swaps the table's whole row slice and flushes.
func (op TableOp) Replace(rows []core.Record) ps.Outcome {
	return op.Store.Mutate(func(tables core.Tables) bool {
		tables[op.Name] = rows
		return true
	})
}
