package db

import (
	"go.uber.org/zap"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/sql"
)

// DB is the facade the application talks to. Its surface mirrors the
// native engine's call shape, so callers never learn which backend is
// active: no method errors, and every call reparses its statement text
// fresh.
type DB struct {
	engine *Engine
	store  *ps.Store
	log    *zap.Logger
}

func New(store *ps.Store, log *zap.Logger) *DB {
	if log == nil {
		log = zap.NewNop()
	}
	return &DB{
		engine: NewEngine(store, log),
		store:  store,
		log:    log,
	}
}

// Run executes a statement for effect: inserts report the generated id,
// deletes and updates the rows touched. Statement text outside the
// dialect is a zero-effect no-op.
func (db *DB) Run(text string, params ...any) ExecResult {
	statement := sql.NewParser(text).Parse()
	return db.engine.Exec(statement, params)
}

// QueryAll returns every record the statement selects. Whatever the
// leading keyword, the text is read as a select; unrecognized clauses
// degrade to an unfiltered scan of the FROM table.
func (db *DB) QueryAll(text string, params ...any) []core.Record {
	statement := sql.ParseSelectQuery(text)
	return db.engine.Query(statement, params)
}

// QueryFirst returns the first selected record, or nil when nothing
// matches. COUNT and SUM always produce a row, even on empty tables.
func (db *DB) QueryFirst(text string, params ...any) core.Record {
	statement := sql.ParseSelectQuery(text)
	return db.engine.QueryFirst(statement, params)
}

// Wipe drops every table and the persisted document. It backs the
// "delete everything" settings flow and bypasses the query language.
func (db *DB) Wipe() {
	if outcome := db.store.Wipe(); outcome != ps.OK {
		db.log.Warn("wipe did not fully persist", zap.String("outcome", outcome.String()))
	}
}

// TableNames lists the tables currently materialized in the store.
func (db *DB) TableNames() []string {
	return db.store.TableNames()
}
