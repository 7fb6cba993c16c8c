package db

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/op"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/ps"
	"github.com/jfranmatheu/EverydayFODMAP-sub001/sql"
)

// glassesColumn is the fallback accumulator for GROUP BY date when the
// projection names no SUM column.
const glassesColumn = "glasses"

type Engine struct {
	store *ps.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewEngine(store *ps.Store, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// Exec applies a mutation statement. Select and unsupported statements
// are zero-effect here; reads go through Query.
func (engine *Engine) Exec(statement sql.Statement, params []any) ExecResult {
	switch stmt := statement.(type) {
	case sql.InsertStatement:
		return engine.executeInsertStatement(stmt, params)
	case sql.DeleteStatement:
		return engine.executeDeleteStatement(stmt, params)
	case sql.UpdateStatement:
		return engine.executeUpdateStatement(stmt, params)
	default:
		engine.log.Debug("statement has no effect", zap.Any("type", statement.Type()))
		return ExecResult{}
	}
}

func (engine *Engine) executeInsertStatement(statement sql.InsertStatement, params []any) ExecResult {
	table := op.For(engine.store, statement.Table)

	record := core.Record{}
	for i, column := range statement.Columns {
		if i < len(params) {
			record[column] = params[i]
		} else {
			record[column] = nil
		}
	}
	id := op.NextID(table.Rows())
	record["id"] = id
	record["created_at"] = engine.now().Format(time.RFC3339)

	engine.logOutcome("insert", statement.Table, table.Append(record))
	return ExecResult{GeneratedID: id, RowsAffected: 1}
}

func (engine *Engine) executeDeleteStatement(statement sql.DeleteStatement, params []any) ExecResult {
	table := op.For(engine.store, statement.Table)

	switch statement.Mode {
	case sql.DeleteAll:
		removed := table.Count()
		engine.logOutcome("delete", statement.Table, table.Replace([]core.Record{}))
		return ExecResult{RowsAffected: removed}

	case sql.DeleteWhereParam:
		if len(params) == 0 {
			return ExecResult{}
		}
		return engine.deleteWhereEquals(table, statement.Column, params[0])

	case sql.DeleteWhereLiteral:
		return engine.deleteWhereEquals(table, statement.Column, statement.Literal)

	default:
		// Unrecognized WHERE shape: zero rows affected, no flush.
		return ExecResult{}
	}
}

func (engine *Engine) deleteWhereEquals(table op.TableOp, column string, value any) ExecResult {
	rows := table.Rows()
	kept := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		if !core.LooseEquals(row[column], value) {
			kept = append(kept, row)
		}
	}

	removed := len(rows) - len(kept)
	engine.logOutcome("delete", table.Name, table.Replace(kept))
	return ExecResult{RowsAffected: removed}
}

func (engine *Engine) executeUpdateStatement(statement sql.UpdateStatement, params []any) ExecResult {
	if len(params) != len(statement.SetColumns)+1 {
		return ExecResult{}
	}
	id := params[len(params)-1]

	table := op.For(engine.store, statement.Table)
	rows := table.Rows()

	for _, row := range rows {
		if !core.LooseEquals(row["id"], id) {
			continue
		}
		for i, column := range statement.SetColumns {
			if column == "updated_at" {
				// Wall clock wins over whatever the caller bound.
				continue
			}
			row[column] = params[i]
		}
		row["updated_at"] = engine.now().Format(time.RFC3339)

		engine.logOutcome("update", statement.Table, table.Replace(rows))
		return ExecResult{RowsAffected: 1}
	}

	return ExecResult{}
}

// Query runs the select pipeline: filter, aggregate, group-by-date,
// order, limit. Returned records are clones; callers may mutate them.
func (engine *Engine) Query(statement sql.SelectStatement, params []any) []core.Record {
	rows := op.For(engine.store, statement.Table).Rows()

	rows = filterRows(rows, statement.Where, params)

	if statement.GroupByDate {
		rows = groupRowsByDate(rows, statement.Aggregate)
	} else if statement.Aggregate.Kind != sql.NoAggregate {
		rows = []core.Record{aggregateRows(rows, statement.Aggregate)}
	} else {
		rows = cloneRows(rows)
	}

	if statement.OrderBy != nil {
		sortRows(rows, *statement.OrderBy)
	}
	if statement.Limit > 0 && statement.Limit < len(rows) {
		rows = rows[:statement.Limit]
	}
	return rows
}

// QueryFirst returns the pipeline's first row, or nil for an empty
// result. Aggregates always produce a row, so a COUNT or SUM over an
// empty table comes back as {count: 0} / {total: 0}, not nil.
func (engine *Engine) QueryFirst(statement sql.SelectStatement, params []any) core.Record {
	rows := engine.Query(statement, params)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}

// filterRows applies the predicate. A predicate whose bound parameters
// are missing resolves to the whole table, matching the rule that a
// WHERE with zero resolvable parameters does not filter.
func filterRows(rows []core.Record, where sql.Predicate, params []any) []core.Record {
	switch where.Kind {
	case sql.EqualsParam:
		if len(params) == 0 {
			return rows
		}
		return filterEquals(rows, where.Column, params[0])

	case sql.EqualsLiteral:
		return filterEquals(rows, where.Column, where.Literal)

	case sql.BetweenParams:
		if len(params) < 2 {
			return rows
		}
		lo, hi := params[0], params[1]
		matched := make([]core.Record, 0, len(rows))
		for _, row := range rows {
			value := row[where.Column]
			if core.Compare(value, lo) >= 0 && core.Compare(value, hi) <= 0 {
				matched = append(matched, row)
			}
		}
		return matched

	default:
		return rows
	}
}

func filterEquals(rows []core.Record, column string, value any) []core.Record {
	matched := make([]core.Record, 0, len(rows))
	for _, row := range rows {
		if core.LooseEquals(row[column], value) {
			matched = append(matched, row)
		}
	}
	return matched
}

// aggregateRows reduces to a single row. Missing column values count
// as zero, and an empty input still yields the zero row.
func aggregateRows(rows []core.Record, aggregate sql.Aggregate) core.Record {
	if aggregate.Kind == sql.CountRows {
		return core.Record{"count": int64(len(rows))}
	}

	var total float64
	for _, row := range rows {
		if v, ok := core.AsFloat(row[aggregate.Column]); ok {
			total += v
		}
	}
	return core.Record{"total": normalizeNumber(total)}
}

// groupRowsByDate buckets rows by their date column and emits one
// {date, count, total} row per distinct date, ascending. The total
// accumulates the SUM column when the projection named one, otherwise
// the glasses column.
func groupRowsByDate(rows []core.Record, aggregate sql.Aggregate) []core.Record {
	column := glassesColumn
	if aggregate.Kind == sql.SumColumn {
		column = aggregate.Column
	}

	counts := map[string]int64{}
	totals := map[string]float64{}
	for _, row := range rows {
		date := core.FormatValue(row["date"])
		counts[date]++
		if v, ok := core.AsFloat(row[column]); ok {
			totals[date] += v
		}
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	grouped := make([]core.Record, 0, len(dates))
	for _, date := range dates {
		grouped = append(grouped, core.Record{
			"date":  date,
			"count": counts[date],
			"total": normalizeNumber(totals[date]),
		})
	}
	return grouped
}

func sortRows(rows []core.Record, orderBy sql.OrderByClause) {
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := core.Compare(rows[i][orderBy.Column], rows[j][orderBy.Column])
		if orderBy.Descending {
			return cmp > 0
		}
		return cmp < 0
	})
}

func cloneRows(rows []core.Record) []core.Record {
	cloned := make([]core.Record, len(rows))
	for i, row := range rows {
		cloned[i] = row.Clone()
	}
	return cloned
}

// normalizeNumber keeps whole sums as integers so a restored blob and a
// live session render totals identically.
func normalizeNumber(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}

func (engine *Engine) logOutcome(operation, table string, outcome ps.Outcome) {
	if outcome == ps.OK {
		return
	}
	engine.log.Warn("mutation not persisted",
		zap.String("operation", operation),
		zap.String("table", table),
		zap.String("outcome", outcome.String()))
}
