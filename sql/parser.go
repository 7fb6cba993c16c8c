package sql

import "strconv"

type StatementType int

const (
	SelectStatementType StatementType = iota
	InsertStatementType
	DeleteStatementType
	UpdateStatementType
	UnsupportedStatementType
)

type Statement interface {
	Type() StatementType
}

// SelectStatement describes a recognized read. Every field is optional:
// a zero SelectStatement is an unfiltered scan of an empty-named table.
type SelectStatement struct {
	Table       string
	Where       Predicate
	Aggregate   Aggregate
	GroupByDate bool
	OrderBy     *OrderByClause
	Limit       int
}

// InsertStatement carries the target table and the ordered column list.
// The column-less `INSERT INTO t VALUES` form yields an empty list; the
// caller owns that risk.
type InsertStatement struct {
	Table   string
	Columns []string
}

type DeleteMode int

const (
	// DeleteAll is the unconditional `DELETE FROM t` form.
	DeleteAll DeleteMode = iota
	// DeleteWhereParam is `DELETE FROM t WHERE col = ?`.
	DeleteWhereParam
	// DeleteWhereLiteral is `DELETE FROM t WHERE col = '<literal>'`.
	DeleteWhereLiteral
	// DeleteUnrecognized is any other WHERE shape. It executes as zero
	// rows affected, never as an error.
	DeleteUnrecognized
)

type DeleteStatement struct {
	Table   string
	Mode    DeleteMode
	Column  string
	Literal string
}

// UpdateStatement is the single supported update shape:
// `UPDATE t SET c1=?,c2=?,... WHERE id = ?`. SET columns align
// positionally with the bound parameters; the id parameter is last.
type UpdateStatement struct {
	Table      string
	SetColumns []string
}

// UnsupportedStatement is the explicit degrade variant: the executor maps
// it to a zero-effect mutation or an empty read.
type UnsupportedStatement struct{}

type PredicateKind int

const (
	NoPredicate PredicateKind = iota
	EqualsParam
	EqualsLiteral
	BetweenParams
)

// Predicate is the filter derived from a WHERE clause, when recognized.
// Boolean composition (AND/OR) is out of dialect; a composed WHERE is
// discarded wholesale, never partially honored.
type Predicate struct {
	Kind    PredicateKind
	Column  string
	Literal string
}

type AggregateKind int

const (
	NoAggregate AggregateKind = iota
	CountRows
	SumColumn
)

type Aggregate struct {
	Kind   AggregateKind
	Column string
	// Alias is recognized but never read downstream: result keys are
	// always the fixed count/total, matching what callers index on. An
	// alias spelled as a keyword (`AS count`) is dropped at parse time.
	Alias string
}

type OrderByClause struct {
	Column     string
	Descending bool
}

func (s SelectStatement) Type() StatementType {
	return SelectStatementType
}

func (s InsertStatement) Type() StatementType {
	return InsertStatementType
}

func (s DeleteStatement) Type() StatementType {
	return DeleteStatementType
}

func (s UpdateStatement) Type() StatementType {
	return UpdateStatementType
}

func (s UnsupportedStatement) Type() StatementType {
	return UnsupportedStatementType
}

type Parser struct {
	lexer *Lexer
}

func NewParser(query string) *Parser {
	return &Parser{lexer: NewLexer(query)}
}

// Parse classifies a statement. It is a total function: text outside the
// supported dialect yields UnsupportedStatement, never an error.
func (parser *Parser) Parse() Statement {
	token := parser.lexer.NextToken()
	switch token.Type {
	case Select:
		return ParseSelect(parser)
	case Insert:
		return ParseInsert(parser)
	case Delete:
		return ParseDelete(parser)
	case Update:
		return ParseUpdate(parser)
	default:
		return UnsupportedStatement{}
	}
}

// ParseSelectQuery parses arbitrary text the way the select-many and
// select-first call paths do: recognition is anchored on the first FROM
// token, and everything unrecognized degrades to "no predicate, no
// aggregate, no ordering".
func ParseSelectQuery(query string) SelectStatement {
	parser := NewParser(query)
	if parser.lexer.PeekToken().Type == Select {
		parser.lexer.NextToken()
	}
	return ParseSelect(parser)
}

func ParseSelect(parser *Parser) SelectStatement {
	var stmt SelectStatement

	// Projection: scan to FROM, noting COUNT(*) / SUM(col), optionally
	// wrapped in COALESCE, and an AS alias. Anything else is skipped.
	for {
		token := parser.lexer.NextToken()
		if token.Type == EOF {
			return stmt
		}
		if token.Type == From {
			break
		}
		switch token.Type {
		case Count:
			if agg, ok := parseCountCall(parser); ok {
				stmt.Aggregate = agg
			}
		case Sum:
			if agg, ok := parseSumCall(parser); ok {
				stmt.Aggregate = agg
			}
		case Coalesce:
			if agg, ok := parseCoalesceSum(parser); ok {
				stmt.Aggregate = agg
			}
		case As:
			alias := parser.lexer.NextToken()
			if alias.Type == Identifier && stmt.Aggregate.Kind != NoAggregate {
				stmt.Aggregate.Alias = alias.Value
			}
		}
	}

	table := parser.lexer.NextToken()
	if table.Type != Identifier {
		return stmt
	}
	stmt.Table = table.Value

	for {
		token := parser.lexer.NextToken()
		switch token.Type {
		case EOF:
			return stmt
		case Where:
			stmt.Where = parseWherePredicate(parser)
		case Group:
			if parser.lexer.PeekToken().Type == By {
				parser.lexer.NextToken() // consume BY
				col := parser.lexer.NextToken()
				// date is the only supported grouping key
				if col.Type == Identifier && toUpper(col.Value) == "DATE" {
					stmt.GroupByDate = true
				}
			}
		case Order:
			if parser.lexer.PeekToken().Type == By {
				parser.lexer.NextToken() // consume BY
				col := parser.lexer.NextToken()
				if col.Type == Identifier {
					clause := OrderByClause{Column: col.Value}
					switch parser.lexer.PeekToken().Type {
					case Desc:
						parser.lexer.NextToken()
						clause.Descending = true
					case Asc:
						parser.lexer.NextToken()
					}
					stmt.OrderBy = &clause
				}
			}
		case Limit:
			n := parser.lexer.NextToken()
			if n.Type == Int {
				limit, err := strconv.Atoi(n.Value)
				if err == nil {
					stmt.Limit = limit
				}
			}
		}
		// Leftover tokens from a discarded WHERE fall through here and
		// are skipped; GROUP/ORDER/LIMIT are still picked up after them.
	}
}

// parseWherePredicate recognizes `col BETWEEN ? AND ?` and `col = ?` (or a
// quoted/numeric literal). A trailing AND/OR means boolean composition, so
// the whole clause is discarded and the filter step runs unfiltered.
func parseWherePredicate(parser *Parser) Predicate {
	col := parser.lexer.NextToken()
	if col.Type != Identifier {
		return Predicate{}
	}

	op := parser.lexer.NextToken()
	switch op.Type {
	case Between:
		lo := parser.lexer.NextToken()
		and := parser.lexer.NextToken()
		hi := parser.lexer.NextToken()
		if lo.Type != Placeholder || and.Type != And || hi.Type != Placeholder {
			return Predicate{}
		}
		if composedAhead(parser) {
			return Predicate{}
		}
		return Predicate{Kind: BetweenParams, Column: col.Value}

	case Equals:
		val := parser.lexer.NextToken()
		var pred Predicate
		switch val.Type {
		case Placeholder:
			pred = Predicate{Kind: EqualsParam, Column: col.Value}
		case String, Int, Float:
			pred = Predicate{Kind: EqualsLiteral, Column: col.Value, Literal: val.Value}
		default:
			return Predicate{}
		}
		if composedAhead(parser) {
			return Predicate{}
		}
		return pred

	default:
		return Predicate{}
	}
}

func composedAhead(parser *Parser) bool {
	next := parser.lexer.PeekToken()
	return next.Type == And || next.Type == Or
}

// The aggregate-call helpers peek before every consume: on a failed
// match they leave the offending token in the stream, so a column that
// happens to be named count/sum/coalesce never swallows the FROM anchor.
func parseCountCall(parser *Parser) (Aggregate, bool) {
	if !consumeToken(parser, ParenOpen) {
		return Aggregate{}, false
	}
	if !consumeToken(parser, Wildcard) {
		return Aggregate{}, false
	}
	if !consumeToken(parser, ParenClose) {
		return Aggregate{}, false
	}
	return Aggregate{Kind: CountRows}, true
}

func parseSumCall(parser *Parser) (Aggregate, bool) {
	if !consumeToken(parser, ParenOpen) {
		return Aggregate{}, false
	}
	col := parser.lexer.PeekToken()
	if col.Type != Identifier {
		return Aggregate{}, false
	}
	parser.lexer.NextToken()
	if !consumeToken(parser, ParenClose) {
		return Aggregate{}, false
	}
	return Aggregate{Kind: SumColumn, Column: col.Value}, true
}

// parseCoalesceSum handles `COALESCE(SUM(col), 0)`. The fallback argument
// is skipped: the executor already treats missing values as zero.
func parseCoalesceSum(parser *Parser) (Aggregate, bool) {
	if !consumeToken(parser, ParenOpen) {
		return Aggregate{}, false
	}
	if !consumeToken(parser, Sum) {
		return Aggregate{}, false
	}
	agg, ok := parseSumCall(parser)
	if !ok {
		return Aggregate{}, false
	}
	for {
		next := parser.lexer.PeekToken()
		if next.Type == EOF || next.Type == From {
			break
		}
		parser.lexer.NextToken()
		if next.Type == ParenClose {
			break
		}
	}
	return agg, true
}

// consumeToken advances past the next token only when it has the wanted
// type.
func consumeToken(parser *Parser, want TokenType) bool {
	if parser.lexer.PeekToken().Type != want {
		return false
	}
	parser.lexer.NextToken()
	return true
}

func ParseInsert(parser *Parser) Statement {
	token := parser.lexer.NextToken()
	if token.Type == Or {
		// INSERT OR REPLACE / OR IGNORE: the modifier is discarded.
		parser.lexer.NextToken()
		token = parser.lexer.NextToken()
	}
	if token.Type != Into {
		return UnsupportedStatement{}
	}

	table := parser.lexer.NextToken()
	if table.Type != Identifier {
		return UnsupportedStatement{}
	}
	stmt := InsertStatement{Table: table.Value, Columns: []string{}}

	token = parser.lexer.NextToken()
	if token.Type == Values {
		// Column-less form: recognized, empty column list.
		return stmt
	}
	if token.Type != ParenOpen {
		return UnsupportedStatement{}
	}

	for {
		token = parser.lexer.NextToken()
		switch token.Type {
		case Identifier:
			stmt.Columns = append(stmt.Columns, token.Value)
		case Comma:
		case ParenClose:
			return stmt
		case EOF:
			return UnsupportedStatement{}
		default:
			return UnsupportedStatement{}
		}
	}
}

func ParseDelete(parser *Parser) Statement {
	if parser.lexer.NextToken().Type != From {
		return UnsupportedStatement{}
	}
	table := parser.lexer.NextToken()
	if table.Type != Identifier {
		return UnsupportedStatement{}
	}

	token := parser.lexer.NextToken()
	if token.Type == EOF {
		return DeleteStatement{Table: table.Value, Mode: DeleteAll}
	}
	if token.Type != Where {
		return DeleteStatement{Table: table.Value, Mode: DeleteUnrecognized}
	}

	unrecognized := DeleteStatement{Table: table.Value, Mode: DeleteUnrecognized}

	col := parser.lexer.NextToken()
	if col.Type != Identifier {
		return unrecognized
	}
	if parser.lexer.NextToken().Type != Equals {
		return unrecognized
	}
	val := parser.lexer.NextToken()
	if parser.lexer.NextToken().Type != EOF {
		// Multi-column WHERE on DELETE: zero rows affected.
		return unrecognized
	}

	switch val.Type {
	case Placeholder:
		return DeleteStatement{Table: table.Value, Mode: DeleteWhereParam, Column: col.Value}
	case String:
		return DeleteStatement{Table: table.Value, Mode: DeleteWhereLiteral, Column: col.Value, Literal: val.Value}
	default:
		return unrecognized
	}
}

func ParseUpdate(parser *Parser) Statement {
	table := parser.lexer.NextToken()
	if table.Type != Identifier {
		return UnsupportedStatement{}
	}
	if parser.lexer.NextToken().Type != Set {
		return UnsupportedStatement{}
	}

	var columns []string
	for {
		col := parser.lexer.NextToken()
		if col.Type != Identifier {
			return UnsupportedStatement{}
		}
		if parser.lexer.NextToken().Type != Equals {
			return UnsupportedStatement{}
		}
		if parser.lexer.NextToken().Type != Placeholder {
			return UnsupportedStatement{}
		}
		columns = append(columns, col.Value)

		next := parser.lexer.NextToken()
		if next.Type == Comma {
			continue
		}
		if next.Type == Where {
			break
		}
		return UnsupportedStatement{}
	}

	// Only `WHERE id = ?` is supported, with the id parameter last.
	idCol := parser.lexer.NextToken()
	if idCol.Type != Identifier || toUpper(idCol.Value) != "ID" {
		return UnsupportedStatement{}
	}
	if parser.lexer.NextToken().Type != Equals {
		return UnsupportedStatement{}
	}
	if parser.lexer.NextToken().Type != Placeholder {
		return UnsupportedStatement{}
	}

	return UpdateStatement{Table: table.Value, SetColumns: columns}
}
