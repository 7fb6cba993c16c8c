package db

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jfranmatheu/EverydayFODMAP-sub001/core"
)

// SimpleTable renders records as an ASCII table without external
// dependencies. Used by the REPL to show query results.
type SimpleTable struct {
	writer  io.Writer
	headers []string
	rows    [][]string
}

func NewTable(w io.Writer) *SimpleTable {
	return &SimpleTable{
		writer: w,
		rows:   make([][]string, 0),
	}
}

func (t *SimpleTable) Header(headers []string) {
	t.headers = headers
}

func (t *SimpleTable) Row(row []string) {
	t.rows = append(t.rows, row)
}

// AddRecords derives the header from the records' column union and
// formats every cell. The id column leads, timestamps trail, the rest
// sort alphabetically.
func (t *SimpleTable) AddRecords(records []core.Record) {
	t.headers = recordColumns(records)
	for _, record := range records {
		row := make([]string, len(t.headers))
		for i, column := range t.headers {
			row[i] = core.FormatValue(record[column])
		}
		t.rows = append(t.rows, row)
	}
}

// Render outputs the formatted table
func (t *SimpleTable) Render() {
	if len(t.headers) == 0 && len(t.rows) == 0 {
		return
	}

	colWidths := t.calculateWidths()
	separator := t.buildSeparator(colWidths)

	fmt.Fprintln(t.writer, separator)

	if len(t.headers) > 0 {
		fmt.Fprintln(t.writer, t.formatRow(t.headers, colWidths))
		fmt.Fprintln(t.writer, separator)
	}

	for _, row := range t.rows {
		fmt.Fprintln(t.writer, t.formatRow(row, colWidths))
	}

	fmt.Fprintln(t.writer, separator)
}

func recordColumns(records []core.Record) []string {
	seen := map[string]bool{}
	var columns []string
	for _, record := range records {
		for column := range record {
			if !seen[column] {
				seen[column] = true
				columns = append(columns, column)
			}
		}
	}

	rank := func(column string) int {
		switch column {
		case "id":
			return 0
		case "created_at":
			return 2
		case "updated_at":
			return 3
		default:
			return 1
		}
	}
	sort.SliceStable(columns, func(i, j int) bool {
		ri, rj := rank(columns[i]), rank(columns[j])
		if ri != rj {
			return ri < rj
		}
		return columns[i] < columns[j]
	})
	return columns
}

// calculateWidths determines the width needed for each column
func (t *SimpleTable) calculateWidths() []int {
	numCols := len(t.headers)
	for _, row := range t.rows {
		if len(row) > numCols {
			numCols = len(row)
		}
	}

	widths := make([]int, numCols)
	for i, h := range t.headers {
		if len(h) > widths[i] {
			widths[i] = len(h)
		}
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < numCols && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i := range widths {
		if widths[i] < 1 {
			widths[i] = 1
		}
	}
	return widths
}

func (t *SimpleTable) buildSeparator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w+2)
	}
	return "+" + strings.Join(parts, "+") + "+"
}

func (t *SimpleTable) formatRow(row []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		parts[i] = " " + cell + strings.Repeat(" ", w-len(cell)+1)
	}
	return "|" + strings.Join(parts, "|") + "|"
}
