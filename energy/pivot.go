package energy

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// ColumnOrder decides how pivot columns are ordered.
type ColumnOrder string

const (
	// FirstSeen keeps columns in order of first appearance.
	FirstSeen ColumnOrder = "first-seen"
	// Canonical puts PivotOptions.Columns first, then the rest as first seen.
	Canonical ColumnOrder = "canonical"
	// Alphabetical sorts columns by name.
	Alphabetical ColumnOrder = "alphabetical"
)

// ParseColumnOrder returns Canonical for unknown names.
func ParseColumnOrder(s string) ColumnOrder {
	switch o := ColumnOrder(s); o {
	case FirstSeen, Alphabetical:
		return o
	}
	return Canonical
}

// ConflictingValueError reports two different values for the same cell.
// It means the grouping key upstream was not exhaustive.
type ConflictingValueError struct {
	Row, Column        string
	Existing, Incoming float64
}

func (e *ConflictingValueError) Error() string {
	return fmt.Sprintf("energy: conflicting values for (%s, %s): %g vs %g", e.Row, e.Column, e.Existing, e.Incoming)
}

// PivotOptions controls Pivot.
type PivotOptions struct {
	Fill         float64
	Columns      []string // orde canónica, se ColumnOrder == Canonical
	ColumnOrder  ColumnOrder
	KeepRowOrder bool // filas en orde de aparición (rankings)
	RowHeader    string
}

// PivotTable is a dense row × column grid.
type PivotTable struct {
	RowHeader string
	Rows      []string
	Columns   []string
	Cells     [][]float64 // Cells[row][col]
}

// Empty reports whether the table has no rows.
func (t *PivotTable) Empty() bool { return t == nil || len(t.Rows) == 0 }

// Value returns the cell for (row, col) and whether both exist.
func (t *PivotTable) Value(row, col string) (float64, bool) {
	ri := lo.IndexOf(t.Rows, row)
	ci := lo.IndexOf(t.Columns, col)
	if ri < 0 || ci < 0 {
		return 0, false
	}
	return t.Cells[ri][ci], true
}

// Column returns one column as a slice aligned with Rows.
func (t *PivotTable) Column(col string) []float64 {
	ci := lo.IndexOf(t.Columns, col)
	if ci < 0 {
		return nil
	}
	return lo.Map(t.Cells, func(row []float64, _ int) float64 { return row[ci] })
}

// RowTotals sums every row.
func (t *PivotTable) RowTotals() []float64 {
	return lo.Map(t.Cells, func(row []float64, _ int) float64 { return lo.Sum(row) })
}

// Pivot reshapes long rows into a table indexed by rowKey with one column
// per distinct colKey. Missing combinations get opts.Fill.
func Pivot[T any](rows []T, rowKey, colKey func(T) string, value func(T) float64, opts PivotOptions) (*PivotTable, error) {
	type cell struct{ r, c string }
	vals := make(map[cell]float64, len(rows))
	var rowNames, colNames []string
	seenRow := map[string]bool{}
	seenCol := map[string]bool{}

	for _, it := range rows {
		r, c, v := rowKey(it), colKey(it), value(it)
		if prev, ok := vals[cell{r, c}]; ok {
			if prev != v {
				return nil, &ConflictingValueError{Row: r, Column: c, Existing: prev, Incoming: v}
			}
			continue
		}
		vals[cell{r, c}] = v
		if !seenRow[r] {
			seenRow[r] = true
			rowNames = append(rowNames, r)
		}
		if !seenCol[c] {
			seenCol[c] = true
			colNames = append(colNames, c)
		}
	}

	if !opts.KeepRowOrder {
		sort.SliceStable(rowNames, func(i, j int) bool { return naturalLess(rowNames[i], rowNames[j]) })
	}
	colNames = orderColumns(colNames, opts)

	t := &PivotTable{RowHeader: opts.RowHeader, Rows: rowNames, Columns: colNames}
	t.Cells = make([][]float64, len(rowNames))
	for i, r := range rowNames {
		t.Cells[i] = make([]float64, len(colNames))
		for j, c := range colNames {
			if v, ok := vals[cell{r, c}]; ok {
				t.Cells[i][j] = v
			} else {
				t.Cells[i][j] = opts.Fill
			}
		}
	}
	return t, nil
}

func orderColumns(seen []string, opts PivotOptions) []string {
	switch opts.ColumnOrder {
	case Alphabetical:
		out := append([]string(nil), seen...)
		sort.Strings(out)
		return out
	case FirstSeen:
		return seen
	}
	// canónica: só as observadas, e o resto detrás
	out := lo.Filter(opts.Columns, func(c string, _ int) bool { return lo.Contains(seen, c) })
	out = lo.Uniq(out)
	for _, c := range seen {
		if !lo.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
