package energy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type longRow struct {
	row, col string
	v        float64
}

func pivotLong(rows []longRow, opts PivotOptions) (*PivotTable, error) {
	return Pivot(rows,
		func(r longRow) string { return r.row },
		func(r longRow) string { return r.col },
		func(r longRow) float64 { return r.v },
		opts)
}

func TestPivotFillsMissingCells(t *testing.T) {
	tbl, err := pivotLong([]longRow{
		{"2024", "Non-Renewable", 300},
		{"2023", "Renewable", 10},
		{"2024", "Renewable", 100},
	}, PivotOptions{ColumnOrder: FirstSeen, Fill: 0})
	require.NoError(t, err)
	require.Equal(t, []string{"2023", "2024"}, tbl.Rows)
	require.Equal(t, []string{"Non-Renewable", "Renewable"}, tbl.Columns)
	require.Equal(t, [][]float64{{0, 10}, {300, 100}}, tbl.Cells)

	v, ok := tbl.Value("2023", "Non-Renewable")
	require.True(t, ok)
	require.Zero(t, v)
	_, ok = tbl.Value("1999", "Renewable")
	require.False(t, ok)
}

func TestPivotCanonicalColumns(t *testing.T) {
	rows := []longRow{
		{"2024", "Other", 1},
		{"2024", "Non-Renewable", 2},
		{"2024", "Renewable", 3},
	}
	tbl, err := pivotLong(rows, PivotOptions{ColumnOrder: Canonical, Columns: []string{"Renewable", "Non-Renewable", "Missing"}})
	require.NoError(t, err)
	require.Equal(t, []string{"Renewable", "Non-Renewable", "Other"}, tbl.Columns)

	tbl, err = pivotLong(rows, PivotOptions{ColumnOrder: Alphabetical})
	require.NoError(t, err)
	require.Equal(t, []string{"Non-Renewable", "Other", "Renewable"}, tbl.Columns)
}

func TestPivotRowOrder(t *testing.T) {
	rows := []longRow{{"B", "v", 200}, {"C", "v", 100}, {"A", "v", 50}}
	tbl, err := pivotLong(rows, PivotOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B", "C"}, tbl.Rows)

	tbl, err = pivotLong(rows, PivotOptions{KeepRowOrder: true})
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "A"}, tbl.Rows)
}

func TestPivotConflict(t *testing.T) {
	_, err := pivotLong([]longRow{{"2024", "Renewable", 1}, {"2024", "Renewable", 2}}, PivotOptions{})
	require.Error(t, err)

	var conflict *ConflictingValueError
	require.True(t, errors.As(err, &conflict))
	require.Equal(t, "2024", conflict.Row)
	require.Equal(t, "Renewable", conflict.Column)
	require.Equal(t, 1.0, conflict.Existing)
	require.Equal(t, 2.0, conflict.Incoming)

	// duplicate with equal value is fine
	tbl, err := pivotLong([]longRow{{"2024", "Renewable", 1}, {"2024", "Renewable", 1}}, PivotOptions{})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1}}, tbl.Cells)
}

func TestPivotIsRepeatable(t *testing.T) {
	c := DefaultClassifier()
	aggs := Aggregate(FilterRecords(sampleRecords(), c, FilterOptions{}), ByYear, ByCategory(c))
	build := func() *PivotTable {
		tbl, err := Pivot(aggs,
			func(a AggregatedValue) string { return a.Key[0] },
			func(a AggregatedValue) string { return a.Key[1] },
			func(a AggregatedValue) float64 { return a.Total },
			PivotOptions{Fill: -1, ColumnOrder: Canonical, Columns: categoryColumns})
		require.NoError(t, err)
		return tbl
	}
	require.Equal(t, build(), build())
}

func TestPivotHelpers(t *testing.T) {
	tbl, err := pivotLong([]longRow{{"x", "a", 1}, {"x", "b", 2}, {"y", "a", 3}}, PivotOptions{ColumnOrder: FirstSeen})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 3}, tbl.Column("a"))
	require.Nil(t, tbl.Column("zzz"))
	require.Equal(t, []float64{3, 3}, tbl.RowTotals())
	require.False(t, tbl.Empty())

	empty, err := pivotLong(nil, PivotOptions{})
	require.NoError(t, err)
	require.True(t, empty.Empty())
}
