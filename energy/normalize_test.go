package energy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPercentageOfParentExample(t *testing.T) {
	c := DefaultClassifier()
	recs := []Record{
		{Country: "Colombia", Product: "Hydro", Year: 2024, Value: 100},
		{Country: "Colombia", Product: "Coal", Year: 2024, Value: 300},
	}
	rows := PercentageOfParent(Aggregate(recs, ByYear, ByCategory(c)), Prefix(1))
	require.Len(t, rows, 2)

	byCat := map[string]PercentageRow{}
	for _, r := range rows {
		byCat[r.Key.Last()] = r
	}
	require.InDelta(t, 25.0, byCat["Renewable"].Percentage, 1e-9)
	require.InDelta(t, 75.0, byCat["Non-Renewable"].Percentage, 1e-9)
	require.Equal(t, 400.0, byCat["Renewable"].ParentTotal)
}

func TestPercentagesSumTo100PerParent(t *testing.T) {
	c := DefaultClassifier()
	recs := append(sampleRecords(),
		Record{Country: "Chile", Product: "Solar", Year: 2022, Value: 1.0 / 3},
		Record{Country: "Chile", Product: "Natural Gas", Year: 2022, Value: 2.0 / 7},
	)
	aggs := Aggregate(FilterRecords(recs, c, FilterOptions{}), ByYear, ByCategory(c))
	rows := PercentageOfParent(aggs, Prefix(1))

	sums := map[string]float64{}
	for _, r := range rows {
		sums[r.Key[0]] += r.Percentage
	}
	for year, s := range sums {
		require.InDelta(t, 100.0, s, 1e-6, year)
	}
}

func TestPercentageZeroParent(t *testing.T) {
	aggs := []AggregatedValue{
		{Key: Key{"2024", "Renewable"}, Total: 0},
		{Key: Key{"2024", "Non-Renewable"}, Total: 0},
	}
	for _, r := range PercentageOfParent(aggs, Prefix(1)) {
		require.Zero(t, r.Percentage)
		require.Zero(t, r.ParentTotal)
	}
}

func TestPercentageGrandTotal(t *testing.T) {
	aggs := []AggregatedValue{{Key: Key{"Hydro"}, Total: 1}, {Key: Key{"Wind"}, Total: 3}}
	rows := PercentageOfParent(aggs, Prefix(0))
	require.InDelta(t, 25.0, rows[0].Percentage, 1e-9)
	require.InDelta(t, 75.0, rows[1].Percentage, 1e-9)
}

func TestPercentageOfTotals(t *testing.T) {
	aggs := []AggregatedValue{
		{Key: Key{"2024", "Renewable"}, Total: 100},
		{Key: Key{"2025", "Renewable"}, Total: 10},
	}
	totals := []AggregatedValue{{Key: Key{"2024"}, Total: 400}}
	rows := PercentageOfTotals(aggs, Prefix(1), totals)
	require.InDelta(t, 25.0, rows[0].Percentage, 1e-9)
	// 2025 has no parent total
	require.Zero(t, rows[1].Percentage)
}
