package energy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustView(t *testing.T, id string) ViewSpec {
	t.Helper()
	v, ok := Lookup(id)
	require.True(t, ok, id)
	return v
}

func TestCatalogueIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	rn := NewRunner(nil, Options{})
	for _, v := range Catalogue() {
		require.False(t, seen[v.ID], "duplicate view %s", v.ID)
		seen[v.ID] = true
		require.NotEmpty(t, v.Section, v.ID)
		require.NotEmpty(t, v.Title, v.ID)

		// every view must run on empty input
		res, err := rn.Run(v, nil, Selection{})
		require.NoError(t, err, v.ID)
		require.True(t, res.Empty(), v.ID)
	}
	require.Len(t, Sections(), 5)
}

func TestRunRenewableShareByYear(t *testing.T) {
	rn := NewRunner(DefaultClassifier(), DefaultOptions())
	res, err := rn.Run(mustView(t, "renovable-anual"), sampleRecords(), Selection{Country: "Colombia"})
	require.NoError(t, err)
	require.False(t, res.Empty())

	require.Equal(t, []string{"2023", "2024"}, res.Table.Rows)
	require.Equal(t, []string{"Renewable", "Non-Renewable"}, res.Table.Columns)
	v, _ := res.Table.Value("2024", "Renewable")
	require.InDelta(t, 25.0, v, 1e-9)
	v, _ = res.Table.Value("2024", "Non-Renewable")
	require.InDelta(t, 75.0, v, 1e-9)
	v, _ = res.Table.Value("2023", "Non-Renewable")
	require.Zero(t, v)
}

func TestRunScopeAllCountsExcludedRows(t *testing.T) {
	rn := NewRunner(DefaultClassifier(), Options{Scope: ScopeAll})
	res, err := rn.Run(mustView(t, "renovable-anual"), sampleRecords(), Selection{Country: "Colombia"})
	require.NoError(t, err)
	// 2024 parent now includes the 400 of "Electricity"
	v, _ := res.Table.Value("2024", "Renewable")
	require.InDelta(t, 12.5, v, 1e-9)
}

func TestRunDefaultsToLatestYear(t *testing.T) {
	rn := NewRunner(nil, DefaultOptions())
	res, err := rn.Run(mustView(t, "produccion-fuente"), sampleRecords(), Selection{Country: "todos"})
	require.NoError(t, err)
	require.Equal(t, 2024, res.Selection.Year)
	require.Equal(t, []string{"Coal, Peat and Manufactured Gases", "Hydro", "Natural Gas", "Wind"}, res.Table.Rows)
	require.Equal(t, []string{"Value"}, res.Table.Columns)
	require.Equal(t, 4, res.Records)
}

func TestRunTopCountries(t *testing.T) {
	var recs []Record
	for i, c := range []string{"A", "B", "C", "D"} {
		recs = append(recs,
			Record{Country: c, Product: "Hydro", Year: 2024, Value: float64(i+1) * 10, Balance: NetProduction},
			Record{Country: c, Product: "Hydro", Year: 2023, Value: 1, Balance: NetProduction},
		)
	}
	rn := NewRunner(nil, Options{TopN: 2})

	res, err := rn.Run(mustView(t, "top-paises"), recs, Selection{})
	require.NoError(t, err)
	require.Equal(t, []string{"D", "C"}, res.Table.Rows)

	res, err = rn.Run(mustView(t, "evolucion-paises"), recs, Selection{})
	require.NoError(t, err)
	require.Equal(t, []string{"2023", "2024"}, res.Table.Rows)
	require.ElementsMatch(t, []string{"C", "D"}, res.Table.Columns)
}

func TestRunModeSelection(t *testing.T) {
	rn := NewRunner(nil, DefaultOptions())
	v := mustView(t, "tendencia-mensual")

	res, err := rn.Run(v, sampleRecords(), Selection{Mode: ModeRenewable})
	require.NoError(t, err)
	require.Equal(t, []string{"Renewable"}, res.Table.Columns)
	require.Equal(t, []string{"2023-06", "2024-01", "2024-02"}, res.Table.Rows)

	res, err = rn.Run(v, sampleRecords(), Selection{Country: "Peru", Mode: ModeBoth})
	require.NoError(t, err)
	require.Equal(t, []string{"Renewable", "Non-Renewable"}, res.Table.Columns)
}

func TestRunSectorSelection(t *testing.T) {
	recs := []Record{
		{Country: "Colombia", Product: "Industry", Year: 2020, Value: 5},
		{Country: "Colombia", Product: "Industry", Year: 2021, Value: 6},
		{Country: "Colombia", Product: "Residential", Year: 2021, Value: 7},
	}
	rn := NewRunner(nil, DefaultOptions())
	res, err := rn.Run(mustView(t, "sector-tendencia"), recs, Selection{Sector: "Industry"})
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5}, {6}}, res.Table.Cells)
}

func TestRunNoMatchIsEmpty(t *testing.T) {
	peru := []Record{{Country: "Peru", Product: "Hydro", Year: 2024, Value: 1, Balance: NetProduction}}
	res, err := NewRunner(nil, DefaultOptions()).Run(mustView(t, "renovable-anual"), peru, Selection{Country: "Colombia"})
	require.NoError(t, err)
	require.True(t, res.Empty())
	require.Zero(t, res.Records)
}

func TestRunRejectsBadSpec(t *testing.T) {
	rn := NewRunner(nil, DefaultOptions())
	_, err := rn.Run(ViewSpec{ID: "x"}, nil, Selection{})
	require.Error(t, err)
	_, err = rn.Run(ViewSpec{ID: "y", GroupBy: []DimensionID{"planet"}}, nil, Selection{})
	require.Error(t, err)
	_, err = rn.Run(ViewSpec{ID: "z", GroupBy: []DimensionID{DimYear}, Percent: true, ParentDepth: 1}, nil, Selection{})
	require.Error(t, err)
}
