package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tereborace.com/enerxia/energy"
)

func runSample(t *testing.T, id string, sel energy.Selection) *energy.Result {
	t.Helper()
	v, ok := energy.Lookup(id)
	require.True(t, ok, id)
	res, err := energy.NewRunner(nil, energy.DefaultOptions()).Run(v, chartRecords(), sel)
	require.NoError(t, err)
	return res
}

func TestWriteCSV(t *testing.T) {
	res := runSample(t, "produccion-fuente", energy.Selection{Country: "Colombia", Year: 2020})
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, res))
	// Coal 2020: 12 meses de 45; Hydro: 101..112
	require.Equal(t, "Product,Value\nCoal,540\nHydro,1278\n", buf.String())
}

func TestBuildXLSX(t *testing.T) {
	res := runSample(t, "renovable-anual", energy.Selection{Country: "Todos"})
	f, err := buildXLSX(res)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 11)
	require.Equal(t, []string{"Year", "Renewable", "Non-Renewable"}, rows[0])
	require.Equal(t, "2015", rows[1][0])

	// o libro gárdase e volve a abrirse
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	g, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	require.NoError(t, g.Close())
}

func TestBuildXLSXEmpty(t *testing.T) {
	res := runSample(t, "renovable-anual", energy.Selection{Country: "Atlantis"})
	f, err := buildXLSX(res)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"Year"}}, rows)
}

func TestExcelChartType(t *testing.T) {
	require.Equal(t, excelize.ColStacked, excelChartType(energy.ChartStackedBar))
	require.Equal(t, excelize.Pie, excelChartType(energy.ChartPie))
	require.Equal(t, excelize.Col, excelChartType(energy.ChartTreemap))
}
