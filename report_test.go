package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"tereborace.com/enerxia/energy"
)

func TestMain(m *testing.M) {
	color.NoColor = true // saída sen códigos ANSI nas probas
	os.Exit(m.Run())
}

func TestRunReportSingleView(t *testing.T) {
	data := testDataset(t)
	var buf bytes.Buffer
	require.NoError(t, runReport(&buf, data, "produccion-fuente", energy.Selection{Country: "Colombia"}))

	out := buf.String()
	require.Contains(t, out, "[produccion-fuente] Producción por Fuente (GWh) país: Colombia · ano: 2024")
	require.Contains(t, out, "Product")
	require.Contains(t, out, "300,00")
	require.Contains(t, out, "170,00")
	require.Contains(t, out, "4 rexistros")
}

func TestRunReportAll(t *testing.T) {
	data := testDataset(t)
	var buf bytes.Buffer
	require.NoError(t, runReport(&buf, data, "all", energy.Selection{Country: "Colombia"}))

	out := buf.String()
	for _, v := range energy.Catalogue() {
		require.Contains(t, out, "["+v.ID+"]")
	}
	// sen táboa de emisións
	require.Contains(t, out, "sen datos para a selección")
}

func TestRunReportUnknownView(t *testing.T) {
	var buf bytes.Buffer
	err := runReport(&buf, testDataset(t), "non-existe", energy.Selection{})
	require.ErrorContains(t, err, "non-existe")
	require.Zero(t, buf.Len())
}
