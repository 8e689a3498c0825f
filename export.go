package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"tereborace.com/enerxia/energy"
)

// ==== Exportación dunha vista (CSV / XLSX) ====

// cabeceira: columna de filas + columnas da táboa
func tableHeader(tbl *energy.PivotTable) []string {
	head := make([]string, 0, len(tbl.Columns)+1)
	head = append(head, tbl.RowHeader)
	return append(head, tbl.Columns...)
}

// writeCSV exporta a táboa pivotada con punto decimal
func writeCSV(w io.Writer, res *energy.Result) error {
	csvw := csv.NewWriter(w)
	tbl := res.Table
	if err := csvw.Write(tableHeader(tbl)); err != nil {
		return err
	}
	for i, r := range tbl.Rows {
		row := make([]string, 0, len(tbl.Columns)+1)
		row = append(row, r)
		for _, v := range tbl.Cells[i] {
			row = append(row, strconv.FormatFloat(v, 'f', -1, 64))
		}
		if err := csvw.Write(row); err != nil {
			return err
		}
	}
	csvw.Flush()
	return csvw.Error()
}

// tipo de gráfica de Excel para cada vista
func excelChartType(k energy.ChartKind) excelize.ChartType {
	switch k {
	case energy.ChartStackedBar:
		return excelize.ColStacked
	case energy.ChartLine:
		return excelize.Line
	case energy.ChartArea:
		return excelize.AreaStacked
	case energy.ChartPie:
		return excelize.Pie
	default:
		return excelize.Col
	}
}

const xlsxSheet = "Datos"

// buildXLSX crea o libro coa táboa e unha gráfica nativa ao carón
func buildXLSX(res *energy.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		f.Close()
		return nil, err
	}
	tbl := res.Table

	head := make([]any, 0, len(tbl.Columns)+1)
	for _, h := range tableHeader(tbl) {
		head = append(head, h)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &head); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range tbl.Rows {
		row := make([]any, 0, len(tbl.Columns)+1)
		row = append(row, r)
		for _, v := range tbl.Cells[i] {
			row = append(row, v) // número REAL -> Excel/LibreOffice veno como número
		}
		if err := f.SetSheetRow(xlsxSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if tbl.Empty() {
		return f, nil
	}

	last := len(tbl.Rows) + 1
	kind := excelChartType(res.View.Chart)
	cols := tbl.Columns
	if kind == excelize.Pie {
		cols = cols[:1] // unha serie por torta
	}
	series := make([]excelize.ChartSeries, 0, len(cols))
	for j := range cols {
		colName, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			f.Close()
			return nil, err
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", xlsxSheet, colName),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", xlsxSheet, last),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", xlsxSheet, colName, colName, last),
		})
	}
	anchorCol, err := excelize.ColumnNumberToName(len(tbl.Columns) + 3)
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.AddChart(xlsxSheet, anchorCol+"2", &excelize.Chart{
		Type:   kind,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: res.View.Title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
