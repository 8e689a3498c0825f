package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"tereborace.com/enerxia/energy"
)

// ==== Modo report: táboas en texto ====

// runReport imprime unha vista (ou todas con "all") en out
func runReport(out io.Writer, data *dataset, viewID string, sel energy.Selection) error {
	var views []energy.ViewSpec
	if viewID == "" || strings.EqualFold(viewID, "all") {
		views = energy.Catalogue()
	} else {
		v, ok := energy.Lookup(viewID)
		if !ok {
			return fmt.Errorf("vista descoñecida: %q", viewID)
		}
		views = []energy.ViewSpec{v}
	}

	for i, v := range views {
		res, err := data.run(v, sel)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(out)
		}
		printResult(out, res)
	}
	return nil
}

func selectionLabel(res *energy.Result) string {
	var parts []string
	v, sel := res.View, res.Selection
	if v.UseCountry {
		c := sel.Country
		if energy.IsAllCountries(c) {
			c = "Todos"
		}
		parts = append(parts, "país: "+c)
	}
	if (v.UseYear || v.TopCountries) && sel.Year > 0 {
		parts = append(parts, fmt.Sprintf("ano: %d", sel.Year))
	}
	if v.UseMode {
		parts = append(parts, "modo: "+string(sel.Mode))
	}
	if v.UseSector {
		parts = append(parts, "sector: "+sel.Sector)
	}
	return strings.Join(parts, " · ")
}

func printResult(out io.Writer, res *energy.Result) {
	title := fmt.Sprintf("[%s] %s (%s)", res.View.ID, res.View.Title, res.View.Unit)
	if l := selectionLabel(res); l != "" {
		title += " " + l
	}
	color.New(color.FgYellow, color.Bold).Fprintln(out, title)

	if res.Empty() {
		color.New(color.FgRed).Fprintln(out, "  sen datos para a selección")
		return
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader(tableHeader(res.Table))
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, row := range displayRows(res) {
		table.Append(row)
	}
	table.SetCaption(true, fmt.Sprintf("%d rexistros", res.Records))
	table.Render()
}
