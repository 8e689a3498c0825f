package main

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"tereborace.com/enerxia/energy"
)

// ==== utilidades ====

func quoteIdent(id string) string {
	// minimal: wrap with double quotes and escape existing quotes
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

// remove extension
func stripExt(path string) string {
	ext := filepath.Ext(path)            // inclúe o punto: ".txt", ".gz", etc.
	return strings.TrimSuffix(path, ext) // elimina a última extensión
}

// 12.345,67 a partir dun float64
func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	s := fmt.Sprintf("%.2f", math.Abs(f)) // "12345.67"
	parts := strings.SplitN(s, ".", 2)
	intp, decp := parts[0], "00"
	if len(parts) > 1 {
		decp = parts[1]
	}
	// milleiros con puntos
	var b strings.Builder
	if f < 0 && s != "0.00" {
		b.WriteByte('-')
	}
	for i, n := range intp {
		if i > 0 && (len(intp)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(n)
	}
	return b.String() + "," + decp
}

// valor de celda segundo a vista: porcentaxe ou unidade
func formatCell(v energy.ViewSpec, f float64) string {
	if v.Percent {
		return formatNumber(f) + " %"
	}
	return formatNumber(f)
}

func safeFile(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == '.' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return r
		}
		return -1
	}, s)
	if s == "" {
		s = "export"
	}
	return s
}

// nome de ficheiro de exportación para un resultado
func exportName(res *energy.Result, ext string) string {
	parts := []string{res.View.ID}
	if res.View.UseCountry && !energy.IsAllCountries(res.Selection.Country) {
		parts = append(parts, asciiFold(res.Selection.Country))
	}
	if res.Selection.Year > 0 && (res.View.UseYear || res.View.TopCountries) {
		parts = append(parts, fmt.Sprint(res.Selection.Year))
	}
	return safeFile(strings.Join(parts, "_")) + "." + ext
}
