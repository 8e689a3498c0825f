package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"tereborace.com/enerxia/energy"
)

// selección a partir da query; sen parámetro country úsase o país por defecto
func (s *server) selectionFromQuery(q url.Values) energy.Selection {
	country := s.data.cfg.DefaultCountry
	if _, ok := q["country"]; ok {
		country = strings.TrimSpace(q.Get("country"))
	}
	year, _ := strconv.Atoi(q.Get("year"))
	sel := energy.Selection{
		Country: country,
		Year:    year,
		Mode:    energy.ParseMode(q.Get("mode")),
		Sector:  strings.TrimSpace(q.Get("sector")),
	}
	if sel.Sector == "" {
		sel.Sector = energy.Sectors[0]
	}
	return sel
}

// query string para reproducir unha vista (gráfica, exportación)
func selectionQuery(viewID string, sel energy.Selection) string {
	v := url.Values{}
	v.Set("view", viewID)
	v.Set("country", sel.Country)
	if sel.Year > 0 {
		v.Set("year", strconv.Itoa(sel.Year))
	}
	if sel.Mode != "" {
		v.Set("mode", string(sel.Mode))
	}
	if sel.Sector != "" {
		v.Set("sector", sel.Sector)
	}
	return v.Encode()
}

// busca sección e vista; valores baleiros escollen as primeiras
func pickView(sectionID, viewID string) (energy.Section, energy.ViewSpec, bool) {
	secs := energy.Sections()
	if viewID != "" {
		v, ok := energy.Lookup(viewID)
		if !ok {
			return energy.Section{}, energy.ViewSpec{}, false
		}
		for _, sec := range secs {
			if sec.ID == v.Section {
				return sec, v, true
			}
		}
	}
	for _, sec := range secs {
		if sec.ID == sectionID {
			return sec, sec.Views[0], true
		}
	}
	if sectionID != "" {
		return energy.Section{}, energy.ViewSpec{}, false
	}
	return secs[0], secs[0].Views[0], true
}

// filas xa formatadas para a táboa HTML
func displayRows(res *energy.Result) [][]string {
	tbl := res.Table
	out := make([][]string, 0, len(tbl.Rows))
	for i, r := range tbl.Rows {
		row := make([]string, 0, len(tbl.Columns)+1)
		row = append(row, r)
		for _, v := range tbl.Cells[i] {
			row = append(row, formatCell(res.View, v))
		}
		out = append(out, row)
	}
	return out
}

// handlers
func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	sec, v, ok := pickView(q.Get("section"), q.Get("view"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	res, err := s.data.run(v, s.selectionFromQuery(q))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	choices, err := s.data.choices(v.Source)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	query := selectionQuery(v.ID, res.Selection)

	err = s.tpl.ExecuteTemplate(w, "index.gohtml", map[string]any{
		"Name":     s.name,
		"Sections": energy.Sections(),
		"Section":  sec,
		"View":     v,
		"Sel":      res.Selection,
		"Choices":  choices,
		"Header":   tableHeader(res.Table),
		"Rows":     displayRows(res),
		"Records":  res.Records,
		"Empty":    res.Empty(),
		"ChartURL": template.URL("/chart/" + url.PathEscape(v.ID) + ".png?" + query),
		"Query":    template.URL(query), // xa codificada
	})
	if err != nil {
		log.Printf("template index: %v", err)
	}
}

// /chart/{view}.png
func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/chart/"), ".png")
	v, ok := energy.Lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	res, err := s.data.run(v, s.selectionFromQuery(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	var buf bytes.Buffer
	if err := renderChart(&buf, res); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = buf.WriteTo(w)
}

// resolve e executa a vista de ?view= para as exportacións
func (s *server) exportResult(w http.ResponseWriter, r *http.Request) (*energy.Result, bool) {
	id := r.URL.Query().Get("view")
	if id == "" {
		http.Error(w, "missing view", 400)
		return nil, false
	}
	v, ok := energy.Lookup(id)
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	res, err := s.data.run(v, s.selectionFromQuery(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), 500)
		return nil, false
	}
	return res, true
}

func (s *server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	res, ok := s.exportResult(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportName(res, "csv")))
	if err := writeCSV(w, res); err != nil {
		log.Printf("export csv %s: %v", res.View.ID, err)
	}
}

func (s *server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	res, ok := s.exportResult(w, r)
	if !ok {
		return
	}
	f, err := buildXLSX(res)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportName(res, "xlsx")))
	if err := f.Write(w); err != nil {
		log.Printf("export xlsx %s: %v", res.View.ID, err)
	}
}
