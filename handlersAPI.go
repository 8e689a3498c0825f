package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"tereborace.com/enerxia/energy"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type apiView struct {
	ID      string `json:"id"`
	Section string `json:"section"`
	Title   string `json:"title"`
	Chart   string `json:"chart"`
	Unit    string `json:"unit"`
	Source  string `json:"source"`
}

func toAPIView(v energy.ViewSpec) apiView {
	return apiView{
		ID:      v.ID,
		Section: v.Section,
		Title:   v.Title,
		Chart:   string(v.Chart),
		Unit:    v.Unit,
		Source:  string(v.Source),
	}
}

// fonte de ?source= ou da vista ?view=; por defecto electricidade
func sourceFromQuery(r *http.Request) (energy.Source, bool) {
	if id := r.URL.Query().Get("view"); id != "" {
		v, ok := energy.Lookup(id)
		return v.Source, ok
	}
	switch src := energy.Source(r.URL.Query().Get("source")); src {
	case "":
		return energy.SourceElectricity, true
	case energy.SourceElectricity, energy.SourceConsumption, energy.SourceEmissions:
		return src, true
	}
	return "", false
}

// /api/filters: valores para os selectores e catálogo de vistas
func (s *server) handleAPIFilters(w http.ResponseWriter, r *http.Request) {
	src, ok := sourceFromQuery(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown source or view"})
		return
	}
	choices, err := s.data.choices(src)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	views := []apiView{}
	for _, v := range energy.Catalogue() {
		views = append(views, toAPIView(v))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"source":  src,
		"filters": choices,
		"views":   views,
	})
}

type apiSelection struct {
	Country string `json:"country"`
	Year    int    `json:"year"`
	Mode    string `json:"mode"`
	Sector  string `json:"sector"`
}

type apiResult struct {
	View      apiView      `json:"view"`
	Selection apiSelection `json:"selection"`
	Records   int          `json:"records"`
	Empty     bool         `json:"empty"`
	RowHeader string       `json:"rowHeader"`
	Rows      []string     `json:"rows"`
	Columns   []string     `json:"columns"`
	Cells     [][]float64  `json:"cells"`
}

// /api/view/{id}?country=&year=&mode=&sector=
func (s *server) handleAPIView(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/view/")
	v, ok := energy.Lookup(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown view " + id})
		return
	}
	res, err := s.data.run(v, s.selectionFromQuery(r.URL.Query()))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	out := apiResult{
		View: toAPIView(v),
		Selection: apiSelection{
			Country: res.Selection.Country,
			Year:    res.Selection.Year,
			Mode:    string(res.Selection.Mode),
			Sector:  res.Selection.Sector,
		},
		Records:   res.Records,
		Empty:     res.Empty(),
		RowHeader: res.Table.RowHeader,
		Rows:      res.Table.Rows,
		Columns:   res.Table.Columns,
		Cells:     res.Table.Cells,
	}
	// listas baleiras en vez de null no JSON
	if out.Rows == nil {
		out.Rows = []string{}
	}
	if out.Columns == nil {
		out.Columns = []string{}
	}
	if out.Cells == nil {
		out.Cells = [][]float64{}
	}
	writeJSON(w, http.StatusOK, out)
}

// /api/countries?q=col&source=electricity
func (s *server) handleAPICountries(w http.ResponseWriter, r *http.Request) {
	src, ok := sourceFromQuery(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown source or view"})
		return
	}
	table := s.data.cfg.table(src)
	if !tableExists(s.db, table) {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	names, err := searchCountries(s.db, table, r.URL.Query().Get("q"), 20)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}
