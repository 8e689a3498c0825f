package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"tereborace.com/enerxia/energy"
)

// ==== Caché de rexistros por táboa ====
//
// Cada fonte cárgase unha vez (na primeira vista que a pide, ou en preload) e
// queda en memoria. A base de datos ábrese en só lectura, así que non hai invalidación.
type dataset struct {
	db     *sql.DB
	cfg    config
	runner *energy.Runner
	debug  bool

	sources map[energy.Source]*sourceCache // fixo tras newDataset
}

// un lock por fonte: as cargas de fontes distintas poden ir en paralelo
type sourceCache struct {
	mu     sync.Mutex
	loaded bool
	recs   []energy.Record
}

func newDataset(db *sql.DB, cfg config, debug bool) *dataset {
	d := &dataset{
		db:      db,
		cfg:     cfg,
		runner:  cfg.runner(),
		debug:   debug,
		sources: map[energy.Source]*sourceCache{},
	}
	for _, src := range energy.Sources {
		d.sources[src] = &sourceCache{}
	}
	return d
}

// records devolve os rexistros dunha fonte. Unha táboa que non existe
// compórtase como unha táboa baleira (as vistas quedan sen datos).
func (d *dataset) records(src energy.Source) ([]energy.Record, error) {
	c, ok := d.sources[src]
	if !ok {
		return nil, fmt.Errorf("fonte descoñecida: %q", src)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.recs, nil
	}

	table := d.cfg.table(src)
	if !tableExists(d.db, table) {
		log.Printf("aviso: non existe a táboa %q (%s)", table, src)
		c.recs, c.loaded = []energy.Record{}, true
		recordsLoaded.WithLabelValues(string(src)).Set(0)
		return c.recs, nil
	}

	start := time.Now()
	recs, st, err := loadRecords(d.db, table, loadOptions{
		DefaultCountry:       d.cfg.DefaultCountry,
		ExcludeCountriesLike: d.cfg.ExcludeCountriesLike,
	})
	if err != nil {
		return nil, fmt.Errorf("cargando %s: %w", src, err)
	}
	if d.debug || st.Skipped > 0 {
		log.Printf("%s: %d rexistros (%d descartados) en %s", table, st.Rows, st.Skipped, time.Since(start))
	}
	c.recs, c.loaded = recs, true
	recordsLoaded.WithLabelValues(string(src)).Set(float64(len(recs)))
	return recs, nil
}

// preload carga todas as fontes en paralelo
func (d *dataset) preload(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, src := range energy.Sources {
		src := src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := d.records(src)
			return err
		})
	}
	return g.Wait()
}

// run executa unha vista contra a súa fonte e anota as métricas
func (d *dataset) run(v energy.ViewSpec, sel energy.Selection) (*energy.Result, error) {
	recs, err := d.records(v.Source)
	if err != nil {
		viewRuns.WithLabelValues(v.ID, "error").Inc()
		return nil, err
	}

	timer := time.Now()
	res, err := d.runner.Run(v, recs, sel)
	viewDuration.WithLabelValues(v.ID).Observe(time.Since(timer).Seconds())
	switch {
	case err != nil:
		viewRuns.WithLabelValues(v.ID, "error").Inc()
		return nil, err
	case res.Empty():
		viewRuns.WithLabelValues(v.ID, "empty").Inc()
	default:
		viewRuns.WithLabelValues(v.ID, "ok").Inc()
	}
	return res, nil
}

// runID busca a vista polo id
func (d *dataset) runID(id string, sel energy.Selection) (*energy.Result, error) {
	v, ok := energy.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("vista descoñecida: %q", id)
	}
	return d.run(v, sel)
}

// filtros dispoñibles para unha fonte (para os selectores da UI)
type filterChoices struct {
	Countries []string `json:"countries"`
	Years     []int    `json:"years"`
	Modes     []string `json:"modes"`
	Sectors   []string `json:"sectors"`
}

func (d *dataset) choices(src energy.Source) (filterChoices, error) {
	recs, err := d.records(src)
	if err != nil {
		return filterChoices{}, err
	}
	modes := make([]string, 0, len(energy.Modes))
	for _, m := range energy.Modes {
		modes = append(modes, string(m))
	}
	return filterChoices{
		Countries: energy.Countries(recs),
		Years:     energy.Years(recs),
		Modes:     modes,
		Sectors:   energy.Sectors,
	}, nil
}
