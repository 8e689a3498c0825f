// main.go
// Build/run:
//
//	go run . --db ./enerxia.sqlite --mode web      # UI web en http://127.0.0.1:8080
//	go run . --db ./enerxia.sqlite --mode tui      # UI TUI (terminal)
//	go run . --db ./enerxia.sqlite --mode report --view renovable-anual --country Colombia
//
// --db, --config e --addr tamén se len de ENERXIA_DB, ENERXIA_CONFIG e ENERXIA_ADDR (ou dun .env).
//
// Notas:
// - Read-only: activamos PRAGMA query_only=ON en cada conexión. Este programa non fai INSERT/UPDATE/DELETE.
// - As vistas (energy.Catalogue) cárganse sobre as táboas IEA configuradas (--config, YAML).
// - Gráficas: no modo web PNG xerados con gonum/plot; no modo TUI barras ASCII.
// - Exportación: CSV e XLSX (Excel, con gráfica) da vista seleccionada.
// - Métricas Prometheus en /metrics.

package main

import (
	"context"
	"database/sql"
	"embed"
	"flag"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tereborace.com/enerxia/energy"
)

//go:embed webstatic/*
var webFS embed.FS

//go:embed templates/* templates/partials/*
var tplFS embed.FS

type server struct {
	db    *sql.DB
	data  *dataset
	tpl   *template.Template
	name  string // nome do panel (do ficheiro da base de datos)
	debug bool
}

func newServer(data *dataset, name string, debug bool) (*server, error) {
	tpl, err := template.New("").
		Funcs(template.FuncMap{
			"formatNumber": formatNumber, // 12.345,67
			"toLower":      strings.ToLower,
			"toUpper":      strings.ToUpper,
			"trim":         strings.TrimSpace,
		}).
		ParseFS(tplFS,
			"templates/*.gohtml",
			"templates/partials/*.gohtml",
		)
	if err != nil {
		return nil, err
	}
	return &server{db: data.db, data: data, tpl: tpl, name: name, debug: debug}, nil
}

// handler con todas as rutas
func (s *server) handler() (http.Handler, error) {
	assets, err := fs.Sub(webFS, "webstatic")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(assets))))
	mux.HandleFunc("/", withLogging("index", s.debug, s.handleIndex))
	mux.HandleFunc("/chart/", withLogging("chart", s.debug, s.handleChart))
	mux.HandleFunc("/export/csv", withLogging("export_csv", s.debug, s.handleExportCSV))
	mux.HandleFunc("/export/xlsx", withLogging("export_xlsx", s.debug, s.handleExportXLSX))
	mux.HandleFunc("/api/filters", withLogging("api_filters", s.debug, s.handleAPIFilters))
	mux.HandleFunc("/api/view/", withLogging("api_view", s.debug, s.handleAPIView))
	mux.HandleFunc("/api/countries", withLogging("api_countries", s.debug, s.handleAPICountries)) // ← busca instantánea
	mux.Handle("/metrics", metricsHandler())
	return mux, nil
}

func (s *server) routes(addr string) error {
	h, err := s.handler()
	if err != nil {
		return err
	}
	log.Printf("Web UI en http://%s", addr)
	return http.ListenAndServe(addr, h)
}

// nome do panel a partir do ficheiro: "balance_energetico.sqlite" -> "Balance Energetico"
func dashboardName(dbPath string) string {
	base := stripExt(filepath.Base(dbPath))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)
	caser := cases.Title(language.EuropeanSpanish)
	return caser.String(base)
}

// ==== main ====
func main() {
	// .env opcional: ENERXIA_DB, ENERXIA_CONFIG, ENERXIA_ADDR como valores por defecto dos flags
	_ = godotenv.Load()

	dbPath := flag.String("db", envOr("ENERXIA_DB", ""), "ruta ao ficheiro SQLite")
	mode := flag.String("mode", "web", "web|tui|report")
	addr := flag.String("addr", envOr("ENERXIA_ADDR", "127.0.0.1:8080"), "enderezo para o modo web")
	cfgPath := flag.String("config", envOr("ENERXIA_CONFIG", ""), "ficheiro YAML de configuración (opcional)")
	viewID := flag.String("view", "all", "modo report: id da vista ou all")
	country := flag.String("country", "", "modo report: país (Todos = sen filtro)")
	year := flag.Int("year", 0, "modo report: ano (0 = último dispoñible)")

	debug := flag.Bool("debug", false, "enable debug logging")

	flag.Parse()

	if *dbPath == "" {
		log.Fatal("Debe especificar a ruta ao ficheiro SQLite con --db")
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	db, err := openSQLite(*dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if *debug {
		tables, _ := listTables(db)
		log.Printf("táboas: %s", strings.Join(tables, ", "))
	}

	name := dashboardName(*dbPath)
	log.Printf("panel: %s", name)

	data := newDataset(db, cfg, *debug)
	start := time.Now()
	if err := data.preload(context.Background()); err != nil {
		log.Fatal(err)
	}
	log.Printf("datos cargados en %s", time.Since(start))

	switch *mode {
	case "web":
		srv, err := newServer(data, name, *debug)
		if err != nil {
			log.Fatal(err)
		}
		if err := srv.routes(*addr); err != nil {
			log.Fatal(err)
		}
	case "tui":
		p := tea.NewProgram(initialTUI(data, name), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.Fatal(err)
		}
	case "report":
		c := *country
		if c == "" {
			c = cfg.DefaultCountry
		}
		sel := energy.Selection{Country: c, Year: *year}
		if err := runReport(os.Stdout, data, *viewID, sel); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("modo descoñecido: %s", *mode)
	}
}

// Estrutura do proxecto:
//   main.go, config.go, dataset.go, sqlutils.go
//   handlers.go, handlersAPI.go, charts.go, export.go
//   tui.go, report.go, metrics.go
//   energy/        (clasificación, agregación, porcentaxes, pivot, vistas)
//   templates/
//     index.gohtml
//     partials/
//   webstatic/
//     style.css
