package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ==== Métricas ====
var (
	viewRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energy_view_runs_total",
		Help: "View executions by result (ok, empty, error).",
	}, []string{"view", "result"})

	viewDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "energy_view_duration_seconds",
		Help:    "Time spent running a view pipeline.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	recordsLoaded = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "energy_records_loaded",
		Help: "Records held in memory per source table.",
	}, []string{"source"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "energy_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
)

func metricsHandler() http.Handler { return promhttp.Handler() }

// garda o código de estado para o log e as métricas
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging envolve un handler con log (en modo debug) e contador de peticións
func withLogging(route string, debug bool, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		h(rec, r)
		httpRequests.WithLabelValues(route, strconv.Itoa(rec.code)).Inc()
		if debug {
			log.Printf("%s %s -> %d (%s)", r.Method, r.URL.RequestURI(), rec.code, time.Since(start))
		}
	}
}
