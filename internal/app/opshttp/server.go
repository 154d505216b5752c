// Package opshttp — служебный листенер: метрики Prometheus и health-check каталога данных.
package opshttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server serves operational endpoints next to the public ingestion API.
type Server struct {
	dataDir string
}

// New создаёт обработчик /metrics и /health.
func New(dataDir string, gatherer prometheus.Gatherer) http.Handler {
	srv := &Server{
		dataDir: dataDir,
	}

	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	r.Get("/health", srv.health)

	return r
}
