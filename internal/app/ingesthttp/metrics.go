package ingesthttp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type httpMetrics struct {
	duration *prometheus.HistogramVec
}

func newHTTPMetrics(registerer prometheus.Registerer) *httpMetrics {
	if registerer == nil {
		return nil
	}

	m := &httpMetrics{
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of ingestion API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	registerer.MustRegister(m.duration)

	return m
}

// observe берёт шаблон маршрута из chi; запросы мимо маршрутов попадают в "unmatched".
func (m *httpMetrics) observe(r *http.Request, status int, dur time.Duration) {
	if m == nil {
		return
	}

	route := "unmatched"
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			route = p
		}
	}
	if r.Method == http.MethodOptions {
		route = "preflight"
	}

	m.duration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(dur.Seconds())
}
