package recordsvc

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sir_venger/synthmod_backend/internal/models"
)

// Metrics — счётчики записи и проверок наличия. Нулевой *Metrics ничего не считает.
type Metrics struct {
	recordsStored  prometheus.Counter
	bytesStored    prometheus.Counter
	storeFailures  prometheus.Counter
	presenceChecks *prometheus.CounterVec
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		recordsStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "records_stored_total",
			Help: "Number of records written to the data directory.",
		}),
		bytesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "record_bytes_stored_total",
			Help: "Total size of stored record bodies.",
		}),
		storeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "store_failures_total",
			Help: "Number of record writes that failed with a filesystem error.",
		}),
		presenceChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "presence_checks_total",
			Help: "Number of presence checks by result.",
		}, []string{"result"}),
	}

	if registerer != nil {
		registerer.MustRegister(m.recordsStored, m.bytesStored, m.storeFailures, m.presenceChecks)
	}

	return m
}

func (m *Metrics) recordStored(size int) {
	if m == nil {
		return
	}
	m.recordsStored.Inc()
	m.bytesStored.Add(float64(size))
}

func (m *Metrics) storeFailed() {
	if m == nil {
		return
	}
	m.storeFailures.Inc()
}

func (m *Metrics) presenceChecked(res models.PresenceResult) {
	if m == nil {
		return
	}
	m.presenceChecks.WithLabelValues(res.String()).Inc()
}
