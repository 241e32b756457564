// Package metrics exposes roster counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
)

// Recorder counts roster operations and tracks the roster size.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	records    prometheus.Gauge
}

// NewRecorder creates a Recorder backed by its own registry, so several
// instances (one per test) never collide on registration.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roster",
			Name:      "operations_total",
			Help:      "Roster operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roster",
			Name:      "records",
			Help:      "Number of students currently held.",
		}),
	}
	r.registry.MustRegister(r.operations, r.records)
	return r
}

// Observe counts one operation. A nil error is recorded as ok.
func (r *Recorder) Observe(operation string, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeRejected
	}
	r.operations.WithLabelValues(operation, outcome).Inc()
}

// SetRecords updates the roster size gauge.
func (r *Recorder) SetRecords(n int) {
	if r == nil {
		return
	}
	r.records.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
