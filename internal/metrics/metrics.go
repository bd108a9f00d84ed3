// Package metrics exports the section search funnel to Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Pavex/internal/calc/pavement"
)

const namespace = "pavex"

// Metrics implements pavement.Observer.
type Metrics struct {
	solves    *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	funnel    *prometheus.CounterVec
	survivors prometheus.Histogram
}

var _ pavement.Observer = (*Metrics)(nil)

// New registers the solver collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		solves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Section searches by route and outcome.",
		}, []string{"route", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a section search.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"route"}),
		funnel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_total",
			Help:      "Candidate sections reaching each search stage.",
		}, []string{"stage"}),
		survivors: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_survivors",
			Help:      "Buildable designs returned per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
	}
	reg.MustRegister(m.solves, m.duration, m.funnel, m.survivors)
	return m
}

// NewRegistry returns a registry carrying the Go runtime and process
// collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler serves reg in the Prometheus text format.
func Handler(reg prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSolve(route string, st pavement.Stats, elapsed time.Duration, err error) {
	if err != nil {
		m.solves.WithLabelValues(route, "error").Inc()
		return
	}
	m.solves.WithLabelValues(route, "ok").Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())

	m.funnel.WithLabelValues("sampled").Add(float64(st.Sampled))
	m.funnel.WithLabelValues("unique").Add(float64(st.Unique))
	m.funnel.WithLabelValues("feasible").Add(float64(st.Feasible))
	m.funnel.WithLabelValues("survived").Add(float64(st.Survivors))
	m.funnel.WithLabelValues("converged").Add(float64(st.Converged))
	m.survivors.Observe(float64(st.Survivors))
}
