package app

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts workflow outcomes for the /-/metrics endpoint.
type Metrics struct {
	generations *prometheus.CounterVec
	exports     *prometheus.CounterVec
	emails      *prometheus.CounterVec
	sessions    prometheus.Gauge
}

// NewMetrics registers the workflow collectors with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotecraft_generations_total",
			Help: "Text-generation operations by operation name and outcome.",
		}, []string{"operation", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotecraft_exports_total",
			Help: "PDF exports by outcome.",
		}, []string{"outcome"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "quotecraft_emails_total",
			Help: "Email dispatches by outcome.",
		}, []string{"outcome"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "quotecraft_sessions_active",
			Help: "Live workflow sessions.",
		}),
	}

	reg.MustRegister(m.generations, m.exports, m.emails, m.sessions)

	return m
}

// NopMetrics returns metrics bound to a throwaway registry, for tests.
func NopMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func (m *Metrics) generation(operation string, err error) {
	m.generations.WithLabelValues(operation, outcome(err)).Inc()
}

func (m *Metrics) export(err error) {
	m.exports.WithLabelValues(outcome(err)).Inc()
}

func (m *Metrics) email(err error) {
	m.emails.WithLabelValues(outcome(err)).Inc()
}

// SetActiveSessions records the current live session count.
func (m *Metrics) SetActiveSessions(n int) {
	m.sessions.Set(float64(n))
}

func outcome(err error) string {
	if err != nil {
		return "failure"
	}

	return "success"
}
