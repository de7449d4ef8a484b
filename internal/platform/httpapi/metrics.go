package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors of one server. Each server owns
// its registry so several can live in one process.
type Metrics struct {
	registry        *prometheus.Registry
	sessionsCreated prometheus.Counter
	reveals         *prometheus.CounterVec
	gamesFinished   *prometheus.CounterVec
	activeSessions  prometheus.Gauge
}

// NewMetrics creates and registers the collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sweeper",
			Name:      "sessions_created_total",
			Help:      "Sessions created through the API.",
		}),
		reveals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sweeper",
			Name:      "reveals_total",
			Help:      "Reveal requests by outcome.",
		}, []string{"outcome"}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sweeper",
			Name:      "games_finished_total",
			Help:      "Games that reached a terminal status.",
		}, []string{"status"}),
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sweeper",
			Name:      "active_sessions",
			Help:      "Sessions currently held in memory.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sessionsCreated,
		m.reveals,
		m.gamesFinished,
		m.activeSessions,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
