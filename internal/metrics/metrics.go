// Package metrics exposes Prometheus collectors for the dashboard API.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nshruti113/attack-map-dashboard/internal/models"
)

const namespace = "attack_dashboard"

// Metrics owns its registry so tests and multiple servers never collide on
// the global default.
type Metrics struct {
	registry *prometheus.Registry

	liveAttacks      *prometheus.CounterVec
	datasetRequests  *prometheus.CounterVec
	generatedAttacks prometheus.Counter
	wsClients        prometheus.Gauge
	mirrorErrors     prometheus.Counter
}

func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		liveAttacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "live_attacks_total",
				Help:      "Live feed attacks synthesized, by type and severity",
			},
			[]string{"type", "severity"},
		),
		datasetRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dataset_requests_total",
				Help:      "Seeded dataset views served, by view",
			},
			[]string{"view"},
		),
		generatedAttacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generated_attacks_total",
			Help:      "Attacks produced by seeded batch generation",
		}),
		wsClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "websocket_clients",
			Help:      "Connected websocket clients",
		}),
		mirrorErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_mirror_errors_total",
			Help:      "Failed writes of live attacks to the redis mirror",
		}),
	}

	toRegister := []prometheus.Collector{
		m.liveAttacks,
		m.datasetRequests,
		m.generatedAttacks,
		m.wsClients,
		m.mirrorErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) ObserveLiveAttack(a models.Attack) {
	m.liveAttacks.WithLabelValues(string(a.Type), string(a.Severity)).Inc()
}

func (m *Metrics) ObserveDatasetRequest(view string) {
	m.datasetRequests.WithLabelValues(view).Inc()
}

func (m *Metrics) ObserveGeneratedAttacks(n int) {
	if n > 0 {
		m.generatedAttacks.Add(float64(n))
	}
}

func (m *Metrics) ClientConnected()    { m.wsClients.Inc() }
func (m *Metrics) ClientDisconnected() { m.wsClients.Dec() }

func (m *Metrics) MirrorError() {
	m.mirrorErrors.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
