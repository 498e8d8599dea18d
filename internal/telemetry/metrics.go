// Package telemetry exposes Prometheus metrics and OpenTelemetry tracing for
// the simulation server.
package telemetry

import (
	"net/http"
	"time"

	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded in SimulationsTotal.
const (
	StatusOK       = "ok"
	StatusInvalid  = "invalid"
	StatusRejected = "rejected"
)

// Metrics holds the server's collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// SimulationsTotal counts simulation requests by status.
	SimulationsTotal *prometheus.CounterVec
	// RecommendationsTotal counts recommended systems.
	RecommendationsTotal *prometheus.CounterVec
	// IRRNotConvergedTotal counts ledgers whose internal rate of return did not converge.
	IRRNotConvergedTotal *prometheus.CounterVec
	// EffectiveCostUnavailableTotal counts ledgers without an effective cost.
	EffectiveCostUnavailableTotal *prometheus.CounterVec
	// SimulationDuration observes engine run time.
	SimulationDuration prometheus.Histogram
}

// NewMetrics registers every collector, plus the Go runtime and process
// collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		SimulationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amortization_simulations_total",
				Help: "Simulation requests by outcome",
			},
			[]string{"status"},
		),
		RecommendationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amortization_recommendations_total",
				Help: "Recommended amortization systems",
			},
			[]string{"method", "tied"},
		),
		IRRNotConvergedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amortization_irr_not_converged_total",
				Help: "Ledgers whose internal rate of return did not converge",
			},
			[]string{"method"},
		),
		EffectiveCostUnavailableTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "amortization_effective_cost_unavailable_total",
				Help: "Ledgers whose effective cost could not be computed",
			},
			[]string{"method"},
		),
		SimulationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "amortization_simulation_duration_seconds",
				Help:    "Time spent generating and evaluating both ledgers",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveResult records a successful simulation.
func (m *Metrics) ObserveResult(result simulation.Result, elapsed time.Duration) {
	m.SimulationsTotal.WithLabelValues(StatusOK).Inc()
	m.SimulationDuration.Observe(elapsed.Seconds())

	tied := "false"
	if result.Recommendation.Tied {
		tied = "true"
	}
	m.RecommendationsTotal.WithLabelValues(string(result.Recommendation.Winner), tied).Inc()

	for _, method := range amortization.Methods {
		mr, err := result.Method(method)
		if err != nil {
			continue
		}
		if !mr.IRR.Converged {
			m.IRRNotConvergedTotal.WithLabelValues(string(method)).Inc()
		}
		if !mr.Cost.EffectiveCostAvailable() {
			m.EffectiveCostUnavailableTotal.WithLabelValues(string(method)).Inc()
		}
	}
}

// ObserveFailure records a request that never reached the engine.
func (m *Metrics) ObserveFailure(status string) {
	m.SimulationsTotal.WithLabelValues(status).Inc()
}
