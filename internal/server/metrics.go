package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// #region metrics

// Metrics holds the verifier's Prometheus collectors on a dedicated
// registry, so multiple servers can coexist in tests.
type Metrics struct {
	Registry *prometheus.Registry

	ExamplesScored    prometheus.Counter
	FormatFailures    prometheus.Counter
	IncorrectVerdicts prometheus.Counter
	FatalMisses       prometheus.Counter
}

// NewMetrics creates the collectors and registers them.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		ExamplesScored: factory.NewCounter(prometheus.CounterOpts{
			Name: "verifier_examples_scored_total",
			Help: "Examples scored, across /verify and /verify/batch.",
		}),
		FormatFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "verifier_format_failures_total",
			Help: "Examples rejected for a missing think block.",
		}),
		IncorrectVerdicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "verifier_incorrect_verdicts_total",
			Help: "Examples where the model verdict disagreed with ground truth.",
		}),
		FatalMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "verifier_fatal_misses_total",
			Help: "Examples scored -1.0 for missing a fatal-level violation.",
		}),
	}
}

// observe updates the counters for one scored example.
func (m *Metrics) observe(formatOK, verdictCorrect bool, reward float32) {
	m.ExamplesScored.Inc()
	if !formatOK {
		m.FormatFailures.Inc()
		return
	}
	if !verdictCorrect {
		m.IncorrectVerdicts.Inc()
	}
	if reward == -1.0 {
		m.FatalMisses.Inc()
	}
}

// #endregion metrics
