package verdicts

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JaimeStill/reviewguard/internal/classifier"
)

// Metrics counts verdicts, scoring failures, and lost history writes.
// A nil *Metrics records nothing.
type Metrics struct {
	verdicts     *prometheus.CounterVec
	failures     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	appendErrors prometheus.Counter
}

// NewMetrics creates verdict collectors under namespace. Register the
// result with the metrics system.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verdicts",
				Name:      "scored_total",
				Help:      "Verdicts produced, by source and prediction",
			},
			[]string{"source", "prediction"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verdicts",
				Name:      "failures_total",
				Help:      "Scoring failures, by source and reason",
			},
			[]string{"source", "reason"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "verdicts",
				Name:      "score_duration_seconds",
				Help:      "Time spent waiting on a verdict source",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"source"},
		),
		appendErrors: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verdicts",
				Name:      "history_append_failures_total",
				Help:      "Verdicts returned to the caller but not recorded",
			},
		),
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.verdicts.Describe(ch)
	m.failures.Describe(ch)
	m.latency.Describe(ch)
	m.appendErrors.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.verdicts.Collect(ch)
	m.failures.Collect(ch)
	m.latency.Collect(ch)
	m.appendErrors.Collect(ch)
}

func (m *Metrics) observeScore(source string, pred classifier.Prediction, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	m.latency.WithLabelValues(source).Observe(elapsed.Seconds())

	if err != nil {
		m.failures.WithLabelValues(source, failureReason(err)).Inc()
		return
	}
	m.verdicts.WithLabelValues(source, string(pred)).Inc()
}

func (m *Metrics) observeAppendFailure() {
	if m == nil {
		return
	}
	m.appendErrors.Inc()
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, classifier.ErrInvalidOutput):
		return "invalid_output"
	case errors.Is(err, classifier.ErrUnavailable):
		return "unavailable"
	}
	return "other"
}
