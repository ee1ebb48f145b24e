// Package observability provides metrics and tracing for threat-score
// assessments.
package observability

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/ahrav/go-threatscore/internal/ports"
)

const namespace = "threatscore"

// Compile-time verification that PrometheusMetrics implements MetricsCollector.
var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. Metrics are registered on the Registerer passed to
// NewPrometheusMetrics so tests and embedding programs can use private
// registries.
type PrometheusMetrics struct {
	operationLatency *prometheus.HistogramVec
	operationCounter *prometheus.CounterVec
	aggregatedScore  *prometheus.GaugeVec
	departmentMean   *prometheus.HistogramVec
	rangeNarrowed    *prometheus.CounterVec
	gauges           *prometheus.GaugeVec
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all of its collectors on reg. It panics if a collector is already
// registered, like promauto does.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		operationLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Execution time of sampling and aggregation operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "scenario"},
		),
		operationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of operations by outcome.",
			},
			[]string{"operation", "status", "scenario"},
		),
		aggregatedScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      ports.MetricAggregatedScore,
				Help:      "Most recent published threat score per scenario.",
			},
			[]string{"scenario"},
		),
		departmentMean: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      ports.MetricDepartmentMean,
				Help:      "Distribution of per-department mean scores.",
				Buckets:   prometheus.LinearBuckets(10, 10, 9),
			},
			[]string{"scenario"},
		),
		rangeNarrowed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      ports.MetricRangeNarrowed,
				Help:      "Sampling requests whose window collapsed to a single value.",
			},
			[]string{"range"},
		),
		gauges: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "state",
				Help:      "Miscellaneous gauge values.",
			},
			[]string{"metric", "scenario"},
		),
	}
}

// labelOr returns labels[key] or "unknown" when it is missing.
func labelOr(labels map[string]string, key string) string {
	if v, ok := labels[key]; ok && v != "" {
		return v
	}
	return "unknown"
}

// RecordLatency implements the MetricsCollector interface by recording
// execution latency in a Prometheus histogram.
func (pm *PrometheusMetrics) RecordLatency(
	operation string,
	duration time.Duration,
	labels map[string]string,
) {
	pm.operationLatency.WithLabelValues(operation, labelOr(labels, "scenario")).Observe(duration.Seconds())
}

// RecordCounter implements the MetricsCollector interface by incrementing
// Prometheus counters.
func (pm *PrometheusMetrics) RecordCounter(
	metric string, value float64, labels map[string]string,
) {
	switch metric {
	case ports.MetricRangeNarrowed:
		pm.rangeNarrowed.WithLabelValues(labelOr(labels, "range")).Add(value)
	default:
		status, ok := labels["status"]
		if !ok {
			status = "success"
		}
		pm.operationCounter.WithLabelValues(metric, status, labelOr(labels, "scenario")).Add(value)
	}
}

// RecordGauge implements the MetricsCollector interface by setting
// Prometheus gauge values.
func (pm *PrometheusMetrics) RecordGauge(
	metric string, value float64, labels map[string]string,
) {
	scenario := labelOr(labels, "scenario")
	switch metric {
	case ports.MetricAggregatedScore:
		pm.aggregatedScore.WithLabelValues(scenario).Set(value)
	default:
		pm.gauges.WithLabelValues(metric, scenario).Set(value)
	}
}

// RecordHistogram implements the MetricsCollector interface by recording
// values in a Prometheus histogram. Unknown metrics are routed to the
// operation latency histogram.
func (pm *PrometheusMetrics) RecordHistogram(
	metric string, value float64, labels map[string]string,
) {
	scenario := labelOr(labels, "scenario")
	switch metric {
	case ports.MetricDepartmentMean:
		pm.departmentMean.WithLabelValues(scenario).Observe(value)
	default:
		pm.operationLatency.WithLabelValues(metric, scenario).Observe(value)
	}
}

// WriteText writes every metric family gathered from g to w in the
// Prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
