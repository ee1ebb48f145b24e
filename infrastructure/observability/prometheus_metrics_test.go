package observability

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-threatscore/internal/ports"
)

// newTestMetrics returns metrics bound to a private registry so tests do not
// collide on registration.
func newTestMetrics(t *testing.T) (*PrometheusMetrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return NewPrometheusMetrics(reg), reg
}

func TestNewPrometheusMetrics(t *testing.T) {
	pm, _ := newTestMetrics(t)

	assert.NotNil(t, pm.operationLatency, "operationLatency should be initialized")
	assert.NotNil(t, pm.operationCounter, "operationCounter should be initialized")
	assert.NotNil(t, pm.aggregatedScore, "aggregatedScore should be initialized")
	assert.NotNil(t, pm.departmentMean, "departmentMean should be initialized")
	assert.NotNil(t, pm.rangeNarrowed, "rangeNarrowed should be initialized")
	assert.NotNil(t, pm.gauges, "gauges should be initialized")
}

func TestNewPrometheusMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheusMetrics(reg)

	assert.Panics(t, func() { NewPrometheusMetrics(reg) })
}

func TestPrometheusMetrics_RecordCounter(t *testing.T) {
	tests := []struct {
		name    string
		metric  string
		labels  map[string]string
		value   float64
		collect func(pm *PrometheusMetrics) prometheus.Collector
	}{
		{
			name:   "range narrowed routes to dedicated counter",
			metric: ports.MetricRangeNarrowed,
			labels: map[string]string{"range": "[0, 90)"},
			value:  2,
			collect: func(pm *PrometheusMetrics) prometheus.Collector {
				return pm.rangeNarrowed.WithLabelValues("[0, 90)")
			},
		},
		{
			name:   "generic counter defaults status to success",
			metric: ports.MetricAssessments,
			labels: map[string]string{"scenario": "quarterly"},
			value:  1,
			collect: func(pm *PrometheusMetrics) prometheus.Collector {
				return pm.operationCounter.WithLabelValues(ports.MetricAssessments, "success", "quarterly")
			},
		},
		{
			name:   "generic counter keeps explicit status",
			metric: ports.MetricAssessments,
			labels: map[string]string{"status": "error"},
			value:  3,
			collect: func(pm *PrometheusMetrics) prometheus.Collector {
				return pm.operationCounter.WithLabelValues(ports.MetricAssessments, "error", "unknown")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm, _ := newTestMetrics(t)
			pm.RecordCounter(tt.metric, tt.value, tt.labels)
			assert.InDelta(t, tt.value, testutil.ToFloat64(tt.collect(pm)), 1e-9)
		})
	}
}

func TestPrometheusMetrics_RecordGauge(t *testing.T) {
	pm, _ := newTestMetrics(t)

	pm.RecordGauge(ports.MetricAggregatedScore, 42.5, map[string]string{"scenario": "q1"})
	pm.RecordGauge(ports.MetricAggregatedScore, 61, map[string]string{"scenario": "q1"})
	pm.RecordGauge("departments", 4, nil)

	assert.InDelta(t, 61, testutil.ToFloat64(pm.aggregatedScore.WithLabelValues("q1")), 1e-9)
	assert.InDelta(t, 4, testutil.ToFloat64(pm.gauges.WithLabelValues("departments", "unknown")), 1e-9)
}

func TestPrometheusMetrics_RecordHistogramAndLatency(t *testing.T) {
	pm, reg := newTestMetrics(t)

	pm.RecordHistogram(ports.MetricDepartmentMean, 35, map[string]string{"scenario": "q1"})
	pm.RecordHistogram(ports.MetricDepartmentMean, 72, map[string]string{"scenario": "q1"})
	pm.RecordLatency("sample", 20*time.Millisecond, map[string]string{"scenario": "q1"})

	count, err := testutil.GatherAndCount(reg,
		"threatscore_department_mean",
		"threatscore_operation_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per histogram vector")
}

func TestWriteText(t *testing.T) {
	pm, reg := newTestMetrics(t)
	pm.RecordGauge(ports.MetricAggregatedScore, 40, map[string]string{"scenario": "demo"})
	pm.RecordCounter(ports.MetricRangeNarrowed, 1, map[string]string{"range": "[0, 90)"})

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, reg))

	out := buf.String()
	assert.Contains(t, out, "# TYPE threatscore_aggregated_score gauge")
	assert.Contains(t, out, `threatscore_aggregated_score{scenario="demo"} 40`)
	assert.Contains(t, out, `threatscore_sample_range_narrowed_total{range="[0, 90)"} 1`)
}

func TestWriteText_EmptyRegistry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, prometheus.NewRegistry()))
	assert.Empty(t, buf.String())
}
