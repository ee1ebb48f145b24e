package ports

import (
	"context"
	"time"

	"github.com/ahrav/go-threatscore/internal/domain"
)

// Metric names shared by the producers in this module and the collector
// implementations that route them.
const (
	// MetricRangeNarrowed counts sampling requests whose window collapsed
	// and was narrowed to a single value.
	MetricRangeNarrowed = "sample_range_narrowed_total"

	// MetricAggregatedScore is the most recent published score of a scenario.
	MetricAggregatedScore = "aggregated_score"

	// MetricDepartmentMean is the distribution of per-department means.
	MetricDepartmentMean = "department_mean"

	// MetricAssessments counts completed assessments by status.
	MetricAssessments = "assessments"
)

// MetricsCollector defines the interface for collecting operational metrics.
// Implementations should integrate with observability platforms like
// Prometheus, OpenTelemetry, or custom monitoring solutions.
type MetricsCollector interface {
	// RecordLatency records the execution time of an operation.
	// The labels map provides additional context for the metric.
	RecordLatency(operation string, duration time.Duration, labels map[string]string)

	// RecordCounter increments a counter metric.
	// This is useful for tracking events like narrowed sample ranges or
	// rejected inputs.
	RecordCounter(metric string, value float64, labels map[string]string)

	// RecordGauge sets the current value of a gauge metric, such as the
	// most recent aggregated score of a scenario.
	RecordGauge(metric string, value float64, labels map[string]string)

	// RecordHistogram records a value in a histogram.
	// This is useful for tracking distributions like department means.
	RecordHistogram(metric string, value float64, labels map[string]string)
}

// AssessmentObserver receives lifecycle callbacks around a scenario
// assessment, typically to emit traces. Implementations must be safe for
// concurrent use and keep per-call state in the returned context.
type AssessmentObserver interface {
	// Started is called before any department is sampled. The returned
	// context is passed to the remaining callbacks.
	Started(ctx context.Context, scenario string, departments int) context.Context

	// DepartmentSampled is called after each department's scores are drawn.
	DepartmentSampled(ctx context.Context, department string, lower, upper int, narrowed bool)

	// Finished is called exactly once with the outcome of the assessment.
	Finished(ctx context.Context, assessment domain.Assessment, elapsed time.Duration, err error)
}
