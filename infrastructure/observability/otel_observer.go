package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-threatscore/internal/domain"
	"github.com/ahrav/go-threatscore/internal/ports"
)

const tracerName = "github.com/ahrav/go-threatscore/assessor"

var _ ports.AssessmentObserver = (*OTelAssessmentObserver)(nil)

// scenarioKey carries the scenario name from Started to Finished.
type scenarioKey struct{}

// OTelAssessmentObserver traces assessments with OpenTelemetry. Each
// assessment gets one span; sampled departments become span events and the
// published score becomes span attributes. The span travels in the
// context, so a single observer can serve concurrent assessments.
type OTelAssessmentObserver struct {
	tracer  trace.Tracer
	metrics ports.MetricsCollector
}

// NewOTelAssessmentObserver creates an observer using provider, or the
// global tracer provider when provider is nil. metrics is optional and
// receives the assessment latency.
func NewOTelAssessmentObserver(provider trace.TracerProvider, metrics ports.MetricsCollector) *OTelAssessmentObserver {
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &OTelAssessmentObserver{
		tracer:  provider.Tracer(tracerName),
		metrics: metrics,
	}
}

// Started implements the AssessmentObserver interface. It starts the
// assessment span.
func (o *OTelAssessmentObserver) Started(ctx context.Context, scenario string, departments int) context.Context {
	ctx = context.WithValue(ctx, scenarioKey{}, scenario)
	ctx, _ = o.tracer.Start(ctx, "Assessor.Assess", trace.WithAttributes(
		attribute.String("assessment.scenario", scenario),
		attribute.Int("assessment.departments", departments),
	))
	return ctx
}

// DepartmentSampled implements the AssessmentObserver interface by adding a
// span event with the department's sampling window.
func (o *OTelAssessmentObserver) DepartmentSampled(
	ctx context.Context,
	department string,
	lower, upper int,
	narrowed bool,
) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent("department.sampled", trace.WithAttributes(
		attribute.String("department", department),
		attribute.Int("window.lower", lower),
		attribute.Int("window.upper", upper),
		attribute.Bool("window.narrowed", narrowed),
	))
	if narrowed {
		span.AddEvent("department.window_narrowed", trace.WithAttributes(
			attribute.String("department", department),
		))
	}
}

// Finished implements the AssessmentObserver interface. It records the
// outcome on the span and ends it.
func (o *OTelAssessmentObserver) Finished(
	ctx context.Context,
	assessment domain.Assessment,
	elapsed time.Duration,
	err error,
) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	if o.metrics != nil {
		var labels map[string]string
		if scenario, ok := ctx.Value(scenarioKey{}).(string); ok {
			labels = map[string]string{"scenario": scenario}
		}
		o.metrics.RecordLatency("assess", elapsed, labels)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}

	span.SetAttributes(
		attribute.Float64("assessment.score", assessment.Score),
		attribute.Float64("assessment.raw", assessment.Raw),
		attribute.Float64("assessment.total_importance", assessment.TotalImportance),
		attribute.Bool("assessment.clamped", assessment.Clamped),
	)
	if assessment.Clamped {
		span.AddEvent("assessment.clamped")
	}
	span.SetStatus(codes.Ok, "assessment completed")
}
