package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahrav/go-threatscore/infrastructure/sampling"
	"github.com/ahrav/go-threatscore/internal/domain"
	"github.com/ahrav/go-threatscore/internal/ports"
)

// aggregatorID names the aggregator built for every assessment.
const aggregatorID = "threat_score"

// SourceFactory builds the random source for an assessment from its seed.
type SourceFactory func(seed uint64) ports.RandomSource

// AssessorOption configures an Assessor.
type AssessorOption func(*Assessor)

// WithLogger sets the logger used for assessment diagnostics.
func WithLogger(logger *zap.Logger) AssessorOption {
	return func(a *Assessor) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics sets the collector that receives assessment and sampling
// metrics.
func WithMetrics(metrics ports.MetricsCollector) AssessorOption {
	return func(a *Assessor) { a.metrics = metrics }
}

// WithObserver sets the observer notified about assessment progress.
func WithObserver(observer ports.AssessmentObserver) AssessorOption {
	return func(a *Assessor) {
		if observer != nil {
			a.observer = observer
		}
	}
}

// WithRegistry sets the registry aggregators are resolved from.
func WithRegistry(registry ports.AggregatorRegistry) AssessorOption {
	return func(a *Assessor) {
		if registry != nil {
			a.registry = registry
		}
	}
}

// WithSourceFactory replaces the seeded PCG source. Tests use it to inject
// deterministic sources.
func WithSourceFactory(factory SourceFactory) AssessorOption {
	return func(a *Assessor) {
		if factory != nil {
			a.newSource = factory
		}
	}
}

// Assessor runs scenarios: it samples every department, aggregates the
// samples into one weighted threat score and reports how the score was
// derived. An Assessor is safe for concurrent use; each assessment builds
// its own random source.
type Assessor struct {
	logger    *zap.Logger
	metrics   ports.MetricsCollector
	observer  ports.AssessmentObserver
	registry  ports.AggregatorRegistry
	newSource SourceFactory
}

// NewAssessor creates an Assessor. Without options it logs nowhere, records
// no metrics and draws from a seeded PCG source.
func NewAssessor(opts ...AssessorOption) *Assessor {
	a := &Assessor{
		logger:   zap.NewNop(),
		observer: nopObserver{},
		registry: NewDefaultAggregatorRegistry(),
		newSource: func(seed uint64) ports.RandomSource {
			return sampling.NewSeededSource(seed)
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assess runs scenario and returns its report. The scenario is expected to
// have been validated by a ScenarioLoader. Assess checks ctx between
// departments and returns ctx.Err() once it is cancelled.
func (a *Assessor) Assess(ctx context.Context, scenario *Scenario) (report *Report, err error) {
	if scenario == nil {
		return nil, domain.NewArgumentError("scenario", nil, "must not be nil")
	}

	start := time.Now()
	ctx = a.observer.Started(ctx, scenario.Name, len(scenario.Departments))
	defer func() {
		var assessment domain.Assessment
		if report != nil {
			assessment = report.Assessment
		}
		a.observer.Finished(ctx, assessment, time.Since(start), err)
		a.recordOutcome(scenario.Name, err)
	}()

	seed := rand.Uint64()
	if scenario.Seed != nil {
		seed = *scenario.Seed
	}
	logger := a.logger.With(zap.String("scenario", scenario.Name), zap.Uint64("seed", seed))

	generator, err := sampling.NewGenerator(
		sampling.GeneratorConfig{Range: scenario.ScoreRange()},
		a.newSource(seed),
		logger,
		a.metrics,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}
	aggregatorType := scenario.Aggregator.Type
	if aggregatorType == "" {
		aggregatorType = WeightedMeanType
	}
	aggregator, err := a.registry.CreateAggregator(aggregatorType, aggregatorID, scenario.AggregatorConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}

	departments := make([]DepartmentReport, 0, len(scenario.Departments))
	groups := make([]domain.Group, 0, len(scenario.Departments))
	for _, d := range scenario.Departments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		dr, err := a.sampleDepartment(ctx, generator, scenario, d)
		if err != nil {
			return nil, fmt.Errorf("department %q: %w", d.Name, err)
		}
		departments = append(departments, dr)
		groups = append(groups, domain.Group{Name: d.Name, Importance: d.Importance, Scores: dr.Scores})
	}

	assessment, err := aggregator.Assess(groups)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate: %w", err)
	}

	report = &Report{
		ID:          uuid.New(),
		Scenario:    scenario.Name,
		Seed:        seed,
		Score:       assessment.Score,
		Range:       scenario.ScoreRange(),
		Assessment:  assessment,
		Departments: departments,
		Elapsed:     time.Since(start),
	}

	if a.metrics != nil {
		a.metrics.RecordGauge(ports.MetricAggregatedScore, report.Score, map[string]string{"scenario": scenario.Name})
	}
	logger.Info("assessment completed",
		zap.Stringer("id", report.ID),
		zap.Float64("score", report.Score),
		zap.Bool("clamped", assessment.Clamped),
		zap.Int("departments", len(departments)),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func (a *Assessor) sampleDepartment(
	ctx context.Context,
	generator *sampling.Generator,
	scenario *Scenario,
	d Department,
) (DepartmentReport, error) {
	lower, upper, narrowed := generator.Bounds(d.Mean, d.Variance)
	a.observer.DepartmentSampled(ctx, d.Name, lower, upper, narrowed)

	scores, err := generator.Generate(d.Mean, d.Variance, scenario.SampleCount(d))
	if err != nil {
		return DepartmentReport{}, err
	}
	summary, err := Summarize(scores, scenario.ScoreRange())
	if err != nil {
		return DepartmentReport{}, err
	}

	if a.metrics != nil {
		a.metrics.RecordHistogram(ports.MetricDepartmentMean, summary.Mean, map[string]string{"scenario": scenario.Name})
	}
	a.logger.Debug("department sampled",
		zap.String("scenario", scenario.Name),
		zap.String("department", d.Name),
		zap.Int("lower", lower),
		zap.Int("upper", upper),
		zap.Float64("mean", summary.Mean),
	)

	return DepartmentReport{
		Name:       d.Name,
		Importance: d.Importance,
		Mean:       d.Mean,
		Variance:   d.Variance,
		Lower:      lower,
		Upper:      upper,
		Narrowed:   narrowed,
		Summary:    summary,
		Scores:     scores,
	}, nil
}

func (a *Assessor) recordOutcome(scenario string, err error) {
	if a.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	a.metrics.RecordCounter(ports.MetricAssessments, 1, map[string]string{"scenario": scenario, "status": status})
}

// nopObserver is used when no observer is configured.
type nopObserver struct{}

func (nopObserver) Started(ctx context.Context, _ string, _ int) context.Context { return ctx }

func (nopObserver) DepartmentSampled(context.Context, string, int, int, bool) {}

func (nopObserver) Finished(context.Context, domain.Assessment, time.Duration, error) {}
