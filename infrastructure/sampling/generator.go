// Package sampling generates synthetic threat scores for departments.
package sampling

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ahrav/go-threatscore/internal/domain"
	"github.com/ahrav/go-threatscore/internal/ports"
)

var _ ports.Sampler = (*Generator)(nil)

// ErrInvalidCount is returned when a non-positive sample count is requested.
var ErrInvalidCount = fmt.Errorf("%w: sample count must be positive", domain.ErrInvalidArgument)

var validate = validator.New()

// GeneratorConfig controls the score domain samples are drawn from.
type GeneratorConfig struct {
	// Range is the half-open interval every generated score falls in.
	Range domain.Range `yaml:"range" json:"range"`
}

// DefaultGeneratorConfig returns a GeneratorConfig over domain.DefaultRange.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Range: domain.DefaultRange}
}

// Generator draws uniformly distributed integer scores around a mean.
//
// For a request (mean, variance) the sampling window is
// [max(mean-variance, Low), min(mean+variance+1, High)). When that window
// is empty, as for mean=90 with variance 0, it is collapsed onto the single
// value just below its upper edge instead of failing. The collapse narrows
// the requested spread, so it is logged at warn level and counted.
//
// A Generator holds no mutable state of its own; it is as safe for
// concurrent use as the RandomSource it was built with.
type Generator struct {
	rng     ports.RandomSource
	scale   domain.Range
	logger  *zap.Logger
	metrics ports.MetricsCollector
}

// NewGenerator creates a Generator drawing from rng. logger and metrics are
// optional. It returns an error if rng is nil or the configured range is
// invalid.
func NewGenerator(
	config GeneratorConfig,
	rng ports.RandomSource,
	logger *zap.Logger,
	metrics ports.MetricsCollector,
) (*Generator, error) {
	if rng == nil {
		return nil, domain.NewArgumentError("rng", nil, "random source is required")
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: configuration validation failed: %v", domain.ErrInvalidArgument, err)
	}
	if err := config.Range.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		rng:     rng,
		scale:   config.Range,
		logger:  logger,
		metrics: metrics,
	}, nil
}

// Range returns the score domain of the generator.
func (g *Generator) Range() domain.Range { return g.scale }

// Bounds returns the half-open sampling window [lower, upper) for a request
// and whether the degenerate-window guard had to narrow it.
// The window always lies inside the generator's range and holds at least
// one value.
func (g *Generator) Bounds(mean, variance int) (lower, upper int, narrowed bool) {
	lower = max(subSat(mean, variance), g.scale.Low)
	upper = min(addSat(addSat(mean, variance), 1), g.scale.High)
	if lower >= upper {
		// Means far below the domain leave upper under Low.
		upper = max(upper, g.scale.Low+1)
		lower = upper - 1
		narrowed = true
	}
	return lower, upper, narrowed
}

// Generate returns count scores drawn independently and uniformly from
// Bounds(mean, variance). mean and variance may be any integers.
// It fails only when count is not positive.
func (g *Generator) Generate(mean, variance, count int) ([]int, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count=%d", ErrInvalidCount, count)
	}

	lower, upper, narrowed := g.Bounds(mean, variance)
	if narrowed {
		g.logger.Warn("sampling window collapsed, narrowing to a single value",
			zap.Int("mean", mean),
			zap.Int("variance", variance),
			zap.Int("lower", lower),
			zap.Int("upper", upper),
		)
		if g.metrics != nil {
			g.metrics.RecordCounter(ports.MetricRangeNarrowed, 1, map[string]string{"range": g.scale.String()})
		}
	}

	width := upper - lower
	scores := make([]int, count)
	for i := range scores {
		scores[i] = lower + g.rng.IntN(width)
	}
	return scores, nil
}

func addSat(a, b int) int {
	s := a + b
	switch {
	case b > 0 && s < a:
		return math.MaxInt
	case b < 0 && s > a:
		return math.MinInt
	}
	return s
}

func subSat(a, b int) int {
	s := a - b
	switch {
	case b < 0 && s < a:
		return math.MaxInt
	case b > 0 && s > a:
		return math.MinInt
	}
	return s
}
