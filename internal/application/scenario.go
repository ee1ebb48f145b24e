// Package application orchestrates threat-score assessments: it loads
// scenario documents, samples every department and aggregates the result.
package application

import "github.com/ahrav/go-threatscore/internal/domain"

// DefaultSamples is the number of scores drawn per department when neither
// the scenario nor the department sets one.
const DefaultSamples = 50

// Scenario describes one threat assessment: the score domain, how many
// samples to draw, and the departments that contribute to the score.
// Use ScenarioLoader to obtain a validated Scenario from YAML.
type Scenario struct {
	// Version specifies the document schema version using semantic
	// versioning.
	Version string `yaml:"version" json:"version" validate:"required,semver"`
	// Name identifies the scenario in reports, logs and metric labels.
	Name string `yaml:"name" json:"name" validate:"required,min=1,max=255"`
	// Description is free-form documentation.
	Description string `yaml:"description,omitempty" json:"description,omitempty" validate:"max=1000"`
	// Seed makes the assessment reproducible. A nil seed means the random
	// source is seeded from the clock.
	Seed *uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`
	// Range is the score domain. It defaults to domain.DefaultRange only
	// when the document omits it.
	Range *domain.Range `yaml:"range,omitempty" json:"range,omitempty"`
	// Samples is the default number of scores drawn per department.
	Samples int `yaml:"samples" json:"samples" validate:"min=1,max=100000"`
	// Aggregator selects how department samples are combined. It defaults
	// to a weighted mean clamped to Range.
	Aggregator AggregatorSpec `yaml:"aggregator,omitempty" json:"aggregator,omitempty"`
	// Departments lists the contributors to the aggregate score.
	Departments []Department `yaml:"departments" json:"departments" validate:"required,min=1,max=100,dive"`
}

// AggregatorSpec names a registered aggregator type and its parameters.
type AggregatorSpec struct {
	// Type is looked up in the AggregatorRegistry.
	Type string `yaml:"type" json:"type" validate:"required,max=100"`
	// Parameters override the defaults derived from the scenario range.
	Parameters map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Department is one contributor to a scenario's threat score.
type Department struct {
	// Name must be unique within the scenario, ignoring case.
	Name string `yaml:"name" json:"name" validate:"required,min=1,max=100"`
	// Importance is the department's positive weight.
	Importance float64 `yaml:"importance" json:"importance" validate:"gt=0"`
	// Mean is the centre of the department's sampling window.
	Mean int `yaml:"mean" json:"mean"`
	// Variance is the half-width of the sampling window.
	Variance int `yaml:"variance" json:"variance" validate:"min=0"`
	// Samples overrides Scenario.Samples when positive.
	Samples int `yaml:"samples,omitempty" json:"samples,omitempty" validate:"min=0,max=100000"`
}

// SampleCount returns the number of scores to draw for d, falling back to
// the scenario default.
func (s *Scenario) SampleCount(d Department) int {
	if d.Samples > 0 {
		return d.Samples
	}
	return s.Samples
}

// ScoreRange returns the scenario's score domain, or domain.DefaultRange
// when Range is unset.
func (s *Scenario) ScoreRange() domain.Range {
	if s.Range == nil {
		return domain.DefaultRange
	}
	return *s.Range
}

// AggregatorConfig returns the configuration map handed to the aggregator
// factory: a clamp matching Range, overlaid with the scenario parameters.
func (s *Scenario) AggregatorConfig() map[string]any {
	config := map[string]any{
		"floor":   float64(s.ScoreRange().Low),
		"ceiling": float64(s.ScoreRange().High),
	}
	for k, v := range s.Aggregator.Parameters {
		config[k] = v
	}
	return config
}

// applyDefaults fills in optional fields left empty by the document.
func (s *Scenario) applyDefaults() {
	if s.Range == nil {
		r := domain.DefaultRange
		s.Range = &r
	}
	if s.Samples == 0 {
		s.Samples = DefaultSamples
	}
	if s.Aggregator.Type == "" {
		s.Aggregator.Type = WeightedMeanType
	}
}
