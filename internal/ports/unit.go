// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import "github.com/ahrav/go-threatscore/internal/domain"

// Unit is a named, configurable scoring component.
// Units should be stateless and thread-safe for concurrent execution.
type Unit interface {
	// Name returns a unique identifier for this unit.
	// The name is used for logging, debugging, and configuration.
	Name() string

	// Validate checks if the unit is properly configured and ready for use.
	// Return nil if validation passes, or an error describing what is invalid.
	Validate() error
}

// Aggregator combines weighted groups of scores into a single score.
//
// Implementations must reject an empty group list, non-positive importances
// and empty score sequences with an error wrapping domain.ErrInvalidArgument,
// and must never return a score outside their configured range.
//
// Example:
//
//	groups := []domain.Group{
//	    {Importance: 3, Scores: []int{10, 20, 30}},
//	    {Importance: 1, Scores: []int{100}},
//	}
//	score, err := aggregator.Aggregate(groups) // 40
type Aggregator interface {
	Unit

	// Aggregate returns the importance-weighted mean of the group means.
	Aggregate(groups []domain.Group) (float64, error)

	// Assess performs the same computation as Aggregate and explains it
	// with per-group contributions.
	Assess(groups []domain.Group) (domain.Assessment, error)
}

// AggregatorFactory creates an Aggregator from an identifier and a
// configuration map decoded from YAML or JSON.
type AggregatorFactory func(id string, config map[string]any) (Aggregator, error)

// AggregatorRegistry maps aggregator type names to factories.
// Implementations must be safe for concurrent use.
type AggregatorRegistry interface {
	// CreateAggregator builds an aggregator of the registered type.
	CreateAggregator(aggregatorType, id string, config map[string]any) (Aggregator, error)

	// RegisterAggregatorFactory adds or replaces the factory for a type.
	RegisterAggregatorFactory(aggregatorType string, factory AggregatorFactory) error

	// SupportedTypes lists the registered type names.
	SupportedTypes() []string
}

// Sampler produces synthetic scores around a mean.
// Any source with this shape can feed an Aggregator.
type Sampler interface {
	// Generate returns exactly count scores drawn around mean within
	// +/- variance, clamped to the sampler's range.
	Generate(mean, variance, count int) ([]int, error)
}

// RandomSource is the randomness a Sampler draws from.
// *math/rand/v2.Rand satisfies it. Implementations shared between
// goroutines must synchronize IntN themselves.
type RandomSource interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}
