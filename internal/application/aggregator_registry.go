package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/ahrav/go-threatscore/infrastructure/units"
	"github.com/ahrav/go-threatscore/internal/ports"
)

// WeightedMeanType is the aggregator type used when a scenario does not
// name one.
const WeightedMeanType = "weighted_mean"

var _ ports.AggregatorRegistry = (*DefaultAggregatorRegistry)(nil)

// DefaultAggregatorRegistry implements the AggregatorRegistry interface
// with the built-in aggregator types pre-registered.
type DefaultAggregatorRegistry struct {
	// factories maps aggregator type strings to their factory functions.
	factories map[string]ports.AggregatorFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultAggregatorRegistry creates a registry that knows the
// weighted_mean aggregator and its threat_score alias.
func NewDefaultAggregatorRegistry() *DefaultAggregatorRegistry {
	r := &DefaultAggregatorRegistry{factories: make(map[string]ports.AggregatorFactory)}

	weightedMean := func(id string, config map[string]any) (ports.Aggregator, error) {
		unit, err := units.NewWeightedMeanFromConfig(id, config)
		if err != nil {
			return nil, err
		}
		return unit, nil
	}
	r.factories[WeightedMeanType] = weightedMean
	r.factories["threat_score"] = weightedMean

	return r
}

// CreateAggregator looks up the factory for aggregatorType and delegates
// construction to it. A nil config is treated as empty.
func (r *DefaultAggregatorRegistry) CreateAggregator(
	aggregatorType string,
	id string,
	config map[string]any,
) (ports.Aggregator, error) {
	r.mu.RLock()
	factory, exists := r.factories[aggregatorType]
	r.mu.RUnlock()

	if !exists {
		if suggestion := r.closestType(aggregatorType); suggestion != "" {
			return nil, fmt.Errorf("unsupported aggregator type: %s (did you mean %s?)", aggregatorType, suggestion)
		}
		return nil, fmt.Errorf("unsupported aggregator type: %s", aggregatorType)
	}
	if id == "" {
		return nil, fmt.Errorf("aggregator ID cannot be empty")
	}
	if config == nil {
		config = make(map[string]any)
	}

	aggregator, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator %s of type %s: %w", id, aggregatorType, err)
	}
	return aggregator, nil
}

// maxSuggestionDistance bounds how many edits a misspelled type may be
// from a registered one and still be suggested.
const maxSuggestionDistance = 3

// closestType returns the registered type nearest to name by edit
// distance, or "" when none is within maxSuggestionDistance.
func (r *DefaultAggregatorRegistry) closestType(name string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, t := range r.SupportedTypes() {
		if d := levenshtein.ComputeDistance(name, t); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best
}

// RegisterAggregatorFactory registers factory under aggregatorType,
// replacing any existing registration.
func (r *DefaultAggregatorRegistry) RegisterAggregatorFactory(
	aggregatorType string,
	factory ports.AggregatorFactory,
) error {
	if aggregatorType == "" {
		return fmt.Errorf("aggregator type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[aggregatorType] = factory
	return nil
}

// SupportedTypes returns the registered type names in sorted order.
func (r *DefaultAggregatorRegistry) SupportedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
