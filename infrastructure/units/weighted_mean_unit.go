package units

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-threatscore/internal/domain"
	"github.com/ahrav/go-threatscore/internal/ports"
)

var _ ports.Aggregator = (*WeightedMeanUnit)(nil)

// WeightedMeanUnit aggregates department scores into one threat score by
// taking the importance-weighted average of the per-group means.
//
// Algorithm: for groups g with importance w_g and mean m_g the raw score is
// Σ(w_g·m_g) / Σw_g, which is then clamped to [Floor, Ceiling]. Because the
// result is normalized by total importance, multiplying every importance by
// the same positive constant leaves it unchanged. Importances are divided by
// the largest importance before summing so that very large weights cannot
// overflow to +Inf and poison the quotient.
//
// Input validation is atomic: every group is checked before any arithmetic
// happens, and a single invalid group fails the whole call.
//
// Concurrency: stateless and thread-safe. Configuration is fixed after
// construction unless UnmarshalParameters is called.
type WeightedMeanUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config WeightedMeanConfig
}

// WeightedMeanConfig sets the closed interval published scores are clamped to.
type WeightedMeanConfig struct {
	// Floor is the smallest score the unit will publish.
	Floor float64 `yaml:"floor" json:"floor" validate:"min=0"`

	// Ceiling is the largest score the unit will publish. It must exceed Floor.
	Ceiling float64 `yaml:"ceiling" json:"ceiling" validate:"gtfield=Floor"`
}

// DefaultWeightedMeanConfig returns the threat-score clamp [0, 90].
func DefaultWeightedMeanConfig() WeightedMeanConfig {
	return WeightedMeanConfig{
		Floor:   float64(domain.DefaultRange.Low),
		Ceiling: float64(domain.DefaultRange.High),
	}
}

// WeightedMeanConfigForRange returns a config clamping to the closed
// version of r.
func WeightedMeanConfigForRange(r domain.Range) WeightedMeanConfig {
	return WeightedMeanConfig{Floor: float64(r.Low), Ceiling: float64(r.High)}
}

// NewWeightedMeanUnit creates a WeightedMeanUnit with a validated clamp.
//
// Returns ErrEmptyUnitName if name is empty, or a configuration validation
// error if Ceiling does not exceed Floor or Floor is negative.
func NewWeightedMeanUnit(name string, config WeightedMeanConfig) (*WeightedMeanUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &WeightedMeanUnit{
		name:   name,
		config: config,
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *WeightedMeanUnit) Name() string { return u.name }

// Config returns the unit's clamp configuration.
func (u *WeightedMeanUnit) Config() WeightedMeanConfig { return u.config }

// Aggregate implements ports.Aggregator. It returns the clamped weighted
// mean of the group means.
//
// Errors (all wrap domain.ErrInvalidArgument):
//   - ErrNoGroups for an empty group list
//   - a *domain.ArgumentError for a non-positive or non-finite importance
//   - a *domain.ArgumentError for a group without scores
func (u *WeightedMeanUnit) Aggregate(groups []domain.Group) (float64, error) {
	assessment, err := u.Assess(groups)
	if err != nil {
		return 0, err
	}
	return assessment.Score, nil
}

// Assess performs the same computation as Aggregate and also returns each
// group's mean and contribution so the score can be explained.
func (u *WeightedMeanUnit) Assess(groups []domain.Group) (domain.Assessment, error) {
	if len(groups) == 0 {
		return domain.Assessment{}, ErrNoGroups
	}

	var maxImportance float64
	for i, g := range groups {
		if err := g.Validate(i); err != nil {
			return domain.Assessment{}, err
		}
		maxImportance = max(maxImportance, g.Importance)
	}

	summaries := make([]domain.GroupSummary, len(groups))
	var weightedSum, weightSum, totalImportance float64
	for i, g := range groups {
		mean, err := g.Mean()
		if err != nil {
			return domain.Assessment{}, err
		}

		w := g.Importance / maxImportance
		weightedSum += mean * w
		weightSum += w
		totalImportance += g.Importance

		summaries[i] = domain.GroupSummary{
			Name:       g.Name,
			Importance: g.Importance,
			Mean:       mean,
			Share:      w,
			Samples:    len(g.Scores),
		}
	}

	// weightSum >= 1 since the heaviest group contributes exactly 1.
	raw := weightedSum / weightSum
	score := u.clamp(raw)

	for i := range summaries {
		summaries[i].Share /= weightSum
		summaries[i].Contribution = summaries[i].Mean * summaries[i].Share
	}
	if math.IsInf(totalImportance, 1) {
		totalImportance = math.MaxFloat64
	}

	return domain.Assessment{
		Score:           score,
		Raw:             raw,
		TotalImportance: totalImportance,
		Clamped:         score != raw,
		Groups:          summaries,
	}, nil
}

func (u *WeightedMeanUnit) clamp(v float64) float64 {
	if math.IsNaN(v) {
		return u.config.Floor
	}
	return min(u.config.Ceiling, max(u.config.Floor, v))
}

// Validate verifies the unit is properly configured.
// Returns nil if the unit is operational. Safe for concurrent use.
func (u *WeightedMeanUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// UnmarshalParameters decodes YAML parameters into the unit's clamp
// configuration. The unit's configuration is unchanged on error.
func (u *WeightedMeanUnit) UnmarshalParameters(params yaml.Node) error {
	config := DefaultWeightedMeanConfig()

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	u.config = config
	return nil
}

// NewWeightedMeanFromConfig creates a WeightedMeanUnit from a configuration map.
// This is the boundary adapter for YAML/JSON configuration; missing keys
// fall back to DefaultWeightedMeanConfig.
func NewWeightedMeanFromConfig(id string, config map[string]any) (*WeightedMeanUnit, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	// Start with defaults, then overlay user config.
	cfg := DefaultWeightedMeanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewWeightedMeanUnit(id, cfg)
}

var defaultUnit = &WeightedMeanUnit{name: "threat_score", config: DefaultWeightedMeanConfig()}

// Aggregate computes the threat score of groups with the default [0, 90]
// clamp. See WeightedMeanUnit.Aggregate.
func Aggregate(groups []domain.Group) (float64, error) {
	return defaultUnit.Aggregate(groups)
}
