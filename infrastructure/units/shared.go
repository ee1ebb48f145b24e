// Package units provides the scoring units used to turn sampled department
// scores into a single threat score.
package units

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-threatscore/internal/domain"
)

// Common errors returned by aggregator units.
// Input errors wrap domain.ErrInvalidArgument so callers can classify them
// without knowing which unit produced them.
var (
	// ErrNoGroups is returned when no groups are provided for aggregation.
	ErrNoGroups = fmt.Errorf("%w: no groups provided for aggregation", domain.ErrInvalidArgument)

	// ErrEmptyUnitName is returned when attempting to create a unit with an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
