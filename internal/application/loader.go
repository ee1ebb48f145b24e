package application

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/mod/semver"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-threatscore/internal/domain"
	"github.com/ahrav/go-threatscore/internal/ports"
)

// ScenarioLoader parses and validates scenario documents.
// A ScenarioLoader is safe for concurrent use.
type ScenarioLoader struct {
	// validator performs struct field validation, including the custom
	// semver rule.
	validator *validator.Validate
	// registry resolves and pre-builds the scenario's aggregator so bad
	// parameters are reported at load time.
	registry ports.AggregatorRegistry
}

// NewScenarioLoader creates a loader with the custom validators registered.
// A nil registry selects NewDefaultAggregatorRegistry.
// NewScenarioLoader returns an error if validator registration fails.
func NewScenarioLoader(registry ports.AggregatorRegistry) (*ScenarioLoader, error) {
	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	if registry == nil {
		registry = NewDefaultAggregatorRegistry()
	}
	return &ScenarioLoader{validator: v, registry: registry}, nil
}

// LoadFromFile reads and validates a scenario from a YAML file.
func (sl *ScenarioLoader) LoadFromFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return sl.Load(data)
}

// LoadFromReader reads all of r and validates it as a scenario.
func (sl *ScenarioLoader) LoadFromReader(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return sl.Load(data)
}

// Load parses data as a scenario document, applies defaults and validates
// it. Validation failures unwrap to domain.ErrInvalidArgument.
func (sl *ScenarioLoader) Load(data []byte) (*Scenario, error) {
	scenario, err := sl.parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := sl.Validate(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

// Validate applies defaults to s, then checks struct tags and the rules
// that tags cannot express. Scenarios built in code should be validated
// before use.
func (sl *ScenarioLoader) Validate(s *Scenario) error {
	s.applyDefaults()
	if err := sl.validator.Struct(s); err != nil {
		return fmt.Errorf("%w: struct validation failed: %v", domain.ErrInvalidArgument, err)
	}
	if err := sl.validateSemantics(s); err != nil {
		return fmt.Errorf("semantic validation failed: %w", err)
	}
	return nil
}

// parseYAML decodes strictly so misspelled keys are reported instead of
// silently ignored.
func (sl *ScenarioLoader) parseYAML(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&scenario); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, domain.NewArgumentError("document", "", "must not be empty")
		}
		return nil, fmt.Errorf("%w: YAML decode failed: %v", domain.ErrInvalidArgument, err)
	}
	return &scenario, nil
}

// validateSemantics collects every cross-field problem into one
// ValidationError.
func (sl *ScenarioLoader) validateSemantics(s *Scenario) error {
	verr := domain.NewValidationError("scenario " + s.Name)

	// Casers are stateful and must not be shared between goroutines.
	fold := cases.Fold()
	seen := make(map[string]int, len(s.Departments))
	for i, d := range s.Departments {
		if math.IsInf(d.Importance, 0) {
			verr.AddError(fmt.Sprintf("departments[%d]: importance must be finite", i))
		}

		key := fold.String(d.Name)
		if prev, ok := seen[key]; ok {
			verr.AddError(fmt.Sprintf("departments[%d]: duplicate name %q (also departments[%d])", i, d.Name, prev))
			continue
		}
		seen[key] = i
	}

	if _, err := sl.registry.CreateAggregator(s.Aggregator.Type, aggregatorID, s.AggregatorConfig()); err != nil {
		verr.AddError(fmt.Sprintf("aggregator: %v", err))
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// registerCustomValidators registers validation functions that struct tags
// reference by name.
func registerCustomValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("semver", validateSemver); err != nil {
		return fmt.Errorf("failed to register semver validator: %w", err)
	}
	return nil
}

// validateSemver accepts a full Semantic Versioning 2.0.0 version without
// a leading "v": MAJOR.MINOR.PATCH with optional pre-release and build
// suffixes, such as 1.0.0, 1.0.0-rc.1 or 1.0.0+build.5.
func validateSemver(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	v := "v" + value
	if !semver.IsValid(v) {
		return false
	}
	// Canonical expands shorthand like v1.0 and drops build metadata, so
	// a match means all three numeric parts were written out.
	withoutBuild, _, _ := strings.Cut(value, "+")
	return semver.Canonical(v) == "v"+withoutBuild
}
