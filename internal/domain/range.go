// Package domain contains pure, dependency-free domain models and types
// for threat-score sampling and aggregation.
package domain

import "fmt"

// Range is an integer score domain. For sampling it is read as the
// half-open interval [Low, High); published aggregate scores are clamped
// to the closed interval [Low, High].
type Range struct {
	// Low is the smallest valid score.
	Low int `yaml:"low" json:"low" validate:"min=0"`

	// High is the exclusive sampling bound and the inclusive ceiling for
	// aggregated scores.
	High int `yaml:"high" json:"high" validate:"gtfield=Low"`
}

// DefaultRange is the threat-score domain used when nothing else is
// configured.
var DefaultRange = Range{Low: 0, High: 90}

// Validate reports whether the range can hold at least one sample.
func (r Range) Validate() error {
	if r.High <= r.Low {
		return NewArgumentError("range", r.String(), "high must be greater than low")
	}
	return nil
}

// Contains reports whether v is a valid sample, i.e. Low <= v < High.
func (r Range) Contains(v int) bool { return v >= r.Low && v < r.High }

// Clamp forces f into the closed interval [Low, High].
func (r Range) Clamp(f float64) float64 {
	return min(float64(r.High), max(float64(r.Low), f))
}

// String renders the range in interval notation.
func (r Range) String() string { return fmt.Sprintf("[%d, %d)", r.Low, r.High) }
