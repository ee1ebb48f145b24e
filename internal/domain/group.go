package domain

import (
	"fmt"
	"math"
)

// Group is one contributor to an aggregate: a department's sampled scores
// weighted by how important that department is.
type Group struct {
	// Name identifies the group in reports. It is optional.
	Name string `json:"name,omitempty"`

	// Importance is the positive weight applied to the group's mean score.
	Importance float64 `json:"importance"`

	// Scores holds the sampled scores. It must be non-empty.
	Scores []int `json:"scores"`
}

// Validate checks the group invariants: finite positive importance and at
// least one score. index is used to name the offending argument.
func (g Group) Validate(index int) error {
	if math.IsNaN(g.Importance) || math.IsInf(g.Importance, 0) {
		return NewArgumentError(fmt.Sprintf("groups[%d].importance", index), g.Importance, "must be finite")
	}
	if g.Importance <= 0 {
		return NewArgumentError(fmt.Sprintf("groups[%d].importance", index), g.Importance, "must be greater than zero")
	}
	if len(g.Scores) == 0 {
		return NewArgumentError(fmt.Sprintf("groups[%d].scores", index), len(g.Scores), "must not be empty")
	}
	return nil
}

// Mean returns the arithmetic mean of the group's scores. The mean of an
// empty group is undefined and reported as an invalid argument.
func (g Group) Mean() (float64, error) {
	if len(g.Scores) == 0 {
		return 0, NewArgumentError("scores", 0, "mean of an empty sequence is undefined")
	}
	var sum float64
	for _, s := range g.Scores {
		sum += float64(s)
	}
	return sum / float64(len(g.Scores)), nil
}
