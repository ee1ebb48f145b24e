package domain

// GroupSummary records how one group contributed to an aggregate.
type GroupSummary struct {
	// Name is copied from the group.
	Name string `json:"name,omitempty"`

	// Importance is the group's weight.
	Importance float64 `json:"importance"`

	// Mean is the arithmetic mean of the group's scores.
	Mean float64 `json:"mean"`

	// Share is the group's fraction of the total importance. Shares sum
	// to one.
	Share float64 `json:"share"`

	// Contribution is Mean * Share. Contributions sum to the raw score.
	Contribution float64 `json:"contribution"`

	// Samples is the number of scores in the group.
	Samples int `json:"samples"`
}

// Assessment is the detailed result of a weighted aggregation.
type Assessment struct {
	// Score is the published aggregate, always inside the clamp range.
	Score float64 `json:"score"`

	// Raw is the weighted average before clamping.
	Raw float64 `json:"raw"`

	// TotalImportance is the sum of all group importances, saturating at
	// math.MaxFloat64.
	TotalImportance float64 `json:"total_importance"`

	// Clamped is true when Raw fell outside the clamp range.
	Clamped bool `json:"clamped"`

	// Groups lists per-group contributions in input order.
	Groups []GroupSummary `json:"groups"`
}
