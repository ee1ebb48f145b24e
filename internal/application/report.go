package application

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"

	"github.com/ahrav/go-threatscore/internal/domain"
)

// Report is the outcome of one assessment.
type Report struct {
	// ID uniquely identifies this assessment run.
	ID uuid.UUID `json:"id"`
	// Scenario is the name of the assessed scenario.
	Scenario string `json:"scenario"`
	// Seed is the seed the random source was built from. Re-running the
	// scenario with this seed reproduces the report.
	Seed uint64 `json:"seed"`
	// Score is the published threat score.
	Score float64 `json:"score"`
	// Range is the score domain the assessment ran on.
	Range domain.Range `json:"range"`
	// Assessment explains how Score was derived.
	Assessment domain.Assessment `json:"assessment"`
	// Departments holds per-department sampling details in scenario order.
	Departments []DepartmentReport `json:"departments"`
	// Elapsed is the wall time of the assessment.
	Elapsed time.Duration `json:"elapsed"`
}

// DepartmentReport describes how one department was sampled.
type DepartmentReport struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
	Mean       int     `json:"mean"`
	Variance   int     `json:"variance"`
	// Lower and Upper bound the half-open window the scores came from.
	Lower int `json:"lower"`
	Upper int `json:"upper"`
	// Narrowed is set when the requested window was empty and had to be
	// collapsed onto a single value.
	Narrowed bool          `json:"narrowed"`
	Summary  SampleSummary `json:"summary"`
	Scores   []int         `json:"scores,omitempty"`
}

// SampleSummary is a distribution summary of one department's scores.
type SampleSummary struct {
	Count  int64   `json:"count"`
	Min    int64   `json:"min"`
	Max    int64   `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    int64   `json:"p50"`
	P90    int64   `json:"p90"`
}

// Summarize builds a SampleSummary for scores drawn from r. Scores outside
// r are reported as an invalid argument.
func Summarize(scores []int, r domain.Range) (SampleSummary, error) {
	// Three significant figures keep integer scores below 2048 exact.
	hist := hdrhistogram.New(1, max(int64(r.High), 2), 3)
	for i, s := range scores {
		if !r.Contains(s) {
			return SampleSummary{}, domain.NewArgumentError(
				fmt.Sprintf("scores[%d]", i), s, "outside "+r.String())
		}
		if err := hist.RecordValue(int64(s)); err != nil {
			return SampleSummary{}, fmt.Errorf("record score %d: %w", s, err)
		}
	}
	if hist.TotalCount() == 0 {
		return SampleSummary{}, nil
	}
	return SampleSummary{
		Count:  hist.TotalCount(),
		Min:    hist.Min(),
		Max:    hist.Max(),
		Mean:   hist.Mean(),
		StdDev: hist.StdDev(),
		P50:    hist.ValueAtQuantile(50),
		P90:    hist.ValueAtQuantile(90),
	}, nil
}
