package application

import (
	"context"
	"strings"
	"testing"
)

// FuzzScenarioLoader_Load feeds arbitrary documents to the loader. Loading
// must never panic, and any scenario it accepts must assess to a raw score
// inside its range.
func FuzzScenarioLoader_Load(f *testing.F) {
	testcases := []string{
		// Valid minimal document.
		`version: "1.0.0"
name: minimal
departments: [{name: a, importance: 1, mean: 10, variance: 2}]`,

		// Unterminated string.
		`version: "1.0.0
name: broken`,

		// Wrong shapes.
		`version: 1
name: [1, 2]
departments: "should be a list"`,

		// Extreme values.
		`version: "999999999.0.0"
name: extremes
range: {low: 0, high: 2147483647}
samples: 3
departments:
  - {name: max, importance: 1.7976931348623157e+308, mean: 9223372036854775807, variance: 9223372036854775807}
  - {name: min, importance: 5e-324, mean: -9223372036854775808, variance: 0}`,

		// Unicode names that fold to the same key.
		`version: "1.0.0"
name: "测试 🚀 тест"
departments:
  - {name: "Straße", importance: 1, mean: 1, variance: 1}
  - {name: "STRASSE", importance: 1, mean: 1, variance: 1}`,

		// Aggregator parameters.
		`version: "1.0.0"
name: agg
aggregator: {type: threat_score, parameters: {floor: 5, ceiling: 6}}
departments: [{name: a, importance: 2, mean: 50, variance: 50}]`,
	}
	for _, tc := range testcases {
		f.Add(tc)
	}

	loader, err := NewScenarioLoader(nil)
	if err != nil {
		f.Fatal(err)
	}
	assessor := NewAssessor()

	f.Fuzz(func(t *testing.T, doc string) {
		scenario, err := loader.LoadFromReader(strings.NewReader(doc))
		if err != nil {
			return
		}

		total := 0
		for _, d := range scenario.Departments {
			total += scenario.SampleCount(d)
		}
		if total > 10_000 {
			return
		}

		report, err := assessor.Assess(context.Background(), scenario)
		if err != nil {
			t.Fatalf("accepted scenario failed to assess: %v", err)
		}
		raw := report.Assessment.Raw
		if scale := scenario.ScoreRange(); raw < float64(scale.Low) || raw > float64(scale.High) {
			t.Fatalf("raw score %v outside %s", raw, scale)
		}
	})
}
