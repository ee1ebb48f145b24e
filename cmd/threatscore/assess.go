package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ahrav/go-threatscore/infrastructure/observability"
	"github.com/ahrav/go-threatscore/internal/application"
)

type assessOptions struct {
	scenario string
	seed     uint64
	output   string
	plot     bool
	metrics  bool
}

func (c *cli) newAssessCmd() *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Assess a scenario file and print the threat score",
		Example: `  threatscore assess --scenario quarterly.yaml
  threatscore assess --scenario quarterly.yaml --seed 7 --plot --metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAssess(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.scenario, "scenario", "s", "", "Scenario YAML file")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Override the scenario seed")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&opts.plot, "plot", false, "Plot department mean scores")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "Print collected metrics in Prometheus text format")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}

func (c *cli) runAssess(cmd *cobra.Command, opts *assessOptions) error {
	if opts.output != "table" && opts.output != "json" {
		return fmt.Errorf("unsupported output format %q", opts.output)
	}

	loader, err := application.NewScenarioLoader(nil)
	if err != nil {
		return err
	}
	scenario, err := loader.LoadFromFile(opts.scenario)
	if err != nil {
		return fmt.Errorf("load scenario %s: %w", opts.scenario, err)
	}
	if cmd.Flags().Changed("seed") {
		scenario.Seed = &opts.seed
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewPrometheusMetrics(reg)
	assessor := application.NewAssessor(
		application.WithLogger(c.logger),
		application.WithMetrics(metrics),
		application.WithObserver(observability.NewOTelAssessmentObserver(nil, metrics)),
	)

	report, err := assessor.Assess(cmd.Context(), scenario)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.output {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	default:
		renderReport(out, report)
	}

	if opts.plot {
		means := make([]float64, len(report.Departments))
		for i, d := range report.Departments {
			means[i] = d.Summary.Mean
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, plot(means, "department mean scores in scenario order"))
	}
	if opts.metrics {
		fmt.Fprintln(out)
		if err := observability.WriteText(out, reg); err != nil {
			return err
		}
	}
	return nil
}

func renderReport(w io.Writer, report *application.Report) {
	fmt.Fprintf(w, "Scenario: %s\nAssessment: %s\nSeed: %d\nRange: %s\n\n",
		report.Scenario, report.ID, report.Seed, report.Range)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Department", "Importance", "Window", "Mean", "P50", "P90", "Contribution"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, d := range report.Departments {
		window := fmt.Sprintf("[%d, %d)", d.Lower, d.Upper)
		if d.Narrowed {
			window += "*"
		}
		table.Append([]string{
			d.Name,
			fmt.Sprintf("%g", d.Importance),
			window,
			fmt.Sprintf("%.2f", d.Summary.Mean),
			fmt.Sprintf("%d", d.Summary.P50),
			fmt.Sprintf("%d", d.Summary.P90),
			fmt.Sprintf("%.2f", report.Assessment.Groups[i].Contribution),
		})
	}
	table.Render()
	for _, d := range report.Departments {
		if d.Narrowed {
			fmt.Fprintln(w, "* sampling window narrowed to a single value")
			break
		}
	}

	fmt.Fprintf(w, "\nThreat score: %.2f", report.Score)
	if report.Assessment.Clamped {
		fmt.Fprintf(w, " (clamped from %.2f)", report.Assessment.Raw)
	}
	fmt.Fprintln(w)
}

func plot(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Caption(caption))
}
