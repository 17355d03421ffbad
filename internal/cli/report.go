package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/money"
)

// Output formats accepted by --format.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// CalculationFailed is the only detail users see when an estimate cannot be
// computed.
const CalculationFailed = "An error occurred while calculating. Please check your inputs and try again."

// Formats lists the supported output formats.
var Formats = []string{FormatTable, FormatJSON, FormatYAML}

// TierReport pairs raw tier numbers with their display strings.
type TierReport struct {
	estimate.TierResult `yaml:",inline"`

	Label   string         `json:"label" yaml:"label"`
	Display DisplayAmounts `json:"display" yaml:"display"`
}

// DisplayAmounts holds the formatted values shown to users.
type DisplayAmounts struct {
	InitialBudget    string `json:"initial_budget" yaml:"initial_budget"`
	ContingencyFund  string `json:"contingency_fund" yaml:"contingency_fund"`
	TotalBudget      string `json:"total_budget" yaml:"total_budget"`
	MonthlySavings   string `json:"monthly_savings" yaml:"monthly_savings"`
	TimeToSave       string `json:"time_to_save" yaml:"time_to_save"`
	ROI              string `json:"roi" yaml:"roi"`
	ValueIncrease    string `json:"value_increase" yaml:"value_increase"`
	UpdatedHomeValue string `json:"updated_home_value" yaml:"updated_home_value"`
}

// Report is the serialized form of an estimate.
type Report struct {
	Inputs estimate.Inputs `json:"inputs" yaml:"inputs"`
	Tiers  []TierReport    `json:"tiers" yaml:"tiers"`
}

// BuildReport formats est. When only is non-empty, just that tier is kept.
func BuildReport(est estimate.Estimate, f *money.Formatter, only estimate.Tier) Report {
	if f == nil {
		f = money.Default()
	}
	rep := Report{Inputs: est.Inputs}
	for _, r := range est.Tiers {
		if only != "" && r.Tier != only {
			continue
		}
		rep.Tiers = append(rep.Tiers, TierReport{
			TierResult: r,
			Label:      r.Tier.Label(),
			Display: DisplayAmounts{
				InitialBudget:    f.Currency(r.InitialBudget),
				ContingencyFund:  f.Currency(r.ContingencyFund),
				TotalBudget:      f.Currency(r.TotalBudget),
				MonthlySavings:   f.Currency(r.MonthlySavings),
				TimeToSave:       f.Months(r.TimeToSave),
				ROI:              f.Percent(r.ROI),
				ValueIncrease:    f.Currency(r.ValueIncrease),
				UpdatedHomeValue: f.Currency(r.UpdatedHomeValue),
			},
		})
	}
	return rep
}

// EstimateTable lays a report out with one row per metric and one column per
// tier.
func EstimateTable(rep Report, f *money.Formatter) Table {
	if f == nil {
		f = money.Default()
	}
	headers := []string{"Metric"}
	for _, t := range rep.Tiers {
		headers = append(headers, t.Label)
	}

	metric := func(name string, pick func(DisplayAmounts) string) []string {
		row := []string{name}
		for _, t := range rep.Tiers {
			row = append(row, pick(t.Display))
		}
		return row
	}

	return Table{
		Title: fmt.Sprintf("%s on a %s home, %s/yr income",
			rep.Inputs.ProjectType, f.Whole(rep.Inputs.HomeValue), f.Whole(rep.Inputs.YearlyIncome)),
		Headers: headers,
		Rows: [][]string{
			metric("Initial Budget", func(d DisplayAmounts) string { return d.InitialBudget }),
			metric("Contingency Fund", func(d DisplayAmounts) string { return d.ContingencyFund }),
			metric("Total Budget", func(d DisplayAmounts) string { return d.TotalBudget }),
			{"---"},
			metric("Monthly Savings", func(d DisplayAmounts) string { return d.MonthlySavings }),
			metric("Time to Save", func(d DisplayAmounts) string { return d.TimeToSave }),
			{"---"},
			metric("ROI", func(d DisplayAmounts) string { return d.ROI }),
			metric("Value Increase", func(d DisplayAmounts) string { return d.ValueIncrease }),
			metric("Updated Home Value", func(d DisplayAmounts) string { return d.UpdatedHomeValue }),
		},
	}
}

// Write renders v to w in the given format. Table output requires a Table,
// structured output accepts any value.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatTable, "":
		t, ok := v.(Table)
		if !ok {
			return fmt.Errorf("value of type %T has no table form", v)
		}
		_, err := io.WriteString(w, RenderTable(t))
		return err
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// CatalogEntry is one project type with its table values per tier.
type CatalogEntry struct {
	Project      estimate.ProjectType      `json:"project" yaml:"project"`
	Coefficients map[estimate.Tier]float64 `json:"coefficients" yaml:"coefficients"`
	ROI          map[estimate.Tier]float64 `json:"roi" yaml:"roi"`
}

// CatalogReport lists the selectable project types and any table gaps.
type CatalogReport struct {
	Projects []CatalogEntry `json:"projects" yaml:"projects"`
	Gaps     []estimate.Gap `json:"gaps,omitempty" yaml:"gaps,omitempty"`
}

// BuildCatalogReport collects table values for every catalog entry.
func BuildCatalogReport(tables estimate.Tables, catalog []estimate.ProjectType) CatalogReport {
	rep := CatalogReport{Gaps: tables.Gaps(catalog)}
	for _, p := range catalog {
		e := CatalogEntry{
			Project:      p,
			Coefficients: make(map[estimate.Tier]float64, len(estimate.Tiers)),
			ROI:          make(map[estimate.Tier]float64, len(estimate.Tiers)),
		}
		for _, tier := range estimate.Tiers {
			if v, ok := tables.Coefficients.Lookup(tier, p); ok {
				e.Coefficients[tier] = v
			}
			if v, ok := tables.ROI.Lookup(tier, p); ok {
				e.ROI[tier] = v
			}
		}
		rep.Projects = append(rep.Projects, e)
	}
	return rep
}

// CatalogTable shows coefficients as percent of home value and ROI as a
// percent of budget, one row per project.
func CatalogTable(rep CatalogReport, f *money.Formatter) Table {
	if f == nil {
		f = money.Default()
	}
	cell := func(m map[estimate.Tier]float64, tier estimate.Tier) string {
		v, ok := m[tier]
		if !ok {
			return "missing"
		}
		return f.Percent(v * 100)
	}

	t := Table{
		Title:   "Project Types",
		Headers: []string{"Project", "Low", "Middle", "High", "ROI Low", "ROI Mid", "ROI High"},
	}
	for _, e := range rep.Projects {
		t.Rows = append(t.Rows, []string{
			string(e.Project),
			cell(e.Coefficients, estimate.TierLow),
			cell(e.Coefficients, estimate.TierMiddle),
			cell(e.Coefficients, estimate.TierHigh),
			cell(e.ROI, estimate.TierLow),
			cell(e.ROI, estimate.TierMiddle),
			cell(e.ROI, estimate.TierHigh),
		})
	}
	return t
}
