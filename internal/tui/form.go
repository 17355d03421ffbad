package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
)

// formValues is shared by pointer with the huh fields.
type formValues struct {
	homeValue    string
	yearlyIncome string
	projectType  string
}

func (v *formValues) raw() intake.Raw {
	return intake.Raw{
		HomeValue:    v.homeValue,
		YearlyIncome: v.yearlyIncome,
		ProjectType:  v.projectType,
	}
}

func newEstimateForm(checker *intake.Checker, catalog []estimate.ProjectType, vals *formValues) *huh.Form {
	if vals.projectType == "" {
		vals.projectType = intake.Placeholder
	}

	opts := append(
		[]huh.Option[string]{huh.NewOption("Select a project", intake.Placeholder)},
		huh.NewOptions(estimate.CatalogNames(catalog)...)...,
	)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Home value").
				Description("Current market value of the home").
				Placeholder("300,000").
				Value(&vals.homeValue).
				Validate(func(s string) error {
					_, err := checker.HomeValue(s)
					return err
				}),
			huh.NewInput().
				Title("Yearly income").
				Description("Household income before tax").
				Placeholder("90,000").
				Value(&vals.yearlyIncome).
				Validate(func(s string) error {
					_, err := checker.YearlyIncome(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Project type").
				Options(opts...).
				Height(8).
				Value(&vals.projectType).
				Validate(func(s string) error {
					_, err := checker.ProjectType(s)
					return err
				}),
		),
	).WithShowHelp(true)
}
