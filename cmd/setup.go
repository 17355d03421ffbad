package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/renobudget/internal/config"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/money"
	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

var localeOptions = []string{"en-US", "en-GB", "en-CA", "en-AU", "de-DE", "fr-FR"}

func runSetup(_ *cobra.Command, _ []string) error {
	path := configPath()

	// A file that fails to load is never overwritten.
	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("%w; fix or remove it before running setup", err)
	}

	minHome := strconv.FormatFloat(cfg.Limits.MinHomeValue, 'f', -1, 64)
	minIncome := strconv.FormatFloat(cfg.Limits.MinYearlyIncome, 'f', -1, 64)
	locale := cfg.General.Locale
	symbol := cfg.General.CurrencySymbol
	themeName := cfg.Appearance.Theme

	localeOpts := huh.NewOptions(localeOptions...)
	if !contains(localeOptions, locale) {
		localeOpts = append(localeOpts, huh.NewOption(locale, locale))
	}

	positive := func(s string) error {
		_, err := intake.ParseAmount(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("renobudget setup").
				Description(fmt.Sprintf("Settings are saved to %s", path)),
			huh.NewSelect[string]().
				Title("Number format").
				Options(localeOpts...).
				Value(&locale),
			huh.NewInput().
				Title("Currency symbol").
				Value(&symbol),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum home value").
				Value(&minHome).
				Validate(positive),
			huh.NewInput().
				Title("Minimum yearly income").
				Value(&minIncome).
				Validate(positive),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.Locale = locale
	cfg.General.CurrencySymbol = symbol
	cfg.Appearance.Theme = themeName
	cfg.Limits.MinHomeValue, _ = intake.ParseAmount(minHome)
	cfg.Limits.MinYearlyIncome, _ = intake.ParseAmount(minIncome)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("settings not saved: %w", err)
	}
	if err := config.SaveFile(path, cfg); err != nil {
		return err
	}

	f, _ := money.NewFormatter(locale, symbol)
	fmt.Println()
	fmt.Println("  All set!")
	fmt.Printf("  Saved to %s\n", path)
	fmt.Printf("  Amounts will look like %s\n", f.Currency(314850))
	fmt.Println()
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
