package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/renobudget/internal/config"
	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	cfg := e.cfg

	fmt.Printf("  Config file: %s\n", e.path)
	if config.Exists(e.path) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Locale:          %s\n", e.money.Locale())
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Println()

	fmt.Println("  [Limits]")
	fmt.Printf("    Home value:    %s to %s\n", e.money.Whole(cfg.Limits.MinHomeValue), e.money.Whole(cfg.Limits.MaxHomeValue))
	fmt.Printf("    Yearly income: %s to %s\n", e.money.Whole(cfg.Limits.MinYearlyIncome), e.money.Whole(cfg.Limits.MaxYearlyIncome))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s", cfg.Appearance.Theme)
	if !theme.Known(cfg.Appearance.Theme) {
		fmt.Printf(" (unknown, using %s)", theme.FlexokiDark.Name)
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address: %s\n", cfg.Server.Addr)
	fmt.Println()

	fmt.Println("  [Tables]")
	if cfg.Tables.IsZero() {
		fmt.Println("    Overrides: none (built-in tables)")
	} else {
		printOverrides("coefficients", cfg.Tables.Coefficients)
		printOverrides("roi", cfg.Tables.ROI)
	}
	fmt.Println()

	fmt.Println("  Run `renobudget setup` to reconfigure.")
	return nil
}

func printOverrides(name string, m map[string]map[string]float64) {
	tiers := make([]string, 0, len(m))
	for tier := range m {
		tiers = append(tiers, tier)
	}
	sort.Strings(tiers)
	for _, tier := range tiers {
		projects := make([]string, 0, len(m[tier]))
		for p := range m[tier] {
			projects = append(projects, p)
		}
		sort.Strings(projects)
		for _, p := range projects {
			fmt.Printf("    %s.%s %-26q %v\n", name, tier, p, m[tier][p])
		}
	}
}

func runConfigInit(_ *cobra.Command, _ []string) error {
	path := configPath()
	if config.Exists(path) && !flagConfigForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveFile(path, config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Printf("  Wrote %s\n", path)
	return nil
}
