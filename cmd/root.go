// Package cmd implements the renobudget CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/renobudget/internal/cli"
	"github.com/theirongolddev/renobudget/internal/client"
	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/logging"
)

var (
	flagConfig    string
	flagVerbose   bool
	flagHomeValue string
	flagIncome    string
	flagProject   string
	flagTier      string
	flagFormat    string
	flagRemote    string
)

var rootCmd = &cobra.Command{
	Use:   "renobudget",
	Short: "Home renovation budget estimator",
	Long: `Estimate renovation budgets at three spending tiers.

For a home value, yearly income and project type, renobudget projects the
initial budget, contingency fund, time to save and the expected change in home
value for a low, middle and high budget.`,
	Example: `  renobudget --home-value 300000 --income 90000 --project Kitchen
  renobudget --home-value '$450,000' --income 120000 --project "Deck Addition" --tier high --format json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEstimate,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var verr *intake.ValidationError
		if errors.As(err, &verr) {
			for _, m := range verr.Messages() {
				fmt.Fprintln(os.Stderr, cli.RenderError(m))
			}
		} else {
			fmt.Fprintln(os.Stderr, cli.RenderError(err.Error()))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $XDG_CONFIG_HOME/renobudget/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output to stderr")

	rootCmd.Flags().StringVar(&flagHomeValue, "home-value", "", "Current home value, e.g. 300000 or '$300,000'")
	rootCmd.Flags().StringVar(&flagIncome, "income", "", "Yearly household income")
	rootCmd.Flags().StringVarP(&flagProject, "project", "p", "", "Project type (see renobudget catalog)")
	rootCmd.Flags().StringVarP(&flagTier, "tier", "t", "", "Show only one tier: low, middle or high")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", cli.FormatTable, "Output format: "+strings.Join(cli.Formats, ", "))
	rootCmd.Flags().StringVar(&flagRemote, "remote", "", "Address of a running renobudget server to ask instead of computing locally")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	if flagHomeValue == "" && flagIncome == "" && flagProject == "" {
		return cmd.Help()
	}

	var only estimate.Tier
	if flagTier != "" {
		t, err := estimate.ParseTier(flagTier)
		if err != nil {
			return err
		}
		only = t
	}

	e, err := loadEnv()
	if err != nil {
		return err
	}

	raw := intake.Raw{
		HomeValue:    flagHomeValue,
		YearlyIncome: flagIncome,
		ProjectType:  flagProject,
	}

	var rep cli.Report
	if flagRemote != "" {
		rep, err = remoteEstimate(cmd.Context(), raw, only)
	} else {
		rep, err = localEstimate(e, raw, only)
	}
	if err != nil {
		return err
	}

	if flagFormat == cli.FormatTable || flagFormat == "" {
		fmt.Println()
		if err := cli.Write(os.Stdout, flagFormat, cli.EstimateTable(rep, e.money)); err != nil {
			return err
		}
		fmt.Println(cli.RenderNote("Time to save assumes the tier's share of monthly income is set aside each month."))
		fmt.Println()
		return nil
	}
	return cli.Write(os.Stdout, flagFormat, rep)
}

func localEstimate(e *env, raw intake.Raw, only estimate.Tier) (cli.Report, error) {
	in, err := e.checker.Validate(raw)
	if err != nil {
		return cli.Report{}, err
	}

	est, err := e.calc.Compute(in)
	if err != nil {
		logging.LogError(e.logger, "estimate failed", err)
		return cli.Report{}, errors.New(cli.CalculationFailed)
	}
	e.logger.Debug("estimate computed",
		slog.String("project", string(in.ProjectType)),
		slog.Float64("home_value", in.HomeValue))
	return cli.BuildReport(est, e.money, only), nil
}

func remoteEstimate(ctx context.Context, raw intake.Raw, only estimate.Tier) (cli.Report, error) {
	c, err := client.New(flagRemote)
	if err != nil {
		return cli.Report{}, err
	}
	rep, err := c.Estimate(ctx, raw)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Validation() != nil {
			return cli.Report{}, apiErr.Validation()
		}
		return cli.Report{}, err
	}
	if only != "" {
		kept := rep.Tiers[:0]
		for _, t := range rep.Tiers {
			if t.Tier == only {
				kept = append(kept, t)
			}
		}
		rep.Tiers = kept
	}
	return *rep, nil
}
