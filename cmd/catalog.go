package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/renobudget/internal/cli"
	"github.com/theirongolddev/renobudget/internal/estimate"
)

var flagCatalogFormat string

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List project types and their budget coefficients",
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&flagCatalogFormat, "format", "f", cli.FormatTable, "Output format: "+strings.Join(cli.Formats, ", "))
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	rep := cli.BuildCatalogReport(e.tables, estimate.Catalog)
	if flagCatalogFormat != cli.FormatTable && flagCatalogFormat != "" {
		return cli.Write(os.Stdout, flagCatalogFormat, rep)
	}

	fmt.Println()
	if err := cli.Write(os.Stdout, cli.FormatTable, cli.CatalogTable(rep, e.money)); err != nil {
		return err
	}
	fmt.Println(cli.RenderNote("Budget columns are a share of home value. ROI is value gained per dollar spent."))
	for _, g := range rep.Gaps {
		fmt.Println(cli.RenderWarning(g.String()))
	}
	fmt.Println()
	return nil
}
