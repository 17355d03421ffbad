package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/logging"
	"github.com/theirongolddev/renobudget/internal/tui"
	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive estimator",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	theme.SetActive(e.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Stderr belongs to the alt screen while the program runs.
	logger := e.logger
	if !flagVerbose {
		logger = logging.Discard()
	}

	app := tui.NewApp(tui.Options{
		Calculator: e.calc,
		Checker:    e.checker,
		Money:      e.money,
		Catalog:    estimate.Catalog,
		Logger:     logger,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
