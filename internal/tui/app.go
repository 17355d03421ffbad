// Package tui provides the interactive Bubble Tea estimator.
package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/renobudget/internal/cli"
	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/logging"
	"github.com/theirongolddev/renobudget/internal/money"
	"github.com/theirongolddev/renobudget/internal/tui/components"
)

type screen int

const (
	screenForm screen = iota
	screenResults
	screenError
)

const (
	minTerminalWidth = 40
	compactWidth     = 96
	maxContentWidth  = 160
)

// Options configures NewApp. Nil fields use the built-in defaults.
type Options struct {
	Calculator *estimate.Calculator
	Checker    *intake.Checker
	Money      *money.Formatter
	Catalog    []estimate.ProjectType
	Logger     *slog.Logger
}

// App is the root Bubble Tea model.
type App struct {
	calc    *estimate.Calculator
	checker *intake.Checker
	money   *money.Formatter
	catalog []estimate.ProjectType
	logger  *slog.Logger

	form *huh.Form
	vals *formValues

	screen     screen
	report     cli.Report
	err        error
	activeView int

	width    int
	height   int
	keys     keyMap
	help     help.Model
	showHelp bool
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	if opts.Money == nil {
		opts.Money = money.Default()
	}
	if opts.Catalog == nil {
		opts.Catalog = estimate.Catalog
	}
	if opts.Calculator == nil {
		opts.Calculator = estimate.NewCalculator(estimate.DefaultTables())
	}
	if opts.Checker == nil {
		opts.Checker = intake.NewChecker(intake.DefaultLimits(), opts.Catalog, opts.Money)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	a := App{
		calc:    opts.Calculator,
		checker: opts.Checker,
		money:   opts.Money,
		catalog: opts.Catalog,
		logger:  opts.Logger,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	a.resetForm()
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.form.Init()
}

// resetForm discards results and starts a fresh, empty form.
func (a *App) resetForm() {
	a.vals = &formValues{}
	a.form = newEstimateForm(a.checker, a.catalog, a.vals)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	a.screen = screenForm
	a.report = cli.Report{}
	a.err = nil
	a.activeView = 0
	a.showHelp = false
}

// submit validates the form values and computes all three tiers.
func (a *App) submit() {
	in, err := a.checker.Validate(a.vals.raw())
	if err != nil {
		// The form validates each field, so this only happens if the catalog
		// or limits changed under it.
		a.err = err
		a.screen = screenError
		return
	}

	est, err := a.calc.Compute(in)
	if err != nil {
		logging.LogError(a.logger, "estimate failed", err,
			slog.String("project_type", string(in.ProjectType)),
			slog.Bool("invalid_configuration", errors.Is(err, estimate.ErrInvalidConfiguration)))
		a.err = err
		a.screen = screenError
		return
	}

	a.logger.Debug("estimate computed",
		slog.String("project_type", string(in.ProjectType)),
		slog.Float64("home_value", in.HomeValue))
	a.report = cli.BuildReport(est, a.money, "")
	a.screen = screenResults
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.KeyMsg:
		if a.screen == screenForm {
			return a.updateForm(msg)
		}
		return a.updateResults(msg)
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.screen == screenForm {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.submit()
		return a, nil
	case huh.StateAborted:
		return a, tea.Quit
	}
	return a, cmd
}

func (a App) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Reset):
		a.resetForm()
		return a, a.form.Init()
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil
	}

	if a.screen != screenResults {
		return a, nil
	}

	if key.Matches(msg, a.keys.NextView) {
		a.activeView = (a.activeView + 1) % len(components.Tabs)
		return a, nil
	}
	for i, b := range a.keys.Views {
		if key.Matches(msg, b) {
			a.activeView = i
			break
		}
	}
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) formWidth() int {
	w := a.contentWidth() - 4
	if w > 72 {
		w = 72
	}
	return w
}

// isCompactLayout reports whether tier cards should be stacked.
func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}
