package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/renobudget/internal/cli"
	"github.com/theirongolddev/renobudget/internal/intake"
	"github.com/theirongolddev/renobudget/internal/tui/components"
	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	var body string
	switch a.screen {
	case screenForm:
		body = a.form.View()
	case screenError:
		body = a.viewError()
	default:
		body = a.viewResults()
	}

	out := a.viewHeader() + "\n\n" + body
	if a.screen != screenForm {
		out += "\n\n" + a.viewStatusBar()
	}
	if a.height > 0 {
		out = padHeight(truncateHeight(out, a.height), a.height)
	}
	return out
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow\n\n  renobudget needs at least %d columns.\n  Current width: %d\n",
		minTerminalWidth,
		a.width,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewHeader() string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	header := " " + logoStyle.Render("◈ renobudget")
	if !a.isCompactLayout() {
		header += subtitleStyle.Render(" · Renovation Budget Estimator")
	}
	return header
}

func (a App) viewStatusBar() string {
	return components.RenderStatusBar(a.contentWidth(), a.help.View(a.keys), "")
}

func (a App) viewError() string {
	t := theme.Active

	msg := cli.CalculationFailed
	var verr *intake.ValidationError
	if errors.As(a.err, &verr) {
		msg = strings.Join(verr.Messages(), "\n")
	}

	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("Press r to start over.")
	body := lipgloss.NewStyle().Foreground(t.TextPrimary).Render(msg) + "\n\n" + hint

	w := a.contentWidth()
	if w > 72 {
		w = 72
	}
	return components.AccentCard("Something went wrong", body, t.Red, w)
}

func (a App) viewResults() string {
	t := theme.Active
	rep := a.report

	summary := lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf(" %s · home %s · income %s/yr",
		rep.Inputs.ProjectType, a.money.Whole(rep.Inputs.HomeValue), a.money.Whole(rep.Inputs.YearlyIncome)))

	var content string
	switch a.activeView {
	case 1:
		content = cli.RenderTable(cli.EstimateTable(rep, a.money))
	case 2:
		content = a.viewBars()
	default:
		content = a.viewCards()
	}

	return summary + "\n" + components.RenderTabBar(a.activeView) + "\n\n" + content
}

// viewCards renders one card per tier: side by side on wide terminals, stacked
// otherwise.
func (a App) viewCards() string {
	t := theme.Active
	cw := a.contentWidth()

	maxMonths := 0.0
	for _, tr := range a.report.Tiers {
		maxMonths = max(maxMonths, tr.TimeToSave)
	}

	widths := components.LayoutRow(cw, len(a.report.Tiers))
	if a.isCompactLayout() {
		for i := range widths {
			widths[i] = cw
		}
	}

	cards := make([]string, 0, len(a.report.Tiers))
	for i, tr := range a.report.Tiers {
		inner := components.CardInnerWidth(widths[i])
		d := tr.Display
		body := components.Rows([]components.Row{
			{Label: "Initial Budget", Value: d.InitialBudget},
			{Label: "Contingency Fund", Value: d.ContingencyFund},
			{Label: "Total Budget", Value: d.TotalBudget, Emphasis: true},
			{Label: "Monthly Savings", Value: d.MonthlySavings},
			{Label: "Time to Save", Value: d.TimeToSave},
		}, inner)
		body += "\n" + components.SavingsBar(tr.TimeToSave, maxMonths, inner) + "\n"
		body += components.Rows([]components.Row{
			{Label: "ROI", Value: d.ROI},
			{Label: "Value Increase", Value: d.ValueIncrease},
			{Label: "Updated Home Value", Value: d.UpdatedHomeValue, Emphasis: true},
		}, inner)

		title := tr.Label + " Budget"
		cards = append(cards, components.AccentCard(title, body, t.TierColor(tr.Tier), widths[i]))
	}

	if a.isCompactLayout() {
		return components.CardStack(cards)
	}
	return components.CardRow(cards)
}

func (a App) viewBars() string {
	t := theme.Active
	cw := a.contentWidth()
	w := cw - 4

	var budget, gain []components.Bar
	for _, tr := range a.report.Tiers {
		color := t.TierColor(tr.Tier)
		budget = append(budget, components.Bar{Label: tr.Label, Value: tr.TotalBudget, Text: tr.Display.TotalBudget, Color: color})
		gain = append(gain, components.Bar{Label: tr.Label, Value: tr.ValueIncrease, Text: tr.Display.ValueIncrease, Color: color})
	}

	return components.ContentCard("Total Budget", components.HBarChart(budget, components.CardInnerWidth(cw)), cw) + "\n" +
		components.ContentCard("Value Increase", components.HBarChart(gain, components.CardInnerWidth(cw)), cw) + "\n" +
		lipgloss.NewStyle().Foreground(t.TextDim).Width(w).Render(
			"  Time to save assumes the tier's share of monthly income is set aside each month.")
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}
