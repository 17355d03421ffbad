// Package components provides reusable TUI widgets for the estimator.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// First items absorb the remainder from integer division.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	remainder := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < remainder {
			widths[i]++
		}
	}
	return widths
}

// Row is one label/value line inside a card.
type Row struct {
	Label    string
	Value    string
	Emphasis bool
}

// ContentCard renders a bordered content card with an optional title.
// outerWidth controls the total rendered width including border.
func ContentCard(title, body string, outerWidth int) string {
	return borderedCard(title, body, outerWidth, theme.Active.Border, theme.Active.TextMuted)
}

// AccentCard is a ContentCard whose border and title use accent.
func AccentCard(title, body string, accent lipgloss.Color, outerWidth int) string {
	return borderedCard(title, body, outerWidth, accent, accent)
}

func borderedCard(title, body string, outerWidth int, border, titleColor lipgloss.Color) string {
	contentWidth := outerWidth - 2 // subtract border chars
	if contentWidth < 10 {
		contentWidth = 10
	}

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(contentWidth).
		Padding(0, 1)

	titleStyle := lipgloss.NewStyle().
		Foreground(titleColor).
		Bold(true)

	content := ""
	if title != "" {
		content = titleStyle.Render(title) + "\n"
	}
	content += body

	return cardStyle.Render(content)
}

// Rows renders label/value pairs with values right-aligned to innerWidth.
func Rows(rows []Row, innerWidth int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	strongStyle := valueStyle.Bold(true)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		vs := valueStyle
		if r.Emphasis {
			vs = strongStyle
		}
		gap := innerWidth - lipgloss.Width(r.Label) - lipgloss.Width(r.Value)
		if gap < 1 {
			// Not enough room; put the value under its label.
			lines = append(lines, labelStyle.Render(r.Label), vs.Render(r.Value))
			continue
		}
		lines = append(lines, labelStyle.Render(r.Label)+strings.Repeat(" ", gap)+vs.Render(r.Value))
	}
	return strings.Join(lines, "\n")
}

// CardRow joins pre-rendered card strings horizontally.
func CardRow(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// CardStack joins pre-rendered card strings vertically.
func CardStack(cards []string) string {
	return strings.Join(cards, "\n")
}

// CardInnerWidth returns the usable text width inside a ContentCard
// given its outer width (subtracts border + padding).
func CardInnerWidth(outerWidth int) int {
	w := outerWidth - 4 // 2 border + 2 padding
	if w < 10 {
		w = 10
	}
	return w
}
