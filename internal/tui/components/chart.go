package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

// Bar is one labeled horizontal bar.
type Bar struct {
	Label string
	Value float64
	Text  string // shown after the bar; defaults to the raw value
	Color lipgloss.Color
}

// HBarChart renders bars scaled to the largest value. width is the full line
// width including labels.
func HBarChart(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, textW := 0, 0
	peak := 0.0
	texts := make([]string, len(bars))
	for i, b := range bars {
		texts[i] = b.Text
		if texts[i] == "" {
			texts[i] = fmt.Sprintf("%.0f", b.Value)
		}
		labelW = max(labelW, lipgloss.Width(b.Label))
		textW = max(textW, lipgloss.Width(texts[i]))
		peak = max(peak, b.Value)
	}
	if peak <= 0 {
		peak = 1
	}

	barW := width - labelW - textW - 4
	if barW < 5 {
		barW = 5
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	lines := make([]string, len(bars))
	for i, b := range bars {
		filled := int(b.Value / peak * float64(barW))
		if filled < 0 {
			filled = 0
		}
		if filled > barW {
			filled = barW
		}
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label)) + " " +
			lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
			emptyStyle.Render(strings.Repeat("░", barW-filled)) + " " +
			textStyle.Render(fmt.Sprintf("%*s", textW, texts[i]))
	}
	return strings.Join(lines, "\n")
}
