package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

// RenderStatusBar renders the bottom bar with left and right aligned text.
func RenderStatusBar(width int, left, right string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return style.Render(" " + left + strings.Repeat(" ", padding) + right + " ")
}
