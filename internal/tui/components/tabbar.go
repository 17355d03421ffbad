package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

// Tab represents a single results view.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines the result views in display order.
var Tabs = []Tab{
	{Name: "Cards", Key: 'c', KeyPos: 0},
	{Name: "Table", Key: 't', KeyPos: 0},
	{Name: "Bars", Key: 'b', KeyPos: 0},
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		Underline(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Key)
			after := tab.Name[tab.KeyPos+1:]
			parts = append(parts, inactiveStyle.Render(before)+
				dimKeyStyle.Render("[")+keyStyle.Render(key)+dimKeyStyle.Render("]")+
				inactiveStyle.Render(after))
			continue
		}
		parts = append(parts, inactiveStyle.Render(tab.Name)+
			dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimKeyStyle.Render("]"))
	}

	return " " + strings.Join(parts, "  ")
}
