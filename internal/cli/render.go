// Package cli renders estimates and the project catalog for terminal output.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#403E3C")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#878580")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table is a bordered text table. The first column is left-aligned, the rest
// right-aligned. A row consisting of the single cell "---" draws a separator.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderNote renders a muted one-line note.
func RenderNote(s string) string {
	return "  " + mutedStyle.Render(s)
}

// RenderWarning renders an orange warning line.
func RenderWarning(s string) string {
	return "  " + warnStyle.Render("! "+s)
}

// RenderError renders a red error line.
func RenderError(s string) string {
	return "  " + errorStyle.Render(s)
}

func (t Table) widths() []int {
	n := len(t.Headers)
	if n == 0 && len(t.Rows) > 0 {
		n = len(t.Rows[0])
	}
	widths := make([]int, n)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < n && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	return widths
}

func rule(widths []int, left, mid, right string) string {
	segs := make([]string, len(widths))
	for i, w := range widths {
		segs[i] = strings.Repeat("─", w+2)
	}
	return dimStyle.Render(left+strings.Join(segs, mid)+right) + "\n"
}

func line(widths []int, cells []string, style lipgloss.Style, alignFirstOnly bool) string {
	var b strings.Builder
	sep := dimStyle.Render("│")
	b.WriteString(sep)
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		var padded string
		if i == 0 || alignFirstOnly {
			padded = fmt.Sprintf(" %-*s ", w, cell)
		} else {
			padded = fmt.Sprintf(" %*s ", w, cell)
		}
		b.WriteString(style.Render(padded))
		b.WriteString(sep)
	}
	b.WriteString("\n")
	return b.String()
}

// RenderTable renders t with rounded box-drawing borders.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	widths := t.widths()

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule(widths, "╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(widths, t.Headers, headerStyle, true))
		b.WriteString(rule(widths, "├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule(widths, "├", "┼", "┤"))
			continue
		}
		b.WriteString(line(widths, row, valueStyle, false))
	}
	b.WriteString(rule(widths, "╰", "┴", "╯"))

	return b.String()
}
