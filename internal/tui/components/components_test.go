package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, total := range []int{80, 119, 180} {
		widths := LayoutRow(total, 3)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != total {
			t.Errorf("LayoutRow(%d, 3) = %v, sums to %d", total, widths, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Low", "A", 24)
	tall := AccentCard("High", "A\nB\nC\nD", theme.Active.Magenta, 24)

	joined := CardRow([]string{tall, short})
	if got, want := lipgloss.Height(joined), lipgloss.Height(tall); got != want {
		t.Fatalf("joined height = %d, want %d", got, want)
	}
	if got := lipgloss.Width(joined); got != 48 {
		t.Errorf("joined width = %d, want 48", got)
	}

	stacked := CardStack([]string{tall, short})
	if got, want := lipgloss.Height(stacked), lipgloss.Height(tall)+lipgloss.Height(short); got != want {
		t.Errorf("stacked height = %d, want %d", got, want)
	}
}

func TestRowsAlignValues(t *testing.T) {
	out := Rows([]Row{
		{Label: "Total Budget", Value: "$16,500.00", Emphasis: true},
		{Label: "ROI", Value: "90.00%"},
	}, 30)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, l := range lines {
		if w := lipgloss.Width(l); w != 30 {
			t.Errorf("line %q width = %d, want 30", l, w)
		}
	}

	// Too narrow: the value wraps under its label.
	narrow := Rows([]Row{{Label: "Updated Home Value", Value: "$314,850.00"}}, 12)
	if n := len(strings.Split(narrow, "\n")); n != 2 {
		t.Errorf("narrow rows = %d lines, want 2", n)
	}
}

func TestSavingsBarClamps(t *testing.T) {
	full := SavingsBar(20, 10, 20)
	empty := SavingsBar(5, 0, 20)
	if lipgloss.Width(full) != 20 || lipgloss.Width(empty) != 20 {
		t.Fatalf("bar widths = %d, %d; want 20", lipgloss.Width(full), lipgloss.Width(empty))
	}
	if ColorForPct(0.95) != string(theme.Active.Red) || ColorForPct(0.1) != string(theme.Active.Green) {
		t.Error("ColorForPct thresholds changed")
	}
}

func TestHBarChartScalesToPeak(t *testing.T) {
	out := HBarChart([]Bar{
		{Label: "Low", Value: 50, Text: "$50"},
		{Label: "High", Value: 100, Text: "$100"},
	}, 40)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	lowFilled := strings.Count(lines[0], "█")
	highFilled := strings.Count(lines[1], "█")
	if highFilled <= lowFilled {
		t.Errorf("high bar (%d) not longer than low bar (%d)", highFilled, lowFilled)
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Error("bar lines have different widths")
	}
}

func TestRenderTabBar_ShowsBoundKeys(t *testing.T) {
	theme.SetActive("flexoki-dark")

	bar := ansi.Strip(RenderTabBar(0))
	for _, want := range []string{"Cards", "[t]able", "[b]ars"} {
		if !strings.Contains(bar, want) {
			t.Errorf("tab bar %q missing %q", bar, want)
		}
	}
	if strings.Contains(bar, "[T]") {
		t.Errorf("tab bar %q shows an uppercase hint for a lowercase binding", bar)
	}

	bar = ansi.Strip(RenderTabBar(1))
	if !strings.Contains(bar, "[c]ards") || !strings.Contains(bar, " Table") {
		t.Errorf("tab bar with table active = %q", bar)
	}
}
