package components

import (
	"github.com/charmbracelet/bubbles/progress"

	"github.com/theirongolddev/renobudget/internal/tui/theme"
)

// ColorForPct returns green/yellow/orange/red as pct grows.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return string(t.Red)
	case pct >= 0.7:
		return string(t.Orange)
	case pct >= 0.5:
		return string(t.Yellow)
	default:
		return string(t.Green)
	}
}

// SavingsBar draws how long one tier takes to save relative to the slowest
// tier. A zero maxMonths renders an empty bar.
func SavingsBar(months, maxMonths float64, width int) string {
	t := theme.Active

	pct := 0.0
	if maxMonths > 0 {
		pct = months / maxMonths
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(pct)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	return bar.ViewAs(pct)
}
