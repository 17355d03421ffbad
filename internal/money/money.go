// Package money formats estimate amounts for display.
package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale and DefaultSymbol reproduce en-US dollar formatting.
const (
	DefaultLocale = "en-US"
	DefaultSymbol = "$"
)

// Formatter renders amounts with locale-specific grouping and decimal
// separators. The zero value is not usable; call NewFormatter.
type Formatter struct {
	locale  language.Tag
	symbol  string
	printer *message.Printer
}

// NewFormatter parses locale as a BCP-47 tag. An empty locale or symbol falls
// back to the defaults.
func NewFormatter(locale, symbol string) (*Formatter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	if symbol == "" {
		symbol = DefaultSymbol
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{
		locale:  tag,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}, nil
}

// Default returns the en-US dollar formatter.
func Default() *Formatter {
	f, _ := NewFormatter(DefaultLocale, DefaultSymbol)
	return f
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Currency formats v with two decimals, e.g. 314850 -> "$314,850.00".
func (f *Formatter) Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	rounded := RoundCents(v)
	if rounded < 0 {
		return "-" + f.symbol + f.printer.Sprintf("%.2f", -rounded)
	}
	return f.symbol + f.printer.Sprintf("%.2f", rounded)
}

// Whole formats v as a currency amount without cents, e.g. "$50,000".
func (f *Formatter) Whole(v float64) string {
	return f.symbol + f.printer.Sprintf("%d", decimal.NewFromFloat(v).Round(0).IntPart())
}

// Percent formats an already-scaled percentage with two decimals ("90.00%").
func (f *Formatter) Percent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "n/a"
	}
	return f.printer.Sprintf("%.2f", RoundCents(pct)) + "%"
}

// Months rounds a duration in months to the nearest whole month.
func Months(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return decimal.NewFromFloat(v).Round(0).IntPart()
}

// Months formats a month count, e.g. 10.96 -> "11 months".
func (f *Formatter) Months(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	n := Months(v)
	if n == 1 {
		return "1 month"
	}
	return f.printer.Sprintf("%d months", n)
}
