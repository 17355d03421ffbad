// Package intake turns raw form values into validated estimate inputs.
package intake

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/theirongolddev/renobudget/internal/estimate"
	"github.com/theirongolddev/renobudget/internal/money"
)

// Field names used as keys in ValidationError.
const (
	FieldHomeValue    = "home_value"
	FieldYearlyIncome = "yearly_income"
	FieldProjectType  = "project_type"
)

// Placeholder is the value an unselected project dropdown submits.
const Placeholder = "select"

var (
	errEmpty    = errors.New("value is required")
	errNotValid = errors.New("value is not a number")
	errZero     = errors.New("value must be greater than zero")
)

// Limits are the accepted input ranges.
type Limits struct {
	MinHomeValue    float64 `toml:"min_home_value" json:"min_home_value"`
	MaxHomeValue    float64 `toml:"max_home_value" json:"max_home_value"`
	MinYearlyIncome float64 `toml:"min_yearly_income" json:"min_yearly_income"`
	MaxYearlyIncome float64 `toml:"max_yearly_income" json:"max_yearly_income"`
}

// DefaultLimits returns the reference deployment's bounds.
func DefaultLimits() Limits {
	return Limits{
		MinHomeValue:    50_000,
		MaxHomeValue:    10_000_000,
		MinYearlyIncome: 8_000,
		MaxYearlyIncome: 10_000_000,
	}
}

// Validate checks that each range is well formed.
func (l Limits) Validate() error {
	if l.MinHomeValue <= 0 || l.MaxHomeValue < l.MinHomeValue {
		return fmt.Errorf("home value limits [%v, %v] are invalid", l.MinHomeValue, l.MaxHomeValue)
	}
	if l.MinYearlyIncome <= 0 || l.MaxYearlyIncome < l.MinYearlyIncome {
		return fmt.Errorf("yearly income limits [%v, %v] are invalid", l.MinYearlyIncome, l.MaxYearlyIncome)
	}
	return nil
}

// Raw holds the unparsed values a form submits.
type Raw struct {
	HomeValue    string `json:"home_value"`
	YearlyIncome string `json:"yearly_income"`
	ProjectType  string `json:"project_type"`
}

// ValidationError collects one message per failing field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return "please check your inputs: " + strings.Join(msgs, "; ")
}

// Messages returns the field messages in form order.
func (e *ValidationError) Messages() []string {
	var out []string
	for _, k := range []string{FieldHomeValue, FieldYearlyIncome, FieldProjectType} {
		if m, ok := e.Fields[k]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Sanitize strips everything except digits and '.', so "$300,000" becomes
// "300000".
func Sanitize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount sanitizes raw and parses it. Empty, malformed and zero values
// are rejected.
func ParseAmount(raw string) (float64, error) {
	s := Sanitize(raw)
	if s == "" {
		return 0, errEmpty
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errNotValid
	}
	if v == 0 {
		return 0, errZero
	}
	return v, nil
}

// Checker validates raw inputs against limits and a project catalog.
type Checker struct {
	Limits  Limits
	Catalog []estimate.ProjectType
	Money   *money.Formatter
}

// NewChecker returns a checker using the given limits and catalog. A nil
// formatter uses en-US dollars in messages.
func NewChecker(limits Limits, catalog []estimate.ProjectType, f *money.Formatter) *Checker {
	if f == nil {
		f = money.Default()
	}
	return &Checker{Limits: limits, Catalog: catalog, Money: f}
}

// HomeValue parses and range-checks a home value.
func (c *Checker) HomeValue(raw string) (float64, error) {
	return c.amount(raw, "Home value", c.Limits.MinHomeValue, c.Limits.MaxHomeValue)
}

// YearlyIncome parses and range-checks a yearly income.
func (c *Checker) YearlyIncome(raw string) (float64, error) {
	return c.amount(raw, "Yearly income", c.Limits.MinYearlyIncome, c.Limits.MaxYearlyIncome)
}

func (c *Checker) amount(raw, label string, min, max float64) (float64, error) {
	v, err := ParseAmount(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number of at least %s", label, c.Money.Whole(min))
	}
	if v < min {
		return 0, fmt.Errorf("%s must be at least %s", label, c.Money.Whole(min))
	}
	if v > max {
		return 0, fmt.Errorf("%s must be at most %s", label, c.Money.Whole(max))
	}
	return v, nil
}

// Field messages are shown to users verbatim.

// ProjectType rejects empty and placeholder selections and anything outside
// the catalog.
func (c *Checker) ProjectType(raw string) (estimate.ProjectType, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, Placeholder) {
		return "", errors.New("Project type must be selected") //nolint:stylecheck // user-facing
	}
	p := estimate.ProjectType(s)
	if estimate.InCatalog(c.Catalog, p) {
		return p, nil
	}
	return "", errors.New("Please select a valid project type") //nolint:stylecheck // user-facing
}

// Validate checks every field and returns either validated inputs or a
// *ValidationError listing all problems.
func (c *Checker) Validate(raw Raw) (estimate.Inputs, error) {
	fields := make(map[string]string)

	home, err := c.HomeValue(raw.HomeValue)
	if err != nil {
		fields[FieldHomeValue] = err.Error()
	}
	income, err := c.YearlyIncome(raw.YearlyIncome)
	if err != nil {
		fields[FieldYearlyIncome] = err.Error()
	}
	project, err := c.ProjectType(raw.ProjectType)
	if err != nil {
		fields[FieldProjectType] = err.Error()
	}

	if len(fields) > 0 {
		return estimate.Inputs{}, &ValidationError{Fields: fields}
	}
	return estimate.Inputs{HomeValue: home, YearlyIncome: income, ProjectType: project}, nil
}
