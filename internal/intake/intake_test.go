package intake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/renobudget/internal/estimate"
)

func newTestChecker() *Checker {
	return NewChecker(DefaultLimits(), estimate.Catalog, nil)
}

func TestSanitize(t *testing.T) {
	tests := map[string]string{
		"$300,000":    "300000",
		" 90000.50 ":  "90000.50",
		"1.2.3":       "1.2.3",
		"abc":         "",
		"-5000":       "5000",
		"1e6":         "16",
		"300 000 USD": "300000",
	}
	for in, want := range tests {
		assert.Equal(t, want, Sanitize(in), "Sanitize(%q)", in)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{name: "plain", raw: "300000", want: 300000},
		{name: "currency formatted", raw: "$1,250,000.75", want: 1250000.75},
		{name: "empty", raw: "", wantErr: true},
		{name: "letters only", raw: "lots", wantErr: true},
		{name: "two decimal points", raw: "1.2.3", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckerHomeValueBounds(t *testing.T) {
	c := newTestChecker()

	v, err := c.HomeValue("50000")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, v)

	_, err = c.HomeValue("49999")
	require.Error(t, err)
	assert.Equal(t, "Home value must be at least $50,000", err.Error())

	_, err = c.HomeValue("10000001")
	require.Error(t, err)
	assert.Equal(t, "Home value must be at most $10,000,000", err.Error())

	_, err = c.HomeValue("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least $50,000")
}

func TestCheckerYearlyIncomeBounds(t *testing.T) {
	c := newTestChecker()

	_, err := c.YearlyIncome("7999")
	require.Error(t, err)
	assert.Equal(t, "Yearly income must be at least $8,000", err.Error())

	v, err := c.YearlyIncome("$10,000,000")
	require.NoError(t, err)
	assert.Equal(t, 10_000_000.0, v)
}

func TestCheckerProjectType(t *testing.T) {
	c := newTestChecker()

	tests := []struct {
		raw     string
		want    estimate.ProjectType
		wantErr string
	}{
		{raw: "Kitchen", want: estimate.ProjectKitchen},
		{raw: " ADU ", want: estimate.ProjectADU},
		{raw: "", wantErr: "Project type must be selected"},
		{raw: "select", wantErr: "Project type must be selected"},
		{raw: "Select", wantErr: "Project type must be selected"},
		{raw: "Swimming Pool", wantErr: "Please select a valid project type"},
		{raw: "kitchen", wantErr: "Please select a valid project type"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := c.ProjectType(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	c := newTestChecker()

	in, err := c.Validate(Raw{HomeValue: "$300,000", YearlyIncome: "90000", ProjectType: "Kitchen"})
	require.NoError(t, err)
	assert.Equal(t, estimate.Inputs{HomeValue: 300000, YearlyIncome: 90000, ProjectType: estimate.ProjectKitchen}, in)

	_, err = c.Validate(Raw{HomeValue: "1000", YearlyIncome: "", ProjectType: "select"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %T", err)
	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, []string{
		"Home value must be at least $50,000",
		"Yearly income must be a number of at least $8,000",
		"Project type must be selected",
	}, verr.Messages())
	assert.Contains(t, verr.Error(), "please check your inputs")
}

func TestLimitsValidate(t *testing.T) {
	assert.NoError(t, DefaultLimits().Validate())

	l := DefaultLimits()
	l.MaxHomeValue = 10
	assert.Error(t, l.Validate())

	l = DefaultLimits()
	l.MinYearlyIncome = 0
	assert.Error(t, l.Validate())
}
