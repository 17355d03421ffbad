// Package estimate computes low/middle/high renovation budget projections from
// static coefficient tables.
package estimate

import (
	"fmt"
	"strings"
)

// Tier is a budgeting scenario. Tiers are ordered by increasing scope.
type Tier string

const (
	TierLow    Tier = "low"
	TierMiddle Tier = "middle"
	TierHigh   Tier = "high"
)

// Tiers lists every tier in ascending order.
var Tiers = [3]Tier{TierLow, TierMiddle, TierHigh}

// Index returns the tier's position in Tiers, or -1 if the tier is unknown.
func (t Tier) Index() int {
	for i, tt := range Tiers {
		if tt == t {
			return i
		}
	}
	return -1
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	return t.Index() >= 0
}

// Label returns the capitalized display name ("Low", "Middle", "High").
func (t Tier) Label() string {
	s := string(t)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseTier converts a case-insensitive tier name.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown tier %q (want low, middle or high)", s)
	}
	return t, nil
}

// RateConfig holds the per-tier contingency and savings rates.
type RateConfig struct {
	Contingency        float64 `json:"contingency" yaml:"contingency"`
	MonthlySavingsRate float64 `json:"monthly_savings_rate" yaml:"monthly_savings_rate"`
}
