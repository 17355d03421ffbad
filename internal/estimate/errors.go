package estimate

import (
	"errors"
	"fmt"
)

// Table names used in LookupError and Gap.
const (
	TableRates       = "rates"
	TableCoefficient = "coefficient"
	TableROI         = "roi"
)

// ErrInvalidConfiguration is returned when a (tier, project type) pair has no
// entry in one of the lookup tables.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// LookupError records which lookup failed. It matches ErrInvalidConfiguration
// under errors.Is.
type LookupError struct {
	Table   string
	Tier    Tier
	Project ProjectType
}

func (e *LookupError) Error() string {
	if e.Project == "" {
		return fmt.Sprintf("%v: no %s rates for tier %q", ErrInvalidConfiguration, e.Table, e.Tier)
	}
	return fmt.Sprintf("%v: no %s entry for tier %q, project %q",
		ErrInvalidConfiguration, e.Table, e.Tier, e.Project)
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *LookupError) Unwrap() error {
	return ErrInvalidConfiguration
}
