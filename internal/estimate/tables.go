package estimate

import (
	"fmt"
	"math"
	"sort"
)

// Table maps tier -> project type -> coefficient.
type Table map[Tier]map[ProjectType]float64

// Tables bundles everything the calculator looks up. A Tables value is never
// mutated after construction; WithOverrides returns a copy.
type Tables struct {
	Rates        map[Tier]RateConfig
	Coefficients Table
	ROI          Table
}

// DefaultRates are the contingency and monthly savings rates per tier.
var DefaultRates = map[Tier]RateConfig{
	TierLow:    {Contingency: 0.10, MonthlySavingsRate: 0.20},
	TierMiddle: {Contingency: 0.15, MonthlySavingsRate: 0.25},
	TierHigh:   {Contingency: 0.25, MonthlySavingsRate: 0.30},
}

// DefaultCoefficients is the share of home value allocated to each project.
var DefaultCoefficients = Table{
	TierLow: {
		ProjectBathroom:          0.025,
		ProjectKitchen:           0.05,
		ProjectRoof:              0.02,
		ProjectWindows:           0.015,
		ProjectGarageDoor:        0.01,
		ProjectDeck:              0.02,
		ProjectAtticInsulation:   0.005,
		ProjectSiding:            0.02,
		ProjectRoomAddition:      0.1,
		ProjectAccessoryDwelling: 0.15,
		ProjectADU:               0.15,
		ProjectLandscaping:       0.05,
		ProjectSolar:             0.05,
	},
	TierMiddle: {
		ProjectBathroom:          0.0625,
		ProjectKitchen:           0.1,
		ProjectRoof:              0.035,
		ProjectWindows:           0.0325,
		ProjectGarageDoor:        0.015,
		ProjectDeck:              0.04,
		ProjectAtticInsulation:   0.0075,
		ProjectSiding:            0.045,
		ProjectRoomAddition:      0.15,
		ProjectAccessoryDwelling: 0.225,
		ProjectADU:               0.225,
		ProjectLandscaping:       0.075,
		ProjectSolar:             0.075,
	},
	TierHigh: {
		ProjectBathroom:          0.1,
		ProjectKitchen:           0.15,
		ProjectRoof:              0.05,
		ProjectWindows:           0.05,
		ProjectGarageDoor:        0.02,
		ProjectDeck:              0.06,
		ProjectAtticInsulation:   0.01,
		ProjectSiding:            0.07,
		ProjectRoomAddition:      0.2,
		ProjectAccessoryDwelling: 0.3,
		ProjectADU:               0.3,
		ProjectLandscaping:       0.1,
		ProjectSolar:             0.1,
	},
}

// DefaultROI is the home value gain per dollar of total budget.
var DefaultROI = Table{
	TierLow: {
		ProjectKitchen:           0.9,
		ProjectBathroom:          0.8,
		ProjectRoof:              0.75,
		ProjectWindows:           0.8,
		ProjectGarageDoor:        0.95,
		ProjectDeck:              0.8,
		ProjectAtticInsulation:   0.85,
		ProjectSiding:            0.8,
		ProjectRoomAddition:      0.65,
		ProjectAccessoryDwelling: 1.05,
		ProjectADU:               1.05,
		ProjectLandscaping:       0.85,
		ProjectSolar:             0.85,
	},
	TierMiddle: {
		ProjectKitchen:           1.05,
		ProjectBathroom:          0.9,
		ProjectRoof:              0.83,
		ProjectWindows:           0.85,
		ProjectGarageDoor:        1.1,
		ProjectDeck:              0.87,
		ProjectAtticInsulation:   0.92,
		ProjectSiding:            0.9,
		ProjectRoomAddition:      0.75,
		ProjectAccessoryDwelling: 1.05,
		ProjectADU:               1.05,
		ProjectLandscaping:       0.85,
		ProjectSolar:             0.85,
	},
	TierHigh: {
		ProjectKitchen:           1.2,
		ProjectBathroom:          1,
		ProjectRoof:              0.9,
		ProjectWindows:           0.95,
		ProjectGarageDoor:        1.2,
		ProjectDeck:              0.9,
		ProjectAtticInsulation:   1,
		ProjectSiding:            0.9,
		ProjectRoomAddition:      0.75,
		ProjectAccessoryDwelling: 1.05,
		ProjectADU:               1.05,
		ProjectLandscaping:       0.85,
		ProjectSolar:             0.85,
	},
}

// DefaultTables returns a copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Rates:        DefaultRates,
		Coefficients: DefaultCoefficients,
		ROI:          DefaultROI,
	}.clone()
}

// Overrides replaces individual table entries. Keys are tier names.
type Overrides struct {
	Coefficients map[string]map[string]float64 `toml:"coefficients,omitempty"`
	ROI          map[string]map[string]float64 `toml:"roi,omitempty"`
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return len(o.Coefficients) == 0 && len(o.ROI) == 0
}

// Validate checks tier names and values.
func (o Overrides) Validate() error {
	check := func(table string, m map[string]map[string]float64) error {
		for tierName, entries := range m {
			if !Tier(tierName).Valid() {
				return fmt.Errorf("%s override: unknown tier %q", table, tierName)
			}
			for project, v := range entries {
				if project == "" {
					return fmt.Errorf("%s override for %s: empty project type", table, tierName)
				}
				if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
					return fmt.Errorf("%s override for %s/%s: value must be positive, got %v",
						table, tierName, project, v)
				}
			}
		}
		return nil
	}
	if err := check("coefficient", o.Coefficients); err != nil {
		return err
	}
	return check("roi", o.ROI)
}

// WithOverrides returns a copy of t with the overrides applied. The receiver is
// left untouched.
func (t Tables) WithOverrides(o Overrides) (Tables, error) {
	if err := o.Validate(); err != nil {
		return Tables{}, err
	}
	out := t.clone()
	out.Coefficients.apply(o.Coefficients)
	out.ROI.apply(o.ROI)
	return out, nil
}

func (t Tables) clone() Tables {
	rates := make(map[Tier]RateConfig, len(t.Rates))
	for k, v := range t.Rates {
		rates[k] = v
	}
	return Tables{
		Rates:        rates,
		Coefficients: t.Coefficients.clone(),
		ROI:          t.ROI.clone(),
	}
}

func (tb Table) clone() Table {
	out := make(Table, len(tb))
	for tier, entries := range tb {
		m := make(map[ProjectType]float64, len(entries))
		for p, v := range entries {
			m[p] = v
		}
		out[tier] = m
	}
	return out
}

func (tb Table) apply(o map[string]map[string]float64) {
	for tierName, entries := range o {
		tier := Tier(tierName)
		if tb[tier] == nil {
			tb[tier] = make(map[ProjectType]float64, len(entries))
		}
		for p, v := range entries {
			tb[tier][ProjectType(p)] = v
		}
	}
}

// Lookup returns the entry for (tier, project) and whether it exists.
func (tb Table) Lookup(tier Tier, project ProjectType) (float64, bool) {
	entries, ok := tb[tier]
	if !ok {
		return 0, false
	}
	v, ok := entries[project]
	return v, ok
}

// Gap describes a catalog entry missing from a table.
type Gap struct {
	Table   string      `json:"table" yaml:"table"`
	Tier    Tier        `json:"tier" yaml:"tier"`
	Project ProjectType `json:"project" yaml:"project"`
}

func (g Gap) String() string {
	if g.Project == "" {
		return fmt.Sprintf("%s table has no %s entry", g.Table, g.Tier)
	}
	return fmt.Sprintf("%s table has no %s entry for %q", g.Table, g.Tier, g.Project)
}

// Gaps lists every (table, tier, project) combination from catalog that a
// calculation would fail on. A nil result means the catalog and tables agree.
func (t Tables) Gaps(catalog []ProjectType) []Gap {
	var gaps []Gap
	for _, tier := range Tiers {
		if _, ok := t.Rates[tier]; !ok {
			gaps = append(gaps, Gap{Table: TableRates, Tier: tier})
		}
		for _, p := range catalog {
			if _, ok := t.Coefficients.Lookup(tier, p); !ok {
				gaps = append(gaps, Gap{Table: TableCoefficient, Tier: tier, Project: p})
			}
			if _, ok := t.ROI.Lookup(tier, p); !ok {
				gaps = append(gaps, Gap{Table: TableROI, Tier: tier, Project: p})
			}
		}
	}
	return gaps
}

// Projects returns every project type present in either table, sorted.
func (t Tables) Projects() []ProjectType {
	seen := make(map[ProjectType]struct{})
	for _, tb := range []Table{t.Coefficients, t.ROI} {
		for _, entries := range tb {
			for p := range entries {
				seen[p] = struct{}{}
			}
		}
	}
	out := make([]ProjectType, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Uncataloged returns table entries that catalog does not offer, typically
// misspelled override keys. Such entries can never be selected.
func (t Tables) Uncataloged(catalog []ProjectType) []ProjectType {
	var out []ProjectType
	for _, p := range t.Projects() {
		if !InCatalog(catalog, p) {
			out = append(out, p)
		}
	}
	return out
}
