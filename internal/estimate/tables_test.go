package estimate

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultTablesCoverCatalog(t *testing.T) {
	if gaps := DefaultTables().Gaps(Catalog); len(gaps) != 0 {
		t.Fatalf("default tables out of sync with catalog: %v", gaps)
	}
}

func TestDefaultTablesCoefficientsIncreaseByTier(t *testing.T) {
	for _, p := range Catalog {
		low := DefaultCoefficients[TierLow][p]
		mid := DefaultCoefficients[TierMiddle][p]
		high := DefaultCoefficients[TierHigh][p]
		if !(low < mid && mid < high) {
			t.Errorf("%s coefficients low=%v mid=%v high=%v not strictly increasing", p, low, mid, high)
		}
	}
}

func TestGaps_ReportsMissingEntries(t *testing.T) {
	catalog := append([]ProjectType{}, Catalog...)
	catalog = append(catalog, "Pool")

	gaps := DefaultTables().Gaps(catalog)
	// 3 tiers x 2 tables
	if len(gaps) != 6 {
		t.Fatalf("len(gaps) = %d, want 6: %v", len(gaps), gaps)
	}
	for _, g := range gaps {
		if g.Project != "Pool" {
			t.Errorf("unexpected gap %v", g)
		}
	}
	if !strings.Contains(gaps[0].String(), `"Pool"`) {
		t.Errorf("gap string %q does not name the project", gaps[0].String())
	}
}

func TestWithOverrides_CopiesAndApplies(t *testing.T) {
	base := DefaultTables()
	got, err := base.WithOverrides(Overrides{
		Coefficients: map[string]map[string]float64{"low": {"Kitchen": 0.06}},
		ROI:          map[string]map[string]float64{"high": {"Accessory Dwelling Unit": 2.5}},
	})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}

	if v, _ := got.Coefficients.Lookup(TierLow, ProjectKitchen); v != 0.06 {
		t.Errorf("overridden coefficient = %v, want 0.06", v)
	}
	if v, _ := got.ROI.Lookup(TierHigh, ProjectAccessoryDwelling); v != 2.5 {
		t.Errorf("overridden ROI = %v, want 2.5", v)
	}
	if v := DefaultCoefficients[TierLow][ProjectKitchen]; v != 0.05 {
		t.Errorf("default coefficient mutated to %v", v)
	}
	if v := DefaultROI[TierHigh][ProjectAccessoryDwelling]; v != 1.05 {
		t.Errorf("default ROI mutated to %v", v)
	}
	if v, _ := got.ROI.Lookup(TierHigh, ProjectADU); v != 1.05 {
		t.Errorf("ADU ROI = %v, want untouched 1.05", v)
	}
}

func TestOverridesValidate(t *testing.T) {
	tests := []struct {
		name    string
		o       Overrides
		wantErr string
	}{
		{"empty", Overrides{}, ""},
		{"bad tier", Overrides{Coefficients: map[string]map[string]float64{"premium": {"Kitchen": 0.1}}}, "unknown tier"},
		{"zero", Overrides{ROI: map[string]map[string]float64{"low": {"Kitchen": 0}}}, "must be positive"},
		{"negative", Overrides{ROI: map[string]map[string]float64{"low": {"Kitchen": -1}}}, "must be positive"},
		{"nan", Overrides{Coefficients: map[string]map[string]float64{"middle": {"Kitchen": math.NaN()}}}, "must be positive"},
		{"empty project", Overrides{Coefficients: map[string]map[string]float64{"middle": {"": 0.1}}}, "empty project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.o.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseTier(t *testing.T) {
	for in, want := range map[string]Tier{"low": TierLow, " Middle ": TierMiddle, "HIGH": TierHigh} {
		got, err := ParseTier(in)
		if err != nil || got != want {
			t.Errorf("ParseTier(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseTier("medium"); err == nil {
		t.Error("ParseTier(medium) succeeded, want error")
	}
	if TierMiddle.Label() != "Middle" {
		t.Errorf("Label = %q, want Middle", TierMiddle.Label())
	}
}

func TestProjects(t *testing.T) {
	got := DefaultTables().Projects()
	if len(got) != len(Catalog) {
		t.Fatalf("Projects() returned %d entries, want %d", len(got), len(Catalog))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("Projects() not sorted at %d: %q >= %q", i, got[i-1], got[i])
		}
	}
}

func TestUncataloged(t *testing.T) {
	if got := DefaultTables().Uncataloged(Catalog); len(got) != 0 {
		t.Fatalf("default tables have uncataloged entries: %v", got)
	}

	tables, err := DefaultTables().WithOverrides(Overrides{
		Coefficients: map[string]map[string]float64{"low": {"Kichen": 0.1}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got := tables.Uncataloged(Catalog)
	if len(got) != 1 || got[0] != "Kichen" {
		t.Fatalf("Uncataloged = %v, want [Kichen]", got)
	}
}

func TestCatalogHelpers(t *testing.T) {
	if !InCatalog(Catalog, ProjectADU) || InCatalog(Catalog, "Pool") {
		t.Error("InCatalog membership wrong")
	}
	if InCatalog(nil, ProjectKitchen) {
		t.Error("InCatalog(nil) reported a member")
	}
	names := CatalogNames(Catalog)
	if len(names) != len(Catalog) || names[1] != "Kitchen" {
		t.Errorf("CatalogNames = %v", names)
	}
}

func TestDefaultTablesAreCopies(t *testing.T) {
	tables := DefaultTables()
	tables.Coefficients[TierLow][ProjectKitchen] = 9
	tables.ROI[TierHigh][ProjectKitchen] = 9
	tables.Rates[TierLow] = RateConfig{}

	if v := DefaultCoefficients[TierLow][ProjectKitchen]; v != 0.05 {
		t.Errorf("default coefficient mutated to %v", v)
	}
	if v := DefaultROI[TierHigh][ProjectKitchen]; v != 1.2 {
		t.Errorf("default ROI mutated to %v", v)
	}
	if v := DefaultRates[TierLow].Contingency; v != 0.10 {
		t.Errorf("default contingency mutated to %v", v)
	}

	calc := NewCalculator(DefaultTables())
	calc.Tables().Coefficients[TierLow][ProjectKitchen] = 9
	r, err := calc.ComputeTier(300000, 90000, ProjectKitchen, TierLow)
	if err != nil {
		t.Fatal(err)
	}
	if !approxEqual(r.InitialBudget, 15000) {
		t.Errorf("InitialBudget = %v after mutating Tables(), want 15000", r.InitialBudget)
	}
}
