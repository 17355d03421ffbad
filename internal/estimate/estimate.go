package estimate

// Inputs are the validated values a caller passes to the calculator.
type Inputs struct {
	HomeValue    float64     `json:"home_value" yaml:"home_value"`
	YearlyIncome float64     `json:"yearly_income" yaml:"yearly_income"`
	ProjectType  ProjectType `json:"project_type" yaml:"project_type"`
}

// TierResult is the projection for one tier. Amounts are unrounded; callers
// round for display.
type TierResult struct {
	Tier             Tier        `json:"tier" yaml:"tier"`
	ProjectType      ProjectType `json:"project_type" yaml:"project_type"`
	InitialBudget    float64     `json:"initial_budget" yaml:"initial_budget"`
	ContingencyFund  float64     `json:"contingency_fund" yaml:"contingency_fund"`
	TotalBudget      float64     `json:"total_budget" yaml:"total_budget"`
	MonthlySavings   float64     `json:"monthly_savings" yaml:"monthly_savings"`
	TimeToSave       float64     `json:"time_to_save_months" yaml:"time_to_save_months"`
	ROI              float64     `json:"roi_percent" yaml:"roi_percent"`
	ValueIncrease    float64     `json:"value_increase" yaml:"value_increase"`
	UpdatedHomeValue float64     `json:"updated_home_value" yaml:"updated_home_value"`
}

// Estimate holds one result per tier, indexed in Tiers order.
type Estimate struct {
	Inputs Inputs        `json:"inputs" yaml:"inputs"`
	Tiers  [3]TierResult `json:"tiers" yaml:"tiers"`
}

// For returns the result for tier t.
func (e Estimate) For(t Tier) (TierResult, bool) {
	i := t.Index()
	if i < 0 {
		return TierResult{}, false
	}
	return e.Tiers[i], true
}

// Calculator runs the tier pipeline against a fixed set of tables.
type Calculator struct {
	tables Tables
}

// NewCalculator returns a calculator bound to a private copy of tables.
func NewCalculator(tables Tables) *Calculator {
	return &Calculator{tables: tables.clone()}
}

// Tables returns a copy of the tables the calculator was built with.
func (c *Calculator) Tables() Tables {
	return c.tables.clone()
}

// ComputeTier projects one tier. It returns a *LookupError (matching
// ErrInvalidConfiguration) when tier or projectType is missing from a table.
// Input ranges are not checked here.
func (c *Calculator) ComputeTier(homeValue, yearlyIncome float64, projectType ProjectType, tier Tier) (TierResult, error) {
	rates, ok := c.tables.Rates[tier]
	if !ok {
		return TierResult{}, &LookupError{Table: TableRates, Tier: tier}
	}
	coefficient, ok := c.tables.Coefficients.Lookup(tier, projectType)
	if !ok {
		return TierResult{}, &LookupError{Table: TableCoefficient, Tier: tier, Project: projectType}
	}
	roiCoefficient, ok := c.tables.ROI.Lookup(tier, projectType)
	if !ok {
		return TierResult{}, &LookupError{Table: TableROI, Tier: tier, Project: projectType}
	}

	initialBudget := homeValue * coefficient
	contingencyFund := initialBudget * rates.Contingency
	totalBudget := initialBudget + contingencyFund

	monthlyIncome := yearlyIncome / 12
	monthlySavings := monthlyIncome * rates.MonthlySavingsRate
	timeToSave := totalBudget / monthlySavings

	// The ROI coefficient is the gain per dollar of total budget.
	valueIncrease := totalBudget * roiCoefficient

	return TierResult{
		Tier:             tier,
		ProjectType:      projectType,
		InitialBudget:    initialBudget,
		ContingencyFund:  contingencyFund,
		TotalBudget:      totalBudget,
		MonthlySavings:   monthlySavings,
		TimeToSave:       timeToSave,
		ROI:              roiCoefficient * 100,
		ValueIncrease:    valueIncrease,
		UpdatedHomeValue: homeValue + valueIncrease,
	}, nil
}

// Compute projects all three tiers. Either every tier succeeds or the first
// error is returned with a zero Estimate.
func (c *Calculator) Compute(in Inputs) (Estimate, error) {
	est := Estimate{Inputs: in}
	for i, tier := range Tiers {
		r, err := c.ComputeTier(in.HomeValue, in.YearlyIncome, in.ProjectType, tier)
		if err != nil {
			return Estimate{}, err
		}
		est.Tiers[i] = r
	}
	return est, nil
}

var defaultCalculator = NewCalculator(DefaultTables())

// ComputeTier projects one tier using the built-in tables.
func ComputeTier(homeValue, yearlyIncome float64, projectType ProjectType, tier Tier) (TierResult, error) {
	return defaultCalculator.ComputeTier(homeValue, yearlyIncome, projectType, tier)
}

// Compute projects all three tiers using the built-in tables.
func Compute(in Inputs) (Estimate, error) {
	return defaultCalculator.Compute(in)
}
