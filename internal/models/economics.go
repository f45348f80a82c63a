package models

// RegionImpact is one region's input to the economic impact calculator:
// its name, population, and the average stress level a projection run
// assigned it. A zero population is auto-filled from the reference tables.
type RegionImpact struct {
	Region      string  `json:"region"`
	Population  int     `json:"population"`
	StressLevel float64 `json:"stress_level"`
}

// EconomicAnalysis is the investment/ROI report for one impact request.
// Money and month fields are rounded to integers; ROI5Year is a percentage
// rounded to one decimal. PaybackPeriodMonths is +Inf when annual savings
// are zero and serializes as null in that case. Computed synchronously per
// request and never mutated after return.
type EconomicAnalysis struct {
	InfrastructureInvestmentUSD float64       `json:"infrastructure_investment_usd" db:"infrastructure_investment_usd"`
	AnnualSavingsUSD            float64       `json:"annual_savings_usd" db:"annual_savings_usd"`
	AnnualCostsPreventedUSD     float64       `json:"annual_costs_prevented_usd" db:"annual_costs_prevented_usd"`
	ROI5Year                    float64       `json:"roi_5_year" db:"roi_5_year"`
	PaybackPeriodMonths         NullableFloat `json:"payback_period_months" db:"payback_period_months"`
	NetPresentValueUSD          float64       `json:"net_present_value_usd" db:"net_present_value_usd"`
	OpportunityCost6MoDelayUSD  float64       `json:"opportunity_cost_6mo_delay_usd" db:"opportunity_cost_6mo_delay_usd"`
	TotalEconomicExposureUSD    float64       `json:"total_economic_exposure_usd" db:"total_economic_exposure_usd"`
	CostOfInaction5YearUSD      float64       `json:"cost_of_inaction_5_year_usd" db:"cost_of_inaction_5_year_usd"`
}
