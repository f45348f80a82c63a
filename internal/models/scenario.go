package models

import "time"

// Scenario parameters arrive validated from the request layer; the engine
// re-checks only the date-range invariants before running.

// maxScenarioDays caps a projection at five years.
const maxScenarioDays = 5 * 365 + 1

// DateRange is the half-open projection window [StartDate, EndDate).
type DateRange struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Days returns the number of simulated days in the range.
func (r DateRange) Days() int {
	return int(r.EndDate.Sub(r.StartDate).Hours() / 24)
}

// Validate performs the engine's defensive re-check: end after start, span
// at most five years.
func (r DateRange) Validate() error {
	if !r.EndDate.After(r.StartDate) {
		return &InvalidRangeError{
			Field:   "date_range",
			Message: "end_date must be after start_date",
		}
	}
	if r.Days() > maxScenarioDays {
		return &InvalidRangeError{
			Field:   "date_range",
			Message: "range must not exceed 5 years",
		}
	}
	return nil
}

// EnergyScenario parameterizes an energy projection. Rates are percentages.
type EnergyScenario struct {
	DateRange
	SolarGrowthPct  float64 `json:"solar_growth_pct"`
	DemandGrowthPct float64 `json:"demand_growth_pct"`
}

// WaterScenario parameterizes a water projection. Rates are percentages.
type WaterScenario struct {
	DateRange
	RainfallChangePct   float64 `json:"rainfall_change_pct"`
	ConservationRatePct float64 `json:"conservation_rate_pct"`
	DemandGrowthPct     float64 `json:"demand_growth_pct"`
}

// AgricultureScenario parameterizes an agriculture projection. Rates are
// percentages except TemperatureChangeC, which is degrees Celsius.
type AgricultureScenario struct {
	DateRange
	RainfallChangePct        float64  `json:"rainfall_change_pct"`
	TemperatureChangeC       float64  `json:"temperature_change_c"`
	IrrigationImprovementPct float64  `json:"irrigation_improvement_pct"`
	Crop                     CropType `json:"crop_type"`
}

// Validate re-checks the range and the crop selector.
func (s AgricultureScenario) Validate() error {
	if err := s.DateRange.Validate(); err != nil {
		return err
	}
	_, err := ParseCropType(string(s.Crop))
	return err
}
