package simulation

import (
	"resilience-platform/internal/models"
)

// ProjectWater runs the water scenario over every region and day in the
// range. Demand compounds with its growth rate and is reduced by the flat
// conservation rate; supply scales with the rainfall change and the seasonal
// cycle. A day whose stress exceeds the critical threshold is a shortage
// day.
func ProjectWater(regions []models.Region, sc models.WaterScenario) (*models.SimulationRun, error) {
	if err := sc.DateRange.Validate(); err != nil {
		return nil, err
	}

	for i := range regions {
		if !regions[i].HasWaterBaseline() {
			return nil, &models.InvalidScenarioError{
				RegionID:       regions[i].ID,
				SimulationType: models.SimulationWater,
				Missing:        "water",
			}
		}
	}

	perRegion, err := projectAll(regions, func(region models.Region) ([]models.DailyResult, error) {
		return projectWaterRegion(region, sc), nil
	})
	if err != nil {
		return nil, err
	}

	return assembleRun(models.SimulationWater, regions, sc.DateRange, perRegion), nil
}

func projectWaterRegion(region models.Region, sc models.WaterScenario) []models.DailyResult {
	baseDemand := *region.Baseline.WaterDemandM3
	baseSupply := *region.Baseline.WaterSupplyM3

	conservation := 1 - sc.ConservationRatePct/100
	rainfall := 1 + sc.RainfallChangePct/100

	days := sc.Days()
	results := make([]models.DailyResult, 0, days)

	for d := 0; d < days; d++ {
		date := sc.StartDate.AddDate(0, 0, d)
		years := float64(d) / daysPerYear

		demand := baseDemand * compound(sc.DemandGrowthPct, years) * conservation
		supply := baseSupply * rainfall * seasonalMultiplier(date)

		stress := 0.0
		if demand > 0 {
			stress = clampStress((demand - supply) / demand)
		}

		results = append(results, models.DailyResult{
			Date:          date,
			RegionID:      region.ID,
			WaterDemandM3: ptr(demand),
			WaterSupplyM3: ptr(supply),
			Stress:        stress,
		})
	}

	return results
}
