package simulation

import (
	"resilience-platform/internal/models"
)

// solarCapacityFactor derates installed capacity to usable daily output.
const solarCapacityFactor = 0.25

// ProjectEnergy runs the energy scenario over every region and day in the
// range. Demand and solar output compound with their growth rates and swing
// with the seasonal cycle; solar is capped by installed capacity; grid
// supply covers any remainder.
func ProjectEnergy(regions []models.Region, sc models.EnergyScenario) (*models.SimulationRun, error) {
	if err := sc.DateRange.Validate(); err != nil {
		return nil, err
	}

	for i := range regions {
		if !regions[i].HasEnergyBaseline() {
			return nil, &models.InvalidScenarioError{
				RegionID:       regions[i].ID,
				SimulationType: models.SimulationEnergy,
				Missing:        "energy",
			}
		}
	}

	perRegion, err := projectAll(regions, func(region models.Region) ([]models.DailyResult, error) {
		return projectEnergyRegion(region, sc), nil
	})
	if err != nil {
		return nil, err
	}

	return assembleRun(models.SimulationEnergy, regions, sc.DateRange, perRegion), nil
}

func projectEnergyRegion(region models.Region, sc models.EnergyScenario) []models.DailyResult {
	baseDemand := *region.Baseline.EnergyDemandKWh
	baseSolar := *region.Baseline.SolarGenerationKWh
	solarCap := *region.Baseline.InstalledCapacityMW * 24 * solarCapacityFactor

	days := sc.Days()
	results := make([]models.DailyResult, 0, days)

	for d := 0; d < days; d++ {
		date := sc.StartDate.AddDate(0, 0, d)
		years := float64(d) / daysPerYear
		seasonal := seasonalMultiplier(date)

		demand := baseDemand * compound(sc.DemandGrowthPct, years) * seasonal

		solar := baseSolar * compound(sc.SolarGrowthPct, years) * seasonal
		if solar > solarCap {
			solar = solarCap
		}

		grid := demand - solar
		if grid < 0 {
			grid = 0
		}

		stress := 0.0
		if demand > 0 {
			stress = clampStress((demand - (solar + grid)) / demand)
		}

		results = append(results, models.DailyResult{
			Date:      date,
			RegionID:  region.ID,
			DemandKWh: ptr(demand),
			SupplyKWh: ptr(solar),
			GridKWh:   ptr(grid),
			Stress:    stress,
		})
	}

	return results
}
