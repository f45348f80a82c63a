package simulation

import (
	"resilience-platform/internal/models"
)

// Yield sensitivity coefficients. Rainfall elasticity: a 1% rainfall change
// moves yield 0.4%. Warming penalty: each degree Celsius costs 6% of yield.
// Irrigation recovers up to half of its improvement percentage.
const (
	rainfallYieldElasticity = 0.4
	warmingYieldPenaltyPerC = 0.06
	irrigationRecoveryShare = 0.5
)

// climateFactor combines rainfall and temperature effects into a single
// yield multiplier, floored at zero.
func climateFactor(rainfallChangePct, temperatureChangeC float64) float64 {
	f := (1 + rainfallChangePct/100*rainfallYieldElasticity) *
		(1 - temperatureChangeC*warmingYieldPenaltyPerC)
	if f < 0 {
		return 0
	}
	return f
}

// irrigationMitigation converts an irrigation improvement percentage into a
// yield multiplier.
func irrigationMitigation(improvementPct float64) float64 {
	return 1 + improvementPct/100*irrigationRecoveryShare
}

// ProjectAgriculture runs the agriculture scenario over every region and day
// in the range. Yield is the baseline scaled by the climate factor, the
// irrigation mitigation, and the seasonal cycle; stress is the fraction of
// baseline yield lost.
func ProjectAgriculture(regions []models.Region, sc models.AgricultureScenario) (*models.SimulationRun, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	for i := range regions {
		if !regions[i].HasAgricultureBaseline() {
			return nil, &models.InvalidScenarioError{
				RegionID:       regions[i].ID,
				SimulationType: models.SimulationAgriculture,
				Missing:        "agriculture",
			}
		}
	}

	perRegion, err := projectAll(regions, func(region models.Region) ([]models.DailyResult, error) {
		return projectAgricultureRegion(region, sc), nil
	})
	if err != nil {
		return nil, err
	}

	return assembleRun(models.SimulationAgriculture, regions, sc.DateRange, perRegion), nil
}

func projectAgricultureRegion(region models.Region, sc models.AgricultureScenario) []models.DailyResult {
	baseline := *region.Baseline.CropYieldKg

	climate := climateFactor(sc.RainfallChangePct, sc.TemperatureChangeC)
	irrigation := irrigationMitigation(sc.IrrigationImprovementPct)

	days := sc.Days()
	results := make([]models.DailyResult, 0, days)

	for d := 0; d < days; d++ {
		date := sc.StartDate.AddDate(0, 0, d)

		yield := baseline * climate * irrigation * seasonalMultiplier(date)

		stress := 0.0
		change := 0.0
		if baseline > 0 {
			stress = clampStress(1 - yield/baseline)
			change = (yield - baseline) / baseline * 100
		}

		results = append(results, models.DailyResult{
			Date:           date,
			RegionID:       region.ID,
			YieldKg:        ptr(yield),
			YieldChangePct: ptr(change),
			Stress:         stress,
		})
	}

	return results
}
