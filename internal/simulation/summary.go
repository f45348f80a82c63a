package simulation

import (
	"sort"

	"resilience-platform/internal/models"
)

// topRegionLimit caps the ranked region list in a summary.
const topRegionLimit = 5

// summarize aggregates the ordered per-region series into a run summary:
// mean and max stress over all region-days, critical-day count, and the
// top-stressed regions ranked descending by average stress with ties broken
// by region id.
func summarize(
	simType models.SimulationType,
	regions []models.Region,
	dr models.DateRange,
	perRegion [][]models.DailyResult,
) models.SimulationSummary {
	summary := models.SimulationSummary{
		SimulationType: simType,
		StartDate:      dr.StartDate,
		EndDate:        dr.EndDate,
		Days:           dr.Days(),
		RegionCount:    len(regions),
	}

	var stressSum float64
	var totalDays int

	ranked := make([]models.RegionStress, 0, len(regions))

	for i, days := range perRegion {
		rs := models.RegionStress{
			RegionID:   regions[i].ID,
			Name:       regions[i].Name,
			Population: regions[i].Population,
		}

		var regionSum float64
		for _, day := range days {
			regionSum += day.Stress
			if day.Stress > rs.MaxStress {
				rs.MaxStress = day.Stress
			}
			if day.Stress > models.CriticalStressThreshold {
				rs.CriticalDays++
			}
		}

		if len(days) > 0 {
			rs.AvgStress = regionSum / float64(len(days))
		}

		stressSum += regionSum
		totalDays += len(days)
		summary.CriticalDays += rs.CriticalDays
		if rs.MaxStress > summary.MaxStress {
			summary.MaxStress = rs.MaxStress
		}

		ranked = append(ranked, rs)
	}

	if totalDays > 0 {
		summary.AvgStress = stressSum / float64(totalDays)
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].AvgStress != ranked[b].AvgStress {
			return ranked[a].AvgStress > ranked[b].AvgStress
		}
		return ranked[a].RegionID < ranked[b].RegionID
	})

	if len(ranked) > topRegionLimit {
		ranked = ranked[:topRegionLimit]
	}
	summary.TopRegions = ranked

	return summary
}
