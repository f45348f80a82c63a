// Package simulation is the deterministic scenario projection engine. It
// turns a region's historical baseline plus scenario parameters into a
// day-by-day demand/supply/stress series. Every function is pure: identical
// inputs produce bit-identical output on every run and under any scheduling.
package simulation

import (
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"resilience-platform/internal/models"
)

// daysPerYear is the compounding basis for growth rates.
const daysPerYear = 365.0

// seasonalMultiplier models the annual demand/supply/yield cycle.
func seasonalMultiplier(date time.Time) float64 {
	return 1 + 0.15*math.Sin(2*math.Pi*float64(date.YearDay())/daysPerYear)
}

// compound converts an annual percentage rate into a cumulative factor after
// the given number of elapsed years.
func compound(ratePct, years float64) float64 {
	return math.Pow(1+ratePct/100, years)
}

// clampStress constrains a stress ratio to [0,1].
func clampStress(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// regionProjector produces the daily series for a single region.
type regionProjector func(region models.Region) ([]models.DailyResult, error)

// projectAll fans the per-region projection out, one task per region, and
// gathers results into region order. Regions are independent and no
// accumulator is shared, so scheduling cannot influence the output.
func projectAll(regions []models.Region, project regionProjector) ([][]models.DailyResult, error) {
	perRegion := make([][]models.DailyResult, len(regions))

	g := new(errgroup.Group)
	for i, region := range regions {
		i, region := i, region
		g.Go(func() error {
			days, err := project(region)
			if err != nil {
				return err
			}
			perRegion[i] = days
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return perRegion, nil
}

// assembleRun flattens the ordered per-region series and attaches the
// aggregate summary.
func assembleRun(
	simType models.SimulationType,
	regions []models.Region,
	dr models.DateRange,
	perRegion [][]models.DailyResult,
) *models.SimulationRun {
	total := 0
	for _, days := range perRegion {
		total += len(days)
	}

	results := make([]models.DailyResult, 0, total)
	for _, days := range perRegion {
		results = append(results, days...)
	}

	return &models.SimulationRun{
		SimulationType: simType,
		Results:        results,
		Summary:        summarize(simType, regions, dr, perRegion),
	}
}

func ptr(v float64) *float64 {
	return &v
}
