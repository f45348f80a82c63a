package analytics

import (
	"math"

	"resilience-platform/internal/models"
)

// stableGrowthBand is the average-daily-growth magnitude below which a
// series is classified stable rather than trending.
const stableGrowthBand = 0.01

// GrowthRate summarizes how a series grows across its span. Overall growth
// is (last-first)/first, zero for short series or a zero first value.
// Period-over-period entries with a zero denominator resolve to zero rather
// than dividing by zero.
func GrowthRate(values []float64) models.GrowthRateResult {
	result := models.GrowthRateResult{
		PeriodOverPeriod: []float64{},
		TrendDirection:   models.TrendStable,
	}

	if len(values) < 2 {
		return result
	}

	if first := values[0]; first != 0 {
		result.Overall = (values[len(values)-1] - first) / first
	}

	periods := make([]float64, 0, len(values)-1)
	var sum float64
	for i := 1; i < len(values); i++ {
		rate := 0.0
		if values[i-1] != 0 {
			rate = (values[i] - values[i-1]) / values[i-1]
		}
		periods = append(periods, rate)
		sum += rate
	}

	result.PeriodOverPeriod = periods
	result.AverageDaily = sum / float64(len(periods))

	switch {
	case math.Abs(result.AverageDaily) <= stableGrowthBand:
		result.TrendDirection = models.TrendStable
	case result.AverageDaily > 0:
		result.TrendDirection = models.TrendIncreasing
	default:
		result.TrendDirection = models.TrendDecreasing
	}

	return result
}
