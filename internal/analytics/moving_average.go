// Package analytics is the statistical analysis engine. It consumes any
// numeric time series and produces moving averages, trend classification,
// anomalies, a linear fit, and a short-horizon forecast. It knows nothing
// about regions or domains, uses no wall-clock time, and has no random
// sources: identical inputs always yield identical output.
package analytics

import (
	"math"

	"resilience-platform/internal/models"
)

// DefaultWindow is the smoothing window used when callers do not override.
const DefaultWindow = 7

// MovingAverage computes both smoothing variants over values. The simple
// average is undefined (NaN) for the first window-1 entries; afterwards each
// entry is the arithmetic mean of the trailing window. The exponential
// average uses alpha = 2/(window+1), is seeded with the first value, and is
// defined at every index. Both outputs have the same length as the input.
func MovingAverage(values []float64, window int) models.MovingAverageResult {
	if window < 1 {
		window = 1
	}

	result := models.MovingAverageResult{
		Window:      window,
		Simple:      make(models.FloatSeries, len(values)),
		Exponential: make(models.FloatSeries, len(values)),
	}
	if len(values) == 0 {
		return result
	}

	var trailing float64
	for i, v := range values {
		trailing += v
		if i >= window {
			trailing -= values[i-window]
		}
		if i >= window-1 {
			result.Simple[i] = trailing / float64(window)
		} else {
			result.Simple[i] = math.NaN()
		}
	}

	alpha := 2.0 / float64(window+1)
	ema := values[0]
	result.Exponential[0] = ema
	for i := 1; i < len(values); i++ {
		ema = alpha*values[i] + (1-alpha)*ema
		result.Exponential[i] = ema
	}

	return result
}
