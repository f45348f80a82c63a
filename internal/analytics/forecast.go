package analytics

import (
	"math"

	"resilience-platform/internal/models"
)

// Forecast defaults.
const (
	DefaultForecastPeriods = 7
	DefaultSmoothingAlpha  = 0.3
)

// z-values for the supported confidence levels.
const (
	z95 = 1.96
	z99 = 2.576
)

// ExponentialSmoothing forecasts periods steps ahead of the series. The
// historical values are single-exponential smoothed (S[0]=v[0],
// S[i]=alpha*v[i]+(1-alpha)*S[i-1]), a linear trend is fitted to the
// smoothed series, and each horizon step extrapolates lastSmoothed +
// slope*i, clamped to be non-negative. Confidence intervals widen with
// sqrt(horizon) using 1.96 times the standard error of the smoothed fit
// against the actuals. Accuracy metrics are in-sample fit quality, not
// out-of-sample error. Fewer than two historical points returns empty
// predictions with zeroed metrics.
func ExponentialSmoothing(points []models.DataPoint, periods int, alpha float64) models.ForecastResult {
	result := models.ForecastResult{Predictions: []models.ForecastPoint{}}
	if len(points) < 2 || periods < 1 {
		return result
	}

	smoothed := make([]float64, len(points))
	smoothed[0] = points[0].Value
	for i := 1; i < len(points); i++ {
		smoothed[i] = alpha*points[i].Value + (1-alpha)*smoothed[i-1]
	}

	trend := LinearRegression(smoothed)

	var absSum, sqSum, pctSum float64
	pctCount := 0
	for i, p := range points {
		residual := p.Value - smoothed[i]
		absSum += math.Abs(residual)
		sqSum += residual * residual
		if p.Value != 0 {
			pctSum += math.Abs(residual / p.Value)
			pctCount++
		}
	}

	n := float64(len(points))
	result.Accuracy.MAE = absSum / n
	result.Accuracy.RMSE = math.Sqrt(sqSum / n)
	if pctCount > 0 {
		result.Accuracy.MAPE = pctSum / float64(pctCount) * 100
	}

	stdErr := math.Sqrt(sqSum / n)
	lastSmoothed := smoothed[len(smoothed)-1]
	lastDate := points[len(points)-1].Date

	predictions := make([]models.ForecastPoint, 0, periods)
	for i := 1; i <= periods; i++ {
		value := lastSmoothed + trend.Slope*float64(i)
		if value < 0 {
			value = 0
		}

		margin := z95 * stdErr * math.Sqrt(float64(i))
		low := value - margin
		if low < 0 {
			low = 0
		}

		predictions = append(predictions, models.ForecastPoint{
			Date:               lastDate.AddDate(0, 0, i),
			Value:              value,
			ConfidenceInterval: [2]float64{low, value + margin},
		})
	}

	result.Predictions = predictions
	return result
}

// ConfidenceInterval builds generic bounds around a prediction sequence.
// The z-value is 1.96 for 95% confidence and 2.576 for 99%; anything else
// falls back to 95%. The standard deviation is taken from historical when
// non-empty, otherwise from the predictions themselves. The margin widens
// with sqrt(index+1) and lower bounds are clamped to be non-negative.
func ConfidenceInterval(predictions []float64, confidence float64, historical []float64) []models.Interval {
	z := z95
	if confidence == 0.99 {
		z = z99
	}

	source := historical
	if len(source) == 0 {
		source = predictions
	}
	stddev := populationStddev(source)

	intervals := make([]models.Interval, len(predictions))
	for i, p := range predictions {
		margin := z * stddev * math.Sqrt(float64(i+1))
		low := p - margin
		if low < 0 {
			low = 0
		}
		intervals[i] = models.Interval{Low: low, High: p + margin}
	}

	return intervals
}

func populationStddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sqSum float64
	for _, v := range values {
		d := v - mean
		sqSum += d * d
	}

	return math.Sqrt(sqSum / float64(len(values)))
}
