package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resilience-platform/internal/models"
)

func points(start time.Time, values ...float64) []models.DataPoint {
	out := make([]models.DataPoint, len(values))
	for i, v := range values {
		out[i] = models.DataPoint{Date: start.AddDate(0, 0, i), Value: v}
	}
	return out
}

var seriesStart = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestMovingAverage(t *testing.T) {
	values := []float64{10, 12, 15, 14, 16, 18, 20}

	result := MovingAverage(values, 3)

	require.Len(t, result.Simple, len(values))
	require.Len(t, result.Exponential, len(values))

	// Undefined prefix before the window fills.
	assert.True(t, math.IsNaN(result.Simple[0]))
	assert.True(t, math.IsNaN(result.Simple[1]))

	assert.InDelta(t, 12.33, result.Simple[2], 0.01)
	assert.InDelta(t, 13.67, result.Simple[3], 0.01)
	assert.InDelta(t, 15.0, result.Simple[4], 0.01)
	assert.InDelta(t, 16.0, result.Simple[5], 0.01)
	assert.InDelta(t, 18.0, result.Simple[6], 0.01)

	// EMA seeds with the first value and is defined everywhere.
	assert.Equal(t, 10.0, result.Exponential[0])
	alpha := 2.0 / 4.0
	assert.InDelta(t, alpha*12+(1-alpha)*10, result.Exponential[1], 1e-9)
	for _, v := range result.Exponential {
		assert.False(t, math.IsNaN(v))
	}
}

func TestMovingAverage_EmptyAndShort(t *testing.T) {
	empty := MovingAverage(nil, 7)
	assert.Empty(t, empty.Simple)
	assert.Empty(t, empty.Exponential)

	short := MovingAverage([]float64{5, 6}, 7)
	require.Len(t, short.Simple, 2)
	assert.True(t, math.IsNaN(short.Simple[0]))
	assert.True(t, math.IsNaN(short.Simple[1]))
	assert.Equal(t, 5.0, short.Exponential[0])
}

func TestGrowthRate(t *testing.T) {
	result := GrowthRate([]float64{100, 105, 110, 115, 120})

	assert.InDelta(t, 0.20, result.Overall, 1e-9)
	require.Len(t, result.PeriodOverPeriod, 4)
	assert.InDelta(t, 0.05, result.PeriodOverPeriod[0], 1e-9)
	assert.Equal(t, models.TrendIncreasing, result.TrendDirection)
}

func TestGrowthRate_Degenerate(t *testing.T) {
	// Short series: overall zero, stable.
	short := GrowthRate([]float64{42})
	assert.Equal(t, 0.0, short.Overall)
	assert.Equal(t, models.TrendStable, short.TrendDirection)

	// Zero first value: overall resolves to zero, not a division by zero.
	zeroFirst := GrowthRate([]float64{0, 10, 20})
	assert.Equal(t, 0.0, zeroFirst.Overall)
	assert.False(t, math.IsInf(zeroFirst.AverageDaily, 0))
	assert.False(t, math.IsNaN(zeroFirst.AverageDaily))

	// Flat series is stable.
	flat := GrowthRate([]float64{7, 7, 7, 7})
	assert.Equal(t, models.TrendStable, flat.TrendDirection)

	decreasing := GrowthRate([]float64{120, 100, 80, 60})
	assert.Equal(t, models.TrendDecreasing, decreasing.TrendDirection)
}

func TestDetectAnomalies(t *testing.T) {
	// One clear spike in an otherwise tight series.
	values := []float64{10, 11, 10, 9, 10, 11, 200, 10, 9, 11, 10, 10}
	pts := points(seriesStart, values...)

	anomalies := DetectAnomalies(pts, DefaultAnomalyThreshold)

	require.Len(t, anomalies, 1)
	assert.Equal(t, 200.0, anomalies[0].Value)
	assert.Greater(t, anomalies[0].ZScore, DefaultAnomalyThreshold)
	assert.Equal(t, anomalies[0].Value-anomalies[0].Expected, anomalies[0].Deviation)
}

func TestDetectAnomalies_Degenerate(t *testing.T) {
	// Fewer than three points: nothing to flag.
	short := DetectAnomalies(points(seriesStart, 1, 100), DefaultAnomalyThreshold)
	assert.Empty(t, short)

	// Constant series: zero deviation, no anomalies and no NaN.
	constant := DetectAnomalies(points(seriesStart, 5, 5, 5, 5, 5), DefaultAnomalyThreshold)
	assert.Empty(t, constant)
}

func TestDetectAnomalies_Severity(t *testing.T) {
	// Threshold 1.0 with a spike far enough out to be high severity.
	values := []float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 60}
	anomalies := DetectAnomalies(points(seriesStart, values...), 1.0)

	require.NotEmpty(t, anomalies)
	spike := anomalies[len(anomalies)-1]
	assert.Equal(t, 60.0, spike.Value)
	assert.Equal(t, models.SeverityHigh, spike.Severity)
}

func TestLinearRegression(t *testing.T) {
	// Exact line y = 2x + 10.
	result := LinearRegression([]float64{10, 12, 14, 16, 18})

	assert.InDelta(t, 2.0, result.Slope, 1e-9)
	assert.InDelta(t, 10.0, result.Intercept, 1e-9)
	assert.InDelta(t, 1.0, result.RSquared, 1e-9)
	assert.Equal(t, "y = 2.0000x + 10.0000", result.Equation)

	require.Len(t, result.Predictions, 5)
	assert.InDelta(t, 10.0, result.Predictions[0], 1e-9)
	assert.InDelta(t, 18.0, result.Predictions[4], 1e-9)
}

func TestLinearRegression_Degenerate(t *testing.T) {
	short := LinearRegression([]float64{5})
	assert.Equal(t, 0.0, short.Slope)
	assert.Equal(t, 0.0, short.Intercept)
	assert.Equal(t, 0.0, short.RSquared)
	assert.Empty(t, short.Predictions)
	assert.Equal(t, "y = 0.0000x + 0.0000", short.Equation)

	// Flat series: zero total sum of squares means a perfect fit.
	flat := LinearRegression([]float64{3, 3, 3, 3})
	assert.Equal(t, 0.0, flat.Slope)
	assert.InDelta(t, 3.0, flat.Intercept, 1e-9)
	assert.Equal(t, 1.0, flat.RSquared)
}

func TestExponentialSmoothing(t *testing.T) {
	pts := points(seriesStart, 100, 102, 101, 104, 106, 105, 108, 110, 109, 112)

	result := ExponentialSmoothing(pts, DefaultForecastPeriods, DefaultSmoothingAlpha)

	require.Len(t, result.Predictions, DefaultForecastPeriods)

	lastDate := pts[len(pts)-1].Date
	prevWidth := -1.0
	for i, p := range result.Predictions {
		assert.Equal(t, lastDate.AddDate(0, 0, i+1), p.Date)
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.ConfidenceInterval[0], p.Value)
		assert.GreaterOrEqual(t, p.ConfidenceInterval[1], p.Value)

		width := p.ConfidenceInterval[1] - p.ConfidenceInterval[0]
		assert.GreaterOrEqual(t, width, prevWidth)
		prevWidth = width
	}

	// An upward series should extrapolate upward.
	assert.Greater(t, result.Predictions[6].Value, result.Predictions[0].Value)

	assert.GreaterOrEqual(t, result.Accuracy.MAE, 0.0)
	assert.GreaterOrEqual(t, result.Accuracy.RMSE, result.Accuracy.MAE)
	assert.GreaterOrEqual(t, result.Accuracy.MAPE, 0.0)
}

func TestExponentialSmoothing_ShortSeries(t *testing.T) {
	result := ExponentialSmoothing(points(seriesStart, 42), DefaultForecastPeriods, DefaultSmoothingAlpha)

	assert.Empty(t, result.Predictions)
	assert.Equal(t, 0.0, result.Accuracy.MAE)
	assert.Equal(t, 0.0, result.Accuracy.RMSE)
	assert.Equal(t, 0.0, result.Accuracy.MAPE)
}

func TestExponentialSmoothing_NonNegativeFloor(t *testing.T) {
	// Steep decline: extrapolation would go negative without the clamp.
	pts := points(seriesStart, 50, 40, 30, 20, 10, 5, 2, 1)

	result := ExponentialSmoothing(pts, 10, DefaultSmoothingAlpha)

	for _, p := range result.Predictions {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.GreaterOrEqual(t, p.ConfidenceInterval[0], 0.0)
	}
}

func TestConfidenceInterval(t *testing.T) {
	historical := []float64{10, 12, 14, 16, 18}
	predictions := []float64{20, 22}

	intervals95 := ConfidenceInterval(predictions, 0.95, historical)
	intervals99 := ConfidenceInterval(predictions, 0.99, historical)

	require.Len(t, intervals95, 2)
	require.Len(t, intervals99, 2)

	stddev := populationStddev(historical)

	assert.InDelta(t, 20-1.96*stddev, intervals95[0].Low, 1e-9)
	assert.InDelta(t, 20+1.96*stddev, intervals95[0].High, 1e-9)
	assert.InDelta(t, 22+1.96*stddev*math.Sqrt(2), intervals95[1].High, 1e-9)

	// 99% bounds are wider than 95%.
	assert.Less(t, intervals99[0].Low, intervals95[0].Low)
	assert.Greater(t, intervals99[0].High, intervals95[0].High)

	// Unsupported level falls back to 95%.
	fallback := ConfidenceInterval(predictions, 0.5, historical)
	assert.Equal(t, intervals95, fallback)
}

func TestConfidenceInterval_NoHistory(t *testing.T) {
	predictions := []float64{0.5, 1.5}

	intervals := ConfidenceInterval(predictions, 0.95, nil)

	require.Len(t, intervals, 2)
	for _, iv := range intervals {
		assert.GreaterOrEqual(t, iv.Low, 0.0)
		assert.GreaterOrEqual(t, iv.High, iv.Low)
	}
}

func TestAnalyzeSeries(t *testing.T) {
	pts := points(seriesStart, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19)

	report := AnalyzeSeries(pts)

	assert.Equal(t, 10, report.Points)
	assert.Equal(t, DefaultWindow, report.MovingAverages.Window)
	assert.Len(t, report.MovingAverages.Simple, 10)
	assert.Equal(t, models.TrendIncreasing, report.Growth.TrendDirection)
	assert.Empty(t, report.Anomalies)
	assert.InDelta(t, 1.0, report.Regression.Slope, 1e-9)
	assert.Len(t, report.Forecast.Predictions, DefaultForecastPeriods)
}
