package analytics

import (
	"resilience-platform/internal/models"
)

// AnalyzeSeries runs the full analysis over one series: moving averages,
// growth classification, anomaly detection, a linear fit, and the
// short-horizon forecast. This is the bundle the trends dashboard consumes.
func AnalyzeSeries(points []models.DataPoint) models.TrendReport {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}

	return models.TrendReport{
		Points:         len(points),
		MovingAverages: MovingAverage(values, DefaultWindow),
		Growth:         GrowthRate(values),
		Anomalies:      DetectAnomalies(points, DefaultAnomalyThreshold),
		Regression:     LinearRegression(values),
		Forecast:       ExponentialSmoothing(points, DefaultForecastPeriods, DefaultSmoothingAlpha),
	}
}
