package models

import "time"

// DataPoint is the generic (date, value) unit consumed by the statistical
// analysis engine. It carries no domain semantics.
type DataPoint struct {
	Date  time.Time `json:"date" db:"date"`
	Value float64   `json:"value" db:"value"`
}

// TrendDirection classifies the sign of a series' average daily growth.
type TrendDirection string

const (
	TrendIncreasing TrendDirection = "increasing"
	TrendDecreasing TrendDirection = "decreasing"
	TrendStable     TrendDirection = "stable"
)

// AnomalySeverity buckets how far outside the detection threshold a point
// lies.
type AnomalySeverity string

const (
	SeverityLow    AnomalySeverity = "low"
	SeverityMedium AnomalySeverity = "medium"
	SeverityHigh   AnomalySeverity = "high"
)

// MovingAverageResult holds both smoothing variants, each the same length as
// the input. The first window-1 simple entries are undefined and serialize
// as null.
type MovingAverageResult struct {
	Window      int         `json:"window"`
	Simple      FloatSeries `json:"simple"`
	Exponential FloatSeries `json:"exponential"`
}

// GrowthRateResult summarizes how a series grows over its span.
type GrowthRateResult struct {
	Overall          float64        `json:"overall"`
	PeriodOverPeriod []float64      `json:"period_over_period"`
	AverageDaily     float64        `json:"average_daily"`
	TrendDirection   TrendDirection `json:"trend_direction"`
}

// Anomaly is one point flagged by z-score detection.
type Anomaly struct {
	Date      time.Time       `json:"date"`
	Value     float64         `json:"value"`
	Expected  float64         `json:"expected"`
	Deviation float64         `json:"deviation"`
	ZScore    float64         `json:"z_score"`
	Severity  AnomalySeverity `json:"severity"`
}

// RegressionResult is an ordinary-least-squares fit with index as the
// independent variable.
type RegressionResult struct {
	Slope       float64   `json:"slope"`
	Intercept   float64   `json:"intercept"`
	RSquared    float64   `json:"r_squared"`
	Predictions []float64 `json:"predictions"`
	Equation    string    `json:"equation"`
}

// ForecastPoint is one projected value with its confidence interval.
type ForecastPoint struct {
	Date               time.Time  `json:"date"`
	Value              float64    `json:"value"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
}

// ForecastAccuracy reports in-sample fit quality of the smoothed series
// against actuals, not out-of-sample error.
type ForecastAccuracy struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	MAPE float64 `json:"mape"`
}

// ForecastResult is an ordered short-horizon forecast.
type ForecastResult struct {
	Predictions []ForecastPoint  `json:"predictions"`
	Accuracy    ForecastAccuracy `json:"accuracy"`
}

// Interval is a generic [low, high] confidence bound.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// TrendReport bundles the full statistical analysis of one series for the
// trends dashboard.
type TrendReport struct {
	Points         int                 `json:"points"`
	MovingAverages MovingAverageResult `json:"moving_averages"`
	Growth         GrowthRateResult    `json:"growth"`
	Anomalies      []Anomaly           `json:"anomalies"`
	Regression     RegressionResult    `json:"regression"`
	Forecast       ForecastResult      `json:"forecast"`
}
