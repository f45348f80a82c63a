package analytics

import (
	"math"

	"resilience-platform/internal/models"
)

// DefaultAnomalyThreshold is the z-score magnitude above which a point is
// flagged.
const DefaultAnomalyThreshold = 2.0

// DetectAnomalies flags points whose z-score magnitude exceeds the
// threshold, using the population mean and standard deviation of the whole
// series. Fewer than three points, or a constant series (zero deviation),
// yields no anomalies. Severity is high beyond twice the threshold, medium
// beyond one and a half times, low otherwise.
func DetectAnomalies(points []models.DataPoint, threshold float64) []models.Anomaly {
	anomalies := []models.Anomaly{}
	if len(points) < 3 {
		return anomalies
	}

	var sum float64
	for _, p := range points {
		sum += p.Value
	}
	mean := sum / float64(len(points))

	var sqSum float64
	for _, p := range points {
		d := p.Value - mean
		sqSum += d * d
	}
	stddev := math.Sqrt(sqSum / float64(len(points)))
	if stddev == 0 {
		return anomalies
	}

	for _, p := range points {
		z := (p.Value - mean) / stddev
		if math.Abs(z) <= threshold {
			continue
		}

		severity := models.SeverityLow
		switch {
		case math.Abs(z) > 2*threshold:
			severity = models.SeverityHigh
		case math.Abs(z) > 1.5*threshold:
			severity = models.SeverityMedium
		}

		anomalies = append(anomalies, models.Anomaly{
			Date:      p.Date,
			Value:     p.Value,
			Expected:  mean,
			Deviation: p.Value - mean,
			ZScore:    z,
			Severity:  severity,
		})
	}

	return anomalies
}
