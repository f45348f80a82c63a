package analytics

import (
	"fmt"

	"resilience-platform/internal/models"
)

// LinearRegression fits an ordinary-least-squares line with the index as the
// independent variable. Fewer than two points degenerates to slope 0,
// intercept 0, R² 0. A zero total sum of squares means the line fits the
// data exactly, so R² is 1.
func LinearRegression(values []float64) models.RegressionResult {
	n := len(values)
	if n < 2 {
		return models.RegressionResult{
			Predictions: []float64{},
			Equation:    "y = 0.0000x + 0.0000",
		}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	predictions := make([]float64, n)
	meanY := sumY / fn

	var ssRes, ssTot float64
	for i, v := range values {
		predicted := slope*float64(i) + intercept
		predictions[i] = predicted
		ssRes += (v - predicted) * (v - predicted)
		ssTot += (v - meanY) * (v - meanY)
	}

	rSquared := 1.0
	if ssTot != 0 {
		rSquared = 1 - ssRes/ssTot
	}

	return models.RegressionResult{
		Slope:       slope,
		Intercept:   intercept,
		RSquared:    rSquared,
		Predictions: predictions,
		Equation:    fmt.Sprintf("y = %.4fx + %.4f", slope, intercept),
	}
}
