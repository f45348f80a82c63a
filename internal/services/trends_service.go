package services

import (
	"context"
	"time"

	"resilience-platform/internal/analytics"
	"resilience-platform/internal/models"
	"resilience-platform/internal/repository"
	"resilience-platform/pkg/logging"
	"resilience-platform/pkg/metrics"
)

// TrendsService produces statistical trend reports over stored or supplied
// series
type TrendsService struct {
	repo    repository.SimulationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewTrendsService creates a new trends service
func NewTrendsService(repo repository.SimulationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *TrendsService {
	return &TrendsService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// AnalyzeStoredSeries fetches one region's stress series from a persisted
// run and produces the full trend report.
func (s *TrendsService) AnalyzeStoredSeries(ctx context.Context, runID int64, regionID string) (*models.TrendReport, error) {
	points, err := s.repo.GetStressSeries(ctx, runID, regionID)
	if err != nil {
		return nil, err
	}

	return s.AnalyzeSeries(ctx, points), nil
}

// AnalyzeSeries produces the full trend report for an externally supplied
// series.
func (s *TrendsService) AnalyzeSeries(ctx context.Context, points []models.DataPoint) *models.TrendReport {
	startTime := time.Now()

	report := analytics.AnalyzeSeries(points)

	s.metrics.TrendsCalcDuration.Observe(time.Since(startTime).Seconds())
	if n := len(report.Anomalies); n > 0 {
		s.metrics.AnomaliesDetected.Add(float64(n))
	}

	s.logger.Debug(ctx, "[TRENDS_ANALYZED] Trend report computed", logging.Fields{
		"points":    report.Points,
		"anomalies": len(report.Anomalies),
		"trend":     report.Growth.TrendDirection,
	})

	return &report
}
