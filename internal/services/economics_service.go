package services

import (
	"context"
	"time"

	"resilience-platform/internal/economics"
	"resilience-platform/internal/models"
	"resilience-platform/pkg/logging"
	"resilience-platform/pkg/metrics"
)

// EconomicsService turns simulation summaries into investment guidance
type EconomicsService struct {
	engine  *economics.Engine
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewEconomicsService creates a new economics service
func NewEconomicsService(engine *economics.Engine, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *EconomicsService {
	return &EconomicsService{
		engine:  engine,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// CalculateImpact computes the economic impact report for a request.
func (s *EconomicsService) CalculateImpact(ctx context.Context, req economics.ImpactRequest) (*models.EconomicAnalysis, error) {
	startTime := time.Now()

	analysis, err := s.engine.CalculateImpact(req)

	s.metrics.EconomicsCalcDuration.Observe(time.Since(startTime).Seconds())

	if err != nil {
		s.logger.Error(ctx, "[ECON_CALC_ERROR] Impact calculation failed", logging.Fields{
			"simulation_type": req.SimulationType,
			"regions":         len(req.Regions),
		}, err)
		return nil, err
	}

	s.logger.Info(ctx, "[ECON_CALC_COMPLETE] Impact calculation completed", logging.Fields{
		"simulation_type": req.SimulationType,
		"regions":         len(req.Regions),
		"investment_usd":  analysis.InfrastructureInvestmentUSD,
		"roi_5_year":      analysis.ROI5Year,
	})

	return analysis, nil
}

// ImpactFromSummary builds an impact request from a persisted run summary
// and computes the report. For agriculture runs the caller supplies the
// crop-loss map alongside.
func (s *EconomicsService) ImpactFromSummary(
	ctx context.Context,
	summary models.SimulationSummary,
	solarGrowthPct float64,
	cropLosses map[models.CropType]float64,
) (*models.EconomicAnalysis, error) {
	regions := make([]models.RegionImpact, len(summary.TopRegions))
	for i, rs := range summary.TopRegions {
		regions[i] = models.RegionImpact{
			Region:      rs.RegionID,
			Population:  rs.Population,
			StressLevel: rs.AvgStress,
		}
	}

	return s.CalculateImpact(ctx, economics.ImpactRequest{
		SimulationType: summary.SimulationType,
		Regions:        regions,
		SolarGrowthPct: solarGrowthPct,
		CropLosses:     cropLosses,
	})
}
