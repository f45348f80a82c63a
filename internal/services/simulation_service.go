package services

import (
	"context"
	"fmt"
	"time"

	"resilience-platform/internal/models"
	"resilience-platform/internal/repository"
	"resilience-platform/internal/simulation"
	"resilience-platform/pkg/logging"
	"resilience-platform/pkg/metrics"
)

// SimulationService runs scenario projections and persists the results
type SimulationService struct {
	repo    repository.SimulationRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewSimulationService creates a new simulation service
func NewSimulationService(repo repository.SimulationRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *SimulationService {
	return &SimulationService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// RunEnergy projects the energy scenario over the stored region list and
// persists the run.
func (s *SimulationService) RunEnergy(ctx context.Context, sc models.EnergyScenario) (*models.SimulationRun, error) {
	return s.run(ctx, models.SimulationEnergy, func(regions []models.Region) (*models.SimulationRun, error) {
		return simulation.ProjectEnergy(regions, sc)
	})
}

// RunWater projects the water scenario over the stored region list and
// persists the run.
func (s *SimulationService) RunWater(ctx context.Context, sc models.WaterScenario) (*models.SimulationRun, error) {
	return s.run(ctx, models.SimulationWater, func(regions []models.Region) (*models.SimulationRun, error) {
		return simulation.ProjectWater(regions, sc)
	})
}

// RunAgriculture projects the agriculture scenario over the stored region
// list and persists the run.
func (s *SimulationService) RunAgriculture(ctx context.Context, sc models.AgricultureScenario) (*models.SimulationRun, error) {
	return s.run(ctx, models.SimulationAgriculture, func(regions []models.Region) (*models.SimulationRun, error) {
		return simulation.ProjectAgriculture(regions, sc)
	})
}

func (s *SimulationService) run(
	ctx context.Context,
	simType models.SimulationType,
	project func([]models.Region) (*models.SimulationRun, error),
) (*models.SimulationRun, error) {
	startTime := time.Now()

	s.logger.Info(ctx, "[SIM_RUN_START] Starting scenario projection", logging.Fields{
		"simulation_type": simType,
	})

	regionPtrs, err := s.repo.ListRegions(ctx, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}
	if len(regionPtrs) == 0 {
		return nil, fmt.Errorf("no regions configured")
	}

	regions := make([]models.Region, len(regionPtrs))
	for i, r := range regionPtrs {
		regions[i] = *r
	}

	run, err := project(regions)
	if err != nil {
		s.metrics.RecordSimulationRun(string(simType), "error")
		s.logger.Error(ctx, "[SIM_RUN_ERROR] Projection failed", logging.Fields{
			"simulation_type": simType,
		}, err)
		return nil, err
	}

	s.metrics.SimulationDuration.WithLabelValues(string(simType)).Observe(time.Since(startTime).Seconds())
	s.metrics.SimulationRegionsPerRun.Observe(float64(len(regions)))

	if err := s.repo.CreateRun(ctx, run); err != nil {
		s.metrics.RecordSimulationRun(string(simType), "persist_error")
		return nil, fmt.Errorf("failed to persist run: %w", err)
	}

	s.metrics.RecordSimulationRun(string(simType), "ok")

	s.logger.Info(ctx, "[SIM_RUN_COMPLETE] Scenario projection completed", logging.Fields{
		"simulation_type":  simType,
		"run_id":           run.ID,
		"regions":          len(regions),
		"days":             run.Summary.Days,
		"avg_stress":       run.Summary.AvgStress,
		"max_stress":       run.Summary.MaxStress,
		"critical_days":    run.Summary.CriticalDays,
		"duration_seconds": time.Since(startTime).Seconds(),
	})

	return run, nil
}

// GetRun retrieves a persisted run
func (s *SimulationService) GetRun(ctx context.Context, runID int64) (*models.SimulationRun, error) {
	return s.repo.GetRun(ctx, runID)
}

// ListRuns retrieves run summaries with filtering
func (s *SimulationService) ListRuns(ctx context.Context, filter repository.RunFilter) ([]*models.SimulationSummary, int, error) {
	return s.repo.ListRuns(ctx, filter)
}

// ListRegions retrieves the region reference list
func (s *SimulationService) ListRegions(ctx context.Context, limit, offset int) ([]*models.Region, error) {
	return s.repo.ListRegions(ctx, limit, offset)
}
