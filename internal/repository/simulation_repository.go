package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"resilience-platform/internal/models"
	"resilience-platform/pkg/database"
	"resilience-platform/pkg/logging"
	"resilience-platform/pkg/metrics"
)

// SimulationRepository provides data access for regions and simulation runs
type SimulationRepository interface {
	// Region reference data
	CreateRegion(ctx context.Context, region *models.Region) error
	GetRegion(ctx context.Context, regionID string) (*models.Region, error)
	ListRegions(ctx context.Context, limit, offset int) ([]*models.Region, error)

	// Simulation runs
	CreateRun(ctx context.Context, run *models.SimulationRun) error
	GetRun(ctx context.Context, runID int64) (*models.SimulationRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*models.SimulationSummary, int, error)

	// Series access for trend analysis
	GetStressSeries(ctx context.Context, runID int64, regionID string) ([]models.DataPoint, error)

	// Utility operations
	HealthCheck(ctx context.Context) error
}

// RunFilter defines filters for querying simulation runs
type RunFilter struct {
	SimulationType *models.SimulationType
	Limit          int
	Offset         int
}

// simulationRepository implements SimulationRepository
type simulationRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewSimulationRepository creates a new simulation repository
func NewSimulationRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) SimulationRepository {
	return &simulationRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// regionRow flattens models.Region for sqlx scanning.
type regionRow struct {
	ID                  string    `db:"id"`
	Name                string    `db:"name"`
	Population          int       `db:"population"`
	Remote              bool      `db:"remote"`
	EnergyDemandKWh     *float64  `db:"energy_demand_kwh"`
	SolarGenerationKWh  *float64  `db:"solar_generation_kwh"`
	InstalledCapacityMW *float64  `db:"installed_capacity_mw"`
	WaterDemandM3       *float64  `db:"water_demand_m3"`
	WaterSupplyM3       *float64  `db:"water_supply_m3"`
	RainfallMM          *float64  `db:"rainfall_mm"`
	CropYieldKg         *float64  `db:"crop_yield_kg"`
	CreatedAt           time.Time `db:"created_at"`
}

func (r regionRow) toModel() *models.Region {
	return &models.Region{
		ID:         r.ID,
		Name:       r.Name,
		Population: r.Population,
		Remote:     r.Remote,
		Baseline: models.BaselineMetrics{
			EnergyDemandKWh:     r.EnergyDemandKWh,
			SolarGenerationKWh:  r.SolarGenerationKWh,
			InstalledCapacityMW: r.InstalledCapacityMW,
			WaterDemandM3:       r.WaterDemandM3,
			WaterSupplyM3:       r.WaterSupplyM3,
			RainfallMM:          r.RainfallMM,
			CropYieldKg:         r.CropYieldKg,
		},
		CreatedAt: r.CreatedAt,
	}
}

// CreateRegion inserts or refreshes a region's reference record
func (r *simulationRepository) CreateRegion(ctx context.Context, region *models.Region) error {
	query := `
		INSERT INTO regions (
			id, name, population, remote,
			energy_demand_kwh, solar_generation_kwh, installed_capacity_mw,
			water_demand_m3, water_supply_m3, rainfall_mm, crop_yield_kg,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			population = EXCLUDED.population,
			remote = EXCLUDED.remote,
			energy_demand_kwh = EXCLUDED.energy_demand_kwh,
			solar_generation_kwh = EXCLUDED.solar_generation_kwh,
			installed_capacity_mw = EXCLUDED.installed_capacity_mw,
			water_demand_m3 = EXCLUDED.water_demand_m3,
			water_supply_m3 = EXCLUDED.water_supply_m3,
			rainfall_mm = EXCLUDED.rainfall_mm,
			crop_yield_kg = EXCLUDED.crop_yield_kg
	`

	_, err := r.db.ExecContext(ctx, "insert_region", query,
		region.ID,
		region.Name,
		region.Population,
		region.Remote,
		region.Baseline.EnergyDemandKWh,
		region.Baseline.SolarGenerationKWh,
		region.Baseline.InstalledCapacityMW,
		region.Baseline.WaterDemandM3,
		region.Baseline.WaterSupplyM3,
		region.Baseline.RainfallMM,
		region.Baseline.CropYieldKg,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("failed to create region: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_CREATE_REGION] Region created", logging.Fields{
		"region_id": region.ID,
	})

	return nil
}

// GetRegion retrieves a region by ID
func (r *simulationRepository) GetRegion(ctx context.Context, regionID string) (*models.Region, error) {
	query := `
		SELECT id, name, population, remote,
		       energy_demand_kwh, solar_generation_kwh, installed_capacity_mw,
		       water_demand_m3, water_supply_m3, rainfall_mm, crop_yield_kg,
		       created_at
		FROM regions
		WHERE id = $1
	`

	var row regionRow
	err := r.db.GetContext(ctx, "get_region", &row, query, regionID)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "region", ID: regionID}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get region: %w", err)
	}

	return row.toModel(), nil
}

// ListRegions retrieves the region reference list with pagination
func (r *simulationRepository) ListRegions(ctx context.Context, limit, offset int) ([]*models.Region, error) {
	query := `
		SELECT id, name, population, remote,
		       energy_demand_kwh, solar_generation_kwh, installed_capacity_mw,
		       water_demand_m3, water_supply_m3, rainfall_mm, crop_yield_kg,
		       created_at
		FROM regions
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	var rows []regionRow
	if err := r.db.SelectContext(ctx, "list_regions", &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	regions := make([]*models.Region, len(rows))
	for i, row := range rows {
		regions[i] = row.toModel()
	}

	return regions, nil
}

// CreateRun persists a full simulation run: the run record, the per-region
// ranking, and the daily result sequence, in one transaction.
func (r *simulationRepository) CreateRun(ctx context.Context, run *models.SimulationRun) error {
	timer := time.Now()
	defer func() {
		duration := time.Since(timer)
		r.logger.Debug(ctx, "[REPO_CREATE_RUN] Run persisted", logging.Fields{
			"simulation_type": run.SimulationType,
			"daily_results":   len(run.Results),
			"duration_ms":     duration.Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO simulation_runs (
			simulation_type, start_date, end_date, days, region_count,
			avg_stress, max_stress, critical_days, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		run.SimulationType,
		run.Summary.StartDate,
		run.Summary.EndDate,
		run.Summary.Days,
		run.Summary.RegionCount,
		run.Summary.AvgStress,
		run.Summary.MaxStress,
		run.Summary.CriticalDays,
		time.Now().UTC(),
	).Scan(&run.ID)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for rank, rs := range run.Summary.TopRegions {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_region_stress (
				run_id, rank, region_id, name, population,
				avg_stress, max_stress, critical_days
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, run.ID, rank+1, rs.RegionID, rs.Name, rs.Population, rs.AvgStress, rs.MaxStress, rs.CriticalDays)
		if err != nil {
			return fmt.Errorf("failed to insert region ranking: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO daily_results (
			run_id, result_date, region_id,
			demand_kwh, supply_kwh, grid_kwh,
			water_demand_m3, water_supply_m3,
			yield_kg, yield_change_pct, stress
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, day := range run.Results {
		_, err := stmt.ExecContext(ctx,
			run.ID,
			day.Date,
			day.RegionID,
			day.DemandKWh,
			day.SupplyKWh,
			day.GridKWh,
			day.WaterDemandM3,
			day.WaterSupplyM3,
			day.YieldKg,
			day.YieldChangePct,
			day.Stress,
		)
		if err != nil {
			return fmt.Errorf("failed to insert daily result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.SimulationDaysTotal.Add(float64(len(run.Results)))

	return nil
}

// runRow flattens a simulation_runs record.
type runRow struct {
	ID             int64     `db:"id"`
	SimulationType string    `db:"simulation_type"`
	StartDate      time.Time `db:"start_date"`
	EndDate        time.Time `db:"end_date"`
	Days           int       `db:"days"`
	RegionCount    int       `db:"region_count"`
	AvgStress      float64   `db:"avg_stress"`
	MaxStress      float64   `db:"max_stress"`
	CriticalDays   int       `db:"critical_days"`
	CreatedAt      time.Time `db:"created_at"`
}

func (row runRow) toSummary() models.SimulationSummary {
	return models.SimulationSummary{
		SimulationType: models.SimulationType(row.SimulationType),
		StartDate:      row.StartDate,
		EndDate:        row.EndDate,
		Days:           row.Days,
		RegionCount:    row.RegionCount,
		AvgStress:      row.AvgStress,
		MaxStress:      row.MaxStress,
		CriticalDays:   row.CriticalDays,
	}
}

// GetRun retrieves one run with its summary, ranking, and daily results
func (r *simulationRepository) GetRun(ctx context.Context, runID int64) (*models.SimulationRun, error) {
	var row runRow
	err := r.db.GetContext(ctx, "get_run", &row, `
		SELECT id, simulation_type, start_date, end_date, days, region_count,
		       avg_stress, max_stress, critical_days, created_at
		FROM simulation_runs
		WHERE id = $1
	`, runID)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Resource: "simulation_run", ID: fmt.Sprintf("%d", runID)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	summary := row.toSummary()

	var ranking []models.RegionStress
	err = r.db.SelectContext(ctx, "get_run_ranking", &ranking, `
		SELECT region_id, name, population, avg_stress, max_stress, critical_days
		FROM run_region_stress
		WHERE run_id = $1
		ORDER BY rank
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get region ranking: %w", err)
	}
	summary.TopRegions = ranking

	var results []models.DailyResult
	err = r.db.SelectContext(ctx, "get_run_results", &results, `
		SELECT result_date, region_id,
		       demand_kwh, supply_kwh, grid_kwh,
		       water_demand_m3, water_supply_m3,
		       yield_kg, yield_change_pct, stress
		FROM daily_results
		WHERE run_id = $1
		ORDER BY region_id, result_date
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily results: %w", err)
	}

	return &models.SimulationRun{
		ID:             row.ID,
		SimulationType: summary.SimulationType,
		Results:        results,
		Summary:        summary,
		CreatedAt:      row.CreatedAt,
	}, nil
}

// ListRuns retrieves run summaries with filtering and pagination
func (r *simulationRepository) ListRuns(ctx context.Context, filter RunFilter) ([]*models.SimulationSummary, int, error) {
	query := `
		SELECT id, simulation_type, start_date, end_date, days, region_count,
		       avg_stress, max_stress, critical_days, created_at
		FROM simulation_runs
		WHERE 1=1
	`
	args := []interface{}{}
	argNum := 1

	if filter.SimulationType != nil {
		query += fmt.Sprintf(" AND simulation_type = $%d", argNum)
		args = append(args, *filter.SimulationType)
		argNum++
	}

	countQuery := "SELECT COUNT(*) FROM (" + query + ") AS count_query"
	var totalCount int
	if err := r.db.GetContext(ctx, "count_runs", &totalCount, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	query += " ORDER BY created_at DESC, id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filter.Limit, filter.Offset)

	var rows []runRow
	if err := r.db.SelectContext(ctx, "list_runs", &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list runs: %w", err)
	}

	summaries := make([]*models.SimulationSummary, len(rows))
	for i, row := range rows {
		s := row.toSummary()
		summaries[i] = &s
	}

	return summaries, totalCount, nil
}

// GetStressSeries returns one region's stored stress series for a run,
// ordered by date, as generic data points for trend analysis.
func (r *simulationRepository) GetStressSeries(ctx context.Context, runID int64, regionID string) ([]models.DataPoint, error) {
	query := `
		SELECT result_date AS date, stress AS value
		FROM daily_results
		WHERE run_id = $1 AND region_id = $2
		ORDER BY result_date
	`

	var points []models.DataPoint
	if err := r.db.SelectContext(ctx, "get_stress_series", &points, query, runID, regionID); err != nil {
		return nil, fmt.Errorf("failed to get stress series: %w", err)
	}

	if len(points) == 0 {
		return nil, &NotFoundError{
			Resource: "stress_series",
			ID:       fmt.Sprintf("%d:%s", runID, regionID),
		}
	}

	return points, nil
}

// HealthCheck performs a repository health check
func (r *simulationRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
