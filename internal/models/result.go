package models

import "time"

// CriticalStressThreshold is the stress level above which a region-day is
// counted as critical (a shortage day for water, an at-risk day otherwise).
const CriticalStressThreshold = 0.60

// DailyResult is one simulated day for one region. Domain fields are
// pointer-optional: an energy run populates the kWh fields, a water run the
// m3 fields, an agriculture run the yield fields. Stress is always present
// and clamped to [0,1] (0 = demand fully met, 1 = total failure). Results
// are created fresh per day and never mutated.
type DailyResult struct {
	Date     time.Time `json:"date" db:"result_date"`
	RegionID string    `json:"region_id" db:"region_id"`

	DemandKWh *float64 `json:"demand_kwh,omitempty" db:"demand_kwh"`
	SupplyKWh *float64 `json:"supply_kwh,omitempty" db:"supply_kwh"`
	GridKWh   *float64 `json:"grid_kwh,omitempty" db:"grid_kwh"`

	WaterDemandM3 *float64 `json:"water_demand_m3,omitempty" db:"water_demand_m3"`
	WaterSupplyM3 *float64 `json:"water_supply_m3,omitempty" db:"water_supply_m3"`

	YieldKg        *float64 `json:"yield_kg,omitempty" db:"yield_kg"`
	YieldChangePct *float64 `json:"yield_change_pct,omitempty" db:"yield_change_pct"`

	Stress float64 `json:"stress" db:"stress"`
}

// RegionStress is a region's aggregate position in a simulation run.
type RegionStress struct {
	RegionID     string  `json:"region_id" db:"region_id"`
	Name         string  `json:"name" db:"name"`
	Population   int     `json:"population" db:"population"`
	AvgStress    float64 `json:"avg_stress" db:"avg_stress"`
	MaxStress    float64 `json:"max_stress" db:"max_stress"`
	CriticalDays int     `json:"critical_days" db:"critical_days"`
}

// SimulationSummary aggregates a full projection run. Derived once per run,
// read-only afterwards. TopRegions is ranked descending by average stress,
// ties broken ascending by region id.
type SimulationSummary struct {
	SimulationType SimulationType `json:"simulation_type" db:"simulation_type"`
	StartDate      time.Time      `json:"start_date" db:"start_date"`
	EndDate        time.Time      `json:"end_date" db:"end_date"`
	Days           int            `json:"days" db:"days"`
	RegionCount    int            `json:"region_count" db:"region_count"`
	AvgStress      float64        `json:"avg_stress" db:"avg_stress"`
	MaxStress      float64        `json:"max_stress" db:"max_stress"`
	CriticalDays   int            `json:"critical_days" db:"critical_days"`
	TopRegions     []RegionStress `json:"top_regions"`
}

// SimulationRun pairs the full daily sequence with its summary.
type SimulationRun struct {
	ID             int64             `json:"id,omitempty" db:"id"`
	SimulationType SimulationType    `json:"simulation_type" db:"simulation_type"`
	Results        []DailyResult     `json:"results"`
	Summary        SimulationSummary `json:"summary"`
	CreatedAt      time.Time         `json:"created_at,omitempty" db:"created_at"`
}
