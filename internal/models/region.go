package models

import (
	"fmt"
	"time"
)

// SimulationType identifies the infrastructure domain being projected.
type SimulationType string

const (
	SimulationEnergy      SimulationType = "energy"
	SimulationWater       SimulationType = "water"
	SimulationAgriculture SimulationType = "agriculture"
)

// ParseSimulationType validates a simulation type string.
func ParseSimulationType(s string) (SimulationType, error) {
	switch SimulationType(s) {
	case SimulationEnergy, SimulationWater, SimulationAgriculture:
		return SimulationType(s), nil
	default:
		return "", &UnknownSimulationTypeError{Type: s}
	}
}

// CropType is the closed set of crops the platform models.
type CropType string

const (
	CropCoffee    CropType = "coffee"
	CropSugarCane CropType = "sugar_cane"
	CropCorn      CropType = "corn"
	CropBeans     CropType = "beans"
	CropAll       CropType = "all"
)

// ParseCropType validates a crop type string. Unknown crops are an explicit
// error, never a silent zero.
func ParseCropType(s string) (CropType, error) {
	switch CropType(s) {
	case CropCoffee, CropSugarCane, CropCorn, CropBeans, CropAll:
		return CropType(s), nil
	default:
		return "", &UnknownCropError{Crop: s}
	}
}

// BaselineMetrics holds a region's measured daily baselines. Fields are
// domain-dependent; a nil pointer means the region has no data for that
// domain. NULL values are represented as pointers, matching the database
// columns.
type BaselineMetrics struct {
	EnergyDemandKWh     *float64 `json:"energy_demand_kwh,omitempty" db:"energy_demand_kwh"`
	SolarGenerationKWh  *float64 `json:"solar_generation_kwh,omitempty" db:"solar_generation_kwh"`
	InstalledCapacityMW *float64 `json:"installed_capacity_mw,omitempty" db:"installed_capacity_mw"`
	WaterDemandM3       *float64 `json:"water_demand_m3,omitempty" db:"water_demand_m3"`
	WaterSupplyM3       *float64 `json:"water_supply_m3,omitempty" db:"water_supply_m3"`
	RainfallMM          *float64 `json:"rainfall_mm,omitempty" db:"rainfall_mm"`
	CropYieldKg         *float64 `json:"crop_yield_kg,omitempty" db:"crop_yield_kg"`
}

// Region is immutable reference data describing one planning region.
// Created at load time by the external layer and never mutated by the
// engines.
type Region struct {
	ID         string          `json:"id" db:"id"`
	Name       string          `json:"name" db:"name"`
	Population int             `json:"population" db:"population"`
	Remote     bool            `json:"remote" db:"remote"`
	Baseline   BaselineMetrics `json:"baseline"`
	CreatedAt  time.Time       `json:"created_at,omitempty" db:"created_at"`
}

// HasEnergyBaseline reports whether the region carries the fields the
// energy projection requires.
func (r *Region) HasEnergyBaseline() bool {
	return r.Baseline.EnergyDemandKWh != nil &&
		r.Baseline.SolarGenerationKWh != nil &&
		r.Baseline.InstalledCapacityMW != nil
}

// HasWaterBaseline reports whether the region carries the fields the
// water projection requires.
func (r *Region) HasWaterBaseline() bool {
	return r.Baseline.WaterDemandM3 != nil && r.Baseline.WaterSupplyM3 != nil
}

// HasAgricultureBaseline reports whether the region carries the fields the
// agriculture projection requires.
func (r *Region) HasAgricultureBaseline() bool {
	return r.Baseline.CropYieldKg != nil
}

func (r *Region) String() string {
	return fmt.Sprintf("%s (%s, pop %d)", r.Name, r.ID, r.Population)
}
