// Package economics is the economic impact engine. It prices the
// infrastructure required to relieve projected stress and derives the
// financial case (ROI, NPV, payback, opportunity cost) for making the
// investment now rather than later. All reference tables are injected as an
// immutable Assumptions value so alternate economies can be substituted.
package economics

import (
	"resilience-platform/internal/models"
)

// RegionProfile is the reference record for one region: population used to
// auto-fill impact requests, the region's share of national GDP, and whether
// infrastructure work there carries the remote-logistics multiplier.
type RegionProfile struct {
	Population int
	GDPShare   float64
	Remote     bool
}

// Assumptions holds every unit cost, rate, and reference table the engine
// uses. Treat as immutable after construction.
type Assumptions struct {
	Regions map[string]RegionProfile

	// Infrastructure unit costs.
	SolarCostPerKW            float64 // $/kW installed
	GridUpgradeBaseCost       float64 // $ per 10-percentage-point capacity increase
	RemoteMultiplier          float64 // applied to grid work in remote regions
	WaterTreatmentCostPer100k float64 // $ per 100,000 m3/day treatment capacity
	DesalinationCostPer100k   float64 // $ per 100,000 m3/day desalination capacity
	PipeCostPer10Km           float64 // $ per 10 km of distribution pipe
	DripCostPerHectare        float64 // $/ha installed
	SprinklerCostPerHectare   float64 // $/ha installed
	IrrigationMaintenanceRate float64 // fraction of installation per year
	IrrigationHorizonYears    float64 // years of maintenance costed up front

	// Disruption unit costs.
	OutageProductivityPerPersonHour float64 // $/person-hour without power
	OutageBusinessPerHour           float64 // $/business-hour, one business per 50 people
	OutageHealthPerPerson           float64 // flat $/person for extended outages
	ShortagePerPersonDay            float64 // $/person-day without water
	ShortageHealthPerPersonDay      float64 // additional health $/person-day

	// Crop economics.
	CropPricesPerKg map[models.CropType]float64
	GDPMultiplier   float64 // ripple factor on direct agricultural loss

	// Financial rates. The opportunity-cost rate deliberately compounds
	// faster than the investment discount rate.
	DiscountRate           float64 // per year, for ROI and NPV
	MonthlyOpportunityRate float64 // per month, for cost of delay

	// Sizing heuristics for the integrated calculator.
	BaselineRegionCapacityMW  float64 // solar capacity base per region
	OutageHoursPerStressYear  float64 // annual outage hours at full stress
	ShortageDaysPerStressYear float64 // annual shortage days at full stress
	HectaresPerStressedRegion float64 // irrigation sizing per stressed region
}

// DefaultAssumptions returns the national reference tables. Tests and
// alternate economies construct their own value instead of mutating this
// one.
func DefaultAssumptions() Assumptions {
	return Assumptions{
		Regions: map[string]RegionProfile{
			"capital":            {Population: 980000, GDPShare: 0.24},
			"north-coast":        {Population: 540000, GDPShare: 0.11},
			"south-coast":        {Population: 460000, GDPShare: 0.09},
			"eastern-highlands":  {Population: 310000, GDPShare: 0.06},
			"western-plains":     {Population: 420000, GDPShare: 0.08},
			"central-valley":     {Population: 520000, GDPShare: 0.10},
			"river-delta":        {Population: 380000, GDPShare: 0.07},
			"dry-corridor":       {Population: 240000, GDPShare: 0.04},
			"lake-district":      {Population: 290000, GDPShare: 0.05},
			"coastal-lowlands":   {Population: 330000, GDPShare: 0.06},
			"southern-peninsula": {Population: 210000, GDPShare: 0.04},
			"mountain-interior":  {Population: 160000, GDPShare: 0.02, Remote: true},
			"northern-frontier":  {Population: 120000, GDPShare: 0.02, Remote: true},
			"outer-islands":      {Population: 90000, GDPShare: 0.02, Remote: true},
		},

		SolarCostPerKW:            1200,
		GridUpgradeBaseCost:       2_000_000,
		RemoteMultiplier:          1.5,
		WaterTreatmentCostPer100k: 15_000_000,
		DesalinationCostPer100k:   40_000_000,
		PipeCostPer10Km:           3_000_000,
		DripCostPerHectare:        2500,
		SprinklerCostPerHectare:   1200,
		IrrigationMaintenanceRate: 0.05,
		IrrigationHorizonYears:    5,

		OutageProductivityPerPersonHour: 5,
		OutageBusinessPerHour:           50,
		OutageHealthPerPerson:           2,
		ShortagePerPersonDay:            10,
		ShortageHealthPerPersonDay:      6,

		CropPricesPerKg: map[models.CropType]float64{
			models.CropCoffee:    4.50,
			models.CropSugarCane: 0.05,
			models.CropCorn:      0.30,
			models.CropBeans:     1.20,
			models.CropAll:       0.80,
		},
		GDPMultiplier: 1.3,

		DiscountRate:           0.05,
		MonthlyOpportunityRate: 0.02,

		BaselineRegionCapacityMW:  10,
		OutageHoursPerStressYear:  120,
		ShortageDaysPerStressYear: 90,
		HectaresPerStressedRegion: 5000,
	}
}

// IsRemote reports whether a region carries the remote-logistics multiplier.
// Regions outside the reference table are treated as non-remote.
func (a *Assumptions) IsRemote(region string) bool {
	return a.Regions[region].Remote
}
