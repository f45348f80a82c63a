package economics

import (
	"fmt"

	"resilience-platform/internal/models"
)

// WaterInfraType selects which water infrastructure is being priced.
type WaterInfraType string

const (
	WaterTreatment    WaterInfraType = "treatment"
	WaterDesalination WaterInfraType = "desalination"
	WaterPipes        WaterInfraType = "pipes"
)

// IrrigationType selects the irrigation technology being priced.
type IrrigationType string

const (
	IrrigationDrip      IrrigationType = "drip"
	IrrigationSprinkler IrrigationType = "sprinkler"
)

// extendedOutageHours is the duration beyond which an outage incurs the
// flat per-person health impact.
const extendedOutageHours = 4.0

// businessesPerCapita: one business per 50 people.
const peoplePerBusiness = 50

// SolarInvestment prices installing the given solar capacity.
func (a *Assumptions) SolarInvestment(capacityMW float64) float64 {
	return capacityMW * a.SolarCostPerKW * 1000
}

// GridUpgrade prices increasing a region's grid capacity by pctIncrease
// percentage points. Remote regions carry the logistics multiplier.
func (a *Assumptions) GridUpgrade(region string, pctIncrease float64) float64 {
	cost := a.GridUpgradeBaseCost * (pctIncrease / 10)
	if a.IsRemote(region) {
		cost *= a.RemoteMultiplier
	}
	return cost
}

// WaterInfrastructure prices water works linearly in capacity (m3/day for
// treatment and desalination) or length (km for pipes).
func (a *Assumptions) WaterInfrastructure(infraType WaterInfraType, capacityOrLength float64) (float64, error) {
	switch infraType {
	case WaterTreatment:
		return a.WaterTreatmentCostPer100k * (capacityOrLength / 100_000), nil
	case WaterDesalination:
		return a.DesalinationCostPer100k * (capacityOrLength / 100_000), nil
	case WaterPipes:
		return a.PipeCostPer10Km * (capacityOrLength / 10), nil
	default:
		return 0, fmt.Errorf("unknown water infrastructure type: %q", infraType)
	}
}

// IrrigationSystem prices installing irrigation over the given area,
// including the full maintenance horizon up front.
func (a *Assumptions) IrrigationSystem(hectares float64, irrigationType IrrigationType) (float64, error) {
	var perHectare float64
	switch irrigationType {
	case IrrigationDrip:
		perHectare = a.DripCostPerHectare
	case IrrigationSprinkler:
		perHectare = a.SprinklerCostPerHectare
	default:
		return 0, fmt.Errorf("unknown irrigation type: %q", irrigationType)
	}

	installation := hectares * perHectare
	return installation + installation*a.IrrigationMaintenanceRate*a.IrrigationHorizonYears, nil
}

// PowerOutageCost prices an outage of the given duration for a population:
// lost productivity, lost business activity, and for extended outages a flat
// health impact.
func (a *Assumptions) PowerOutageCost(population int, hours float64) float64 {
	productivity := float64(population) * a.OutageProductivityPerPersonHour * hours
	businesses := float64(population / peoplePerBusiness)
	business := businesses * a.OutageBusinessPerHour * hours

	cost := productivity + business
	if hours > extendedOutageHours {
		cost += float64(population) * a.OutageHealthPerPerson
	}
	return cost
}

// WaterShortageCost prices a shortage of the given length for a population.
func (a *Assumptions) WaterShortageCost(population int, days float64) float64 {
	return float64(population)*a.ShortagePerPersonDay*days +
		float64(population)*a.ShortageHealthPerPersonDay*days
}

// CropLoss prices lost yield for a crop, amplified by the GDP ripple
// multiplier. Crops outside the closed set are an explicit error.
func (a *Assumptions) CropLoss(kgLost float64, crop models.CropType) (float64, error) {
	price, ok := a.CropPricesPerKg[crop]
	if !ok {
		return 0, &models.UnknownCropError{Crop: string(crop)}
	}
	return kgLost * price * a.GDPMultiplier, nil
}
