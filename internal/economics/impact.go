package economics

import (
	"math"
	"sort"

	"resilience-platform/internal/models"
)

// Integrated-calculator constants. Grid upgrades trigger above the stress
// threshold, sized from how far stress sits above the 0.5 headroom line.
// Treatment capacity is sized from per-capita daily water use times stress.
const (
	stressTriggerLevel     = 0.60
	stressHeadroomBase     = 0.50
	perCapitaWaterM3PerDay = 0.15
	roiHorizonYears        = 5
	delayMonths            = 6
	inactionYears          = 5
)

// Per-domain fraction of annual exposure an investment prevents.
var lossReduction = map[models.SimulationType]float64{
	models.SimulationEnergy:      0.80,
	models.SimulationWater:       0.85,
	models.SimulationAgriculture: 0.70,
}

// Per-domain annual escalation of the cost of inaction.
var inactionEscalation = map[models.SimulationType]float64{
	models.SimulationEnergy:      1.10,
	models.SimulationWater:       1.15,
	models.SimulationAgriculture: 1.20,
}

// Engine computes integrated economic impact reports from injected
// assumptions.
type Engine struct {
	assumptions Assumptions
}

// NewEngine creates an economic impact engine over the given assumptions.
func NewEngine(assumptions Assumptions) *Engine {
	return &Engine{assumptions: assumptions}
}

// Assumptions returns the engine's reference tables.
func (e *Engine) Assumptions() *Assumptions {
	return &e.assumptions
}

// ImpactRequest is the input to the integrated calculator: the domain, the
// per-region stress summary of a projection run, and the scenario fields the
// sizing rules need.
type ImpactRequest struct {
	SimulationType models.SimulationType       `json:"simulation_type"`
	Regions        []models.RegionImpact       `json:"regions"`
	SolarGrowthPct float64                     `json:"solar_growth_pct,omitempty"`
	CropLosses     map[models.CropType]float64 `json:"crop_losses,omitempty"`
}

// CalculateImpact sizes the infrastructure investment the stressed regions
// need, totals their annual economic exposure, and derives the financial
// case. An empty region list yields an all-zero report; an unrecognized
// simulation type is an error.
func (e *Engine) CalculateImpact(req ImpactRequest) (*models.EconomicAnalysis, error) {
	if _, err := models.ParseSimulationType(string(req.SimulationType)); err != nil {
		return nil, err
	}

	if len(req.Regions) == 0 {
		return &models.EconomicAnalysis{}, nil
	}

	regions, err := e.fillPopulations(req.Regions)
	if err != nil {
		return nil, err
	}

	var investment, exposure float64
	switch req.SimulationType {
	case models.SimulationEnergy:
		investment, exposure = e.energyImpact(regions, req.SolarGrowthPct)
	case models.SimulationWater:
		investment, exposure, err = e.waterImpact(regions)
	case models.SimulationAgriculture:
		investment, exposure, err = e.agricultureImpact(regions, req.CropLosses)
	}
	if err != nil {
		return nil, err
	}

	return e.financialCase(req.SimulationType, investment, exposure), nil
}

// fillPopulations substitutes reference populations for regions submitted
// with a zero population. A zero-population region absent from the reference
// tables is an explicit error, never a silent zero.
func (e *Engine) fillPopulations(regions []models.RegionImpact) ([]models.RegionImpact, error) {
	filled := make([]models.RegionImpact, len(regions))
	for i, r := range regions {
		if r.Population == 0 {
			profile, ok := e.assumptions.Regions[r.Region]
			if !ok {
				return nil, &models.UnknownRegionError{Region: r.Region}
			}
			r.Population = profile.Population
		}
		filled[i] = r
	}
	return filled, nil
}

func (e *Engine) energyImpact(regions []models.RegionImpact, solarGrowthPct float64) (investment, exposure float64) {
	a := &e.assumptions

	for _, r := range regions {
		if r.StressLevel > stressTriggerLevel {
			investment += a.GridUpgrade(r.Region, (r.StressLevel-stressHeadroomBase)*100)
		}
		exposure += a.PowerOutageCost(r.Population, r.StressLevel*a.OutageHoursPerStressYear)
	}

	if solarGrowthPct > 0 {
		addedMW := a.BaselineRegionCapacityMW * (solarGrowthPct / 100) * float64(len(regions))
		investment += a.SolarInvestment(addedMW)
	}

	return investment, exposure
}

func (e *Engine) waterImpact(regions []models.RegionImpact) (investment, exposure float64, err error) {
	a := &e.assumptions

	for _, r := range regions {
		if r.StressLevel > stressTriggerLevel {
			capacity := float64(r.Population) * perCapitaWaterM3PerDay * r.StressLevel
			cost, werr := a.WaterInfrastructure(WaterTreatment, capacity)
			if werr != nil {
				return 0, 0, werr
			}
			investment += cost
		}
		exposure += a.WaterShortageCost(r.Population, r.StressLevel*a.ShortageDaysPerStressYear)
	}

	return investment, exposure, nil
}

func (e *Engine) agricultureImpact(regions []models.RegionImpact, cropLosses map[models.CropType]float64) (investment, exposure float64, err error) {
	a := &e.assumptions

	stressed := 0
	for _, r := range regions {
		if r.StressLevel > stressTriggerLevel {
			stressed++
		}
	}

	if stressed > 0 {
		hectares := float64(stressed) * a.HectaresPerStressedRegion
		cost, ierr := a.IrrigationSystem(hectares, IrrigationDrip)
		if ierr != nil {
			return 0, 0, ierr
		}
		investment += cost
	}

	// Sorted iteration keeps float summation order, and therefore the
	// result, independent of map layout.
	crops := make([]models.CropType, 0, len(cropLosses))
	for crop := range cropLosses {
		crops = append(crops, crop)
	}
	sort.Slice(crops, func(i, j int) bool { return crops[i] < crops[j] })

	for _, crop := range crops {
		loss, cerr := a.CropLoss(cropLosses[crop], crop)
		if cerr != nil {
			return 0, 0, cerr
		}
		exposure += loss
	}

	return investment, exposure, nil
}

// financialCase derives the report metrics from the sized investment and
// annual exposure.
func (e *Engine) financialCase(simType models.SimulationType, investment, exposure float64) *models.EconomicAnalysis {
	a := &e.assumptions

	prevented := exposure * lossReduction[simType]

	cashflows := make([]float64, roiHorizonYears)
	for i := range cashflows {
		cashflows[i] = prevented
	}

	escalation := inactionEscalation[simType]
	var inaction float64
	for y := 0; y < inactionYears; y++ {
		inaction += exposure * math.Pow(escalation, float64(y))
	}

	payback := PaybackPeriodMonths(investment, prevented)
	if !math.IsInf(payback, 1) {
		payback = math.Round(payback)
	}

	return &models.EconomicAnalysis{
		InfrastructureInvestmentUSD: math.Round(investment),
		AnnualSavingsUSD:            math.Round(prevented),
		AnnualCostsPreventedUSD:     math.Round(prevented),
		ROI5Year:                    roundPct(ROI(investment, prevented, roiHorizonYears, a.DiscountRate)),
		PaybackPeriodMonths:         models.NullableFloat(payback),
		NetPresentValueUSD:          math.Round(NPV(investment, cashflows, a.DiscountRate)),
		OpportunityCost6MoDelayUSD:  math.Round(OpportunityCost(delayMonths, prevented/12, a.MonthlyOpportunityRate)),
		TotalEconomicExposureUSD:    math.Round(exposure),
		CostOfInaction5YearUSD:      math.Round(inaction),
	}
}

// roundPct converts a fraction to a percentage rounded to one decimal.
func roundPct(fraction float64) float64 {
	return math.Round(fraction*1000) / 10
}
