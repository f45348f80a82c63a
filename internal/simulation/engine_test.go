package simulation

import (
	"math"
	"reflect"
	"testing"
	"time"

	"resilience-platform/internal/models"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func fp(v float64) *float64 {
	return &v
}

func energyRegion(id string, demand, solar, capMW float64) models.Region {
	return models.Region{
		ID:         id,
		Name:       id,
		Population: 100000,
		Baseline: models.BaselineMetrics{
			EnergyDemandKWh:     fp(demand),
			SolarGenerationKWh:  fp(solar),
			InstalledCapacityMW: fp(capMW),
		},
	}
}

func waterRegion(id string, demand, supply float64) models.Region {
	return models.Region{
		ID:         id,
		Name:       id,
		Population: 100000,
		Baseline: models.BaselineMetrics{
			WaterDemandM3: fp(demand),
			WaterSupplyM3: fp(supply),
		},
	}
}

func agRegion(id string, yield float64) models.Region {
	return models.Region{
		ID:         id,
		Name:       id,
		Population: 100000,
		Baseline: models.BaselineMetrics{
			CropYieldKg: fp(yield),
		},
	}
}

func oneYear() models.DateRange {
	return models.DateRange{StartDate: day(2025, 1, 1), EndDate: day(2026, 1, 1)}
}

// TestProjectEnergy_StressBounds verifies every daily stress value stays
// inside [0,1] and never goes NaN, even under extreme growth rates.
func TestProjectEnergy_StressBounds(t *testing.T) {
	regions := []models.Region{
		energyRegion("r1", 500000, 100000, 5),
		energyRegion("r2", 800000, 20000, 1),
	}

	run, err := ProjectEnergy(regions, models.EnergyScenario{
		DateRange:       oneYear(),
		SolarGrowthPct:  50,
		DemandGrowthPct: 40,
	})
	if err != nil {
		t.Fatalf("ProjectEnergy() error = %v", err)
	}

	if len(run.Results) != 2*365 {
		t.Fatalf("len(Results) = %d, want %d", len(run.Results), 2*365)
	}

	for _, r := range run.Results {
		if math.IsNaN(r.Stress) {
			t.Fatalf("stress is NaN for %s on %v", r.RegionID, r.Date)
		}
		if r.Stress < 0 || r.Stress > 1 {
			t.Fatalf("stress %v out of [0,1] for %s on %v", r.Stress, r.RegionID, r.Date)
		}
	}
}

// TestProjectEnergy_Deterministic verifies two runs over the same inputs
// produce identical output despite the parallel fan-out.
func TestProjectEnergy_Deterministic(t *testing.T) {
	regions := []models.Region{
		energyRegion("alpha", 400000, 90000, 4),
		energyRegion("beta", 350000, 60000, 3),
		energyRegion("gamma", 275000, 30000, 2),
		energyRegion("delta", 120000, 15000, 1),
	}
	sc := models.EnergyScenario{
		DateRange:       oneYear(),
		SolarGrowthPct:  12,
		DemandGrowthPct: 3,
	}

	first, err := ProjectEnergy(regions, sc)
	if err != nil {
		t.Fatalf("ProjectEnergy() error = %v", err)
	}

	second, err := ProjectEnergy(regions, sc)
	if err != nil {
		t.Fatalf("ProjectEnergy() error = %v", err)
	}

	if !reflect.DeepEqual(first.Results, second.Results) {
		t.Error("daily results differ between identical runs")
	}
	if !reflect.DeepEqual(first.Summary, second.Summary) {
		t.Error("summaries differ between identical runs")
	}
}

// TestProjectEnergy_SolarCapacityCap verifies solar output never exceeds
// installed capacity at the derated factor.
func TestProjectEnergy_SolarCapacityCap(t *testing.T) {
	regions := []models.Region{energyRegion("r1", 500000, 100000, 1)}

	run, err := ProjectEnergy(regions, models.EnergyScenario{
		DateRange:      oneYear(),
		SolarGrowthPct: 30,
	})
	if err != nil {
		t.Fatalf("ProjectEnergy() error = %v", err)
	}

	solarCap := 1 * 24 * solarCapacityFactor
	for _, r := range run.Results {
		if r.SupplyKWh == nil {
			t.Fatal("SupplyKWh should not be nil")
		}
		if *r.SupplyKWh > solarCap+1e-9 {
			t.Fatalf("solar %v exceeds installed capacity cap %v", *r.SupplyKWh, solarCap)
		}
	}
}

func TestProjectEnergy_MissingBaseline(t *testing.T) {
	regions := []models.Region{
		energyRegion("ok", 400000, 90000, 4),
		waterRegion("bad", 50000, 60000),
	}

	_, err := ProjectEnergy(regions, models.EnergyScenario{DateRange: oneYear()})
	if err == nil {
		t.Fatal("ProjectEnergy() should reject a region without energy baseline")
	}

	scErr, ok := err.(*models.InvalidScenarioError)
	if !ok {
		t.Fatalf("error type = %T, want *InvalidScenarioError", err)
	}
	if scErr.RegionID != "bad" {
		t.Errorf("RegionID = %v, want bad", scErr.RegionID)
	}
}

func TestProjectEnergy_InvalidRange(t *testing.T) {
	regions := []models.Region{energyRegion("r1", 400000, 90000, 4)}

	_, err := ProjectEnergy(regions, models.EnergyScenario{
		DateRange: models.DateRange{StartDate: day(2025, 6, 1), EndDate: day(2025, 1, 1)},
	})
	if err == nil {
		t.Fatal("ProjectEnergy() should reject an inverted range")
	}
	if _, ok := err.(*models.InvalidRangeError); !ok {
		t.Errorf("error type = %T, want *InvalidRangeError", err)
	}
}

// TestProjectWater_ZeroBaselines verifies zero demand yields zero stress,
// not NaN.
func TestProjectWater_ZeroBaselines(t *testing.T) {
	regions := []models.Region{waterRegion("r1", 0, 0)}

	run, err := ProjectWater(regions, models.WaterScenario{DateRange: oneYear()})
	if err != nil {
		t.Fatalf("ProjectWater() error = %v", err)
	}

	for _, r := range run.Results {
		if r.Stress != 0 {
			t.Fatalf("stress = %v, want 0 for zero baselines", r.Stress)
		}
	}

	if run.Summary.AvgStress != 0 || run.Summary.MaxStress != 0 {
		t.Errorf("summary stress = (%v, %v), want zeros",
			run.Summary.AvgStress, run.Summary.MaxStress)
	}
}

// TestProjectWater_StressDirection verifies that drier scenarios raise
// stress relative to a neutral run.
func TestProjectWater_StressDirection(t *testing.T) {
	regions := []models.Region{waterRegion("r1", 90000, 100000)}
	base := models.WaterScenario{DateRange: oneYear()}

	neutral, err := ProjectWater(regions, base)
	if err != nil {
		t.Fatalf("ProjectWater() error = %v", err)
	}

	dry := base
	dry.RainfallChangePct = -30
	drier, err := ProjectWater(regions, dry)
	if err != nil {
		t.Fatalf("ProjectWater() error = %v", err)
	}

	if drier.Summary.AvgStress <= neutral.Summary.AvgStress {
		t.Errorf("drier avg stress %v should exceed neutral %v",
			drier.Summary.AvgStress, neutral.Summary.AvgStress)
	}

	conserving := dry
	conserving.ConservationRatePct = 25
	relieved, err := ProjectWater(regions, conserving)
	if err != nil {
		t.Fatalf("ProjectWater() error = %v", err)
	}

	if relieved.Summary.AvgStress >= drier.Summary.AvgStress {
		t.Errorf("conservation avg stress %v should be below %v",
			relieved.Summary.AvgStress, drier.Summary.AvgStress)
	}
}

func TestProjectAgriculture_YieldChange(t *testing.T) {
	regions := []models.Region{agRegion("r1", 10000)}

	run, err := ProjectAgriculture(regions, models.AgricultureScenario{
		DateRange:          oneYear(),
		RainfallChangePct:  -20,
		TemperatureChangeC: 2,
		Crop:               models.CropCoffee,
	})
	if err != nil {
		t.Fatalf("ProjectAgriculture() error = %v", err)
	}

	// climate factor: (1 - 0.2*0.4) * (1 - 2*0.06) = 0.92 * 0.88
	climate := 0.92 * 0.88

	for _, r := range run.Results {
		if r.YieldKg == nil || r.YieldChangePct == nil {
			t.Fatal("yield fields should not be nil")
		}
		seasonal := seasonalMultiplier(r.Date)
		want := 10000 * climate * seasonal
		if math.Abs(*r.YieldKg-want) > 1e-6 {
			t.Fatalf("yield = %v, want %v on %v", *r.YieldKg, want, r.Date)
		}
		if r.Stress < 0 || r.Stress > 1 {
			t.Fatalf("stress %v out of [0,1]", r.Stress)
		}
	}
}

func TestProjectAgriculture_UnknownCrop(t *testing.T) {
	regions := []models.Region{agRegion("r1", 10000)}

	_, err := ProjectAgriculture(regions, models.AgricultureScenario{
		DateRange: oneYear(),
		Crop:      models.CropType("wheat"),
	})
	if err == nil {
		t.Fatal("ProjectAgriculture() should reject unknown crop")
	}
	if _, ok := err.(*models.UnknownCropError); !ok {
		t.Errorf("error type = %T, want *UnknownCropError", err)
	}
}

// TestSummarize_Ranking verifies descending average-stress order with ties
// broken by region id, and the top-five cap.
func TestSummarize_Ranking(t *testing.T) {
	dr := models.DateRange{StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 3)}

	regions := []models.Region{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}, {ID: "f"},
	}

	stress := func(levels ...float64) []models.DailyResult {
		out := make([]models.DailyResult, len(levels))
		for i, s := range levels {
			out[i] = models.DailyResult{Date: dr.StartDate.AddDate(0, 0, i), Stress: s}
		}
		return out
	}

	perRegion := [][]models.DailyResult{
		stress(0.2, 0.2), // a
		stress(0.8, 0.8), // b
		stress(0.5, 0.5), // c
		stress(0.8, 0.8), // d: ties with b, id breaks the tie
		stress(0.1, 0.1), // e
		stress(0.3, 0.3), // f
	}

	summary := summarize(models.SimulationEnergy, regions, dr, perRegion)

	if len(summary.TopRegions) != 5 {
		t.Fatalf("len(TopRegions) = %d, want 5", len(summary.TopRegions))
	}

	wantOrder := []string{"b", "d", "c", "f", "a"}
	for i, want := range wantOrder {
		if summary.TopRegions[i].RegionID != want {
			t.Errorf("TopRegions[%d] = %v, want %v", i, summary.TopRegions[i].RegionID, want)
		}
	}

	// b and d each had two days above the 0.60 threshold
	if summary.CriticalDays != 4 {
		t.Errorf("CriticalDays = %d, want 4", summary.CriticalDays)
	}
	if summary.MaxStress != 0.8 {
		t.Errorf("MaxStress = %v, want 0.8", summary.MaxStress)
	}
}

func TestSummarize_EmptyRun(t *testing.T) {
	dr := models.DateRange{StartDate: day(2025, 1, 1), EndDate: day(2025, 1, 2)}

	summary := summarize(models.SimulationWater, nil, dr, nil)

	if summary.AvgStress != 0 || summary.MaxStress != 0 || summary.CriticalDays != 0 {
		t.Errorf("empty run should produce zero stress summary, got %+v", summary)
	}
	if summary.RegionCount != 0 {
		t.Errorf("RegionCount = %d, want 0", summary.RegionCount)
	}
}

func TestSeasonalMultiplier_Bounds(t *testing.T) {
	for d := 0; d < 366; d++ {
		m := seasonalMultiplier(day(2025, 1, 1).AddDate(0, 0, d))
		if m < 0.85-1e-9 || m > 1.15+1e-9 {
			t.Fatalf("seasonal multiplier %v out of [0.85, 1.15] on day %d", m, d)
		}
	}
}

func TestClampStress(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.37, 0.37},
		{1, 1},
		{1.8, 1},
		{math.NaN(), 0},
	}

	for _, tt := range tests {
		if got := clampStress(tt.in); got != tt.want {
			t.Errorf("clampStress(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
