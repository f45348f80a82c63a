package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"resilience-platform/internal/config"
	"resilience-platform/internal/models"
	"resilience-platform/internal/repository"
	"resilience-platform/internal/services"
	"resilience-platform/pkg/database"
	"resilience-platform/pkg/logging"
	"resilience-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	simTypeFlag := flag.String("type", "energy", "Simulation type: energy, water, or agriculture")
	startFlag := flag.String("start", "", "Scenario start date (YYYY-MM-DD)")
	endFlag := flag.String("end", "", "Scenario end date (YYYY-MM-DD)")
	regionsFile := flag.String("regions", "", "JSON file of region baselines to load before running")

	solarGrowth := flag.Float64("solar-growth", 0, "Annual solar growth %")
	demandGrowth := flag.Float64("demand-growth", 0, "Annual demand growth %")
	rainfallChange := flag.Float64("rainfall-change", 0, "Rainfall change %")
	conservationRate := flag.Float64("conservation-rate", 0, "Water conservation rate %")
	temperatureChange := flag.Float64("temperature-change", 0, "Temperature change in degrees C")
	irrigationImprovement := flag.Float64("irrigation-improvement", 0, "Irrigation improvement %")
	cropFlag := flag.String("crop", "all", "Crop type: coffee, sugar_cane, corn, beans, or all")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("resilience-simulate", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()

	dateRange, err := parseDateRange(*startFlag, *endFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid date range: %v\n", err)
		os.Exit(1)
	}

	logger.Info(ctx, "[SIMULATE_START] Starting batch scenario run", logging.Fields{
		"version":         "1.0.0",
		"simulation_type": *simTypeFlag,
		"start_date":      dateRange.StartDate.Format("2006-01-02"),
		"end_date":        dateRange.EndDate.Format("2006-01-02"),
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("resilience_simulate")

	// Initialize database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[SIMULATE_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	// Initialize repository and service
	simRepo := repository.NewSimulationRepository(db, logger, metricsCollector)
	simService := services.NewSimulationService(simRepo, logger, metricsCollector)

	// Load region reference data if supplied
	if *regionsFile != "" {
		count, err := loadRegions(ctx, simRepo, *regionsFile)
		if err != nil {
			logger.Fatal(ctx, "[SIMULATE_ERROR] Failed to load regions", logging.Fields{
				"file": *regionsFile,
			}, err)
		}
		fmt.Printf("Loaded %d regions from %s\n", count, *regionsFile)
	}

	// Run the requested scenario
	var run *models.SimulationRun

	switch models.SimulationType(*simTypeFlag) {
	case models.SimulationEnergy:
		run, err = simService.RunEnergy(ctx, models.EnergyScenario{
			DateRange:       dateRange,
			SolarGrowthPct:  *solarGrowth,
			DemandGrowthPct: *demandGrowth,
		})
	case models.SimulationWater:
		run, err = simService.RunWater(ctx, models.WaterScenario{
			DateRange:           dateRange,
			RainfallChangePct:   *rainfallChange,
			ConservationRatePct: *conservationRate,
			DemandGrowthPct:     *demandGrowth,
		})
	case models.SimulationAgriculture:
		crop, cropErr := models.ParseCropType(*cropFlag)
		if cropErr != nil {
			logger.Fatal(ctx, "[SIMULATE_ERROR] Invalid crop", logging.Fields{}, cropErr)
		}
		run, err = simService.RunAgriculture(ctx, models.AgricultureScenario{
			DateRange:                dateRange,
			RainfallChangePct:        *rainfallChange,
			TemperatureChangeC:       *temperatureChange,
			IrrigationImprovementPct: *irrigationImprovement,
			Crop:                     crop,
		})
	default:
		logger.Fatal(ctx, "[SIMULATE_ERROR] Unknown simulation type", logging.Fields{
			"simulation_type": *simTypeFlag,
		}, &models.UnknownSimulationTypeError{Type: *simTypeFlag})
	}

	if err != nil {
		logger.Fatal(ctx, "[SIMULATE_ERROR] Scenario run failed", logging.Fields{
			"simulation_type": *simTypeFlag,
		}, err)
	}

	// Print results
	printSummary(run)

	logger.Info(ctx, "[SIMULATE_COMPLETE] Batch scenario run completed", logging.Fields{
		"run_id":        run.ID,
		"daily_results": len(run.Results),
		"avg_stress":    run.Summary.AvgStress,
	})
}

func parseDateRange(start, end string) (models.DateRange, error) {
	if start == "" || end == "" {
		return models.DateRange{}, fmt.Errorf("both -start and -end are required (YYYY-MM-DD)")
	}

	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("invalid start date: %w", err)
	}

	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return models.DateRange{}, fmt.Errorf("invalid end date: %w", err)
	}

	return models.DateRange{StartDate: startDate, EndDate: endDate}, nil
}

func loadRegions(ctx context.Context, repo repository.SimulationRepository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read regions file: %w", err)
	}

	var regions []models.Region
	if err := json.Unmarshal(data, &regions); err != nil {
		return 0, fmt.Errorf("failed to parse regions file: %w", err)
	}

	for i := range regions {
		if err := repo.CreateRegion(ctx, &regions[i]); err != nil {
			return 0, err
		}
	}

	return len(regions), nil
}

func printSummary(run *models.SimulationRun) {
	s := run.Summary

	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("SIMULATION COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Run ID:          %d\n", run.ID)
	fmt.Printf("Type:            %s\n", s.SimulationType)
	fmt.Printf("Period:          %s to %s (%d days)\n",
		s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"), s.Days)
	fmt.Printf("Regions:         %d\n", s.RegionCount)
	fmt.Printf("Average Stress:  %.4f\n", s.AvgStress)
	fmt.Printf("Maximum Stress:  %.4f\n", s.MaxStress)
	fmt.Printf("Critical Days:   %d\n", s.CriticalDays)

	if len(s.TopRegions) > 0 {
		fmt.Println("\nTop stressed regions:")
		for i, rs := range s.TopRegions {
			fmt.Printf("  %d. %-24s avg=%.4f max=%.4f critical=%d\n",
				i+1, rs.Name, rs.AvgStress, rs.MaxStress, rs.CriticalDays)
		}
	}
}
