package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"yield-platform/internal/config"
	"yield-platform/internal/predictor"
	"yield-platform/internal/repository"
	"yield-platform/internal/services"
	"yield-platform/pkg/database"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	inputFile := flag.String("input", "", "CSV file of prediction inputs to score")
	showRows := flag.Bool("show-rows", false, "Print per-row predictions")
	flag.Parse()

	if *inputFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: score -input <file.csv> [-show-rows]")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("yield-scorer", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[SCORER_START] Starting batch scoring", logging.Fields{
		"version":      "1.0.0",
		"input":        *inputFile,
		"model_server": cfg.Model.URL,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("yield_scorer")

	// Initialize the optional prediction history store
	var historyRepo repository.PredictionRepository
	if cfg.History.Enabled {
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
			logger.Fatal(ctx, "[SCORER_ERROR] Failed to connect to database", logging.Fields{}, err)
		}
		defer db.Close()

		historyRepo = repository.NewPredictionRepository(db, logger, metricsCollector)
	}

	// Initialize services
	modelServer := predictor.NewModelServer(cfg.Model.URL, cfg.Model.Timeout, logger, metricsCollector)
	predictionService := services.NewPredictionService(modelServer, historyRepo, logger, metricsCollector)
	batchService := services.NewBatchService(predictionService, logger, metricsCollector)

	// Score the file
	result, err := batchService.ScoreFile(ctx, *inputFile)
	if err != nil {
		logger.Fatal(ctx, "[SCORING_ERROR] Batch scoring failed", logging.Fields{
			"error": err.Error(),
		}, err)
	}

	// Print results
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("BATCH SCORING COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total Rows:      %d\n", result.TotalRows)
	fmt.Printf("Successful Rows: %d\n", result.SuccessfulRows)
	fmt.Printf("Failed Rows:     %d\n", result.FailedRows)
	fmt.Printf("Duration:        %v\n", result.Duration)
	if result.Duration.Seconds() > 0 {
		fmt.Printf("Rows/Second:     %.2f\n", float64(result.SuccessfulRows)/result.Duration.Seconds())
	}

	if *showRows {
		fmt.Println("\nPredictions:")
		for _, p := range result.Predictions {
			fmt.Printf("  row %-5d district=%-3d crop=%-3d yield=%.4f\n", p.Row, p.DistrictCode, p.CropCode, p.PredictedYield)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(result.Errors))
		for i, errMsg := range result.Errors {
			if i < 10 {
				fmt.Printf("  - %s\n", errMsg)
			}
		}
		if len(result.Errors) > 10 {
			fmt.Printf("  ... and %d more errors\n", len(result.Errors)-10)
		}
	}

	logger.Info(ctx, "[SCORER_COMPLETE] Batch scoring completed", logging.Fields{
		"total_rows":       result.TotalRows,
		"successful_rows":  result.SuccessfulRows,
		"failed_rows":      result.FailedRows,
		"duration_seconds": result.Duration.Seconds(),
	})
}
