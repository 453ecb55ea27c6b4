package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"yield-platform/internal/models"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// BatchService scores a CSV file of prediction inputs through the same
// feature builder and model path the API uses.
type BatchService struct {
	predictions *PredictionService
	logger      *logging.StructuredLogger
	metrics     *metrics.Collector
}

// BatchResult contains batch scoring statistics
type BatchResult struct {
	TotalRows      int
	SuccessfulRows int
	FailedRows     int
	Duration       time.Duration
	Predictions    []BatchPrediction
	Errors         []string
}

// BatchPrediction is one scored row.
type BatchPrediction struct {
	Row            int
	DistrictCode   int
	CropCode       int
	PredictedYield float64
}

// NewBatchService creates a new batch scoring service
func NewBatchService(predictions *PredictionService, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *BatchService {
	return &BatchService{
		predictions: predictions,
		logger:      logger,
		metrics:     metricsCollector,
	}
}

// ScoreFile reads a CSV file whose header row uses the predict form field
// names (State_Code, District_Code, ..., Low_Humidity) and scores every
// row. Row-level failures are collected, not fatal.
func (s *BatchService) ScoreFile(ctx context.Context, path string) (*BatchResult, error) {
	startTime := time.Now()

	s.logger.Info(ctx, "[BATCH_START] Starting batch scoring", logging.Fields{
		"path": path,
	})

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	result := &BatchResult{
		Errors: make([]string, 0),
	}

	for row := 1; ; row++ {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.TotalRows++
			result.FailedRows++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		result.TotalRows++

		form := url.Values{}
		for i, name := range header {
			if i < len(fields) {
				form.Set(name, fields[i])
			}
		}

		in, err := models.ParsePredictionForm(form)
		if err != nil {
			result.FailedRows++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		yield, err := s.predictions.Predict(ctx, in)
		if err != nil {
			result.FailedRows++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: prediction failed: %v", row, err))
			continue
		}

		result.SuccessfulRows++
		result.Predictions = append(result.Predictions, BatchPrediction{
			Row:            row,
			DistrictCode:   in.DistrictCode,
			CropCode:       in.CropCode,
			PredictedYield: yield,
		})
	}

	result.Duration = time.Since(startTime)

	s.logger.Info(ctx, "[BATCH_COMPLETE] Batch scoring completed", logging.Fields{
		"total_rows":       result.TotalRows,
		"successful_rows":  result.SuccessfulRows,
		"failed_rows":      result.FailedRows,
		"duration_seconds": result.Duration.Seconds(),
	})

	return result, nil
}
