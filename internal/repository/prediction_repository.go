package repository

import (
	"context"
	"fmt"

	"yield-platform/internal/models"
	"yield-platform/pkg/database"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// PredictionRepository provides data access for the prediction history store
type PredictionRepository interface {
	InsertPrediction(ctx context.Context, record *models.PredictionRecord) error
	ListPredictions(ctx context.Context, filter PredictionFilter) ([]*models.PredictionRecord, int, error)
	HealthCheck(ctx context.Context) error
}

// PredictionFilter defines filters for querying prediction history
type PredictionFilter struct {
	DistrictCode *int
	CropCode     *int
	Limit        int
	Offset       int
}

// predictionRepository implements PredictionRepository
type predictionRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewPredictionRepository creates a new prediction repository
func NewPredictionRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) PredictionRepository {
	return &predictionRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// InsertPrediction records one served prediction
func (r *predictionRepository) InsertPrediction(ctx context.Context, record *models.PredictionRecord) error {
	query := `
		INSERT INTO predictions (
			state_code, district_code, crop_code, season_code,
			area_hectares, production, year_numeric,
			predicted_yield, latency_ms, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, "insert_prediction", query,
		record.StateCode,
		record.DistrictCode,
		record.CropCode,
		record.SeasonCode,
		record.AreaHectares,
		record.Production,
		record.YearNumeric,
		record.PredictedYield,
		record.LatencyMs,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert prediction: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_INSERT_PREDICTION] Prediction recorded", logging.Fields{
		"district_code":   record.DistrictCode,
		"crop_code":       record.CropCode,
		"predicted_yield": record.PredictedYield,
	})

	return nil
}

// ListPredictions retrieves prediction history with filtering and pagination
func (r *predictionRepository) ListPredictions(ctx context.Context, filter PredictionFilter) ([]*models.PredictionRecord, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.DistrictCode != nil {
		where += fmt.Sprintf(" AND district_code = $%d", argIdx)
		args = append(args, *filter.DistrictCode)
		argIdx++
	}

	if filter.CropCode != nil {
		where += fmt.Sprintf(" AND crop_code = $%d", argIdx)
		args = append(args, *filter.CropCode)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM predictions " + where

	var total int
	if err := r.db.GetContext(ctx, "count_predictions", &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count predictions: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, state_code, district_code, crop_code, season_code,
		       area_hectares, production, year_numeric,
		       predicted_yield, latency_ms, created_at
		FROM predictions
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.Limit, filter.Offset)

	records := []*models.PredictionRecord{}
	if err := r.db.SelectContext(ctx, "list_predictions", &records, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list predictions: %w", err)
	}

	return records, total, nil
}

// HealthCheck verifies database connectivity
func (r *predictionRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}
