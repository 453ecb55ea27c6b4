package services

import (
	"context"
	"time"

	"yield-platform/internal/models"
	"yield-platform/internal/predictor"
	"yield-platform/internal/repository"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// PredictionService builds feature vectors and serves yield predictions.
type PredictionService struct {
	predictor predictor.Predictor
	history   repository.PredictionRepository // nil when history is disabled
	logger    *logging.StructuredLogger
	metrics   *metrics.Collector
}

// NewPredictionService creates a new prediction service. history may be nil;
// the prediction flow itself never depends on the store.
func NewPredictionService(p predictor.Predictor, history repository.PredictionRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *PredictionService {
	return &PredictionService{
		predictor: p,
		history:   history,
		logger:    logger,
		metrics:   metricsCollector,
	}
}

// Predict engineers the feature vector for a validated input and invokes
// the model. The returned error is a prediction failure to report to the
// caller; it is never fatal to the process.
func (s *PredictionService) Predict(ctx context.Context, in *models.PredictionInput) (float64, error) {
	startTime := time.Now()

	vector := models.BuildFeatures(in)

	yield, err := s.predictor.Predict(ctx, vector)
	if err != nil {
		s.logger.Error(ctx, "[PREDICT_ERROR] Model invocation failed", logging.Fields{
			"district_code": in.DistrictCode,
			"crop_code":     in.CropCode,
		}, err)
		return 0, err
	}

	latency := time.Since(startTime)
	s.metrics.PredictionsTotal.Inc()

	s.logger.Info(ctx, "[PREDICT] Yield prediction served", logging.Fields{
		"district_code":   in.DistrictCode,
		"crop_code":       in.CropCode,
		"season_code":     in.SeasonCode,
		"predicted_yield": yield,
		"duration_ms":     latency.Milliseconds(),
	})

	s.record(ctx, in, yield, latency)

	return yield, nil
}

// record writes the served prediction to the history store. Failures are
// logged and swallowed; history is an observability aid, not part of the
// request contract.
func (s *PredictionService) record(ctx context.Context, in *models.PredictionInput, yield float64, latency time.Duration) {
	if s.history == nil {
		return
	}

	record := &models.PredictionRecord{
		StateCode:      in.StateCode,
		DistrictCode:   in.DistrictCode,
		CropCode:       in.CropCode,
		SeasonCode:     in.SeasonCode,
		AreaHectares:   in.AreaHectares,
		Production:     in.Production,
		YearNumeric:    in.YearNumeric,
		PredictedYield: yield,
		LatencyMs:      latency.Milliseconds(),
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.history.InsertPrediction(ctx, record); err != nil {
		s.logger.Error(ctx, "[HISTORY_ERROR] Failed to record prediction", logging.Fields{
			"district_code": in.DistrictCode,
			"crop_code":     in.CropCode,
		}, err)
	}
}

// History retrieves prediction history with filtering. Returns an empty
// page when the history store is disabled.
func (s *PredictionService) History(ctx context.Context, filter repository.PredictionFilter) ([]*models.PredictionRecord, int, error) {
	if s.history == nil {
		return []*models.PredictionRecord{}, 0, nil
	}
	return s.history.ListPredictions(ctx, filter)
}

// HistoryEnabled reports whether the history store is configured.
func (s *PredictionService) HistoryEnabled() bool {
	return s.history != nil
}
