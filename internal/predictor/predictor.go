package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"yield-platform/internal/models"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// Predictor produces a yield estimate from a feature vector. The underlying
// model is an opaque pre-trained artifact; implementations only marshal the
// vector into the shape the artifact expects and hand back its output.
type Predictor interface {
	Predict(ctx context.Context, vector *models.FeatureVector) (float64, error)
}

// ModelServer calls a model-serving process that has the trained regression
// artifact loaded. The server matches feature columns by position, so the
// request carries the columns and a single row in training order.
type ModelServer struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewModelServer creates a predictor backed by a model-serving endpoint.
func NewModelServer(baseURL string, timeout time.Duration, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ModelServer {
	return &ModelServer{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

type invocationRequest struct {
	DataframeSplit dataframeSplit `json:"dataframe_split"`
}

type dataframeSplit struct {
	Columns []string        `json:"columns"`
	Data    [][]interface{} `json:"data"`
}

type invocationResponse struct {
	Predictions []float64 `json:"predictions"`
}

// Predict sends the feature vector to the model server and returns its
// single output value.
func (m *ModelServer) Predict(ctx context.Context, vector *models.FeatureVector) (float64, error) {
	timer := time.Now()
	defer func() {
		m.metrics.PredictionDuration.Observe(time.Since(timer).Seconds())
	}()

	body, err := json.Marshal(invocationRequest{
		DataframeSplit: dataframeSplit{
			Columns: vector.Columns(),
			Data:    [][]interface{}{vector.Row()},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("marshal feature vector: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/invocations", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		m.metrics.RecordPredictionError("request_error")
		return 0, fmt.Errorf("model server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		m.metrics.RecordPredictionError("status_error")
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("model server returned status %d: %s", resp.StatusCode, detail)
	}

	var out invocationResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		m.metrics.RecordPredictionError("decode_error")
		return 0, fmt.Errorf("decode model server response: %w", err)
	}

	if len(out.Predictions) == 0 {
		m.metrics.RecordPredictionError("empty_response")
		return 0, fmt.Errorf("model server returned no predictions")
	}

	m.logger.Debug(ctx, "[PREDICT] Model server invoked", logging.Fields{
		"prediction":  out.Predictions[0],
		"duration_ms": time.Since(timer).Milliseconds(),
	})

	return out.Predictions[0], nil
}
