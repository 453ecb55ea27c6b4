package predictor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yield-platform/internal/models"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

func testVector() *models.FeatureVector {
	return models.BuildFeatures(&models.PredictionInput{
		StateCode:     0,
		DistrictCode:  60,
		CropCode:      25,
		SeasonCode:    1,
		MajorSoilType: "Alluvial", SecondMajorSoilType: "Clay", IrrigationUsed: "Yes",
		AreaHectares: 120.5, Production: 340, YearNumeric: 2019,
		HighTemp: 35, LowTemp: 25, AvgTemp: 30,
		Rainfall: 2.5, HighHumidity: 80, LowHumidity: 80,
	})
}

func testServer(t *testing.T, handler http.HandlerFunc) *ModelServer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &ModelServer{
		baseURL:    srv.URL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel),
		metrics:    metrics.NewTestCollector(),
	}
}

func TestModelServer_Predict(t *testing.T) {
	m := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/invocations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req invocationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		require.Len(t, req.DataframeSplit.Columns, 23)
		assert.Equal(t, "State_Code", req.DataframeSplit.Columns[0])
		assert.Equal(t, "Humidity_Range", req.DataframeSplit.Columns[22])

		require.Len(t, req.DataframeSplit.Data, 1)
		row := req.DataframeSplit.Data[0]
		require.Len(t, row, 23)

		// The untrained sentinel columns travel as JSON null.
		assert.Nil(t, row[11])
		assert.Nil(t, row[12])
		assert.Nil(t, row[13])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions": [1.8342]}`))
	})

	got, err := m.Predict(context.Background(), testVector())
	require.NoError(t, err)
	assert.Equal(t, 1.8342, got)
}

func TestModelServer_Predict_ArtifactRejectsInput(t *testing.T) {
	m := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "shape mismatch"}`))
	})

	_, err := m.Predict(context.Background(), testVector())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shape mismatch")
}

func TestModelServer_Predict_EmptyPredictions(t *testing.T) {
	m := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"predictions": []}`))
	})

	_, err := m.Predict(context.Background(), testVector())
	assert.Error(t, err)
}

func TestModelServer_Predict_Unreachable(t *testing.T) {
	m := testServer(t, func(w http.ResponseWriter, _ *http.Request) {})
	m.baseURL = "http://127.0.0.1:1"

	_, err := m.Predict(context.Background(), testVector())
	assert.Error(t, err)
}
