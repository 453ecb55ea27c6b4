package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

func testClient(baseURL string) *Client {
	return &Client{
		key:        "test-key",
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logging.NewStructuredLogger("test", "0.0.0", logging.ErrorLevel),
		metrics:    metrics.NewTestCollector(),
	}
}

func TestClient_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "22.58", r.URL.Query().Get("lat"))
		assert.Equal(t, "88.36", r.URL.Query().Get("lon"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{"main": {"temp": 30, "temp_min": 25, "temp_max": 35, "humidity": 80}, "rain": {"1h": 2.5}}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	record, err := c.Current(context.Background(), 22.58, 88.36)
	require.NoError(t, err)

	require.NotNil(t, record.AvgTemp)
	assert.Equal(t, 30.0, *record.AvgTemp)
	require.NotNil(t, record.HighTemp)
	assert.Equal(t, 35.0, *record.HighTemp)
	require.NotNil(t, record.LowTemp)
	assert.Equal(t, 25.0, *record.LowTemp)
	assert.Equal(t, 2.5, record.RainfallMm)
	require.NotNil(t, record.HighHumidity)
	assert.Equal(t, 80.0, *record.HighHumidity)
}

func TestClient_Current_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	record, err := c.Current(context.Background(), 22.58, 88.36)
	assert.Error(t, err)

	// The degraded record is still safe to use downstream.
	assert.Nil(t, record.AvgTemp)
	assert.Equal(t, 0.0, record.RainfallMm)
}

func TestClient_Current_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>gateway timeout</html>`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Current(context.Background(), 22.58, 88.36)
	assert.Error(t, err)
}

func TestClient_Current_MissingKey(t *testing.T) {
	c := testClient("http://unused")
	c.key = ""

	_, err := c.Current(context.Background(), 22.58, 88.36)
	assert.Error(t, err)
}
