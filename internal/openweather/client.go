package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"yield-platform/internal/models"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// Client fetches current weather conditions from the OpenWeather API.
type Client struct {
	key        string
	baseURL    string
	httpClient *http.Client
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewClient creates a weather client.
func NewClient(key, baseURL string, timeout time.Duration, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Client {
	return &Client{
		key:        key,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// Current fetches the current weather at lat/lon and normalizes it into a
// WeatherRecord. Callers decide how to degrade on error; Normalize itself
// never fails on a malformed payload.
func (c *Client) Current(ctx context.Context, lat, lon float64) (models.WeatherRecord, error) {
	if c.key == "" {
		return models.EmptyWeatherRecord(), fmt.Errorf("weather provider is not configured")
	}

	timer := time.Now()
	defer func() {
		c.metrics.ProviderRequestDuration.WithLabelValues("weather").Observe(time.Since(timer).Seconds())
	}()

	params := url.Values{
		"lat":   {fmt.Sprintf("%g", lat)},
		"lon":   {fmt.Sprintf("%g", lon)},
		"appid": {c.key},
		"units": {"metric"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/weather?"+params.Encode(), nil)
	if err != nil {
		return models.EmptyWeatherRecord(), fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordProviderError("weather", "request_error")
		return models.EmptyWeatherRecord(), fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordProviderError("weather", "status_error")
		return models.EmptyWeatherRecord(), fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	var payload map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordProviderError("weather", "decode_error")
		return models.EmptyWeatherRecord(), fmt.Errorf("decode weather response: %w", err)
	}

	record := Normalize(payload)

	c.logger.Debug(ctx, "[WEATHER] Current conditions fetched", logging.Fields{
		"lat":         lat,
		"lon":         lon,
		"rainfall_mm": record.RainfallMm,
	})

	return record, nil
}
