package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// Client calls the MapmyIndia reverse geocoding API and extracts a locality
// name from its response. The response schema varies across API versions, so
// extraction is a recursive key search rather than a typed decode.
type Client struct {
	key        string
	baseURL    string
	httpClient *http.Client
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewClient creates a reverse geocoding client.
func NewClient(key, baseURL string, timeout time.Duration, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *Client {
	return &Client{
		key:        key,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// ReverseGeocode resolves a lat/lon pair to a free-text locality name.
// An empty string with a nil error means the provider answered but no
// usable locality was found in the payload.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if c.key == "" {
		return "", fmt.Errorf("reverse geocoding is not configured")
	}

	timer := time.Now()
	defer func() {
		c.metrics.ProviderRequestDuration.WithLabelValues("geocode").Observe(time.Since(timer).Seconds())
	}()

	u := fmt.Sprintf("%s/advancedmaps/v1/%s/rev_geocode", c.baseURL, url.PathEscape(c.key))
	params := url.Values{
		"lat": {fmt.Sprintf("%g", lat)},
		"lng": {fmt.Sprintf("%g", lon)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordProviderError("geocode", "request_error")
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordProviderError("geocode", "status_error")
		return "", fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var payload interface{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.RecordProviderError("geocode", "decode_error")
		return "", fmt.Errorf("decode geocoder response: %w", err)
	}

	locality := LocalityName(payload)

	c.logger.Debug(ctx, "[GEOCODE] Reverse geocode completed", logging.Fields{
		"lat":      lat,
		"lon":      lon,
		"locality": locality,
	})

	return locality, nil
}
