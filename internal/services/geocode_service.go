package services

import (
	"context"

	"yield-platform/internal/catalog"
	"yield-platform/internal/models"
	"yield-platform/pkg/logging"
	"yield-platform/pkg/metrics"
)

// Geocoder resolves coordinates to a free-text locality name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// WeatherProvider fetches current weather conditions.
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (models.WeatherRecord, error)
}

// GeocodeService resolves a lat/lon pair to a district code and a weather
// record. Both provider calls are best-effort: a failed call degrades to a
// null result instead of failing the request.
type GeocodeService struct {
	geocoder Geocoder
	weather  WeatherProvider
	logger   *logging.StructuredLogger
	metrics  *metrics.Collector
}

// GeocodeResult is the outcome of a reverse geocode lookup. DistrictCode is
// nil when no catalog entry matched; MatchedDistrictName then carries the
// raw locality text, if any, so the caller still sees what the geocoder said.
type GeocodeResult struct {
	MatchedDistrictName string               `json:"matched_district_name"`
	DistrictCode        *int                 `json:"district_code"`
	Weather             models.WeatherRecord `json:"weather"`
	RawLat              float64              `json:"raw_lat"`
	RawLon              float64              `json:"raw_lon"`
}

// NewGeocodeService creates a new geocode service
func NewGeocodeService(geocoder Geocoder, weather WeatherProvider, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *GeocodeService {
	return &GeocodeService{
		geocoder: geocoder,
		weather:  weather,
		logger:   logger,
		metrics:  metricsCollector,
	}
}

// Resolve runs the reverse geocode and weather lookups for a coordinate
// pair. It never returns an error: provider failures are logged and mapped
// to the documented null/zero fallbacks.
func (s *GeocodeService) Resolve(ctx context.Context, lat, lon float64) GeocodeResult {
	result := GeocodeResult{
		Weather: models.EmptyWeatherRecord(),
		RawLat:  lat,
		RawLon:  lon,
	}

	locality, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil {
		s.logger.Warn(ctx, "[GEOCODE_DEGRADED] Reverse geocode failed, continuing without district", logging.Fields{
			"lat":   lat,
			"lon":   lon,
			"error": err.Error(),
		})
		locality = ""
	}

	if district, ok := catalog.Match(locality); ok {
		result.MatchedDistrictName = district.Name
		code := district.Code
		result.DistrictCode = &code
		s.metrics.RecordDistrictMatch(true)
	} else {
		result.MatchedDistrictName = locality
		s.metrics.RecordDistrictMatch(false)
	}

	weather, err := s.weather.Current(ctx, lat, lon)
	if err != nil {
		s.logger.Warn(ctx, "[WEATHER_DEGRADED] Weather fetch failed, returning empty record", logging.Fields{
			"lat":   lat,
			"lon":   lon,
			"error": err.Error(),
		})
		weather = models.EmptyWeatherRecord()
	}
	result.Weather = weather

	return result
}
