package openweather

import (
	"strconv"

	"yield-platform/internal/models"
)

// Normalize extracts the six weather fields from a raw OpenWeather payload.
// Each field follows its own fallback chain:
//
//	avg_temp      <- main.temp
//	high_temp     <- main.temp_max, else main.temp
//	low_temp      <- main.temp_min, else main.temp
//	rainfall_mm   <- rain.1h, else rain.3h, else 0.0
//	high_humidity <- main.humidity
//	low_humidity  <- main.humidity (the provider reports a single value)
//
// Missing or malformed keys yield absent values, never an error.
func Normalize(payload map[string]interface{}) models.WeatherRecord {
	record := models.EmptyWeatherRecord()

	main, _ := payload["main"].(map[string]interface{})

	temp := numberField(main, "temp")
	record.AvgTemp = temp

	if max := numberField(main, "temp_max"); max != nil {
		record.HighTemp = max
	} else {
		record.HighTemp = temp
	}

	if min := numberField(main, "temp_min"); min != nil {
		record.LowTemp = min
	} else {
		record.LowTemp = temp
	}

	humidity := numberField(main, "humidity")
	record.HighHumidity = humidity
	record.LowHumidity = humidity

	if rain, ok := payload["rain"].(map[string]interface{}); ok {
		if v := numberField(rain, "1h"); v != nil {
			record.RainfallMm = *v
		} else if v := numberField(rain, "3h"); v != nil {
			record.RainfallMm = *v
		}
	}

	return record
}

// numberField reads a numeric field from a decoded JSON object, coercing
// numeric strings. Returns nil for anything else.
func numberField(obj map[string]interface{}, key string) *float64 {
	if obj == nil {
		return nil
	}
	switch v := obj[key].(type) {
	case float64:
		return &v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
