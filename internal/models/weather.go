package models

// WeatherRecord is the six-field weather summary attached to a prediction
// request. Built fresh per request from the weather provider payload and
// never persisted. NULL values represented as pointers; rainfall always
// has a value, defaulting to 0.0.
type WeatherRecord struct {
	AvgTemp      *float64 `json:"avg_temp"`
	HighTemp     *float64 `json:"high_temp"`
	LowTemp      *float64 `json:"low_temp"`
	RainfallMm   float64  `json:"rainfall_mm"`
	HighHumidity *float64 `json:"high_humidity"`
	LowHumidity  *float64 `json:"low_humidity"`
}

// EmptyWeatherRecord is the degraded record used when the weather provider
// is unreachable or its payload is unusable: all temperatures and
// humidities absent, zero rainfall.
func EmptyWeatherRecord() WeatherRecord {
	return WeatherRecord{RainfallMm: 0.0}
}

// ApplyTo copies the record's values onto the weather fields of a
// prediction input, treating absent values as 0.0 the same way the form
// defaults do.
func (w WeatherRecord) ApplyTo(in *PredictionInput) {
	in.HighTemp = orZero(w.HighTemp)
	in.LowTemp = orZero(w.LowTemp)
	in.AvgTemp = orZero(w.AvgTemp)
	in.Rainfall = w.RainfallMm
	in.HighHumidity = orZero(w.HighHumidity)
	in.LowHumidity = orZero(w.LowHumidity)
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0.0
	}
	return *v
}
