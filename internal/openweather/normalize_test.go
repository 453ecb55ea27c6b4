package openweather

import (
	"encoding/json"
	"testing"

	"yield-platform/internal/models"
)

func payload(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return m
}

func checkPtr(t *testing.T, name string, got *float64, want *float64) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Errorf("%s = %v, want nil", name, *got)
		}
		return
	}
	if got == nil {
		t.Errorf("%s = nil, want %v", name, *want)
		return
	}
	if *got != *want {
		t.Errorf("%s = %v, want %v", name, *got, *want)
	}
}

func f(v float64) *float64 { return &v }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.WeatherRecord
	}{
		{
			name: "complete payload with 1h rain",
			raw:  `{"main": {"temp": 30, "temp_min": 25, "temp_max": 35, "humidity": 80}, "rain": {"1h": 2.5}}`,
			want: models.WeatherRecord{
				AvgTemp: f(30), HighTemp: f(35), LowTemp: f(25),
				RainfallMm: 2.5, HighHumidity: f(80), LowHumidity: f(80),
			},
		},
		{
			name: "empty payload",
			raw:  `{}`,
			want: models.WeatherRecord{RainfallMm: 0.0},
		},
		{
			name: "temp only fills min and max",
			raw:  `{"main": {"temp": 28}}`,
			want: models.WeatherRecord{
				AvgTemp: f(28), HighTemp: f(28), LowTemp: f(28),
				RainfallMm: 0.0,
			},
		},
		{
			name: "3h rain when 1h absent",
			raw:  `{"main": {"temp": 22}, "rain": {"3h": 7.1}}`,
			want: models.WeatherRecord{
				AvgTemp: f(22), HighTemp: f(22), LowTemp: f(22),
				RainfallMm: 7.1,
			},
		},
		{
			name: "1h preferred over 3h",
			raw:  `{"rain": {"1h": 1.0, "3h": 9.0}}`,
			want: models.WeatherRecord{RainfallMm: 1.0},
		},
		{
			name: "rain value as numeric string",
			raw:  `{"rain": {"1h": "2.5"}}`,
			want: models.WeatherRecord{RainfallMm: 2.5},
		},
		{
			name: "humidity without temps",
			raw:  `{"main": {"humidity": 65}}`,
			want: models.WeatherRecord{
				HighHumidity: f(65), LowHumidity: f(65),
				RainfallMm: 0.0,
			},
		},
		{
			name: "malformed main section",
			raw:  `{"main": "very hot", "rain": {"1h": 3}}`,
			want: models.WeatherRecord{RainfallMm: 3.0},
		},
		{
			name: "malformed rain section",
			raw:  `{"main": {"temp": 20}, "rain": "drizzle"}`,
			want: models.WeatherRecord{
				AvgTemp: f(20), HighTemp: f(20), LowTemp: f(20),
				RainfallMm: 0.0,
			},
		},
		{
			name: "non-numeric temp is treated as absent",
			raw:  `{"main": {"temp": "warm", "temp_max": 31}}`,
			want: models.WeatherRecord{
				HighTemp:   f(31),
				RainfallMm: 0.0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(payload(t, tt.raw))

			checkPtr(t, "AvgTemp", got.AvgTemp, tt.want.AvgTemp)
			checkPtr(t, "HighTemp", got.HighTemp, tt.want.HighTemp)
			checkPtr(t, "LowTemp", got.LowTemp, tt.want.LowTemp)
			checkPtr(t, "HighHumidity", got.HighHumidity, tt.want.HighHumidity)
			checkPtr(t, "LowHumidity", got.LowHumidity, tt.want.LowHumidity)

			if got.RainfallMm != tt.want.RainfallMm {
				t.Errorf("RainfallMm = %v, want %v", got.RainfallMm, tt.want.RainfallMm)
			}
		})
	}
}

func TestNormalize_NilPayload(t *testing.T) {
	got := Normalize(nil)

	if got.AvgTemp != nil || got.HighTemp != nil || got.LowTemp != nil {
		t.Error("nil payload should yield absent temperatures")
	}
	if got.RainfallMm != 0.0 {
		t.Errorf("RainfallMm = %v, want 0.0", got.RainfallMm)
	}
}
