package models

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"yield-platform/internal/catalog"
)

// PredictionInput holds the parsed and validated form fields of a predict
// request. The six weather fields are filled client-side from a prior
// reverse_geocode call and default to 0.0 when absent.
type PredictionInput struct {
	StateCode           int     `json:"state_code"`
	DistrictCode        int     `json:"district_code"`
	CropCode            int     `json:"crop_code"`
	SeasonCode          int     `json:"season_code"`
	MajorSoilType       string  `json:"major_soil_type"`
	SecondMajorSoilType string  `json:"second_major_soil_type"`
	IrrigationUsed      string  `json:"irrigation_used"`
	AreaHectares        float64 `json:"area_hectares"`
	Production          float64 `json:"production"`
	YearNumeric         int     `json:"year_numeric"`

	HighTemp     float64 `json:"high_temp"`
	LowTemp      float64 `json:"low_temp"`
	AvgTemp      float64 `json:"avg_temp"`
	Rainfall     float64 `json:"rainfall"`
	HighHumidity float64 `json:"high_humidity"`
	LowHumidity  float64 `json:"low_humidity"`
}

// ParsePredictionForm parses the form-encoded fields of a predict request.
// A parse failure is a user input error, reported as a ValidationError;
// it never reflects a fault in the service itself.
func ParsePredictionForm(form url.Values) (*PredictionInput, error) {
	in := &PredictionInput{}

	var err error
	if in.StateCode, err = requiredInt(form, "State_Code"); err != nil {
		return nil, err
	}
	if in.DistrictCode, err = requiredInt(form, "District_Code"); err != nil {
		return nil, err
	}
	if in.CropCode, err = requiredInt(form, "Crop_Code"); err != nil {
		return nil, err
	}
	if in.SeasonCode, err = requiredInt(form, "Season_Code"); err != nil {
		return nil, err
	}
	if in.MajorSoilType, err = requiredString(form, "Major_Soil_Type"); err != nil {
		return nil, err
	}
	if in.SecondMajorSoilType, err = requiredString(form, "Second_Major_Soil_Type"); err != nil {
		return nil, err
	}
	if in.IrrigationUsed, err = requiredString(form, "Irrigation_Used"); err != nil {
		return nil, err
	}
	if in.AreaHectares, err = requiredFloat(form, "Area_Hectares"); err != nil {
		return nil, err
	}
	if in.Production, err = requiredFloat(form, "Production"); err != nil {
		return nil, err
	}
	if in.YearNumeric, err = requiredInt(form, "Year_Numeric"); err != nil {
		return nil, err
	}

	// Auto-filled hidden fields; absent when the client skipped the
	// reverse_geocode step.
	if in.HighTemp, err = optionalFloat(form, "High_Temp"); err != nil {
		return nil, err
	}
	if in.LowTemp, err = optionalFloat(form, "Low_Temp"); err != nil {
		return nil, err
	}
	if in.AvgTemp, err = optionalFloat(form, "Avg_Temp"); err != nil {
		return nil, err
	}
	if in.Rainfall, err = optionalFloat(form, "Rainfall"); err != nil {
		return nil, err
	}
	if in.HighHumidity, err = optionalFloat(form, "High_Humidity"); err != nil {
		return nil, err
	}
	if in.LowHumidity, err = optionalFloat(form, "Low_Humidity"); err != nil {
		return nil, err
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	return in, nil
}

// Validate checks code fields against the catalog tables and rejects
// measurement values outside the domain of the log transform.
func (in *PredictionInput) Validate() error {
	if !catalog.ValidState(in.StateCode) {
		return &ValidationError{Field: "State_Code", Value: strconv.Itoa(in.StateCode), Message: "unknown state code"}
	}
	if !catalog.ValidDistrict(in.DistrictCode) {
		return &ValidationError{Field: "District_Code", Value: strconv.Itoa(in.DistrictCode), Message: "unknown district code"}
	}
	if !catalog.ValidCrop(in.CropCode) {
		return &ValidationError{Field: "Crop_Code", Value: strconv.Itoa(in.CropCode), Message: "unknown crop code"}
	}
	if !catalog.ValidSeason(in.SeasonCode) {
		return &ValidationError{Field: "Season_Code", Value: strconv.Itoa(in.SeasonCode), Message: "unknown season code"}
	}
	if in.AreaHectares < 0 {
		return &ValidationError{Field: "Area_Hectares", Value: fmt.Sprintf("%g", in.AreaHectares), Message: "must not be negative"}
	}
	if in.Production < 0 {
		return &ValidationError{Field: "Production", Value: fmt.Sprintf("%g", in.Production), Message: "must not be negative"}
	}
	return nil
}

func requiredString(form url.Values, field string) (string, error) {
	v := form.Get(field)
	if v == "" {
		return "", &ValidationError{Field: field, Message: "missing required field"}
	}
	return v, nil
}

func requiredInt(form url.Values, field string) (int, error) {
	v, err := requiredString(form, field)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: v, Message: "expected an integer"}
	}
	return n, nil
}

func requiredFloat(form url.Values, field string) (float64, error) {
	v, err := requiredString(form, field)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: v, Message: "expected a number"}
	}
	return f, nil
}

func optionalFloat(form url.Values, field string) (float64, error) {
	v := form.Get(field)
	if v == "" {
		return 0.0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Value: v, Message: "expected a number"}
	}
	return f, nil
}

// PredictionRecord is one row of the prediction history table.
type PredictionRecord struct {
	ID             int64     `json:"id" db:"id"`
	StateCode      int       `json:"state_code" db:"state_code"`
	DistrictCode   int       `json:"district_code" db:"district_code"`
	CropCode       int       `json:"crop_code" db:"crop_code"`
	SeasonCode     int       `json:"season_code" db:"season_code"`
	AreaHectares   float64   `json:"area_hectares" db:"area_hectares"`
	Production     float64   `json:"production" db:"production"`
	YearNumeric    int       `json:"year_numeric" db:"year_numeric"`
	PredictedYield float64   `json:"predicted_yield" db:"predicted_yield"`
	LatencyMs      int64     `json:"latency_ms" db:"latency_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ValidationError represents a user input error on a single field.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Message, e.Value)
}

// IsTransient returns false as validation errors are permanent.
func (e *ValidationError) IsTransient() bool {
	return false
}
