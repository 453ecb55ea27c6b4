package models

import (
	"math"
	"reflect"
	"testing"
)

func sampleInput() *PredictionInput {
	return &PredictionInput{
		StateCode:           0,
		DistrictCode:        60,
		CropCode:            25,
		SeasonCode:          1,
		MajorSoilType:       "Alluvial",
		SecondMajorSoilType: "Clay",
		IrrigationUsed:      "Yes",
		AreaHectares:        120.5,
		Production:          340.0,
		YearNumeric:         2019,
		HighTemp:            35.0,
		LowTemp:             25.0,
		AvgTemp:             30.0,
		Rainfall:            2.5,
		HighHumidity:        80.0,
		LowHumidity:         80.0,
	}
}

func TestBuildFeatures(t *testing.T) {
	v := BuildFeatures(sampleInput())

	if got, want := v.LogArea, math.Log1p(120.5); got != want {
		t.Errorf("LogArea = %v, want %v", got, want)
	}
	if got, want := v.LogProduction, math.Log1p(340.0); got != want {
		t.Errorf("LogProduction = %v, want %v", got, want)
	}
	if v.TempRange != 10.0 {
		t.Errorf("TempRange = %v, want 10.0", v.TempRange)
	}
	if v.TempAnomaly != 0 {
		t.Errorf("TempAnomaly = %v, want 0", v.TempAnomaly)
	}
	if v.HumidityRange != 0.0 {
		t.Errorf("HumidityRange = %v, want 0.0", v.HumidityRange)
	}

	// The three untrained columns stay at the missing-value sentinel.
	if !math.IsNaN(v.RelativeArea) {
		t.Errorf("RelativeArea = %v, want NaN", v.RelativeArea)
	}
	if !math.IsNaN(v.CropDiversity) {
		t.Errorf("CropDiversity = %v, want NaN", v.CropDiversity)
	}
	if !math.IsNaN(v.DistrictYieldAvg3yr) {
		t.Errorf("DistrictYieldAvg3yr = %v, want NaN", v.DistrictYieldAvg3yr)
	}
}

func TestBuildFeatures_ZeroArea(t *testing.T) {
	in := sampleInput()
	in.AreaHectares = 0

	v := BuildFeatures(in)

	if v.LogArea != 0.0 {
		t.Errorf("LogArea for zero area = %v, want 0.0", v.LogArea)
	}
}

func TestBuildFeatures_Deterministic(t *testing.T) {
	a := BuildFeatures(sampleInput()).Row()
	b := BuildFeatures(sampleInput()).Row()

	if !reflect.DeepEqual(a, b) {
		t.Error("BuildFeatures is not deterministic for identical inputs")
	}
}

func TestFeatureVector_ColumnOrder(t *testing.T) {
	want := []string{
		"State_Code", "District_Code", "Crop_Code", "Season_Code",
		"Major Soil Type", "Second Major Soil Type", "Irrigation Used",
		"Area_Hectares", "Year_Numeric", "Log_Area", "Log_Production",
		"Relative_Area", "Crop_Diversity", "District_Yield_Avg_3yr",
		"Highest Temperature(in degree celsius)",
		"Lowest Temperature(in degree celsius)",
		"Average Temperature(in degree celsius)",
		"Temp_Range", "Temp_Anomaly",
		"Average Rainfall(past 5 years)",
		"Highest Humidity(past 5 years)", "Lowest Humidity(past 5 years)",
		"Humidity_Range",
	}

	got := BuildFeatures(sampleInput()).Columns()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Columns() = %v, want %v", got, want)
	}
}

func TestFeatureVector_Row(t *testing.T) {
	v := BuildFeatures(sampleInput())
	row := v.Row()

	if len(row) != 23 {
		t.Fatalf("Row() has %d values, want 23", len(row))
	}

	if row[0] != 0 || row[1] != 60 || row[2] != 25 || row[3] != 1 {
		t.Errorf("categorical codes = %v %v %v %v, want 0 60 25 1", row[0], row[1], row[2], row[3])
	}
	if row[4] != "Alluvial" || row[5] != "Clay" || row[6] != "Yes" {
		t.Errorf("soil/irrigation fields = %v %v %v", row[4], row[5], row[6])
	}

	// NaN sentinels become nil for JSON transport.
	for _, idx := range []int{11, 12, 13} {
		if row[idx] != nil {
			t.Errorf("row[%d] = %v, want nil", idx, row[idx])
		}
	}

	if row[7] != 120.5 {
		t.Errorf("Area_Hectares = %v, want 120.5", row[7])
	}
	if row[17] != 10.0 {
		t.Errorf("Temp_Range = %v, want 10.0", row[17])
	}
	if row[19] != 2.5 {
		t.Errorf("rainfall = %v, want 2.5", row[19])
	}
}
