package models

import "math"

// Feature column names, in the exact order the regression model was trained
// on. The model server matches columns by position, not name, so this order
// is load-bearing end to end.
var (
	CategoricalColumns = []string{
		"State_Code", "District_Code", "Crop_Code", "Season_Code",
		"Major Soil Type", "Second Major Soil Type", "Irrigation Used",
	}

	NumericColumns = []string{
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
)

// FeatureVector is the 23-column record fed to the model server: the seven
// categorical fields followed by the sixteen numeric fields.
type FeatureVector struct {
	StateCode           int
	DistrictCode        int
	CropCode            int
	SeasonCode          int
	MajorSoilType       string
	SecondMajorSoilType string
	IrrigationUsed      string

	AreaHectares        float64
	YearNumeric         int
	LogArea             float64
	LogProduction       float64
	RelativeArea        float64
	CropDiversity       float64
	DistrictYieldAvg3yr float64
	HighTemp            float64
	LowTemp             float64
	AvgTemp             float64
	TempRange           float64
	TempAnomaly         float64
	Rainfall            float64
	HighHumidity        float64
	LowHumidity         float64
	HumidityRange       float64
}

// BuildFeatures engineers the feature vector from a validated prediction
// input. Deterministic: the same input always produces the same vector.
//
// Relative_Area, Crop_Diversity and District_Yield_Avg_3yr are always the
// missing-value sentinel. The deployed model never received usable values
// for them at training time, and that shape is preserved here rather than
// corrected.
func BuildFeatures(in *PredictionInput) *FeatureVector {
	return &FeatureVector{
		StateCode:           in.StateCode,
		DistrictCode:        in.DistrictCode,
		CropCode:            in.CropCode,
		SeasonCode:          in.SeasonCode,
		MajorSoilType:       in.MajorSoilType,
		SecondMajorSoilType: in.SecondMajorSoilType,
		IrrigationUsed:      in.IrrigationUsed,

		AreaHectares:        in.AreaHectares,
		YearNumeric:         in.YearNumeric,
		LogArea:             math.Log1p(in.AreaHectares),
		LogProduction:       math.Log1p(in.Production),
		RelativeArea:        math.NaN(),
		CropDiversity:       math.NaN(),
		DistrictYieldAvg3yr: math.NaN(),
		HighTemp:            in.HighTemp,
		LowTemp:             in.LowTemp,
		AvgTemp:             in.AvgTemp,
		TempRange:           in.HighTemp - in.LowTemp,
		TempAnomaly:         0,
		Rainfall:            in.Rainfall,
		HighHumidity:        in.HighHumidity,
		LowHumidity:         in.LowHumidity,
		HumidityRange:       in.HighHumidity - in.LowHumidity,
	}
}

// Columns returns the full ordered column list.
func (v *FeatureVector) Columns() []string {
	cols := make([]string, 0, len(CategoricalColumns)+len(NumericColumns))
	cols = append(cols, CategoricalColumns...)
	cols = append(cols, NumericColumns...)
	return cols
}

// Row returns the vector values in column order, ready for JSON transport.
// NaN sentinels are emitted as nil so they serialize to JSON null, which the
// model server reads back as a missing value.
func (v *FeatureVector) Row() []interface{} {
	numeric := []float64{
		v.AreaHectares, float64(v.YearNumeric), v.LogArea, v.LogProduction,
		v.RelativeArea, v.CropDiversity, v.DistrictYieldAvg3yr,
		v.HighTemp, v.LowTemp, v.AvgTemp,
		v.TempRange, v.TempAnomaly,
		v.Rainfall,
		v.HighHumidity, v.LowHumidity,
		v.HumidityRange,
	}

	row := []interface{}{
		v.StateCode, v.DistrictCode, v.CropCode, v.SeasonCode,
		v.MajorSoilType, v.SecondMajorSoilType, v.IrrigationUsed,
	}
	for _, f := range numeric {
		if math.IsNaN(f) {
			row = append(row, nil)
		} else {
			row = append(row, f)
		}
	}
	return row
}
