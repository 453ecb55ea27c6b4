package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"yield-platform/pkg/metrics"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write test csv: %v", err)
	}
	return path
}

const batchHeader = "State_Code,District_Code,Crop_Code,Season_Code,Major_Soil_Type,Second_Major_Soil_Type,Irrigation_Used,Area_Hectares,Production,Year_Numeric\n"

func TestBatchService_ScoreFile(t *testing.T) {
	p := &stubPredictor{yield: 2.2}
	svc := NewBatchService(
		NewPredictionService(p, nil, testLogger(), metrics.NewTestCollector()),
		testLogger(),
		metrics.NewTestCollector(),
	)

	path := writeCSV(t, batchHeader+
		"0,60,25,1,Alluvial,Clay,Yes,120.5,340,2019\n"+
		"0,18,22,2,Laterite,Clay,No,50,90,2020\n")

	result, err := svc.ScoreFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ScoreFile() error = %v", err)
	}

	if result.TotalRows != 2 || result.SuccessfulRows != 2 || result.FailedRows != 0 {
		t.Errorf("result = %d/%d/%d (total/ok/failed), want 2/2/0",
			result.TotalRows, result.SuccessfulRows, result.FailedRows)
	}

	if len(result.Predictions) != 2 {
		t.Fatalf("got %d predictions, want 2", len(result.Predictions))
	}
	if result.Predictions[0].DistrictCode != 60 || result.Predictions[0].PredictedYield != 2.2 {
		t.Errorf("first prediction = %+v", result.Predictions[0])
	}
	if result.Predictions[1].Row != 2 {
		t.Errorf("second prediction row = %d, want 2", result.Predictions[1].Row)
	}
}

func TestBatchService_ScoreFile_RowFailuresAreCollected(t *testing.T) {
	p := &stubPredictor{yield: 2.2}
	svc := NewBatchService(
		NewPredictionService(p, nil, testLogger(), metrics.NewTestCollector()),
		testLogger(),
		metrics.NewTestCollector(),
	)

	path := writeCSV(t, batchHeader+
		"0,60,25,1,Alluvial,Clay,Yes,120.5,340,2019\n"+
		"0,61,25,1,Alluvial,Clay,Yes,120.5,340,2019\n"+ // unknown district
		"0,60,rice,1,Alluvial,Clay,Yes,120.5,340,2019\n") // non-integer crop

	result, err := svc.ScoreFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ScoreFile() error = %v", err)
	}

	if result.TotalRows != 3 || result.SuccessfulRows != 1 || result.FailedRows != 2 {
		t.Errorf("result = %d/%d/%d (total/ok/failed), want 3/1/2",
			result.TotalRows, result.SuccessfulRows, result.FailedRows)
	}
	if len(result.Errors) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(result.Errors), result.Errors)
	}
}

func TestBatchService_ScoreFile_MissingFile(t *testing.T) {
	svc := NewBatchService(
		NewPredictionService(&stubPredictor{}, nil, testLogger(), metrics.NewTestCollector()),
		testLogger(),
		metrics.NewTestCollector(),
	)

	if _, err := svc.ScoreFile(context.Background(), "/does/not/exist.csv"); err == nil {
		t.Fatal("ScoreFile() error = nil, want open failure")
	}
}
