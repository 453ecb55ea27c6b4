package catalog

import "testing"

// TestMatch covers the two-pass substring matching over the district table.
func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode int
		wantName string
		wantOK   bool
	}{
		{
			name:     "district name contained in longer input",
			input:    "24 Parganas North area",
			wantCode: 0,
			wantName: "24 parganas north",
			wantOK:   true,
		},
		{
			name:     "exact district name",
			input:    "howrah",
			wantCode: 60,
			wantName: "howrah",
			wantOK:   true,
		},
		{
			name:     "mixed case with surrounding whitespace",
			input:    "  Darjeeling  ",
			wantCode: 36,
			wantName: "darjeeling",
			wantOK:   true,
		},
		{
			name:     "input fragment contained in district name",
			input:    "bardhaman",
			wantCode: 108,
			wantName: "paschim bardhaman",
			wantOK:   true,
		},
		{
			name:     "first match in table order wins",
			input:    "24 parganas north and 24 parganas south",
			wantCode: 0,
			wantName: "24 parganas north",
			wantOK:   true,
		},
		{
			name:   "no relation to any district",
			input:  "Siliguri",
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			input:  "   ",
			wantOK: false,
		},
		{
			name:     "geocoder style address line",
			input:    "ward 12, purulia municipality, west bengal",
			wantCode: 117,
			wantName: "purulia",
			wantOK:   true,
		},
		{
			name:     "short fragment matches by reverse containment",
			input:    "kalimp",
			wantCode: 75,
			wantName: "kalimpong",
			wantOK:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Match(tt.input)

			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}

			if !ok {
				return
			}

			if got.Code != tt.wantCode {
				t.Errorf("Match(%q) code = %d, want %d", tt.input, got.Code, tt.wantCode)
			}

			if got.Name != tt.wantName {
				t.Errorf("Match(%q) name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
		})
	}
}

// TestDistrictTable guards the code table against accidental edits. The
// model was trained on these exact codes.
func TestDistrictTable(t *testing.T) {
	if len(Districts) != 22 {
		t.Fatalf("district table has %d entries, want 22", len(Districts))
	}

	wantCodes := []int{0, 6, 12, 18, 24, 30, 36, 42, 48, 54, 60, 66, 72, 75, 78, 84, 90, 96, 102, 108, 111, 117}
	for i, want := range wantCodes {
		if Districts[i].Code != want {
			t.Errorf("Districts[%d].Code = %d, want %d", i, Districts[i].Code, want)
		}
	}

	if !ValidDistrict(75) {
		t.Error("ValidDistrict(75) = false, want true")
	}
	if ValidDistrict(76) {
		t.Error("ValidDistrict(76) = true, want false")
	}
}

func TestCodeTables(t *testing.T) {
	if len(Crops) != 36 {
		t.Errorf("crop table has %d entries, want 36", len(Crops))
	}
	if len(Seasons) != 5 {
		t.Errorf("season table has %d entries, want 5", len(Seasons))
	}

	if !ValidState(0) {
		t.Error("ValidState(0) = false, want true")
	}
	if ValidState(1) {
		t.Error("ValidState(1) = true, want false")
	}
	if !ValidCrop(25) {
		t.Error("ValidCrop(25) = false, want true")
	}
	if ValidCrop(36) {
		t.Error("ValidCrop(36) = true, want false")
	}
	if !ValidSeason(4) {
		t.Error("ValidSeason(4) = false, want true")
	}
	if ValidSeason(5) {
		t.Error("ValidSeason(5) = true, want false")
	}
}
