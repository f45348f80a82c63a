package models

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// TestDateRange_Validate tests the engine's defensive range re-check
func TestDateRange_Validate(t *testing.T) {
	tests := []struct {
		name    string
		r       DateRange
		wantErr bool
	}{
		{
			name:    "valid one-year range",
			r:       DateRange{StartDate: date(2025, 1, 1), EndDate: date(2026, 1, 1)},
			wantErr: false,
		},
		{
			name:    "single day",
			r:       DateRange{StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 2)},
			wantErr: false,
		},
		{
			name:    "end equals start",
			r:       DateRange{StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 1)},
			wantErr: true,
		},
		{
			name:    "end before start",
			r:       DateRange{StartDate: date(2025, 6, 1), EndDate: date(2025, 1, 1)},
			wantErr: true,
		},
		{
			name:    "exactly five years",
			r:       DateRange{StartDate: date(2025, 1, 1), EndDate: date(2030, 1, 1)},
			wantErr: false,
		},
		{
			name:    "beyond five years",
			r:       DateRange{StartDate: date(2025, 1, 1), EndDate: date(2030, 6, 1)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDateRange_Days(t *testing.T) {
	r := DateRange{StartDate: date(2025, 1, 1), EndDate: date(2025, 1, 31)}
	if got := r.Days(); got != 30 {
		t.Errorf("Days() = %v, want %v", got, 30)
	}
}

// TestParseCropType tests the closed crop set
func TestParseCropType(t *testing.T) {
	valid := []string{"coffee", "sugar_cane", "corn", "beans", "all"}
	for _, s := range valid {
		if _, err := ParseCropType(s); err != nil {
			t.Errorf("ParseCropType(%q) unexpected error: %v", s, err)
		}
	}

	invalid := []string{"", "wheat", "Coffee", "sugarcane"}
	for _, s := range invalid {
		_, err := ParseCropType(s)
		if err == nil {
			t.Errorf("ParseCropType(%q) should return error", s)
			continue
		}
		if _, ok := err.(*UnknownCropError); !ok {
			t.Errorf("ParseCropType(%q) error type = %T, want *UnknownCropError", s, err)
		}
	}
}

// TestParseSimulationType tests the closed simulation-type set
func TestParseSimulationType(t *testing.T) {
	for _, s := range []string{"energy", "water", "agriculture"} {
		if _, err := ParseSimulationType(s); err != nil {
			t.Errorf("ParseSimulationType(%q) unexpected error: %v", s, err)
		}
	}

	for _, s := range []string{"", "Energy", "transport"} {
		if _, err := ParseSimulationType(s); err == nil {
			t.Errorf("ParseSimulationType(%q) should return error", s)
		}
	}
}

func TestAgricultureScenario_Validate(t *testing.T) {
	base := AgricultureScenario{
		DateRange: DateRange{StartDate: date(2025, 1, 1), EndDate: date(2025, 7, 1)},
		Crop:      CropCoffee,
	}
	if err := base.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	bad := base
	bad.Crop = CropType("wheat")
	if err := bad.Validate(); err == nil {
		t.Error("Validate() should reject unknown crop")
	}
}
