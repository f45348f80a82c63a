package models

import (
	"encoding/json"
	"math"
	"testing"
)

// TestFloatSeries_MarshalJSON tests the NaN-to-null wire contract for the
// undefined prefix of a simple moving average
func TestFloatSeries_MarshalJSON(t *testing.T) {
	s := FloatSeries{math.NaN(), math.NaN(), 12.5, 0, math.Inf(1)}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `[null,null,12.5,0,null]`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestFloatSeries_UnmarshalJSON(t *testing.T) {
	var s FloatSeries
	if err := json.Unmarshal([]byte(`[null,3.25,null]`), &s); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if len(s) != 3 {
		t.Fatalf("len = %d, want 3", len(s))
	}
	if !math.IsNaN(s[0]) || !math.IsNaN(s[2]) {
		t.Error("null entries should decode to NaN")
	}
	if s[1] != 3.25 {
		t.Errorf("s[1] = %v, want 3.25", s[1])
	}
}

// TestNullableFloat_MarshalJSON tests that an infinite payback period
// serializes as null, distinguishable from a real zero
func TestNullableFloat_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    NullableFloat
		want string
	}{
		{"finite value", NullableFloat(48), "48"},
		{"zero", NullableFloat(0), "0"},
		{"positive infinity", NullableFloat(math.Inf(1)), "null"},
		{"NaN", NullableFloat(math.NaN()), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestEconomicAnalysis_InfinitePayback(t *testing.T) {
	analysis := EconomicAnalysis{PaybackPeriodMonths: NullableFloat(math.Inf(1))}

	data, err := json.Marshal(analysis)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded["payback_period_months"] != nil {
		t.Errorf("payback_period_months = %v, want null", decoded["payback_period_months"])
	}
}
