package services

import (
	"math"
	"testing"
	"time"
)

func TestParseHours(t *testing.T) {
	tests := []struct {
		name   string
		input  Cell
		expect float64
	}{
		{"missing", nil, 0},
		{"empty string", "", 0},
		{"blank string", "   ", 0},
		{"integer", 4, 4},
		{"float", 2.5, 2.5},
		{"zero", 0.0, 0},
		{"negative passes through", -3.0, -3},
		{"negative int", int64(-2), -2},
		{"uint", uint8(7), 7},
		{"float32", float32(1.5), 1.5},
		{"NaN cell", math.NaN(), 0},
		{"two-token range", "4/6", 5},
		{"three-token range", "2/4/6", 4},
		{"single token", "5", 5},
		{"spaces around tokens", " 4 / 6 ", 5},
		{"decimal tokens", "1.5/2.5", 2},
		{"negative token", "-2/4", 1},
		{"not a number", "not a number", 0},
		{"partly numeric", "4/abc", 0},
		{"trailing slash", "4/", 0},
		{"NaN token", "NaN/4", 0},
		{"infinite token", "inf/4", 0},
		{"bool", true, 0},
		{"date cell", time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC), 0},
		{"unsupported type", []int{4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseHours(tt.input)
			if math.Abs(got-tt.expect) > 0.001 {
				t.Errorf("ParseHours(%#v) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestParseHours_NumericIdentity(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 0.25, 37.5, -1e6, 1e9} {
		if got := ParseHours(v); got != v {
			t.Errorf("ParseHours(%v) = %v, want identity", v, got)
		}
	}
}
