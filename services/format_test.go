package services

import "testing"

func TestFormatSoles_Values(t *testing.T) {
	tests := []struct {
		name   string
		input  float64
		expect string
	}{
		{"zero", 0, "S/ 0.00"},
		{"small integer", 5, "S/ 5.00"},
		{"with decimals", 42.5, "S/ 42.50"},
		{"hundreds", 999.99, "S/ 999.99"},
		{"thousands", 1234.56, "S/ 1,234.56"},
		{"millions", 1234567.891, "S/ 1,234,567.89"},
		{"exact thousands boundary", 1000, "S/ 1,000.00"},
		{"half rounds up", 0.125, "S/ 0.13"},
		{"negative", -250000.5, "-S/ 250,000.50"},
		{"margin of sample", 350.75, "S/ 350.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSoles(tt.input)
			if got != tt.expect {
				t.Errorf("FormatSoles(%v) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestApplyThousandsGrouping(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"0", "0"},
		{"999", "999"},
		{"1000", "1,000"},
		{"123456", "123,456"},
		{"1234567", "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := applyThousandsGrouping(tt.input); got != tt.expect {
				t.Errorf("applyThousandsGrouping(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestFormatHours(t *testing.T) {
	if got := FormatHours(7); got != "7.00" {
		t.Errorf("FormatHours(7) = %q", got)
	}
	if got := FormatHours(2.345); got != "2.35" && got != "2.34" {
		t.Errorf("FormatHours(2.345) = %q", got)
	}
}

func TestFormatMarginLabel(t *testing.T) {
	if got := FormatMarginLabel(); got != "Margen (15%)" {
		t.Errorf("FormatMarginLabel() = %q", got)
	}
}

func TestRoundTo2(t *testing.T) {
	if got := roundTo2(350.74999999999994); got != 350.75 {
		t.Errorf("roundTo2() = %v, want 350.75", got)
	}
	if got := roundTo2(3.333333); got != 3.33 {
		t.Errorf("roundTo2() = %v, want 3.33", got)
	}
}
