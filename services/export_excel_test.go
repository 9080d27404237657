package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func openExport(t *testing.T, report *Report) *excelize.File {
	t.Helper()

	result, err := GenerateExcel(report)
	if err != nil {
		t.Fatalf("GenerateExcel() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateExcel() returned empty bytes")
	}

	f, err := excelize.OpenReader(bytesReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func assertCell(t *testing.T, f *excelize.File, sheet, axis, want string) {
	t.Helper()

	got, err := f.GetCellValue(sheet, axis)
	if err != nil {
		t.Fatalf("GetCellValue(%s!%s) error = %v", sheet, axis, err)
	}
	if got != want {
		t.Errorf("%s!%s = %q, want %q", sheet, axis, got, want)
	}
}

func TestGenerateExcel_Sheets(t *testing.T) {
	f := openExport(t, sampleReport())

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Resumen" || sheets[1] != "Detalle" {
		t.Errorf("expected sheets [Resumen Detalle], got %v", sheets)
	}
}

func TestGenerateExcel_SummarySheet(t *testing.T) {
	f := openExport(t, sampleReport())

	assertCell(t, f, "Resumen", "A1", "Calculadora de Tiempos y Costos")
	assertCell(t, f, "Resumen", "A2", "Archivo: estimate.xlsx")
	assertCell(t, f, "Resumen", "A4", "Servicio")
	assertCell(t, f, "Resumen", "E4", "Costo Final (15%)")

	assertCell(t, f, "Resumen", "A5", "Diseño")
	assertCell(t, f, "Resumen", "B5", "2")
	assertCell(t, f, "Resumen", "C5", "7")
	assertCell(t, f, "Resumen", "D5", "S/ 305.00")
	assertCell(t, f, "Resumen", "E5", "S/ 350.75")
	assertCell(t, f, "Resumen", "A6", "Edición")

	// Project totals start after one blank row.
	assertCell(t, f, "Resumen", "D8", "Total Horas Proyecto")
	assertCell(t, f, "Resumen", "E8", "9")
	assertCell(t, f, "Resumen", "D9", "Costo Base Proyecto")
	assertCell(t, f, "Resumen", "E9", "S/ 355.00")
	assertCell(t, f, "Resumen", "D10", "Costo Final Proyecto")
	assertCell(t, f, "Resumen", "E10", "S/ 408.25")
}

func TestGenerateExcel_DetailSheet(t *testing.T) {
	f := openExport(t, sampleReport())

	assertCell(t, f, "Detalle", "A1", "Diseño")
	assertCell(t, f, "Detalle", "A2", "Perfil")

	// Profiles are listed by hours, highest first.
	assertCell(t, f, "Detalle", "A3", "Director creativo")
	assertCell(t, f, "Detalle", "B3", "4")
	assertCell(t, f, "Detalle", "C3", "S/ 50.00")
	assertCell(t, f, "Detalle", "D3", "S/ 200.00")
	assertCell(t, f, "Detalle", "A4", "Ejecutivo de producción")

	assertCell(t, f, "Detalle", "C5", "Costo Base")
	assertCell(t, f, "Detalle", "D5", "S/ 305.00")
	assertCell(t, f, "Detalle", "C6", "Margen (15%)")
	assertCell(t, f, "Detalle", "D6", "S/ 45.75")
	assertCell(t, f, "Detalle", "C7", "Costo Final")
	assertCell(t, f, "Detalle", "D7", "S/ 350.75")

	// Second service starts after a blank row.
	assertCell(t, f, "Detalle", "A9", "Edición")
}

func TestGenerateExcel_EmptyReport(t *testing.T) {
	f := openExport(t, &Report{})

	assertCell(t, f, "Resumen", "A5", "")
	assertCell(t, f, "Resumen", "D6", "Total Horas Proyecto")
	assertCell(t, f, "Resumen", "E6", "0")
}

func TestGenerateExcel_SanitizesServiceNames(t *testing.T) {
	report := &Report{Services: []ServiceRecord{{
		Service:    "=HYPERLINK(\"x\")",
		Profiles:   []ProfileEntry{{Profile: "A", Hours: 1, HourlyRate: 25, Cost: 25}},
		TotalHours: 1,
		TotalCost:  25,
	}}}
	f := openExport(t, report)

	assertCell(t, f, "Resumen", "A5", "'=HYPERLINK(\"x\")")
}

func TestSanitizeExcelCell(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"", ""},
		{"Diseño", "Diseño"},
		{"=1+1", "'=1+1"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@sum", "'@sum"},
	}
	for _, tt := range tests {
		if got := sanitizeExcelCell(tt.input); got != tt.expect {
			t.Errorf("sanitizeExcelCell(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}
