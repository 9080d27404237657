package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Resumen"
	detailSheet  = "Detalle"
)

// GenerateExcel writes the report as a workbook with an overview sheet and a
// per-service detail sheet and returns the file contents.
func GenerateExcel(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, fmt.Errorf("create detail sheet: %w", err)
	}

	st, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	if err := writeSummarySheet(f, st, report); err != nil {
		return nil, err
	}
	if err := writeDetailSheet(f, st, report); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type excelStyles struct {
	title   int
	header  int
	cell    int
	section int
	label   int
	value   int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var st excelStyles
	var err error

	st.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return st, fmt.Errorf("create title style: %w", err)
	}

	// Column header style: bold, white text, charcoal background, centered.
	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return st, fmt.Errorf("create header style: %w", err)
	}

	st.cell, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return st, fmt.Errorf("create cell style: %w", err)
	}

	st.section, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return st, fmt.Errorf("create section style: %w", err)
	}

	st.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return st, fmt.Errorf("create label style: %w", err)
	}

	st.value, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return st, fmt.Errorf("create value style: %w", err)
	}
	return st, nil
}

func writeSummarySheet(f *excelize.File, st excelStyles, report *Report) error {
	sheet := summarySheet
	widths := map[string]float64{"A": 40, "B": 14, "C": 14, "D": 20, "E": 22}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	if err := f.MergeCell(sheet, "A1", "E1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", "Calculadora de Tiempos y Costos")
	f.SetCellStyle(sheet, "A1", "E1", st.title)
	if report.FileName != "" {
		f.SetCellValue(sheet, "A2", "Archivo: "+report.FileName)
	}

	headers := []string{"Servicio", "N° Perfiles", "Total Horas", "Costo Base", "Costo Final (15%)"}
	if err := f.SetSheetRow(sheet, "A4", &headers); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	f.SetCellStyle(sheet, "A4", "E4", st.header)

	row := 5
	for _, s := range SummaryRows(report) {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(s.Service))
		f.SetCellValue(sheet, "B"+r, s.ProfileCount)
		f.SetCellValue(sheet, "C"+r, roundTo2(s.TotalHours))
		f.SetCellValue(sheet, "D"+r, FormatSoles(s.BaseCost))
		f.SetCellValue(sheet, "E"+r, FormatSoles(s.FinalCost))
		f.SetCellStyle(sheet, "A"+r, "E"+r, st.cell)
		row++
	}

	// Skip a blank row before project totals.
	row++
	totals := []struct {
		label string
		value any
	}{
		{"Total Horas Proyecto", roundTo2(report.Totals.TotalHours)},
		{"Costo Base Proyecto", FormatSoles(report.Totals.TotalCostBase)},
		{"Costo Final Proyecto", FormatSoles(report.Totals.TotalCostFinal())},
	}
	for _, t := range totals {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "D"+r, t.label)
		f.SetCellStyle(sheet, "D"+r, "D"+r, st.label)
		f.SetCellValue(sheet, "E"+r, t.value)
		f.SetCellStyle(sheet, "E"+r, "E"+r, st.value)
		row++
	}
	return nil
}

func writeDetailSheet(f *excelize.File, st excelStyles, report *Report) error {
	sheet := detailSheet
	widths := map[string]float64{"A": 36, "B": 12, "C": 16, "D": 18}
	for col, w := range widths {
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	row := 1
	for _, s := range report.Services {
		r := fmt.Sprintf("%d", row)
		f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(s.Service))
		f.SetCellStyle(sheet, "A"+r, "A"+r, st.section)
		row++

		r = fmt.Sprintf("%d", row)
		headers := []string{"Perfil", "Horas", "Costo/Hora", "Costo Total"}
		if err := f.SetSheetRow(sheet, "A"+r, &headers); err != nil {
			return fmt.Errorf("write detail header: %w", err)
		}
		f.SetCellStyle(sheet, "A"+r, "D"+r, st.header)
		row++

		for _, p := range s.ProfilesByHours() {
			r = fmt.Sprintf("%d", row)
			f.SetCellValue(sheet, "A"+r, sanitizeExcelCell(p.Profile))
			f.SetCellValue(sheet, "B"+r, roundTo2(p.Hours))
			f.SetCellValue(sheet, "C"+r, FormatSoles(p.HourlyRate))
			f.SetCellValue(sheet, "D"+r, FormatSoles(p.Cost))
			f.SetCellStyle(sheet, "A"+r, "D"+r, st.cell)
			row++
		}

		for _, line := range CostBreakdown(s.TotalCost) {
			r = fmt.Sprintf("%d", row)
			f.SetCellValue(sheet, "C"+r, line.Concept)
			f.SetCellStyle(sheet, "C"+r, "C"+r, st.label)
			f.SetCellValue(sheet, "D"+r, FormatSoles(line.Amount))
			f.SetCellStyle(sheet, "D"+r, "D"+r, st.value)
			row++
		}

		// Blank row between services.
		row++
	}
	return nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
