package services

// SummaryRow is one line of the services overview table.
type SummaryRow struct {
	Service      string
	ProfileCount int
	TotalHours   float64
	BaseCost     float64
	FinalCost    float64
}

// CostLine is one line of a base / margin / final cost breakdown.
type CostLine struct {
	Concept string
	Amount  float64
}

// SummaryRows builds the overview table in service order.
func SummaryRows(report *Report) []SummaryRow {
	rows := make([]SummaryRow, 0, len(report.Services))
	for _, s := range report.Services {
		rows = append(rows, SummaryRow{
			Service:      s.Service,
			ProfileCount: len(s.Profiles),
			TotalHours:   s.TotalHours,
			BaseCost:     s.TotalCost,
			FinalCost:    s.FinalCost(),
		})
	}
	return rows
}

// CostBreakdown splits a base cost into base, margin and final lines.
func CostBreakdown(base float64) []CostLine {
	return []CostLine{
		{Concept: "Costo Base", Amount: base},
		{Concept: FormatMarginLabel(), Amount: MarginOf(base)},
		{Concept: "Costo Final", Amount: ApplyMargin(base)},
	}
}
