package services

import (
	"fmt"
	"strconv"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	headerBg  = &props.Color{Red: 33, Green: 37, Blue: 41}
	summaryBg = &props.Color{Red: 240, Green: 240, Blue: 240}
	mutedText = &props.Color{Red: 80, Green: 80, Blue: 80}
)

// GeneratePDF renders the report as a PDF using maroto/v2 and returns the raw
// bytes.
func GeneratePDF(report *Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Página {current} de {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addHeader(m, report)
	addServiceSummary(m, report)
	for _, s := range report.Services {
		addServiceDetail(m, s)
	}
	addProjectTotals(m, report.Totals)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, report *Report) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Calculadora de Tiempos y Costos", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	if report.FileName != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New("Archivo: "+report.FileName, props.Text{
						Size:  9,
						Align: align.Left,
						Color: mutedText,
					}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

// tableHeader builds a dark header row; sizes are grid widths out of 12.
func tableHeader(labels []string, sizes []int) core.Row {
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := &props.Cell{BackgroundColor: headerBg}

	cols := make([]core.Col, len(labels))
	for i, label := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(label, headerText)).WithStyle(headerCell)
	}
	return row.New(8).Add(cols...)
}

func addServiceSummary(m core.Maroto, report *Report) {
	m.AddRows(sectionTitle("Resumen General de Servicios"))
	m.AddRows(tableHeader(
		[]string{"Servicio", "N° Perfiles", "Total Horas", "Costo Base", "Costo Final (15%)"},
		[]int{4, 2, 2, 2, 2},
	))

	left := props.Text{Size: 8, Align: align.Left}
	right := props.Text{Size: 8, Align: align.Right}
	for _, s := range SummaryRows(report) {
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(s.Service, left)),
				col.New(2).Add(text.New(strconv.Itoa(s.ProfileCount), right)),
				col.New(2).Add(text.New(FormatHours(s.TotalHours), right)),
				col.New(2).Add(text.New(FormatSoles(s.BaseCost), right)),
				col.New(2).Add(text.New(FormatSoles(s.FinalCost), right)),
			),
		)
	}
	m.AddRows(row.New(6))
}

func addServiceDetail(m core.Maroto, s ServiceRecord) {
	m.AddRows(sectionTitle(s.Service))
	m.AddRows(tableHeader(
		[]string{"Perfil", "Horas", "Costo/Hora", "Costo Total"},
		[]int{6, 2, 2, 2},
	))

	left := props.Text{Size: 8, Align: align.Left}
	right := props.Text{Size: 8, Align: align.Right}
	for _, p := range s.ProfilesByHours() {
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New(p.Profile, left)),
				col.New(2).Add(text.New(FormatHours(p.Hours), right)),
				col.New(2).Add(text.New(FormatSoles(p.HourlyRate), right)),
				col.New(2).Add(text.New(FormatSoles(p.Cost), right)),
			),
		)
	}

	for _, line := range CostBreakdown(s.TotalCost) {
		m.AddRows(summaryRow(line.Concept, FormatSoles(line.Amount)))
	}
	m.AddRows(row.New(6))
}

func addProjectTotals(m core.Maroto, totals ProjectTotals) {
	m.AddRows(sectionTitle("Totales del Proyecto"))
	m.AddRows(
		summaryRow("Total Horas Proyecto", FormatHours(totals.TotalHours)),
		summaryRow("Costo Base Proyecto", FormatSoles(totals.TotalCostBase)),
		summaryRow("Costo Final Proyecto", FormatSoles(totals.TotalCostFinal())),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(10).Add(
		col.New(12).Add(
			text.New(title, props.Text{
				Size:  11,
				Style: fontstyle.Bold,
				Align: align.Left,
				Top:   2,
			}),
		),
	)
}

func summaryRow(label, value string) core.Row {
	bold := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	cell := &props.Cell{BackgroundColor: summaryBg}
	return row.New(8).Add(
		col.New(8).Add(text.New(label, bold)).WithStyle(cell),
		col.New(4).Add(text.New(value, bold)).WithStyle(cell),
	)
}
