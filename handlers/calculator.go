package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/angelofallars/htmx-go"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"timecost/services"
	"timecost/templates"
)

// MaxUploadSize caps the uploaded spreadsheet.
const MaxUploadSize = 10 << 20

const pageTitle = "Calculadora de Tiempos"

var errMissingFile = errors.New("no file uploaded")

// HandleCalculatorPage renders the empty calculator with its upload form.
func HandleCalculatorPage() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		page := templates.Page(pageTitle, "/", templates.CalculatorPage(nil))
		return page.Render(e.Request.Context(), e.Response)
	}
}

// HandleCalculate runs the uploaded spreadsheet through the pipeline and
// renders the results. The optional "service" field picks the service shown
// in detail.
func HandleCalculate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		report, err := readUploadedReport(e)
		if err != nil {
			log.Printf("calculate: %v", err)
			return uploadError(e, err)
		}

		app.Logger().Info("calculation completed",
			"runId", GetRunID(e.Request),
			"file", report.FileName,
			"services", len(report.Services),
			"skippedRows", report.SkippedRows,
			"droppedServices", len(report.DroppedServices),
			"totalHours", report.Totals.TotalHours,
			"totalCostBase", report.Totals.TotalCostBase,
		)

		data := buildResultsData(report, e.Request.FormValue("service"))
		results := templates.Results(data)

		if !htmx.IsHTMX(e.Request) {
			page := templates.Page(pageTitle, "/", templates.CalculatorPage(results))
			return page.Render(e.Request.Context(), e.Response)
		}

		resp := htmx.NewResponse()
		if !data.HasServices() {
			resp = resp.AddTrigger(toastTrigger("info", "El archivo no contiene servicios con horas asignadas"))
		}
		return resp.RenderTempl(e.Request.Context(), e.Response, results)
	}
}

// readUploadedReport reads the "file" field of a multipart request and
// computes its report.
func readUploadedReport(e *core.RequestEvent) (*services.Report, error) {
	// Leave room for the multipart framing around a full-size file.
	e.Request.Body = http.MaxBytesReader(e.Response, e.Request.Body, MaxUploadSize+(1<<20))
	if err := e.Request.ParseMultipartForm(MaxUploadSize); err != nil {
		return nil, fmt.Errorf("parse upload: %w", err)
	}

	file, header, err := e.Request.FormFile("file")
	if err != nil {
		return nil, errMissingFile
	}
	defer file.Close()

	return services.ProcessFile(file, header.Filename)
}

// uploadError maps a readUploadedReport failure to an error toast.
func uploadError(e *core.RequestEvent, err error) error {
	var ingestErr *services.IngestionError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &ingestErr):
		return ErrorToast(e, http.StatusBadRequest, "Error procesando Excel: "+ingestErr.Error())
	case errors.As(err, &tooLarge):
		return ErrorToast(e, http.StatusRequestEntityTooLarge, "El archivo supera el límite de 10 MB")
	case errors.Is(err, errMissingFile), errors.Is(err, http.ErrNotMultipart):
		return ErrorToast(e, http.StatusBadRequest, "Selecciona un archivo Excel para procesar")
	default:
		return ErrorToast(e, http.StatusBadRequest, "Formulario de carga inválido")
	}
}

// buildResultsData formats a report for the results partial, with selected
// as the service shown in detail.
func buildResultsData(report *services.Report, selected string) templates.ResultsData {
	data := templates.ResultsData{
		FileName:        report.FileName,
		ServiceNames:    report.ServiceNames(),
		ProjectHours:    services.FormatHours(report.Totals.TotalHours),
		ProjectBase:     services.FormatSoles(report.Totals.TotalCostBase),
		ProjectFinal:    services.FormatSoles(report.Totals.TotalCostFinal()),
		SkippedRows:     report.SkippedRows,
		DroppedServices: report.DroppedServices,
	}

	for _, row := range services.SummaryRows(report) {
		data.Summary = append(data.Summary, templates.ServiceSummaryRow{
			Service:      row.Service,
			ProfileCount: row.ProfileCount,
			TotalHours:   services.FormatHours(row.TotalHours),
			BaseCost:     services.FormatSoles(row.BaseCost),
			FinalCost:    services.FormatSoles(row.FinalCost),
		})
	}

	svc, ok := report.SelectService(selected)
	if !ok {
		return data
	}
	detail := templates.ServiceDetail{
		Name:         svc.Service,
		ProfileCount: len(svc.Profiles),
		TotalHours:   services.FormatHours(svc.TotalHours),
		FinalCost:    services.FormatSoles(svc.FinalCost()),
	}
	for _, p := range svc.ProfilesByHours() {
		detail.Profiles = append(detail.Profiles, templates.ProfileRow{
			Profile:    p.Profile,
			Hours:      services.FormatHours(p.Hours),
			HourlyRate: services.FormatSoles(p.HourlyRate),
			Cost:       services.FormatSoles(p.Cost),
		})
	}
	for _, line := range services.CostBreakdown(svc.TotalCost) {
		detail.Costs = append(detail.Costs, templates.CostRow{
			Concept: line.Concept,
			Amount:  services.FormatSoles(line.Amount),
		})
	}
	data.Selected = detail
	return data
}
