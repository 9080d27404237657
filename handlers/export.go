package handlers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"timecost/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// exportFilename names a download after the uploaded file, e.g.
// "Costos_estimate.pdf" for "estimate.xlsx".
func exportFilename(uploaded, ext string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		return "Costos." + ext
	}
	return fmt.Sprintf("Costos_%s.%s", sanitizeFilename(base), ext)
}

// HandleExportExcel recalculates the uploaded file and downloads the report
// as an Excel workbook.
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		report, err := readUploadedReport(e)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return uploadError(e, err)
		}

		xlsxBytes, err := services.GenerateExcel(report)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo Excel")
		}

		app.Logger().Info("report exported",
			"runId", GetRunID(e.Request),
			"file", report.FileName,
			"format", "xlsx",
			"bytes", len(xlsxBytes),
		)

		e.Response.Header().Set("Content-Type", xlsxContentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(report.FileName, "xlsx")))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleExportPDF recalculates the uploaded file and downloads the report as
// a PDF.
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		report, err := readUploadedReport(e)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return uploadError(e, err)
		}

		pdfBytes, err := services.GeneratePDF(report)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "No se pudo generar el archivo PDF")
		}

		app.Logger().Info("report exported",
			"runId", GetRunID(e.Request),
			"file", report.FileName,
			"format", "pdf",
			"bytes", len(pdfBytes),
		)

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename(report.FileName, "pdf")))
		e.Response.Write(pdfBytes)
		return nil
	}
}
