package handlers

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/xuri/excelize/v2"

	"timecost/testhelpers"
)

func TestHandleExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := postUpload(t, app, HandleExportExcel(app), "/export/excel", "estimate.xlsx", testhelpers.SampleWorkbook(t), nil, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="Costos_estimate.xlsx"` {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("response is not valid Excel: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue("Resumen", "E5")
	if got != "S/ 350.75" {
		t.Errorf("expected final cost S/ 350.75 in Resumen!E5, got %q", got)
	}
}

func TestHandleExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	rec := postUpload(t, app, HandleExportPDF(app), "/export/pdf", "estimate.xlsx", testhelpers.SampleWorkbook(t), nil, false)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected Content-Type %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("expected a PDF body")
	}
}

func TestHandleExport_BadUpload(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	for name, handler := range map[string]func(*core.RequestEvent) error{
		"excel": HandleExportExcel(app),
		"pdf":   HandleExportPDF(app),
	} {
		t.Run(name, func(t *testing.T) {
			rec := postUpload(t, app, handler, "/export/"+name, "estimate.csv", []byte("ITEM\n1\n"), nil, false)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
			testhelpers.AssertHTMLContains(t, rec.Body.String(), "Error procesando Excel")
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input  string
		expect string
	}{
		{"simple", "simple"},
		{"with spaces", "with-spaces"},
		{"a/b\\c:d", "a-b-c-d"},
		{`quo"te`, "quote"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.expect {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expect)
		}
	}
}

func TestExportFilename(t *testing.T) {
	tests := []struct {
		uploaded string
		ext      string
		expect   string
	}{
		{"estimate.xlsx", "pdf", "Costos_estimate.pdf"},
		{"Presupuesto Marzo.csv", "xlsx", "Costos_Presupuesto-Marzo.xlsx"},
		{"", "pdf", "Costos.pdf"},
	}
	for _, tt := range tests {
		if got := exportFilename(tt.uploaded, tt.ext); got != tt.expect {
			t.Errorf("exportFilename(%q, %q) = %q, want %q", tt.uploaded, tt.ext, got, tt.expect)
		}
	}
}
