// Package testhelpers provides utilities for testing the calculator's
// PocketBase handlers and spreadsheet pipeline.
package testhelpers

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/xuri/excelize/v2"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	return app
}

// BuildWorkbook writes headers and rows to the first sheet of a new xlsx
// file. A nil value leaves its cell empty; strings become text cells and
// numbers numeric cells.
func BuildWorkbook(t *testing.T, headers []string, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for c, h := range headers {
		if h == "" {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			t.Fatalf("header cell name: %v", err)
		}
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			t.Fatalf("write header %q: %v", h, err)
		}
	}

	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("write cell %s: %v", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

// SampleWorkbook is the two-row estimate used across tests: "Diseño" with
// 4 hours of Director creativo and "2/4" hours of Ejecutivo de producción,
// followed by a blank separator row.
func SampleWorkbook(t *testing.T) []byte {
	t.Helper()

	return BuildWorkbook(t,
		[]string{"", "ITEM", "SERVICIOS", "Director creativo", "Ejecutivo de producción"},
		[][]any{
			{0, 1, "Diseño", 4, "2/4"},
			{1, nil, nil, nil, nil},
		},
	)
}

// NewUpload builds a multipart body holding data under the "file" field plus
// any extra form fields. It returns the body and its Content-Type.
func NewUpload(t *testing.T, fileName string, data []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return body, w.FormDataContentType()
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
