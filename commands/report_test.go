package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"timecost/services"
	"timecost/testhelpers"
)

func writeSample(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "estimate.xlsx")
	if err := os.WriteFile(path, testhelpers.SampleWorkbook(t), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewReportCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommand_Text(t *testing.T) {
	out, err := runCommand(t, writeSample(t))
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"Archivo: estimate.xlsx",
		"Resumen General de Servicios",
		"Diseño",
		"S/ 305.00",
		"S/ 350.75",
		"Margen (15%)",
		"Costo Final Proyecto",
		"Filas sin servicio omitidas: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
}

func TestReportCommand_XLSX(t *testing.T) {
	input := writeSample(t)
	dest := filepath.Join(t.TempDir(), "out.xlsx")

	out, err := runCommand(t, input, "--format", "xlsx", "--out", dest)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, dest) {
		t.Errorf("expected output to name %s, got %q", dest, out)
	}

	f, err := excelize.OpenFile(dest)
	if err != nil {
		t.Fatalf("output is not valid Excel: %v", err)
	}
	defer f.Close()
	if got, _ := f.GetCellValue("Resumen", "A5"); got != "Diseño" {
		t.Errorf("Resumen!A5 = %q, want Diseño", got)
	}
}

func TestReportCommand_PDFDefaultOutput(t *testing.T) {
	input := writeSample(t)

	if _, err := runCommand(t, input, "-f", "pdf"); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(strings.TrimSuffix(input, ".xlsx") + "_costos.pdf")
	if err != nil {
		t.Fatalf("expected default output file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("expected a PDF document")
	}
}

func TestReportCommand_UnknownFormat(t *testing.T) {
	_, err := runCommand(t, writeSample(t), "--format", "html")
	if !errors.Is(err, errUnknownFormat) {
		t.Fatalf("expected errUnknownFormat, got %v", err)
	}
}

func TestReportCommand_IngestionError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("ITEM\n1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCommand(t, path)
	var ingestErr *services.IngestionError
	if !errors.As(err, &ingestErr) {
		t.Fatalf("expected *IngestionError, got %v", err)
	}
}

func TestReportCommand_RequiresFile(t *testing.T) {
	if _, err := runCommand(t); err == nil {
		t.Fatal("expected an error without a file argument")
	}
}

func TestWriteText_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteText(&buf, &services.Report{FileName: "empty.csv"}); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No se encontraron servicios") {
		t.Errorf("unexpected output %q", buf.String())
	}
}
