package services

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"timecost/testhelpers"
)

func TestProcessFile_EndToEnd(t *testing.T) {
	report, err := ProcessFile(bytes.NewReader(testhelpers.SampleWorkbook(t)), "estimate.xlsx")
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if report.FileName != "estimate.xlsx" {
		t.Errorf("FileName = %q", report.FileName)
	}
	if len(report.Services) != 1 {
		t.Fatalf("expected 1 service, got %d: %+v", len(report.Services), report.Services)
	}
	if report.SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", report.SkippedRows)
	}

	svc := report.Services[0]
	if svc.Service != "Diseño" {
		t.Errorf("Service = %q, want Diseño", svc.Service)
	}
	if len(svc.Profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %+v", svc.Profiles)
	}
	if svc.Profiles[0].Hours != 4 || svc.Profiles[0].Cost != 200 {
		t.Errorf("Director creativo entry = %+v, want 4h / 200", svc.Profiles[0])
	}
	if svc.Profiles[1].Hours != 3 || svc.Profiles[1].Cost != 105 {
		t.Errorf("Ejecutivo de producción entry = %+v, want 3h / 105", svc.Profiles[1])
	}
	if !approxEqual(svc.TotalHours, 7) || !approxEqual(svc.TotalCost, 305) {
		t.Errorf("service totals = %v h / %v, want 7 / 305", svc.TotalHours, svc.TotalCost)
	}
	if !approxEqual(svc.FinalCost(), 350.75) {
		t.Errorf("service final = %v, want 350.75", svc.FinalCost())
	}

	if !approxEqual(report.Totals.TotalHours, 7) {
		t.Errorf("project hours = %v, want 7", report.Totals.TotalHours)
	}
	if !approxEqual(report.Totals.TotalCostBase, 305) {
		t.Errorf("project base = %v, want 305", report.Totals.TotalCostBase)
	}
	if !approxEqual(report.Totals.TotalCostFinal(), 350.75) {
		t.Errorf("project final = %v, want 350.75", report.Totals.TotalCostFinal())
	}
}

func TestProcessFile_CSVMatchesXLSX(t *testing.T) {
	csv := ",ITEM,SERVICIOS,Director creativo,Ejecutivo de producción\n0,1,Diseño,4,2/4\n1,,,,\n"
	fromCSV, err := ProcessFile(strings.NewReader(csv), "estimate.csv")
	if err != nil {
		t.Fatalf("csv: %v", err)
	}
	fromXLSX, err := ProcessFile(bytes.NewReader(testhelpers.SampleWorkbook(t)), "estimate.xlsx")
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}

	if fromCSV.Totals != fromXLSX.Totals {
		t.Errorf("totals differ: csv %+v, xlsx %+v", fromCSV.Totals, fromXLSX.Totals)
	}
	if !slices.Equal(fromCSV.ServiceNames(), fromXLSX.ServiceNames()) {
		t.Errorf("services differ: csv %v, xlsx %v", fromCSV.ServiceNames(), fromXLSX.ServiceNames())
	}
}

func TestProcessFile_MissingServiceColumn(t *testing.T) {
	_, err := ProcessFile(strings.NewReader("ITEM,Director creativo\n1,4\n"), "estimate.csv")
	if !errors.Is(err, ErrMissingServiceColumn) {
		t.Fatalf("expected ErrMissingServiceColumn, got %v", err)
	}
	var ingestErr *IngestionError
	if !errors.As(err, &ingestErr) {
		t.Fatalf("expected *IngestionError, got %T", err)
	}
}

func TestBuildReport_DropsServicesWithoutHours(t *testing.T) {
	table := &Table{
		Headers: []string{"SERVICIOS", "Director creativo", "Freelancer"},
		Rows: [][]Cell{
			{"X", 0.0, nil},
			{"Y", nil, 2.0},
			{nil, 8.0, 8.0},
		},
	}

	report, err := BuildReport(table, DefaultRates)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if got := report.ServiceNames(); !slices.Equal(got, []string{"Y"}) {
		t.Errorf("services = %v, want [Y]", got)
	}
	if !slices.Equal(report.DroppedServices, []string{"X"}) {
		t.Errorf("DroppedServices = %v, want [X]", report.DroppedServices)
	}
	if report.SkippedRows != 1 {
		t.Errorf("SkippedRows = %d, want 1", report.SkippedRows)
	}
	if !approxEqual(report.Totals.TotalCostBase, 50) {
		t.Errorf("TotalCostBase = %v, want 50", report.Totals.TotalCostBase)
	}
}

func TestBuildReport_FreelancerRateAcrossServices(t *testing.T) {
	table := &Table{
		Headers: []string{"SERVICIOS", "Freelancer"},
		Rows: [][]Cell{
			{"A", 2.0},
			{"B", "1/3"},
		},
	}

	report, err := BuildReport(table, DefaultRates)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	for _, s := range report.Services {
		if s.Profiles[0].HourlyRate != 25 {
			t.Errorf("%s: Freelancer rate = %v, want 25", s.Service, s.Profiles[0].HourlyRate)
		}
	}
	if !approxEqual(report.Totals.TotalCostBase, 100) {
		t.Errorf("TotalCostBase = %v, want 100", report.Totals.TotalCostBase)
	}
}

func TestBuildReport_HeaderOnly(t *testing.T) {
	report, err := BuildReport(&Table{Headers: []string{"SERVICIOS", "A"}}, DefaultRates)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if len(report.Services) != 0 || report.Totals != (ProjectTotals{}) {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestReport_SelectService(t *testing.T) {
	report := &Report{Services: []ServiceRecord{{Service: "A"}, {Service: "B"}}}

	tests := []struct {
		name   string
		expect string
	}{
		{"B", "B"},
		{"A", "A"},
		{"", "A"},
		{"unknown", "A"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := report.SelectService(tt.name)
			if !ok || got.Service != tt.expect {
				t.Errorf("SelectService(%q) = %q, %v; want %q", tt.name, got.Service, ok, tt.expect)
			}
		})
	}

	if _, ok := (&Report{}).SelectService("A"); ok {
		t.Error("expected no selection on an empty report")
	}
}

func TestBuildReport_BlankHeaderAfterFirstIsProfile(t *testing.T) {
	table := &Table{
		Headers: []string{"", "ITEM", "SERVICIOS", "Director creativo", ""},
		Rows:    [][]Cell{{0.0, 1.0, "S", 1.0, 3.0}},
	}

	report, err := BuildReport(table, DefaultRates)
	if err != nil {
		t.Fatalf("BuildReport() error = %v", err)
	}
	if !approxEqual(report.Totals.TotalHours, 4) {
		t.Errorf("TotalHours = %v, want 4", report.Totals.TotalHours)
	}
	if !approxEqual(report.Totals.TotalCostBase, 125) {
		t.Errorf("TotalCostBase = %v, want 125", report.Totals.TotalCostBase)
	}

	profiles := report.Services[0].Profiles
	if len(profiles) != 2 || profiles[1].Profile != "Unnamed: 4" || profiles[1].HourlyRate != DefaultHourlyRate {
		t.Errorf("expected blank column as default-rate profile \"Unnamed: 4\", got %+v", profiles)
	}
}
