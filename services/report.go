package services

import (
	"io"
	"slices"
)

// Report is the full result of one calculation run.
type Report struct {
	FileName string
	Services []ServiceRecord
	Totals   ProjectTotals

	// SkippedRows counts rows without a service name.
	SkippedRows int
	// DroppedServices lists services with no positive-hour profile.
	DroppedServices []string
}

// BuildReport aggregates every row of table in order. The only failure is a
// table without the service column.
func BuildReport(table *Table, rates *RateTable) (*Report, error) {
	serviceIdx := slices.Index(table.Headers, ServiceColumn)
	if serviceIdx < 0 {
		return nil, ErrMissingServiceColumn
	}
	columns := ProfileColumns(table.Headers)

	report := &Report{}
	for _, row := range table.Rows {
		nameCell := cellValue(row, serviceIdx)
		name, ok := ServiceName(nameCell)
		if !ok {
			report.SkippedRows++
			continue
		}

		cells := make([]ProfileCell, len(columns))
		for i, col := range columns {
			cells[i] = ProfileCell{Profile: col.Name, Value: cellValue(row, col.Index)}
		}

		record, ok := AggregateService(nameCell, cells, rates)
		if !ok {
			report.DroppedServices = append(report.DroppedServices, name)
			continue
		}
		report.Services = append(report.Services, record)
	}

	report.Totals = AggregateProject(report.Services)
	return report, nil
}

// ProcessFile reads an uploaded spreadsheet and computes its report with
// DefaultRates. Any failure is an *IngestionError and no partial report is
// returned.
func ProcessFile(r io.Reader, fileName string) (*Report, error) {
	table, err := ReadTable(r, fileName)
	if err != nil {
		return nil, err
	}

	report, err := BuildReport(table, DefaultRates)
	if err != nil {
		return nil, &IngestionError{FileName: fileName, Err: err}
	}
	report.FileName = fileName
	return report, nil
}

// SelectService returns the service called name, or the first service when
// there is no such service. It reports false only for an empty report.
func (r *Report) SelectService(name string) (ServiceRecord, bool) {
	if len(r.Services) == 0 {
		return ServiceRecord{}, false
	}
	for _, s := range r.Services {
		if s.Service == name {
			return s, true
		}
	}
	return r.Services[0], true
}

// ServiceNames returns the service names in row order.
func (r *Report) ServiceNames() []string {
	names := make([]string, len(r.Services))
	for i, s := range r.Services {
		names[i] = s.Service
	}
	return names
}
