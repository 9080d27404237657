// Package templates holds the calculator's templ components. Handlers pass
// in view models with every number already formatted.
package templates

// ServiceSummaryRow is one line of the services overview table.
type ServiceSummaryRow struct {
	Service      string
	ProfileCount int
	TotalHours   string
	BaseCost     string
	FinalCost    string
}

// ProfileRow is one profile of the selected service.
type ProfileRow struct {
	Profile    string
	Hours      string
	HourlyRate string
	Cost       string
}

// CostRow is one line of the selected service's cost summary.
type CostRow struct {
	Concept string
	Amount  string
}

// ServiceDetail is the selected service with its breakdown.
type ServiceDetail struct {
	Name         string
	ProfileCount int
	TotalHours   string
	FinalCost    string
	Profiles     []ProfileRow
	Costs        []CostRow
}

// ResultsData is everything the results partial shows for one run.
type ResultsData struct {
	FileName        string
	Summary         []ServiceSummaryRow
	ServiceNames    []string
	Selected        ServiceDetail
	ProjectHours    string
	ProjectBase     string
	ProjectFinal    string
	SkippedRows     int
	DroppedServices []string
}

// HasServices reports whether any service produced a cost.
func (d ResultsData) HasServices() bool {
	return len(d.Summary) > 0
}

func (d ResultsData) hasRunNotes() bool {
	return d.SkippedRows > 0 || len(d.DroppedServices) > 0
}

// RateRow is one known profile and its hourly rate.
type RateRow struct {
	Profile string
	Rate    string
}

// RatesData is the rate reference page.
type RatesData struct {
	Rows          []RateRow
	DefaultRate   string
	MarginPercent string
}
