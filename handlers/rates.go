package handlers

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"timecost/services"
	"timecost/templates"
)

// HandleRates renders the hourly rate reference for the known profiles.
func HandleRates() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		rates := services.DefaultRates

		data := templates.RatesData{
			DefaultRate:   services.FormatSoles(rates.Fallback()),
			MarginPercent: fmt.Sprintf("%.0f%%", services.MarginRate*100),
		}
		for _, profile := range rates.Profiles() {
			data.Rows = append(data.Rows, templates.RateRow{
				Profile: profile,
				Rate:    services.FormatSoles(rates.RateFor(profile)),
			})
		}

		page := templates.Page("Tarifas", "/rates", templates.RatesPage(data))
		return page.Render(e.Request.Context(), e.Response)
	}
}
