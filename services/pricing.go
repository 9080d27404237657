// Package services computes hours and costs for service estimates and
// handles spreadsheet import and report export.
package services

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// MarginRate is the markup applied to a base cost to get the billable cost.
const MarginRate = 0.15

// ApplyMargin returns base plus the margin. Service and project totals each
// apply it to their own base cost; nothing sums already-marginalized values.
func ApplyMargin(base float64) float64 {
	return base * (1 + MarginRate)
}

// MarginOf returns only the margin portion of base.
func MarginOf(base float64) float64 {
	return base * MarginRate
}

// ProfileEntry is the itemized cost of one profile within a service.
type ProfileEntry struct {
	Profile    string
	Hours      float64
	HourlyRate float64
	Cost       float64
}

// ServiceRecord is one service row after aggregation. TotalHours and
// TotalCost cover every profile column, including the ones left out of
// Profiles because they had no positive hours.
type ServiceRecord struct {
	Service    string
	Profiles   []ProfileEntry
	TotalHours float64
	TotalCost  float64
}

func (s ServiceRecord) FinalCost() float64 {
	return ApplyMargin(s.TotalCost)
}

func (s ServiceRecord) Margin() float64 {
	return MarginOf(s.TotalCost)
}

// ProfilesByHours returns a copy of Profiles ordered by descending hours.
// Ties keep column order.
func (s ServiceRecord) ProfilesByHours() []ProfileEntry {
	sorted := slices.Clone(s.Profiles)
	slices.SortStableFunc(sorted, func(a, b ProfileEntry) int {
		return cmp.Compare(b.Hours, a.Hours)
	})
	return sorted
}

// ProfileCell pairs a profile column with the raw cell found under it.
type ProfileCell struct {
	Profile string
	Value   Cell
}

type serviceAccumulator struct {
	entries    []ProfileEntry
	totalHours float64
	totalCost  float64
}

func (acc serviceAccumulator) add(col ProfileCell, rates *RateTable) serviceAccumulator {
	hours := ParseHours(col.Value)
	var rate float64
	if rates == nil {
		rate = RateFor(col.Profile)
	} else {
		rate = rates.RateFor(col.Profile)
	}
	cost := hours * rate

	next := serviceAccumulator{
		entries:    acc.entries,
		totalHours: acc.totalHours + hours,
		totalCost:  acc.totalCost + cost,
	}
	if hours > 0 {
		next.entries = append(slices.Clip(acc.entries), ProfileEntry{
			Profile:    col.Profile,
			Hours:      hours,
			HourlyRate: rate,
			Cost:       cost,
		})
	}
	return next
}

// AggregateService folds one row's profile columns into a ServiceRecord.
// It reports false when the row has no service name or when no profile has
// positive hours; such rows contribute nothing to project totals. A nil
// rates uses DefaultRates.
func AggregateService(name Cell, columns []ProfileCell, rates *RateTable) (ServiceRecord, bool) {
	service, ok := ServiceName(name)
	if !ok {
		return ServiceRecord{}, false
	}
	var acc serviceAccumulator
	for _, col := range columns {
		acc = acc.add(col, rates)
	}
	if len(acc.entries) == 0 {
		return ServiceRecord{}, false
	}

	return ServiceRecord{
		Service:    service,
		Profiles:   acc.entries,
		TotalHours: acc.totalHours,
		TotalCost:  acc.totalCost,
	}, true
}

// ServiceName renders a service-name cell as text. Empty, blank and NaN
// cells count as missing.
func ServiceName(v Cell) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		name := strings.TrimSpace(val)
		return name, name != ""
	case float64:
		if math.IsNaN(val) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	default:
		return fmt.Sprint(val), true
	}
}

// ProjectTotals sums every service of a run.
type ProjectTotals struct {
	TotalHours    float64
	TotalCostBase float64
}

func (p ProjectTotals) TotalCostFinal() float64 {
	return ApplyMargin(p.TotalCostBase)
}

func (p ProjectTotals) Margin() float64 {
	return MarginOf(p.TotalCostBase)
}

// AggregateProject sums hours and base cost across services.
func AggregateProject(services []ServiceRecord) ProjectTotals {
	var totals ProjectTotals
	for _, s := range services {
		totals.TotalHours += s.TotalHours
		totals.TotalCostBase += s.TotalCost
	}
	return totals
}
