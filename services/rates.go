package services

import (
	"maps"
	"slices"
)

// DefaultHourlyRate is charged for any profile missing from the rate table.
const DefaultHourlyRate = 25.0

// RateTable maps profile names to hourly rates. It is read-only once built.
type RateTable struct {
	rates    map[string]float64
	fallback float64
}

// NewRateTable copies rates so later changes to the map do not leak in.
func NewRateTable(rates map[string]float64, fallback float64) *RateTable {
	return &RateTable{
		rates:    maps.Clone(rates),
		fallback: fallback,
	}
}

// DefaultRates is the static profile rate table used for every calculation.
var DefaultRates = NewRateTable(map[string]float64{
	"Director creativo":       50,
	"Ejecutivo de producción": 35,
}, DefaultHourlyRate)

// RateFor returns the hourly rate for profile. Matching is exact and
// case-sensitive; unknown profiles get the fallback rate.
func (t *RateTable) RateFor(profile string) float64 {
	if rate, ok := t.rates[profile]; ok {
		return rate
	}
	return t.fallback
}

// Fallback returns the rate charged for unknown profiles.
func (t *RateTable) Fallback() float64 {
	return t.fallback
}

// Profiles returns the known profile names in alphabetical order.
func (t *RateTable) Profiles() []string {
	return slices.Sorted(maps.Keys(t.rates))
}

// RateFor looks profile up in DefaultRates.
func RateFor(profile string) float64 {
	return DefaultRates.RateFor(profile)
}
