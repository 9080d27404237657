package services

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Cell is a raw spreadsheet value as produced by ReadTable: nil for an empty
// cell, float64 for a numeric cell, string for a text cell and time.Time for
// a date cell.
type Cell any

// ParseHours converts a time-allocation cell into hours.
//
// Numbers pass through unchanged (negatives included). Text holding one or
// more "/"-separated numbers is a range estimate and yields the mean, so
// "4/6" is 5. Empty, unreadable or unsupported values (dates included)
// yield 0.
func ParseHours(v Cell) float64 {
	switch val := v.(type) {
	case nil, bool:
		return 0
	case string:
		return parseRange(val)
	case float64, float32, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		hours, err := cast.ToFloat64E(val)
		if err != nil || math.IsNaN(hours) {
			return 0
		}
		return hours
	default:
		return 0
	}
}

func parseRange(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	tokens := strings.Split(s, "/")
	var sum float64
	for _, tok := range tokens {
		n, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		sum += n
	}
	return sum / float64(len(tokens))
}
