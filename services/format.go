package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount (Peruvian sol).
const CurrencySymbol = "S/"

// FormatSoles formats amount as "S/ 1,234.56". Rounding is half away from
// zero on the decimal value, so 0.125 becomes 0.13.
func FormatSoles(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Sprintf("%s %.2f", CurrencySymbol, amount)
	}
	d := decimal.NewFromFloat(amount).Round(2)
	negative := d.IsNegative()
	if negative {
		d = d.Neg()
	}

	parts := strings.SplitN(d.StringFixed(2), ".", 2)
	result := CurrencySymbol + " " + applyThousandsGrouping(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// roundTo2 rounds v to cents the same way FormatSoles does.
func roundTo2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatHours formats an hour count with two decimals.
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}

// FormatMarginLabel returns the label used for margin lines, e.g. "Margen (15%)".
func FormatMarginLabel() string {
	return fmt.Sprintf("Margen (%.0f%%)", MarginRate*100)
}

// applyThousandsGrouping inserts commas every three digits from the right.
func applyThousandsGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
