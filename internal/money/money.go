// Package money handles currency rounding and formatting at reporting
// boundaries. Engine internals carry float64 dollars unrounded to avoid
// compounding rounding error across many small consumptions; values cross
// through here only when leaving the engine (prices, snapshots, logs).
package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// RoundCents rounds a dollar amount to the nearest cent.
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// Cents returns the amount as an integer number of cents.
func Cents(v float64) int64 {
	return decimal.NewFromFloat(v).Round(2).Mul(decimal.NewFromInt(100)).IntPart()
}

// Format renders a dollar amount for logs and reports: "$12,408.50".
func Format(v float64) string {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#,###.##", -f)
	}
	return "$" + humanize.FormatFloat("#,###.##", f)
}
