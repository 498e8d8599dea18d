// Package format renders monetary amounts and rates for display.
package format

import (
	"math"
	"strings"

	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/shopspring/decimal"
)

// NotAvailable is shown in place of a value that could not be computed.
const NotAvailable = "n/a"

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotAvailable
	}
	d := RoundCents(amount)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-$" + formatted
	}
	return "$" + formatted
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return NotAvailable
	}
	d := RoundCents(amount)
	formatted := groupThousands(d.Abs().StringFixed(2))
	if d.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// PlainCurrency returns the amount rounded to cents without separators
// (e.g., "-1234.56"), suitable for CSV.
func PlainCurrency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ""
	}
	return RoundCents(amount).StringFixed(2)
}

// RoundCents rounds half away from zero to two decimal places.
func RoundCents(amount float64) decimal.Decimal {
	return decimal.NewFromFloat(amount).Round(2)
}

// Percent renders a percentage value (30 means 30%) with the given number
// of decimal places.
func Percent(value float64, places int32) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NotAvailable
	}
	return decimal.NewFromFloat(value).StringFixed(places) + "%"
}

// OptionalPercent renders a fractional rate as a percentage, or n/a when nil.
func OptionalPercent(rate *float64, places int32) string {
	if rate == nil {
		return NotAvailable
	}
	return Percent(*rate*constants.PercentageMultiplier, places)
}

func groupThousands(fixed string) string {
	intPart, decPart, _ := strings.Cut(fixed, ".")
	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}
	if decPart == "" {
		return intPart
	}
	return intPart + "." + decPart
}
