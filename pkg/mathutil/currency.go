// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/amortization-compare/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Percentage returns value as a percentage of total. The multiplication is
// done first so that exact ratios such as 3000/10000 yield exactly 30.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value * constants.PercentageMultiplier / total
}

// Compound returns (1+rate)^periods.
func Compound(rate float64, periods int) float64 {
	return math.Pow(1+rate, float64(periods))
}
