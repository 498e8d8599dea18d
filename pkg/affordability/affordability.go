// Package affordability classifies an installment against declared monthly income.
package affordability

import (
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/mathutil"
)

// Tier is the payment-capacity risk level.
type Tier string

const (
	// Safe is a ratio up to and including 30%.
	Safe Tier = "safe"
	// Caution is a ratio above 30% up to and including 40%.
	Caution Tier = "caution"
	// Risk is a ratio above 40%.
	Risk Tier = "risk"
)

// Message returns a short human-readable description of the tier.
func (t Tier) Message() string {
	switch t {
	case Safe:
		return "healthy income commitment"
	case Caution:
		return "moderate income commitment"
	case Risk:
		return "high income commitment"
	}
	return ""
}

// Result is the outcome of a classification. Ratio is a percentage.
type Result struct {
	Ratio       float64 `json:"ratio" yaml:"ratio"`
	Tier        Tier    `json:"tier" yaml:"tier"`
	Installment float64 `json:"installment" yaml:"installment"`
	Income      float64 `json:"income" yaml:"income"`
}

// TierForRatio maps a percentage ratio to its tier. Boundaries belong to the
// lower tier.
func TierForRatio(ratio float64) Tier {
	switch {
	case ratio <= constants.SafeRatioLimit:
		return Safe
	case ratio <= constants.CautionRatioLimit:
		return Caution
	default:
		return Risk
	}
}

// Ratio returns installment as a percentage of income, or false when income
// is not positive.
func Ratio(installment, income float64) (float64, bool) {
	if income <= 0 {
		return 0, false
	}
	return mathutil.Percentage(installment, income), true
}

// Classify returns nil when income is unset or not positive.
func Classify(installment, income float64) *Result {
	ratio, ok := Ratio(installment, income)
	if !ok {
		return nil
	}
	return &Result{
		Ratio:       ratio,
		Tier:        TierForRatio(ratio),
		Installment: installment,
		Income:      income,
	}
}
