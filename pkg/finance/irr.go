package finance

import (
	"math"

	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/mathutil"
)

// IRRResult is the outcome of the internal rate of return solve. The rate is
// the last Newton-Raphson iterate whether or not it converged; callers should
// treat Converged=false as an approximation.
type IRRResult struct {
	RatePercent float64 `json:"ratePercent" yaml:"ratePercent"`
	Iterations  int     `json:"iterations" yaml:"iterations"`
	Converged   bool    `json:"converged" yaml:"converged"`
}

// Rate returns the periodic rate as a fraction.
func (r IRRResult) Rate() float64 {
	return r.RatePercent / constants.PercentageMultiplier
}

// NPV returns -principal + sum(cashFlows[t-1] / (1+rate)^t) for t = 1..n.
func NPV(principal float64, cashFlows []float64, rate float64) float64 {
	value := -principal
	for i, flow := range cashFlows {
		value += flow / math.Pow(1+rate, float64(i+1))
	}
	return value
}

// npvDerivative is d NPV / d rate.
func npvDerivative(cashFlows []float64, rate float64) float64 {
	derivative := 0.0
	for i, flow := range cashFlows {
		period := float64(i + 1)
		derivative -= period * flow / math.Pow(1+rate, period+1)
	}
	return derivative
}

// IRR solves NPV(principal, cashFlows, r) = 0 by Newton-Raphson from
// IRRInitialGuess, stopping when |NPV| <= IRRTolerance or after
// IRRMaxIterations iterations.
func IRR(principal float64, cashFlows []float64) IRRResult {
	rate := constants.IRRInitialGuess
	result := IRRResult{}

	for iter := 0; iter < constants.IRRMaxIterations; iter++ {
		value := NPV(principal, cashFlows, rate)
		if mathutil.WithinTolerance(value, 0, constants.IRRTolerance) {
			result.Converged = true
			break
		}
		derivative := npvDerivative(cashFlows, rate)
		if derivative == 0 || math.IsNaN(derivative) {
			break
		}
		next := rate - value/derivative
		if math.IsNaN(next) || math.IsInf(next, 0) || next <= -1 {
			break
		}
		rate = next
		result.Iterations = iter + 1
	}

	result.RatePercent = rate * constants.PercentageMultiplier
	return result
}
