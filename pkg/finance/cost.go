// Package finance derives cost and time-value metrics from amortization ledgers.
package finance

import (
	"math"

	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
)

// Fees are the charges the caller supplies on top of the ledger.
// Origination is withheld from the disbursement; PeriodicInsurance is charged
// once per ledger period.
type Fees struct {
	Origination       float64 `json:"origination" yaml:"origination"`
	PeriodicInsurance float64 `json:"periodicInsurance" yaml:"periodicInsurance"`
}

// CostMetrics summarizes the effective cost of a ledger. The effective cost
// rates are nil when the net disbursement is not positive.
type CostMetrics struct {
	NetDisbursement             float64  `json:"netDisbursement" yaml:"netDisbursement"`
	TotalInsurance              float64  `json:"totalInsurance" yaml:"totalInsurance"`
	TotalPaidIncludingInsurance float64  `json:"totalPaidIncludingInsurance" yaml:"totalPaidIncludingInsurance"`
	EffectiveCostPerPeriod      *float64 `json:"effectiveCostPerPeriod" yaml:"effectiveCostPerPeriod"`
	EffectiveCostAnnualized     *float64 `json:"effectiveCostAnnualized" yaml:"effectiveCostAnnualized"`
	TotalCost                   float64  `json:"totalCost" yaml:"totalCost"`
}

// EffectiveCostAvailable reports whether the effective cost could be computed.
func (c CostMetrics) EffectiveCostAvailable() bool {
	return c.EffectiveCostPerPeriod != nil && c.EffectiveCostAnnualized != nil
}

// ComputeCost derives the cost metrics of schedule for a loan of principal.
func ComputeCost(schedule amortization.Schedule, principal float64, fees Fees) CostMetrics {
	periods := len(schedule.Entries)
	totalInstallments := 0.0
	for _, entry := range schedule.Entries {
		totalInstallments += entry.Installment
	}

	metrics := CostMetrics{
		NetDisbursement: principal - fees.Origination,
		TotalInsurance:  fees.PeriodicInsurance * float64(periods),
	}
	metrics.TotalPaidIncludingInsurance = totalInstallments + metrics.TotalInsurance
	metrics.TotalCost = metrics.TotalPaidIncludingInsurance - principal

	if metrics.NetDisbursement <= 0 || periods == 0 {
		return metrics
	}

	perPeriod := math.Pow(metrics.TotalPaidIncludingInsurance/metrics.NetDisbursement, 1/float64(periods)) - 1
	if math.IsNaN(perPeriod) || math.IsInf(perPeriod, 0) {
		return metrics
	}
	annualized := math.Pow(1+perPeriod, constants.MonthsPerYear) - 1
	metrics.EffectiveCostPerPeriod = &perPeriod
	metrics.EffectiveCostAnnualized = &annualized
	return metrics
}
