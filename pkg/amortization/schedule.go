package amortization

import (
	"fmt"

	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/mathutil"
	"go.uber.org/zap"
)

// FixedInstallment returns the PRICE installment for the original principal
// over the full term: P * r(1+r)^n / ((1+r)^n - 1).
func FixedInstallment(principal, periodicRate float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	if periodicRate == 0 {
		// For zero interest, simply divide the principal by term
		return principal / float64(termMonths)
	}
	factor := mathutil.Compound(periodicRate, termMonths)
	return principal * (periodicRate * factor) / (factor - 1)
}

// AmortizationQuota returns the constant SAC principal portion.
func AmortizationQuota(principal float64, termMonths int) float64 {
	if termMonths <= 0 {
		return 0
	}
	return principal / float64(termMonths)
}

// InflationFactor returns the reporting multiplier for an absolute month,
// (1+inflation)^(month-1).
func InflationFactor(inflationRate float64, month int) float64 {
	return mathutil.Compound(inflationRate, month-1)
}

// Generator produces amortization ledgers.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new generator instance
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate dispatches to the generator for method.
func (g *Generator) Generate(method Method, params Parameters) (Schedule, error) {
	switch method {
	case SAC:
		return g.SAC(params), nil
	case PRICE:
		return g.PRICE(params), nil
	}
	return Schedule{}, fmt.Errorf("unknown amortization method %q", method)
}

// SAC generates a constant amortization ledger. The quota is fixed at
// origination and is not recalculated after extra paydowns.
func (g *Generator) SAC(params Parameters) Schedule {
	quota := AmortizationQuota(params.Principal, params.TermMonths)
	schedule := g.build(SAC, params, func(balance, _ float64) float64 {
		return mathutil.Min(quota, balance)
	})
	schedule.AmortizationQuota = quota
	return schedule
}

// PRICE generates a fixed installment ledger. The installment is computed
// once from the original principal and full term.
func (g *Generator) PRICE(params Parameters) Schedule {
	installment := FixedInstallment(params.Principal, params.PeriodicRate, params.TermMonths)
	schedule := g.build(PRICE, params, func(balance, interest float64) float64 {
		return mathutil.Min(installment-interest, balance)
	})
	schedule.FixedInstallment = installment
	return schedule
}

// principalFunc returns the nominal principal portion for a period given the
// balance after extras and the interest accrued on it.
type principalFunc func(balance, interest float64) float64

func (g *Generator) build(method Method, params Parameters, principalFor principalFunc) Schedule {
	schedule := Schedule{
		Method:      method,
		GraceMonths: params.GraceMonths,
	}
	if n := params.TotalMonths(); n > 0 && n <= constants.MaxTotalMonths {
		schedule.Entries = make([]PeriodEntry, 0, n)
	}
	balance := params.Principal

	// Grace period: interest only, balance unchanged.
	for month := 1; month <= params.GraceMonths; month++ {
		factor := InflationFactor(params.InflationRate, month)
		interest := balance * params.PeriodicRate
		schedule.Entries = append(schedule.Entries, PeriodEntry{
			Month:                    month,
			Installment:              interest * factor,
			Interest:                 interest * factor,
			OutstandingBalanceBefore: balance,
			OutstandingBalanceAfter:  balance,
			IsGracePeriod:            true,
			InflationFactor:          factor,
		})
	}

	extra := params.OneTimeExtra
	extraApplied := false

	for month := params.GraceMonths + 1; month <= params.TotalMonths(); month++ {
		factor := InflationFactor(params.InflationRate, month)

		var oneTime float64
		if extra != nil && extra.Amount > 0 && month == extra.Month {
			oneTime = mathutil.Min(extra.Amount, balance)
			balance -= oneTime
			extraApplied = true
			g.logger.Debug(fmt.Sprintf("month %d: applying one-time extra paydown %.2f", month, oneTime),
				zap.String("op", "amortization.build"),
				zap.String("method", string(method)),
				zap.Float64("requested", extra.Amount),
			)
		}

		var recurring float64
		if params.RecurringExtra > 0 && balance > 0 {
			recurring = mathutil.Min(params.RecurringExtra, balance)
			balance -= recurring
		}

		interest := balance * params.PeriodicRate
		principal := principalFor(balance, interest)
		after := mathutil.Max(0, balance-principal)

		schedule.Entries = append(schedule.Entries, PeriodEntry{
			Month:                    month,
			Installment:              (principal + interest) * factor,
			Interest:                 interest * factor,
			PrincipalPortion:         principal * factor,
			OutstandingBalanceBefore: balance,
			OutstandingBalanceAfter:  after,
			RecurringExtraApplied:    recurring * factor,
			OneTimeExtraApplied:      oneTime,
			InflationFactor:          factor,
		})

		balance = after
		if balance <= 0 {
			if month < params.TotalMonths() {
				g.logger.Debug(fmt.Sprintf("month %d: balance settled before the nominal term of %d months",
					month, params.TotalMonths()),
					zap.String("op", "amortization.build"),
					zap.String("method", string(method)),
				)
			}
			break
		}
	}

	if extra != nil && extra.Amount > 0 && !extraApplied {
		note := fmt.Sprintf("one-time extra of %.2f at month %d was not applied: ledger ended at month %d",
			extra.Amount, extra.Month, len(schedule.Entries))
		schedule.Notes = append(schedule.Notes, note)
		g.logger.Warn(note,
			zap.String("op", "amortization.build"),
			zap.String("method", string(method)),
		)
	}

	return schedule
}
