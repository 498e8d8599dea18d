// Package simulation runs both amortization systems for one set of inputs
// and assembles their metrics and the recommendation.
package simulation

import (
	"fmt"

	"github.com/iwvelando/amortization-compare/pkg/affordability"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/finance"
	"github.com/iwvelando/amortization-compare/pkg/recommendation"
	"github.com/iwvelando/amortization-compare/pkg/validation"
	"go.uber.org/zap"
)

// MethodResult holds everything derived from one method's ledger.
type MethodResult struct {
	Schedule      amortization.Schedule `json:"schedule" yaml:"schedule"`
	Summary       amortization.Summary  `json:"summary" yaml:"summary"`
	Cost          finance.CostMetrics   `json:"cost" yaml:"cost"`
	IRR           finance.IRRResult     `json:"irr" yaml:"irr"`
	NPV           float64               `json:"npv" yaml:"npv"`
	Affordability *affordability.Result `json:"affordability,omitempty" yaml:"affordability,omitempty"`
}

// FirstInstallment is the first post-grace installment of the ledger.
func (m MethodResult) FirstInstallment() float64 {
	return amortization.FirstInstallment(m.Schedule)
}

// Result is the outcome of one simulation.
type Result struct {
	Parameters     amortization.Parameters       `json:"parameters" yaml:"parameters"`
	Fees           finance.Fees                  `json:"fees" yaml:"fees"`
	Income         float64                       `json:"income,omitempty" yaml:"income,omitempty"`
	SAC            MethodResult                  `json:"sac" yaml:"sac"`
	PRICE          MethodResult                  `json:"price" yaml:"price"`
	Recommendation recommendation.Recommendation `json:"recommendation" yaml:"recommendation"`
}

// Method returns the result for method.
func (r Result) Method(method amortization.Method) (MethodResult, error) {
	switch method {
	case amortization.SAC:
		return r.SAC, nil
	case amortization.PRICE:
		return r.PRICE, nil
	}
	return MethodResult{}, fmt.Errorf("unknown amortization method %q", method)
}

// Simulate runs the engine. Inputs are assumed valid; see Run for the
// validating entry point. An income of zero or less means none was declared.
func Simulate(logger *zap.Logger, params amortization.Parameters, fees finance.Fees, income float64) Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	generator := amortization.NewGenerator(logger)
	result := Result{Parameters: params, Fees: fees, Income: income}
	result.SAC = evaluate(logger, generator.SAC(params), params, fees, income)
	result.PRICE = evaluate(logger, generator.PRICE(params), params, fees, income)

	result.Recommendation = recommendation.Score(recommendation.Input{
		SACTotalPaid:          result.SAC.Summary.TotalPaid,
		PRICETotalPaid:        result.PRICE.Summary.TotalPaid,
		SACFirstInstallment:   result.SAC.FirstInstallment(),
		PRICEFirstInstallment: result.PRICE.FirstInstallment(),
		Income:                income,
	})

	logger.Debug(fmt.Sprintf("recommended %s (SAC %d, PRICE %d)", result.Recommendation.Winner,
		result.Recommendation.SACPoints, result.Recommendation.PRICEPoints),
		zap.String("op", "simulation.Simulate"),
		zap.Bool("tied", result.Recommendation.Tied),
	)

	return result
}

// Run validates the inputs and then simulates. Validation errors block the
// whole run.
func Run(logger *zap.Logger, params amortization.Parameters, fees finance.Fees, income float64) (Result, error) {
	if err := validation.ValidateSimulation(params, fees, income); err != nil {
		return Result{}, fmt.Errorf("invalid simulation input: %w", err)
	}
	return Simulate(logger, params, fees, income), nil
}

func evaluate(logger *zap.Logger, schedule amortization.Schedule, params amortization.Parameters,
	fees finance.Fees, income float64) MethodResult {
	flows := amortization.Installments(schedule)
	result := MethodResult{
		Schedule: schedule,
		Summary:  amortization.Summarize(schedule),
		Cost:     finance.ComputeCost(schedule, params.Principal, fees),
		IRR:      finance.IRR(params.Principal, flows),
		NPV:      finance.NPV(params.Principal, flows, params.PeriodicRate),
	}
	result.Affordability = affordability.Classify(amortization.FirstInstallment(schedule), income)

	if !result.IRR.Converged {
		logger.Warn("internal rate of return did not converge; reporting the last estimate",
			zap.String("op", "simulation.evaluate"),
			zap.String("method", string(schedule.Method)),
			zap.Float64("ratePercent", result.IRR.RatePercent),
			zap.Int("iterations", result.IRR.Iterations),
		)
	}
	if !result.Cost.EffectiveCostAvailable() {
		logger.Warn("effective cost not computable: net disbursement is not positive",
			zap.String("op", "simulation.evaluate"),
			zap.String("method", string(schedule.Method)),
			zap.Float64("netDisbursement", result.Cost.NetDisbursement),
		)
	}
	return result
}
