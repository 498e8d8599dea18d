package config

import (
	"fmt"

	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/finance"
	"github.com/iwvelando/amortization-compare/pkg/validation"
	"go.uber.org/zap"
)

// Loan indicates a loan and its parameters. Rates are percent per month.
type Loan struct {
	Principal        float64 `yaml:"principal" json:"principal"`
	TermMonths       int     `yaml:"termMonths" json:"termMonths"`
	RatePercent      float64 `yaml:"ratePercent" json:"ratePercent"`
	GraceMonths      int     `yaml:"graceMonths,omitempty" json:"graceMonths,omitempty"`
	InflationPercent float64 `yaml:"inflationPercent,omitempty" json:"inflationPercent,omitempty"`
	ExtraAmount      float64 `yaml:"extraAmount,omitempty" json:"extraAmount,omitempty"`
	ExtraMonth       int     `yaml:"extraMonth,omitempty" json:"extraMonth,omitempty"`
	RecurringExtra   float64 `yaml:"recurringExtra,omitempty" json:"recurringExtra,omitempty"`
}

// DefaultExtraMonth is the month a one-time extra lands on when only its
// amount is given: a year into amortization.
func (loan Loan) DefaultExtraMonth() int {
	return loan.GraceMonths + constants.DefaultExtraMonthOffset
}

// ToParameters converts the loan into engine parameters. A zero extra
// amount means no one-time extra.
func (loan Loan) ToParameters() amortization.Parameters {
	params := amortization.Parameters{
		Principal:      loan.Principal,
		TermMonths:     loan.TermMonths,
		PeriodicRate:   loan.RatePercent / constants.PercentageMultiplier,
		GraceMonths:    loan.GraceMonths,
		InflationRate:  loan.InflationPercent / constants.PercentageMultiplier,
		RecurringExtra: loan.RecurringExtra,
	}

	if loan.ExtraAmount != 0 {
		month := loan.ExtraMonth
		if month == 0 {
			month = loan.DefaultExtraMonth()
		}
		params.OneTimeExtra = &amortization.OneTimeExtra{Amount: loan.ExtraAmount, Month: month}
	}
	return params
}

// ToFees sums the origination components.
func (fees Fees) ToFees() finance.Fees {
	return finance.Fees{
		Origination:       fees.Tax + fees.Charges,
		PeriodicInsurance: fees.Insurance,
	}
}

// Simulation converts the configuration into validated engine inputs.
// Every violation is reported in the returned error.
func (c *Configuration) Simulation(logger *zap.Logger) (amortization.Parameters, finance.Fees, float64, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	params := c.Loan.ToParameters()
	fees := c.Fees.ToFees()

	if c.Loan.ExtraAmount != 0 && c.Loan.ExtraMonth == 0 {
		logger.Debug(fmt.Sprintf("one-time extra month not set, defaulting to %d", params.OneTimeExtra.Month),
			zap.String("op", "config.Simulation"),
		)
	}

	if err := validation.ValidateSimulation(params, fees, c.Income); err != nil {
		return amortization.Parameters{}, finance.Fees{}, 0, fmt.Errorf("invalid configuration: %w", err)
	}
	return params, fees, c.Income, nil
}
