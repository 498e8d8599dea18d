package validation

import (
	"errors"
	"fmt"
	"math"

	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/finance"
)

// Input errors. Each violation is wrapped with the offending value.
var (
	ErrInvalidPrincipal      = errors.New("principal must be a positive number")
	ErrInvalidTerm           = errors.New("term must be a positive number of months")
	ErrInvalidRate           = errors.New("periodic rate must be a positive number")
	ErrInvalidGrace          = errors.New("grace period cannot be negative")
	ErrTermTooLong           = errors.New("grace plus term exceeds the maximum number of months")
	ErrInvalidInflation      = errors.New("inflation rate cannot be negative")
	ErrInvalidRecurringExtra = errors.New("recurring extra paydown cannot be negative")
	ErrInvalidExtra          = errors.New("one-time extra paydown must be a positive amount in a positive month")
	ErrExtraInGrace          = errors.New("one-time extra paydown month must be after the grace period")
	ErrExtraBeyondTerm       = errors.New("one-time extra paydown month exceeds the total number of installments")
	ErrExtraExceedsPrincipal = errors.New("one-time extra paydown cannot exceed the principal")
	ErrInvalidFees           = errors.New("fees cannot be negative")
	ErrInvalidIncome         = errors.New("income cannot be negative")
)

func notFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// ValidateParameters returns every violation joined into one error, or nil.
func ValidateParameters(params amortization.Parameters) error {
	var errs []error

	if notFinite(params.Principal) || params.Principal <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidPrincipal, params.Principal))
	}
	if params.TermMonths <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidTerm, params.TermMonths))
	}
	if notFinite(params.PeriodicRate) || params.PeriodicRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidRate, params.PeriodicRate))
	}
	if params.GraceMonths < 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidGrace, params.GraceMonths))
	}
	// Checked per field first so the sum cannot overflow.
	if params.TermMonths > constants.MaxTotalMonths || params.GraceMonths > constants.MaxTotalMonths ||
		params.TotalMonths() > constants.MaxTotalMonths {
		errs = append(errs, fmt.Errorf("%w: got %d grace + %d term, limit is %d",
			ErrTermTooLong, params.GraceMonths, params.TermMonths, constants.MaxTotalMonths))
	}
	if notFinite(params.InflationRate) || params.InflationRate < 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidInflation, params.InflationRate))
	}
	if notFinite(params.RecurringExtra) || params.RecurringExtra < 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrInvalidRecurringExtra, params.RecurringExtra))
	}

	if extra := params.OneTimeExtra; extra != nil {
		switch {
		case notFinite(extra.Amount) || extra.Amount <= 0 || extra.Month <= 0:
			errs = append(errs, fmt.Errorf("%w: got %v at month %d", ErrInvalidExtra, extra.Amount, extra.Month))
		case extra.Month <= params.GraceMonths:
			errs = append(errs, fmt.Errorf("%w: month %d, first amortizing month is %d",
				ErrExtraInGrace, extra.Month, params.GraceMonths+1))
		case extra.Month > params.TotalMonths():
			errs = append(errs, fmt.Errorf("%w: month %d, last month is %d",
				ErrExtraBeyondTerm, extra.Month, params.TotalMonths()))
		}
		if !notFinite(extra.Amount) && params.Principal > 0 && extra.Amount > params.Principal {
			errs = append(errs, fmt.Errorf("%w: %v > %v", ErrExtraExceedsPrincipal, extra.Amount, params.Principal))
		}
	}

	return errors.Join(errs...)
}

// ValidateFees rejects negative or non-finite fees.
func ValidateFees(fees finance.Fees) error {
	var errs []error
	if notFinite(fees.Origination) || fees.Origination < 0 {
		errs = append(errs, fmt.Errorf("%w: origination %v", ErrInvalidFees, fees.Origination))
	}
	if notFinite(fees.PeriodicInsurance) || fees.PeriodicInsurance < 0 {
		errs = append(errs, fmt.Errorf("%w: periodic insurance %v", ErrInvalidFees, fees.PeriodicInsurance))
	}
	return errors.Join(errs...)
}

// ValidateIncome accepts zero as "not declared".
func ValidateIncome(income float64) error {
	if notFinite(income) || income < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidIncome, income)
	}
	return nil
}

// ValidateSimulation validates everything the engine needs before a run.
func ValidateSimulation(params amortization.Parameters, fees finance.Fees, income float64) error {
	return errors.Join(ValidateParameters(params), ValidateFees(fees), ValidateIncome(income))
}

// Messages flattens joined errors into one message per violation.
func Messages(err error) []string {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []string
		for _, e := range joined.Unwrap() {
			out = append(out, Messages(e)...)
		}
		return out
	}
	return []string{err.Error()}
}
