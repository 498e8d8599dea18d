// Package testutil provides common utility functions for testing.
package testutil

import (
	"strings"

	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/finance"
)

// MortgageParameters is a 30-year, 0.8% monthly loan of 200,000 with no
// grace, inflation or extras.
func MortgageParameters() amortization.Parameters {
	return amortization.Parameters{
		Principal:    200000,
		TermMonths:   360,
		PeriodicRate: 0.008,
	}
}

// ShortLoanParameters is a one-year loan small enough to inspect by hand.
func ShortLoanParameters() amortization.Parameters {
	return amortization.Parameters{
		Principal:    12000,
		TermMonths:   12,
		PeriodicRate: 0.01,
	}
}

// TypicalFees are origination and insurance charges sized for MortgageParameters.
func TypicalFees() finance.Fees {
	return finance.Fees{Origination: 5500, PeriodicInsurance: 150}
}

// LastEntry returns the final ledger row, or the zero entry for an empty ledger.
func LastEntry(schedule amortization.Schedule) amortization.PeriodEntry {
	if len(schedule.Entries) == 0 {
		return amortization.PeriodEntry{}
	}
	return schedule.Entries[len(schedule.Entries)-1]
}

// NonEmptyLines splits s into lines and drops blank ones.
func NonEmptyLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
