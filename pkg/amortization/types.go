// Package amortization generates per-period loan ledgers for the constant
// amortization (SAC) and fixed installment (PRICE) systems.
package amortization

import (
	"fmt"
	"strings"
)

// Method identifies an amortization system.
type Method string

const (
	// SAC keeps the principal portion constant; installments decline.
	SAC Method = "SAC"
	// PRICE keeps the installment constant (French system).
	PRICE Method = "PRICE"
)

// Methods lists the supported systems in presentation order.
var Methods = []Method{SAC, PRICE}

// ParseMethod accepts a method name in any case.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToUpper(strings.TrimSpace(s))) {
	case SAC:
		return SAC, nil
	case PRICE:
		return PRICE, nil
	}
	return "", fmt.Errorf("unknown amortization method %q", s)
}

// OneTimeExtra is a single extra principal paydown applied at the start of
// the given absolute month (grace months included in the count).
type OneTimeExtra struct {
	Amount float64 `json:"amount" yaml:"amount"`
	Month  int     `json:"month" yaml:"month"`
}

// Parameters holds the loan inputs shared by both systems. Rates are
// fractions per period (0.008 is 0.8% a month).
type Parameters struct {
	Principal      float64       `json:"principal" yaml:"principal"`
	TermMonths     int           `json:"termMonths" yaml:"termMonths"`
	PeriodicRate   float64       `json:"periodicRate" yaml:"periodicRate"`
	GraceMonths    int           `json:"graceMonths" yaml:"graceMonths"`
	InflationRate  float64       `json:"inflationRate" yaml:"inflationRate"`
	OneTimeExtra   *OneTimeExtra `json:"oneTimeExtra,omitempty" yaml:"oneTimeExtra,omitempty"`
	RecurringExtra float64       `json:"recurringExtra" yaml:"recurringExtra"`
}

// TotalMonths is the nominal schedule length, grace included.
func (p Parameters) TotalMonths() int {
	return p.GraceMonths + p.TermMonths
}

// PeriodEntry is one row of a ledger. Monetary fields other than the
// balances are reported with the inflation multiplier of their month applied.
type PeriodEntry struct {
	Month                    int     `json:"month" yaml:"month"`
	Installment              float64 `json:"installment" yaml:"installment"`
	Interest                 float64 `json:"interest" yaml:"interest"`
	PrincipalPortion         float64 `json:"principalPortion" yaml:"principalPortion"`
	OutstandingBalanceBefore float64 `json:"outstandingBalanceBefore" yaml:"outstandingBalanceBefore"`
	OutstandingBalanceAfter  float64 `json:"outstandingBalanceAfter" yaml:"outstandingBalanceAfter"`
	IsGracePeriod            bool    `json:"isGracePeriod" yaml:"isGracePeriod"`
	RecurringExtraApplied    float64 `json:"recurringExtraApplied" yaml:"recurringExtraApplied"`
	OneTimeExtraApplied      float64 `json:"oneTimeExtraApplied" yaml:"oneTimeExtraApplied"`
	InflationFactor          float64 `json:"inflationFactor" yaml:"inflationFactor"`
}

// NominalPrincipal strips the inflation multiplier from the principal portion.
func (e PeriodEntry) NominalPrincipal() float64 {
	if e.InflationFactor == 0 {
		return e.PrincipalPortion
	}
	return e.PrincipalPortion / e.InflationFactor
}

// NominalInstallment strips the inflation multiplier from the installment.
func (e PeriodEntry) NominalInstallment() float64 {
	if e.InflationFactor == 0 {
		return e.Installment
	}
	return e.Installment / e.InflationFactor
}

// Schedule is the ledger produced for one method.
type Schedule struct {
	Method            Method        `json:"method" yaml:"method"`
	Entries           []PeriodEntry `json:"entries" yaml:"entries"`
	FixedInstallment  float64       `json:"fixedInstallment,omitempty" yaml:"fixedInstallment,omitempty"`
	AmortizationQuota float64       `json:"amortizationQuota,omitempty" yaml:"amortizationQuota,omitempty"`
	GraceMonths       int           `json:"graceMonths" yaml:"graceMonths"`
	Notes             []string      `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Len returns the number of emitted periods.
func (s Schedule) Len() int {
	return len(s.Entries)
}

// Summary aggregates a ledger.
type Summary struct {
	TotalPaid          float64 `json:"totalPaid" yaml:"totalPaid"`
	TotalInterest      float64 `json:"totalInterest" yaml:"totalInterest"`
	TotalPrincipalPaid float64 `json:"totalPrincipalPaid" yaml:"totalPrincipalPaid"`
	TotalExtraPaid     float64 `json:"totalExtraPaid" yaml:"totalExtraPaid"`
	Periods            int     `json:"periods" yaml:"periods"`
}
