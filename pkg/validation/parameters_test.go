package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/finance"
)

func validParameters() amortization.Parameters {
	return amortization.Parameters{
		Principal:    200000,
		TermMonths:   360,
		PeriodicRate: 0.008,
		GraceMonths:  6,
	}
}

func TestValidateParameters(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *amortization.Parameters)
		wantErr []error
	}{
		{name: "Valid", modify: func(p *amortization.Parameters) {}},
		{name: "Zero principal", modify: func(p *amortization.Parameters) { p.Principal = 0 }, wantErr: []error{ErrInvalidPrincipal}},
		{name: "NaN principal", modify: func(p *amortization.Parameters) { p.Principal = math.NaN() }, wantErr: []error{ErrInvalidPrincipal}},
		{name: "Zero term", modify: func(p *amortization.Parameters) { p.TermMonths = 0 }, wantErr: []error{ErrInvalidTerm}},
		{name: "Zero rate", modify: func(p *amortization.Parameters) { p.PeriodicRate = 0 }, wantErr: []error{ErrInvalidRate}},
		{name: "Negative grace", modify: func(p *amortization.Parameters) { p.GraceMonths = -1 }, wantErr: []error{ErrInvalidGrace}},
		{
			name: "Term at limit",
			modify: func(p *amortization.Parameters) {
				p.TermMonths = 1200
				p.GraceMonths = 0
			},
		},
		{name: "Term too long", modify: func(p *amortization.Parameters) { p.TermMonths = 1 << 40 }, wantErr: []error{ErrTermTooLong}},
		{
			name: "Grace pushes past limit",
			modify: func(p *amortization.Parameters) {
				p.TermMonths = 1200
				p.GraceMonths = 1
			},
			wantErr: []error{ErrTermTooLong},
		},
		{name: "Huge grace", modify: func(p *amortization.Parameters) { p.GraceMonths = 1 << 62 }, wantErr: []error{ErrTermTooLong}},
		{name: "Negative inflation", modify: func(p *amortization.Parameters) { p.InflationRate = -0.01 }, wantErr: []error{ErrInvalidInflation}},
		{name: "Negative recurring", modify: func(p *amortization.Parameters) { p.RecurringExtra = -5 }, wantErr: []error{ErrInvalidRecurringExtra}},
		{
			name:   "Extra after grace",
			modify: func(p *amortization.Parameters) { p.OneTimeExtra = &amortization.OneTimeExtra{Amount: 1000, Month: 7} },
		},
		{
			name:    "Extra inside grace",
			modify:  func(p *amortization.Parameters) { p.OneTimeExtra = &amortization.OneTimeExtra{Amount: 1000, Month: 6} },
			wantErr: []error{ErrExtraInGrace},
		},
		{
			name:   "Extra at last month",
			modify: func(p *amortization.Parameters) { p.OneTimeExtra = &amortization.OneTimeExtra{Amount: 1000, Month: 366} },
		},
		{
			name:    "Extra beyond term",
			modify:  func(p *amortization.Parameters) { p.OneTimeExtra = &amortization.OneTimeExtra{Amount: 1000, Month: 367} },
			wantErr: []error{ErrExtraBeyondTerm},
		},
		{
			name:    "Extra exceeds principal",
			modify:  func(p *amortization.Parameters) { p.OneTimeExtra = &amortization.OneTimeExtra{Amount: 250000, Month: 12} },
			wantErr: []error{ErrExtraExceedsPrincipal},
		},
		{
			name:    "Extra with zero amount",
			modify:  func(p *amortization.Parameters) { p.OneTimeExtra = &amortization.OneTimeExtra{Amount: 0, Month: 12} },
			wantErr: []error{ErrInvalidExtra},
		},
		{
			name: "Every problem reported at once",
			modify: func(p *amortization.Parameters) {
				p.Principal = -1
				p.TermMonths = 0
				p.PeriodicRate = -0.01
			},
			wantErr: []error{ErrInvalidPrincipal, ErrInvalidTerm, ErrInvalidRate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := validParameters()
			tt.modify(&params)
			err := ValidateParameters(params)
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("ValidateParameters() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateParameters() expected error but got none")
			}
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("ValidateParameters() error %v does not wrap %v", err, want)
				}
			}
		})
	}
}

func TestValidateFeesAndIncome(t *testing.T) {
	if err := ValidateFees(finance.Fees{Origination: 5500, PeriodicInsurance: 150}); err != nil {
		t.Errorf("ValidateFees() unexpected error: %v", err)
	}
	if err := ValidateFees(finance.Fees{Origination: -1}); !errors.Is(err, ErrInvalidFees) {
		t.Errorf("ValidateFees() = %v, expected ErrInvalidFees", err)
	}
	if err := ValidateFees(finance.Fees{PeriodicInsurance: math.Inf(1)}); !errors.Is(err, ErrInvalidFees) {
		t.Errorf("ValidateFees() = %v, expected ErrInvalidFees", err)
	}
	if err := ValidateIncome(0); err != nil {
		t.Errorf("ValidateIncome(0) unexpected error: %v", err)
	}
	if err := ValidateIncome(-10); !errors.Is(err, ErrInvalidIncome) {
		t.Errorf("ValidateIncome(-10) = %v, expected ErrInvalidIncome", err)
	}
}

func TestValidateSimulation(t *testing.T) {
	params := validParameters()
	params.TermMonths = 0
	err := ValidateSimulation(params, finance.Fees{Origination: -1}, -5)
	for _, want := range []error{ErrInvalidTerm, ErrInvalidFees, ErrInvalidIncome} {
		if !errors.Is(err, want) {
			t.Errorf("ValidateSimulation() error %v does not wrap %v", err, want)
		}
	}
	if err := ValidateSimulation(validParameters(), finance.Fees{}, 8000); err != nil {
		t.Errorf("ValidateSimulation() unexpected error: %v", err)
	}
}

func TestMessages(t *testing.T) {
	if got := Messages(nil); got != nil {
		t.Errorf("Messages(nil) = %v, expected nil", got)
	}

	params := validParameters()
	params.Principal = 0
	params.TermMonths = 0
	err := ValidateSimulation(params, finance.Fees{Origination: -1}, 0)
	messages := Messages(err)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d: %q", len(messages), messages)
	}
	if messages[0] != "principal must be a positive number: got 0" {
		t.Errorf("unexpected first message %q", messages[0])
	}

	single := Messages(ErrInvalidIncome)
	if len(single) != 1 || single[0] != ErrInvalidIncome.Error() {
		t.Errorf("Messages(single) = %q", single)
	}
}
