package output

import (
	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
)

// SeriesPoint is one month of the chart series, SAC and PRICE side by side.
// A method whose ledger already ended reports zeros.
type SeriesPoint struct {
	Month            int     `json:"month" yaml:"month"`
	SACInstallment   float64 `json:"sacInstallment" yaml:"sacInstallment"`
	PRICEInstallment float64 `json:"priceInstallment" yaml:"priceInstallment"`
	SACBalance       float64 `json:"sacBalance" yaml:"sacBalance"`
	PRICEBalance     float64 `json:"priceBalance" yaml:"priceBalance"`
}

// Series aligns the two ledgers by index for installment and balance charts.
func Series(sac, price amortization.Schedule) []SeriesPoint {
	n := len(sac.Entries)
	if len(price.Entries) > n {
		n = len(price.Entries)
	}

	points := make([]SeriesPoint, n)
	for i := range points {
		points[i].Month = i + 1
		if i < len(sac.Entries) {
			points[i].Month = sac.Entries[i].Month
			points[i].SACInstallment = sac.Entries[i].Installment
			points[i].SACBalance = sac.Entries[i].OutstandingBalanceAfter
		}
		if i < len(price.Entries) {
			points[i].Month = price.Entries[i].Month
			points[i].PRICEInstallment = price.Entries[i].Installment
			points[i].PRICEBalance = price.Entries[i].OutstandingBalanceAfter
		}
	}
	return points
}

// Composition splits what a method paid into interest and principal.
type Composition struct {
	Method    amortization.Method `json:"method" yaml:"method"`
	Interest  float64             `json:"interest" yaml:"interest"`
	Principal float64             `json:"principal" yaml:"principal"`
}

// InterestShare is the fraction of the payments that went to interest.
func (c Composition) InterestShare() float64 {
	total := c.Interest + c.Principal
	if total == 0 {
		return 0
	}
	return c.Interest / total
}

// Compositions returns the interest/principal split of both methods, SAC first.
func Compositions(result simulation.Result) []Composition {
	out := make([]Composition, 0, len(amortization.Methods))
	for _, method := range amortization.Methods {
		mr, _ := result.Method(method)
		out = append(out, Composition{
			Method:    method,
			Interest:  mr.Summary.TotalInterest,
			Principal: mr.Summary.TotalPrincipalPaid,
		})
	}
	return out
}

// Excerpt returns the first and last n entries and how many were left out
// between them. When n is not positive or the ledger is short enough, every
// entry is returned in head.
func Excerpt(entries []amortization.PeriodEntry, n int) (head, tail []amortization.PeriodEntry, omitted int) {
	if n <= 0 || len(entries) <= 2*n {
		return entries, nil, 0
	}
	return entries[:n], entries[len(entries)-n:], len(entries) - 2*n
}
