// Package recommendation scores SAC against PRICE with a fixed set of
// weighted criteria and names the preferred system.
package recommendation

import (
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/mathutil"
)

// Criterion names one scoring rule.
type Criterion string

const (
	// Cost favors the system with the lower total paid.
	Cost Criterion = "cost"
	// Capacity favors PRICE when only the SAC first installment exceeds the
	// caution limit of income.
	Capacity Criterion = "capacity"
	// Predictability always favors PRICE for its fixed installment.
	Predictability Criterion = "predictability"
	// CashFlow always favors SAC for its declining installments.
	CashFlow Criterion = "cashFlow"
)

// Criterion weights.
const (
	CostWeight           = 3
	CapacityWeight       = 4
	PredictabilityWeight = 1
	CashFlowWeight       = 2
)

// TieBreaker wins when both systems collect the same number of points. SAC
// must score strictly more to be recommended.
const TieBreaker = amortization.PRICE

// Vote is one criterion's contribution.
type Vote struct {
	Criterion Criterion           `json:"criterion" yaml:"criterion"`
	Method    amortization.Method `json:"method" yaml:"method"`
	Weight    int                 `json:"weight" yaml:"weight"`
	Reason    string              `json:"reason" yaml:"reason"`
}

// Recommendation is the scored verdict.
type Recommendation struct {
	Votes       []Vote              `json:"votes" yaml:"votes"`
	SACPoints   int                 `json:"sacPoints" yaml:"sacPoints"`
	PRICEPoints int                 `json:"pricePoints" yaml:"pricePoints"`
	Winner      amortization.Method `json:"winner" yaml:"winner"`
	Tied        bool                `json:"tied" yaml:"tied"`
}

// Points returns the aggregate weight collected by method.
func (r Recommendation) Points(method amortization.Method) int {
	switch method {
	case amortization.SAC:
		return r.SACPoints
	case amortization.PRICE:
		return r.PRICEPoints
	}
	return 0
}

// Input carries the figures the scorer compares. First installments are the
// first post-grace installments; Income of zero or less disables the
// capacity criterion.
type Input struct {
	SACTotalPaid          float64
	PRICETotalPaid        float64
	SACFirstInstallment   float64
	PRICEFirstInstallment float64
	Income                float64
}

// Score evaluates the criteria in their fixed order.
func Score(in Input) Recommendation {
	var votes []Vote

	// Totals equal to the cent go to PRICE.
	if mathutil.Round(in.SACTotalPaid) < mathutil.Round(in.PRICETotalPaid) {
		votes = append(votes, Vote{Criterion: Cost, Method: amortization.SAC, Weight: CostWeight,
			Reason: "lower total paid"})
	} else {
		votes = append(votes, Vote{Criterion: Cost, Method: amortization.PRICE, Weight: CostWeight,
			Reason: "lower or equal total paid"})
	}

	if in.Income > 0 {
		sacRatio := in.SACFirstInstallment * constants.PercentageMultiplier / in.Income
		priceRatio := in.PRICEFirstInstallment * constants.PercentageMultiplier / in.Income
		if sacRatio > constants.CautionRatioLimit && priceRatio <= constants.CautionRatioLimit {
			votes = append(votes, Vote{Criterion: Capacity, Method: amortization.PRICE, Weight: CapacityWeight,
				Reason: "first SAC installment exceeds payment capacity"})
		}
	}

	votes = append(votes,
		Vote{Criterion: Predictability, Method: amortization.PRICE, Weight: PredictabilityWeight,
			Reason: "fixed installments"},
		Vote{Criterion: CashFlow, Method: amortization.SAC, Weight: CashFlowWeight,
			Reason: "declining installments"},
	)

	rec := Recommendation{Votes: votes}
	for _, vote := range votes {
		switch vote.Method {
		case amortization.SAC:
			rec.SACPoints += vote.Weight
		case amortization.PRICE:
			rec.PRICEPoints += vote.Weight
		}
	}

	switch {
	case rec.SACPoints > rec.PRICEPoints:
		rec.Winner = amortization.SAC
	case rec.PRICEPoints > rec.SACPoints:
		rec.Winner = amortization.PRICE
	default:
		rec.Winner = TieBreaker
		rec.Tied = true
	}
	return rec
}
