package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/format"
)

const reportRuleWidth = 80

// Report writes the plain-text digest of a simulation: loan terms, per-method
// totals with the annual effective cost, and the recommended system.
func Report(w io.Writer, result simulation.Result) error {
	rule := strings.Repeat("=", reportRuleWidth)
	params := result.Parameters

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("AMORTIZATION REPORT - SAC vs PRICE\n")
	b.WriteString(rule + "\n\n")
	fmt.Fprintf(&b, "Principal: %s\n", format.Currency(params.Principal))
	fmt.Fprintf(&b, "Installments: %d\n", params.TermMonths)
	fmt.Fprintf(&b, "Rate: %s per month\n", format.Percent(params.PeriodicRate*constants.PercentageMultiplier, 2))
	if params.GraceMonths > 0 {
		fmt.Fprintf(&b, "Grace: %d months\n", params.GraceMonths)
	}
	b.WriteString("\n")

	for _, method := range amortization.Methods {
		mr, _ := result.Method(method)
		fmt.Fprintf(&b, "%s - Total: %s | Interest: %s | Annual effective cost: %s\n",
			method,
			format.Currency(mr.Summary.TotalPaid),
			format.Currency(mr.Summary.TotalInterest),
			format.OptionalPercent(mr.Cost.EffectiveCostAnnualized, 2),
		)
	}
	b.WriteString("\n")

	rec := result.Recommendation
	fmt.Fprintf(&b, "RECOMMENDED: %s (SAC %d, PRICE %d)\n", rec.Winner, rec.SACPoints, rec.PRICEPoints)

	_, err := io.WriteString(w, b.String())
	return err
}
