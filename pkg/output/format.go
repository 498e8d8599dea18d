// Package output provides utilities for formatting and displaying simulation results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/amortization-compare/internal/simulation"
	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/iwvelando/amortization-compare/pkg/constants"
	"github.com/iwvelando/amortization-compare/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Write renders result in the named output format.
func Write(w io.Writer, outputFormat string, result simulation.Result, excerptRows int) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, result, excerptRows)
	case constants.OutputFormatCSV:
		return CsvFormat(w, result)
	case constants.OutputFormatJSON:
		return JSONFormat(w, result)
	case constants.OutputFormatYAML:
		return YAMLFormat(w, result)
	case constants.OutputFormatReport:
		return Report(w, result)
	}
	return fmt.Errorf("unsupported output format %q", outputFormat)
}

// PrettyFormat outputs a human-readable rather than machine-readable view:
// each ledger (excerpted to the first and last excerptRows entries), the
// side-by-side comparison, and the recommendation.
func PrettyFormat(w io.Writer, result simulation.Result, excerptRows int) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	params := result.Parameters
	ew.printf(p, "--- Loan ---\n")
	ew.printf(p, "Principal          | $%.2f\n", params.Principal)
	ew.printf(p, "Installments       | %d (grace %d)\n", params.TotalMonths(), params.GraceMonths)
	ew.printf(p, "Rate               | %s per month\n", format.Percent(params.PeriodicRate*constants.PercentageMultiplier, 2))
	if params.InflationRate > 0 {
		ew.printf(p, "Inflation          | %s per month\n", format.Percent(params.InflationRate*constants.PercentageMultiplier, 2))
	}
	if extra := params.OneTimeExtra; extra != nil {
		ew.printf(p, "One-time extra     | $%.2f at month %d\n", extra.Amount, extra.Month)
	}
	if params.RecurringExtra > 0 {
		ew.printf(p, "Recurring extra    | $%.2f per month\n", params.RecurringExtra)
	}
	ew.printf(p, "\n")

	for _, method := range amortization.Methods {
		mr, _ := result.Method(method)
		prettyLedger(ew, p, mr.Schedule, excerptRows)
	}

	ew.printf(p, "--- Comparison ---\n")
	ew.printf(p, "%-24s | %16s | %16s\n", "Metric", "SAC", "PRICE")
	row := func(label string, sac, price float64) {
		ew.printf(p, "%-24s | %16.2f | %16.2f\n", label, sac, price)
	}
	text := func(label, sac, price string) {
		ew.printf(p, "%-24s | %16s | %16s\n", label, sac, price)
	}
	sac, price := result.SAC, result.PRICE
	row("First installment", sac.FirstInstallment(), price.FirstInstallment())
	row("Total paid", sac.Summary.TotalPaid, price.Summary.TotalPaid)
	row("Total interest", sac.Summary.TotalInterest, price.Summary.TotalInterest)
	row("Total extra paydown", sac.Summary.TotalExtraPaid, price.Summary.TotalExtraPaid)
	row("Total insurance", sac.Cost.TotalInsurance, price.Cost.TotalInsurance)
	row("Total cost", sac.Cost.TotalCost, price.Cost.TotalCost)
	text("Effective cost (month)",
		format.OptionalPercent(sac.Cost.EffectiveCostPerPeriod, 4),
		format.OptionalPercent(price.Cost.EffectiveCostPerPeriod, 4))
	text("Effective cost (year)",
		format.OptionalPercent(sac.Cost.EffectiveCostAnnualized, 2),
		format.OptionalPercent(price.Cost.EffectiveCostAnnualized, 2))
	text("IRR (month)", irrText(sac), irrText(price))
	row("NPV at contract rate", sac.NPV, price.NPV)
	if sac.Affordability != nil && price.Affordability != nil {
		text("Income commitment",
			format.Percent(sac.Affordability.Ratio, 1)+" "+string(sac.Affordability.Tier),
			format.Percent(price.Affordability.Ratio, 1)+" "+string(price.Affordability.Tier))
	}
	ew.printf(p, "\n")

	rec := result.Recommendation
	ew.printf(p, "--- Recommendation ---\n")
	for _, vote := range rec.Votes {
		ew.printf(p, "%-14s | %-5s | +%d | %s\n", vote.Criterion, vote.Method, vote.Weight, vote.Reason)
	}
	ew.printf(p, "Recommended: %s (SAC %d, PRICE %d)", rec.Winner, rec.SACPoints, rec.PRICEPoints)
	if rec.Tied {
		ew.printf(p, " - tie resolved in favor of %s", rec.Winner)
	}
	ew.printf(p, "\n")
	return ew.err
}

func prettyLedger(ew *errWriter, p *message.Printer, schedule amortization.Schedule, excerptRows int) {
	ew.printf(p, "--- %s ledger ---\n", schedule.Method)
	ew.printf(p, "Month | %14s | %14s | %14s | %14s | %16s | Notes\n",
		"Installment", "Interest", "Principal", "Extra", "Balance")

	head, tail, omitted := Excerpt(schedule.Entries, excerptRows)
	line := func(e amortization.PeriodEntry) {
		var notes []string
		if e.IsGracePeriod {
			notes = append(notes, "grace")
		}
		if e.OneTimeExtraApplied > 0 {
			notes = append(notes, "one-time extra")
		}
		ew.printf(p, "%5d | %14.2f | %14.2f | %14.2f | %14.2f | %16.2f | %s\n",
			e.Month, e.Installment, e.Interest, e.PrincipalPortion,
			e.RecurringExtraApplied+e.OneTimeExtraApplied, e.OutstandingBalanceAfter,
			strings.Join(notes, ","))
	}
	for _, e := range head {
		line(e)
	}
	if omitted > 0 {
		ew.printf(p, "  ... | %d months omitted\n", omitted)
	}
	for _, e := range tail {
		line(e)
	}
	for _, note := range schedule.Notes {
		ew.printf(p, "Note: %s\n", note)
	}
	ew.printf(p, "\n")
}

func irrText(mr simulation.MethodResult) string {
	text := format.Percent(mr.IRR.RatePercent, 4)
	if !mr.IRR.Converged {
		text += " (approx.)"
	}
	return text
}

// csvHeader is the column layout of CsvFormat.
var csvHeader = []string{
	"method", "month", "installment", "interest", "principal",
	"recurringExtra", "oneTimeExtra", "balanceBefore", "balanceAfter",
	"grace", "inflationFactor",
}

// CsvFormat outputs both ledgers in comma-separated value format, SAC first.
func CsvFormat(w io.Writer, result simulation.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, method := range amortization.Methods {
		mr, _ := result.Method(method)
		for _, e := range mr.Schedule.Entries {
			record := []string{
				string(method),
				strconv.Itoa(e.Month),
				format.PlainCurrency(e.Installment),
				format.PlainCurrency(e.Interest),
				format.PlainCurrency(e.PrincipalPortion),
				format.PlainCurrency(e.RecurringExtraApplied),
				format.PlainCurrency(e.OneTimeExtraApplied),
				format.PlainCurrency(e.OutstandingBalanceBefore),
				format.PlainCurrency(e.OutstandingBalanceAfter),
				strconv.FormatBool(e.IsGracePeriod),
				strconv.FormatFloat(e.InflationFactor, 'f', 6, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the full result as indented JSON.
func JSONFormat(w io.Writer, result simulation.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// YAMLFormat outputs the full result as YAML.
func YAMLFormat(w io.Writer, result simulation.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return err
	}
	return enc.Close()
}

// errWriter keeps the first write error; later writes are skipped.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(p *message.Printer, key string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = p.Fprintf(ew.w, key, args...)
}
