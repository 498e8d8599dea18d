package amortization

// Summarize totals the reported fields of a ledger.
func Summarize(schedule Schedule) Summary {
	summary := Summary{Periods: len(schedule.Entries)}
	for _, entry := range schedule.Entries {
		summary.TotalPaid += entry.Installment
		summary.TotalInterest += entry.Interest
		summary.TotalPrincipalPaid += entry.PrincipalPortion
		summary.TotalExtraPaid += entry.RecurringExtraApplied + entry.OneTimeExtraApplied
	}
	return summary
}

// FirstInstallment returns the first post-grace installment, falling back to
// the first entry when the ledger never leaves the grace period.
func FirstInstallment(schedule Schedule) float64 {
	if len(schedule.Entries) == 0 {
		return 0
	}
	if schedule.GraceMonths >= 0 && schedule.GraceMonths < len(schedule.Entries) {
		return schedule.Entries[schedule.GraceMonths].Installment
	}
	return schedule.Entries[0].Installment
}

// Installments returns the reported installment of every period in order.
func Installments(schedule Schedule) []float64 {
	values := make([]float64, len(schedule.Entries))
	for i, entry := range schedule.Entries {
		values[i] = entry.Installment
	}
	return values
}
