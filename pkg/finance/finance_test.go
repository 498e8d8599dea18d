package finance

import (
	"math"
	"testing"

	"github.com/iwvelando/amortization-compare/pkg/amortization"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mortgageSchedules(params amortization.Parameters) []amortization.Schedule {
	generator := amortization.NewGenerator(nil)
	return []amortization.Schedule{generator.SAC(params), generator.PRICE(params)}
}

func TestComputeCost(t *testing.T) {
	schedule := amortization.Schedule{
		Entries: []amortization.PeriodEntry{
			{Month: 1, Installment: 600},
			{Month: 2, Installment: 550},
		},
	}
	fees := Fees{Origination: 100, PeriodicInsurance: 10}

	metrics := ComputeCost(schedule, 1000, fees)

	assert.Equal(t, 900.0, metrics.NetDisbursement)
	assert.Equal(t, 20.0, metrics.TotalInsurance)
	assert.Equal(t, 1170.0, metrics.TotalPaidIncludingInsurance)
	assert.Equal(t, 170.0, metrics.TotalCost)
	require.True(t, metrics.EffectiveCostAvailable())

	expectedPeriod := math.Pow(1170.0/900.0, 0.5) - 1
	assert.InDelta(t, expectedPeriod, *metrics.EffectiveCostPerPeriod, 1e-12)
	assert.InDelta(t, math.Pow(1+expectedPeriod, 12)-1, *metrics.EffectiveCostAnnualized, 1e-12)
}

func TestComputeCostNotAvailable(t *testing.T) {
	schedule := amortization.Schedule{Entries: []amortization.PeriodEntry{{Month: 1, Installment: 1100}}}

	tests := []struct {
		name        string
		origination float64
	}{
		{"Fees equal principal", 1000},
		{"Fees exceed principal", 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metrics := ComputeCost(schedule, 1000, Fees{Origination: tt.origination})
			assert.False(t, metrics.EffectiveCostAvailable())
			assert.Nil(t, metrics.EffectiveCostPerPeriod)
			assert.Nil(t, metrics.EffectiveCostAnnualized)
			assert.Equal(t, 1000-tt.origination, metrics.NetDisbursement)
			assert.Equal(t, 100.0, metrics.TotalCost)
		})
	}

	empty := ComputeCost(amortization.Schedule{}, 1000, Fees{})
	assert.False(t, empty.EffectiveCostAvailable())
}

func TestEffectiveCostExceedsNominalWithFees(t *testing.T) {
	params := amortization.Parameters{Principal: 200000, TermMonths: 360, PeriodicRate: 0.008}
	for _, schedule := range mortgageSchedules(params) {
		bare := ComputeCost(schedule, params.Principal, Fees{})
		loaded := ComputeCost(schedule, params.Principal, Fees{Origination: 5500, PeriodicInsurance: 150})
		require.True(t, bare.EffectiveCostAvailable())
		require.True(t, loaded.EffectiveCostAvailable())
		assert.Greater(t, *loaded.EffectiveCostPerPeriod, *bare.EffectiveCostPerPeriod, "method %s", schedule.Method)
	}
}

func TestNPV(t *testing.T) {
	flows := []float64{110, 121}

	assert.InDelta(t, 231-200, NPV(200, flows, 0), 1e-12)
	assert.InDelta(t, 0, NPV(200, flows, 0.1), 1e-9)
	assert.Equal(t, -50.0, NPV(50, nil, 0.05))
}

func TestNPVAtContractRateIsZeroWithoutModifiers(t *testing.T) {
	params := amortization.Parameters{Principal: 50000, TermMonths: 60, PeriodicRate: 0.015}
	for _, schedule := range mortgageSchedules(params) {
		npv := NPV(params.Principal, amortization.Installments(schedule), params.PeriodicRate)
		assert.InDelta(t, 0, npv, 1e-6, "method %s", schedule.Method)
	}
}

func TestIRRMatchesContractRate(t *testing.T) {
	params := amortization.Parameters{Principal: 200000, TermMonths: 360, PeriodicRate: 0.008}
	for _, schedule := range mortgageSchedules(params) {
		result := IRR(params.Principal, amortization.Installments(schedule))
		require.True(t, result.Converged, "method %s", schedule.Method)
		assert.InDelta(t, 0.8, result.RatePercent, 1e-6, "method %s", schedule.Method)
		assert.InDelta(t, 0.008, result.Rate(), 1e-8)
	}
}

func TestIRRRoundTrip(t *testing.T) {
	params := amortization.Parameters{
		Principal:     150000,
		TermMonths:    240,
		PeriodicRate:  0.009,
		GraceMonths:   6,
		InflationRate: 0.004,
		OneTimeExtra:  &amortization.OneTimeExtra{Amount: 15000, Month: 24},
	}

	for _, schedule := range mortgageSchedules(params) {
		flows := amortization.Installments(schedule)
		result := IRR(params.Principal, flows)
		assert.True(t, result.Converged, "method %s", schedule.Method)
		assert.LessOrEqual(t, result.Iterations, 100)
		assert.InDelta(t, 0, NPV(params.Principal, flows, result.Rate()), 1e-4, "method %s", schedule.Method)
	}
}

func TestIRRNonConvergenceReportsEstimate(t *testing.T) {
	result := IRR(1000, nil)
	assert.False(t, result.Converged)
	assert.InDelta(t, 1.0, result.RatePercent, 1e-12)
	assert.Equal(t, 0, result.Iterations)
}
