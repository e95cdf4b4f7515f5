package tax

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator(Config{RoundingPlaces: 2, CompoundByDefault: true})

	vat := Rate{ID: uuid.New(), Name: "VAT", Rate: amt("10"), Type: RateTypePercentage, Priority: 1}

	tests := []struct {
		name          string
		base          string
		rates         []Rate
		wantTotal     string
		wantFinal     string
		wantType      string
		wantBreakdown []string // per-entry amounts in order
	}{
		{
			name:      "no applicable rates",
			base:      "100",
			rates:     nil,
			wantTotal: "0.00",
			wantFinal: "100.00",
			wantType:  CalculationNoTax,
		},
		{
			name:          "single exclusive percentage",
			base:          "100",
			rates:         []Rate{vat},
			wantTotal:     "10.00",
			wantFinal:     "110.00",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"10.00"},
		},
		{
			name: "single inclusive percentage is back-calculated",
			base: "110",
			rates: []Rate{
				{ID: uuid.New(), Name: "VAT", Rate: amt("10"), Type: RateTypePercentage, IsInclusive: true, Priority: 1},
			},
			wantTotal:     "10.00",
			wantFinal:     "110.00",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"10.00"},
		},
		{
			name: "compound percentages apply to running total",
			base: "100",
			rates: []Rate{
				{ID: uuid.New(), Name: "VAT", Rate: amt("10"), Type: RateTypePercentage, Priority: 1},
				{ID: uuid.New(), Name: "Service", Rate: amt("5"), Type: RateTypePercentage, Priority: 2},
			},
			wantTotal:     "15.50",
			wantFinal:     "115.50",
			wantType:      CalculationCompound,
			wantBreakdown: []string{"10.00", "5.50"},
		},
		{
			name: "fixed rate contributes a flat amount",
			base: "100",
			rates: []Rate{
				{ID: uuid.New(), Name: "Handling", Rate: amt("2.50"), Type: RateTypeFixed, Priority: 1},
			},
			wantTotal:     "2.50",
			wantFinal:     "102.50",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"2.50"},
		},
		{
			name: "inclusive fixed is reported but not added",
			base: "100",
			rates: []Rate{
				{ID: uuid.New(), Name: "Stamp", Rate: amt("5"), Type: RateTypeFixed, IsInclusive: true, Priority: 1},
			},
			wantTotal:     "5.00",
			wantFinal:     "100.00",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"5.00"},
		},
		{
			name: "based_on original pins exclusive rates to the base",
			base: "100",
			rates: []Rate{
				{ID: uuid.New(), Name: "VAT", Rate: amt("10"), Type: RateTypePercentage, Priority: 1, BasedOn: BasedOnOriginal},
				{ID: uuid.New(), Name: "Luxury", Rate: amt("10"), Type: RateTypePercentage, Priority: 2, BasedOn: BasedOnOriginal},
			},
			wantTotal:     "20.00",
			wantFinal:     "120.00",
			wantType:      CalculationCompound,
			wantBreakdown: []string{"10.00", "10.00"},
		},
		{
			name: "zero rate still appears in the breakdown",
			base: "100",
			rates: []Rate{
				{ID: uuid.New(), Name: "Exempt goods", Rate: decimal.Zero, Type: RateTypePercentage, Priority: 1},
			},
			wantTotal:     "0.00",
			wantFinal:     "100.00",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"0.00"},
		},
		{
			name: "unknown rate type is skipped",
			base: "100",
			rates: []Rate{
				{ID: uuid.New(), Name: "Broken", Rate: amt("10"), Type: "tiered", Priority: 1},
				vat,
			},
			wantTotal:     "10.00",
			wantFinal:     "110.00",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"10.00"},
		},
		{
			name: "rounding happens only in presented amounts",
			base: "99.99",
			rates: []Rate{
				{ID: uuid.New(), Name: "Sales", Rate: amt("7.25"), Type: RateTypePercentage, Priority: 1},
			},
			wantTotal:     "7.25",
			wantFinal:     "107.24",
			wantType:      CalculationSimple,
			wantBreakdown: []string{"7.25"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Compute(amt(tt.base), tt.rates)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, res.TotalTax.StringFixed(2))
			assert.Equal(t, tt.wantFinal, res.FinalAmount.StringFixed(2))
			assert.Equal(t, tt.wantType, res.CalculationType)

			require.Len(t, res.Breakdown, len(tt.wantBreakdown))
			for i, want := range tt.wantBreakdown {
				assert.Equal(t, want, res.Breakdown[i].Amount.StringFixed(2))
			}
			assert.Len(t, res.AppliedRules, len(tt.wantBreakdown))
		})
	}
}

func TestCalculator_PriorityOrderingChangesResult(t *testing.T) {
	calc := NewCalculator(Config{RoundingPlaces: 2, CompoundByDefault: true})

	fixed := Rate{ID: uuid.New(), Name: "Handling", Rate: amt("10"), Type: RateTypeFixed}
	percent := Rate{ID: uuid.New(), Name: "VAT", Rate: amt("10"), Type: RateTypePercentage}

	// fixed first: 100 + 10 = 110, then 10% of 110 = 11
	fixed.Priority, percent.Priority = 1, 2
	res, err := calc.Compute(amt("100"), []Rate{percent, fixed})
	require.NoError(t, err)
	assert.Equal(t, "21.00", res.TotalTax.StringFixed(2))
	assert.Equal(t, "121.00", res.FinalAmount.StringFixed(2))
	assert.Equal(t, fixed.ID, res.AppliedRules[0])

	// percentage first: 10% of 100 = 10, then the flat 10
	fixed.Priority, percent.Priority = 2, 1
	res, err = calc.Compute(amt("100"), []Rate{percent, fixed})
	require.NoError(t, err)
	assert.Equal(t, "20.00", res.TotalTax.StringFixed(2))
	assert.Equal(t, "120.00", res.FinalAmount.StringFixed(2))
	assert.Equal(t, percent.ID, res.AppliedRules[0])
}

func TestCalculator_InclusiveAfterCompoundUsesRunningBase(t *testing.T) {
	calc := NewCalculator(Config{RoundingPlaces: 2, CompoundByDefault: true})

	res, err := calc.Compute(amt("100"), []Rate{
		{ID: uuid.New(), Name: "VAT", Rate: amt("10"), Type: RateTypePercentage, Priority: 1},
		{ID: uuid.New(), Name: "Embedded", Rate: amt("10"), Type: RateTypePercentage, IsInclusive: true, Priority: 2},
	})
	require.NoError(t, err)

	// running base after VAT is 110; embedded share is 110 - 110/1.1 = 10
	assert.Equal(t, "10.00", res.Breakdown[1].Amount.StringFixed(2))
	assert.Equal(t, "110.00", res.FinalAmount.StringFixed(2))
	assert.True(t, res.IsInclusive)
}

func TestCalculator_NegativeAmountRejected(t *testing.T) {
	calc := NewCalculator(Config{RoundingPlaces: 2, CompoundByDefault: true})

	_, err := calc.Compute(amt("-1"), nil)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestErrorResult(t *testing.T) {
	res := ErrorResult(amt("100"), 2)

	assert.Equal(t, CalculationError, res.CalculationType)
	assert.Equal(t, "0.00", res.TotalTax.StringFixed(2))
	assert.Equal(t, "100.00", res.FinalAmount.StringFixed(2))
	assert.Empty(t, res.Breakdown)
}
