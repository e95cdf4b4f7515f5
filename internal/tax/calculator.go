package tax

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rate type constants, mirroring the stored rate rows
const (
	RateTypePercentage = "percentage"
	RateTypeFixed      = "fixed"
)

// based_on values controlling the base of later exclusive rates
const (
	BasedOnSubtotal = "subtotal"
	BasedOnOriginal = "original_amount"
)

// CalculationType classification of one result
const (
	CalculationNoTax    = "no_tax"
	CalculationSimple   = "simple"
	CalculationCompound = "compound"
	CalculationError    = "error"
)

// Rate is one calculation unit, already resolved to its definition name and
// ordered by priority by the resolver.
type Rate struct {
	ID          uuid.UUID
	Name        string
	Rate        decimal.Decimal
	Type        string
	IsInclusive bool
	Priority    int
	BasedOn     string
}

// BreakdownEntry is one rate's contribution inside a Result
type BreakdownEntry struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Rate        decimal.Decimal `json:"rate"`
	Type        string          `json:"type"`
	IsInclusive bool            `json:"is_inclusive"`
	Amount      decimal.Decimal `json:"amount"`
}

// Result is the full outcome of one calculation
type Result struct {
	OriginalAmount  decimal.Decimal  `json:"original_amount"`
	TotalTax        decimal.Decimal  `json:"total_tax"`
	FinalAmount     decimal.Decimal  `json:"final_amount"`
	Breakdown       []BreakdownEntry `json:"tax_breakdown"`
	IsInclusive     bool             `json:"is_inclusive"`
	AppliedRules    []uuid.UUID      `json:"applied_rules"`
	CalculationType string           `json:"calculation_type"`
}

// Config holds the calculation policy settings
type Config struct {
	RoundingPlaces    int32
	CompoundByDefault bool
}

// Calculator applies an ordered rate list to a base amount. Intermediate math
// keeps full decimal precision; amounts are rounded only in the presented
// breakdown and totals.
type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) *Calculator {
	if cfg.RoundingPlaces <= 0 {
		cfg.RoundingPlaces = 2
	}
	return &Calculator{cfg: cfg}
}

var hundred = decimal.NewFromInt(100)

// Compute applies rates in ascending priority order to the base amount.
//
// Exclusive rates add their tax on top of the base; when they compound
// (based_on empty or "subtotal") the running taxable base grows by the tax
// just added, otherwise ("original_amount") every exclusive rate computes
// against the original base. Inclusive rates are back-calculated out of the
// taxable base and never increase the final amount.
func (c *Calculator) Compute(base decimal.Decimal, rates []Rate) (Result, error) {
	if base.IsNegative() {
		return Result{}, ErrNegativeAmount
	}

	ordered := make([]Rate, len(rates))
	copy(ordered, rates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority < ordered[j].Priority
	})

	taxable := base
	final := base
	total := decimal.Zero
	inclusive := false

	breakdown := make([]BreakdownEntry, 0, len(ordered))
	applied := make([]uuid.UUID, 0, len(ordered))

	for _, r := range ordered {
		var amount decimal.Decimal

		switch r.Type {
		case RateTypePercentage:
			if r.IsInclusive {
				// back-calculate the tax already embedded in the taxable base
				divisor := decimal.NewFromInt(1).Add(r.Rate.Div(hundred))
				amount = taxable.Sub(taxable.Div(divisor))
			} else {
				computeBase := taxable
				if r.BasedOn == BasedOnOriginal {
					computeBase = base
				}
				amount = computeBase.Mul(r.Rate).Div(hundred)
			}
		case RateTypeFixed:
			amount = r.Rate
		default:
			// malformed rate row, skip rather than abort the calculation
			continue
		}

		if r.IsInclusive {
			inclusive = true
		} else {
			final = final.Add(amount)
			if c.compounds(r) {
				taxable = taxable.Add(amount)
			}
		}

		total = total.Add(amount)
		breakdown = append(breakdown, BreakdownEntry{
			ID:          r.ID,
			Name:        r.Name,
			Rate:        r.Rate,
			Type:        r.Type,
			IsInclusive: r.IsInclusive,
			Amount:      amount.Round(c.cfg.RoundingPlaces),
		})
		applied = append(applied, r.ID)
	}

	return Result{
		OriginalAmount:  base.Round(c.cfg.RoundingPlaces),
		TotalTax:        total.Round(c.cfg.RoundingPlaces),
		FinalAmount:     final.Round(c.cfg.RoundingPlaces),
		Breakdown:       breakdown,
		IsInclusive:     inclusive,
		AppliedRules:    applied,
		CalculationType: classify(len(breakdown)),
	}, nil
}

func (c *Calculator) compounds(r Rate) bool {
	switch r.BasedOn {
	case BasedOnSubtotal:
		return true
	case BasedOnOriginal:
		return false
	default:
		return c.cfg.CompoundByDefault
	}
}

func classify(applied int) string {
	switch {
	case applied == 0:
		return CalculationNoTax
	case applied == 1:
		return CalculationSimple
	default:
		return CalculationCompound
	}
}

// ErrorResult is the fail-open zero-tax result returned when the engine
// cannot complete a calculation. Callers always get a structurally valid
// result; in the worst case tax is treated as zero.
func ErrorResult(base decimal.Decimal, places int32) Result {
	if places <= 0 {
		places = 2
	}
	return Result{
		OriginalAmount:  base.Round(places),
		TotalTax:        decimal.Zero,
		FinalAmount:     base.Round(places),
		Breakdown:       []BreakdownEntry{},
		AppliedRules:    []uuid.UUID{},
		CalculationType: CalculationError,
	}
}
