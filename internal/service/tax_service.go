package service

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/tax"
	"marketplace/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// --- DTOs ---

type TaxBreakdownEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rate        string `json:"rate"`
	Type        string `json:"type"`
	IsInclusive bool   `json:"is_inclusive"`
	Amount      string `json:"amount"`
}

type TaxResultResponse struct {
	OriginalAmount  string              `json:"original_amount"`
	TotalTax        string              `json:"total_tax"`
	FinalAmount     string              `json:"final_amount"`
	TaxBreakdown    []TaxBreakdownEntry `json:"tax_breakdown"`
	IsInclusive     bool                `json:"is_inclusive"`
	AppliedRules    []string            `json:"applied_rules"`
	CalculationType string              `json:"calculation_type"`
}

type TaxPreviewResponse struct {
	EstimatedTax       string `json:"estimated_tax"`
	TaxRateDescription string `json:"tax_rate_description"`
	IsTaxExempt        bool   `json:"is_tax_exempt"`
	ExemptionReason    string `json:"exemption_reason,omitempty"`
}

type TaxRuleSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rate        string `json:"rate"`
	Type        string `json:"type"`
	IsInclusive bool   `json:"is_inclusive"`
	Priority    int    `json:"priority"`
}

// --- Interface ---

// TaxService is the stable calculation entry point consumed by checkout and
// order modules. It never returns an error: any internal failure is logged
// and absorbed into a zero-tax result so a checkout flow is never blocked.
type TaxService interface {
	CalculateTax(ctx context.Context, amount decimal.Decimal, tctx tax.Context) TaxResultResponse
	PreviewTax(ctx context.Context, amount decimal.Decimal, tctx tax.Context) TaxPreviewResponse
	GetTaxRules(ctx context.Context, tctx tax.Context) []TaxRuleSummary
}

type taxService struct {
	groups      repository.TaxGroupRepository
	assignments repository.TaxAssignmentRepository
	rates       repository.TaxRateRepository
	calc        *tax.Calculator
	cfg         config.Engine
	logger      *zap.Logger
	now         func() time.Time
}

func NewTaxService(
	groups repository.TaxGroupRepository,
	assignments repository.TaxAssignmentRepository,
	rates repository.TaxRateRepository,
	cfg config.Engine,
) TaxService {
	return &taxService{
		groups:      groups,
		assignments: assignments,
		rates:       rates,
		calc: tax.NewCalculator(tax.Config{
			RoundingPlaces:    cfg.RoundingPlaces,
			CompoundByDefault: cfg.CompoundByDefault,
		}),
		cfg:    cfg,
		logger: logger.Log,
		now:    time.Now,
	}
}

// --- Implementation ---

func (s *taxService) CalculateTax(ctx context.Context, amount decimal.Decimal, tctx tax.Context) TaxResultResponse {
	res := s.calculateOrZero(ctx, amount, tctx)
	return s.toResultResponse(res)
}

func (s *taxService) PreviewTax(ctx context.Context, amount decimal.Decimal, tctx tax.Context) TaxPreviewResponse {
	res := s.calculateOrZero(ctx, amount, tctx)

	description := "Tax applied"
	if len(res.Breakdown) > 1 {
		description = "Multiple taxes"
	}

	// exemption means a rule matched but charged nothing, distinct from
	// "no rule matched at all"
	exempt := res.TotalTax.IsZero() && len(res.Breakdown) > 0

	preview := TaxPreviewResponse{
		EstimatedTax:       res.TotalTax.StringFixed(s.places()),
		TaxRateDescription: description,
		IsTaxExempt:        exempt,
	}
	if exempt {
		preview.ExemptionReason = "Zero-rated tax rule applied"
	}
	return preview
}

// GetTaxRules lists the rules the calculation would apply, reusing the same
// resolution path with a zero amount so rule listing and calculation never
// diverge.
func (s *taxService) GetTaxRules(ctx context.Context, tctx tax.Context) []TaxRuleSummary {
	rates, err := s.resolveRates(ctx, decimal.Zero, tctx)
	if err != nil {
		s.logger.Warn("Tax rule listing failed",
			zap.Any("context", map[string]interface{}(tctx)),
			zap.Error(err))
		return []TaxRuleSummary{}
	}

	summaries := make([]TaxRuleSummary, 0, len(rates))
	for _, r := range rates {
		summaries = append(summaries, TaxRuleSummary{
			ID:          r.ID.String(),
			Name:        r.Name,
			Rate:        r.Rate.StringFixed(4),
			Type:        r.Type,
			IsInclusive: r.IsInclusive,
			Priority:    r.Priority,
		})
	}
	return summaries
}

// calculateOrZero runs the full pipeline and absorbs any failure into the
// fail-open zero-tax result.
func (s *taxService) calculateOrZero(ctx context.Context, amount decimal.Decimal, tctx tax.Context) tax.Result {
	res, err := s.calculate(ctx, amount, tctx)
	if err != nil {
		s.logger.Error("Tax calculation failed, returning zero tax",
			zap.String("amount", amount.String()),
			zap.Any("context", map[string]interface{}(tctx)),
			zap.Error(err))
		return tax.ErrorResult(amount, s.cfg.RoundingPlaces)
	}
	return res
}

func (s *taxService) calculate(ctx context.Context, amount decimal.Decimal, tctx tax.Context) (tax.Result, error) {
	rates, err := s.resolveRates(ctx, amount, tctx)
	if err != nil {
		return tax.Result{}, err
	}
	return s.calc.Compute(amount, rates)
}

// resolveRates finds the applicable, currently-valid rates for the context in
// priority order. Candidate groups come from direct owner scope on the group
// and from polymorphic assignments to the owner entity, the product, the
// category, the region and the customer.
func (s *taxService) resolveRates(ctx context.Context, amount decimal.Decimal, tctx tax.Context) ([]tax.Rate, error) {
	owner := tax.ResolveOwner(tctx)

	at := s.now()
	if t := tctx.Time("transaction_date"); t != nil {
		at = *t
	}

	ownedIDs, err := s.groups.FindIDsByOwner(ctx, string(owner.Kind), owner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve groups for owner %s: %w", owner.Kind, err)
	}

	seen := make(map[uuid.UUID]struct{})
	groupIDs := make([]uuid.UUID, 0, len(ownedIDs))
	add := func(ids []uuid.UUID) {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			groupIDs = append(groupIDs, id)
		}
	}
	add(ownedIDs)

	assignables := make([][2]string, 0, 5)
	if owner.ID != nil {
		assignables = append(assignables, [2]string{string(owner.Kind), owner.ID.String()})
	}
	if id := tctx.UUID("product_id"); id != nil {
		assignables = append(assignables, [2]string{model.AssignableTypeProduct, id.String()})
	}
	if id := tctx.UUID("category_id"); id != nil {
		assignables = append(assignables, [2]string{model.AssignableTypeCategory, id.String()})
	}
	if id := tctx.UUID("region_id"); id != nil {
		assignables = append(assignables, [2]string{model.AssignableTypeRegion, id.String()})
	}
	if id := tctx.UUID("customer_id"); id != nil {
		assignables = append(assignables, [2]string{model.AssignableTypeCustomer, id.String()})
	}

	for _, a := range assignables {
		entityID, parseErr := uuid.Parse(a[1])
		if parseErr != nil {
			continue
		}
		ids, err := s.assignments.FindGroupIDs(ctx, a[0], entityID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assigned groups for %s: %w", a[0], err)
		}
		add(ids)
	}

	if len(groupIDs) == 0 {
		return nil, nil
	}

	rows, err := s.rates.FindApplicable(ctx, groupIDs, at, amount)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch applicable rates: %w", err)
	}

	rates := make([]tax.Rate, 0, len(rows))
	for _, row := range rows {
		if row.Tax == nil {
			// a rate without a resolvable definition is skipped, not fatal
			s.logger.Warn("Skipping tax rate with missing definition",
				zap.String("rate_id", row.ID.String()),
				zap.String("tax_id", row.TaxID.String()))
			continue
		}
		basedOn := ""
		if row.BasedOn != nil {
			basedOn = *row.BasedOn
		}
		rates = append(rates, tax.Rate{
			ID:          row.ID,
			Name:        row.Tax.Name,
			Rate:        row.Rate,
			Type:        row.Type,
			IsInclusive: row.IsInclusive,
			Priority:    row.Priority,
			BasedOn:     basedOn,
		})
	}

	return rates, nil
}

func (s *taxService) toResultResponse(res tax.Result) TaxResultResponse {
	breakdown := make([]TaxBreakdownEntry, 0, len(res.Breakdown))
	for _, e := range res.Breakdown {
		breakdown = append(breakdown, TaxBreakdownEntry{
			ID:          e.ID.String(),
			Name:        e.Name,
			Rate:        e.Rate.StringFixed(4),
			Type:        e.Type,
			IsInclusive: e.IsInclusive,
			Amount:      e.Amount.StringFixed(s.places()),
		})
	}

	applied := make([]string, 0, len(res.AppliedRules))
	for _, id := range res.AppliedRules {
		applied = append(applied, id.String())
	}

	return TaxResultResponse{
		OriginalAmount:  res.OriginalAmount.StringFixed(s.places()),
		TotalTax:        res.TotalTax.StringFixed(s.places()),
		FinalAmount:     res.FinalAmount.StringFixed(s.places()),
		TaxBreakdown:    breakdown,
		IsInclusive:     res.IsInclusive,
		AppliedRules:    applied,
		CalculationType: res.CalculationType,
	}
}

func (s *taxService) places() int32 {
	if s.cfg.RoundingPlaces > 0 {
		return s.cfg.RoundingPlaces
	}
	return 2
}
