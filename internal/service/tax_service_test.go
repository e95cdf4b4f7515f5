package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/model"
	"marketplace/internal/repository"
	"marketplace/internal/tax"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeGroupRepo struct {
	repository.TaxGroupRepository

	ids []uuid.UUID
	err error

	gotOwnerType string
	gotOwnerID   *uuid.UUID
}

func (f *fakeGroupRepo) FindIDsByOwner(_ context.Context, ownerType string, ownerID *uuid.UUID) ([]uuid.UUID, error) {
	f.gotOwnerType = ownerType
	f.gotOwnerID = ownerID
	return f.ids, f.err
}

type fakeAssignmentRepo struct {
	repository.TaxAssignmentRepository

	byEntity map[string][]uuid.UUID // "<type>:<id>"
	err      error
}

func (f *fakeAssignmentRepo) FindGroupIDs(_ context.Context, assignableType string, assignableID uuid.UUID) ([]uuid.UUID, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEntity[assignableType+":"+assignableID.String()], nil
}

type fakeRateRepo struct {
	repository.TaxRateRepository

	rows []model.TaxRate
	err  error

	gotGroupIDs []uuid.UUID
	gotAt       time.Time
	gotAmount   decimal.Decimal
	calls       int
}

func (f *fakeRateRepo) FindApplicable(_ context.Context, groupIDs []uuid.UUID, at time.Time, amount decimal.Decimal) ([]model.TaxRate, error) {
	f.calls++
	f.gotGroupIDs = groupIDs
	f.gotAt = at
	f.gotAmount = amount
	return f.rows, f.err
}

func newTestTaxService(groups *fakeGroupRepo, assignments *fakeAssignmentRepo, rates *fakeRateRepo) TaxService {
	return NewTaxService(groups, assignments, rates, config.Engine{
		RoundingPlaces:    2,
		CompoundByDefault: true,
	})
}

func percentageRate(name string, rate string, priority int) model.TaxRate {
	return model.TaxRate{
		ID:       uuid.New(),
		TaxID:    uuid.New(),
		Tax:      &model.TaxDefinition{Name: name},
		Rate:     decimal.RequireFromString(rate),
		Type:     model.TaxRateTypePercentage,
		Priority: priority,
	}
}

// --- CalculateTax ---

func TestCalculateTax_NoMatchingGroups(t *testing.T) {
	svc := newTestTaxService(&fakeGroupRepo{}, &fakeAssignmentRepo{}, &fakeRateRepo{})

	res := svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{})

	assert.Equal(t, "no_tax", res.CalculationType)
	assert.Equal(t, "0.00", res.TotalTax)
	assert.Equal(t, "100.00", res.FinalAmount)
	assert.Empty(t, res.TaxBreakdown)
}

func TestCalculateTax_SingleRate(t *testing.T) {
	groupID := uuid.New()
	rates := &fakeRateRepo{rows: []model.TaxRate{percentageRate("VAT", "10", 1)}}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{groupID}}, &fakeAssignmentRepo{}, rates)

	res := svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{})

	assert.Equal(t, "simple", res.CalculationType)
	assert.Equal(t, "10.00", res.TotalTax)
	assert.Equal(t, "110.00", res.FinalAmount)
	require.Len(t, res.TaxBreakdown, 1)
	assert.Equal(t, "VAT", res.TaxBreakdown[0].Name)
	assert.Equal(t, "10.0000", res.TaxBreakdown[0].Rate)
	assert.Equal(t, []uuid.UUID{groupID}, rates.gotGroupIDs)
}

func TestCalculateTax_GroupLookupFailureFailsOpen(t *testing.T) {
	groups := &fakeGroupRepo{err: errors.New("connection refused")}
	svc := newTestTaxService(groups, &fakeAssignmentRepo{}, &fakeRateRepo{})

	res := svc.CalculateTax(context.Background(), decimal.RequireFromString("250"), tax.Context{})

	assert.Equal(t, "error", res.CalculationType)
	assert.Equal(t, "0.00", res.TotalTax)
	assert.Equal(t, "250.00", res.FinalAmount)
	assert.Empty(t, res.TaxBreakdown)
}

func TestCalculateTax_RateLookupFailureFailsOpen(t *testing.T) {
	rates := &fakeRateRepo{err: errors.New("timeout")}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{uuid.New()}}, &fakeAssignmentRepo{}, rates)

	res := svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{})

	assert.Equal(t, "error", res.CalculationType)
	assert.Equal(t, "100.00", res.FinalAmount)
}

func TestCalculateTax_OwnerPrecedence(t *testing.T) {
	merchantID := uuid.New()
	branchID := uuid.New()

	groups := &fakeGroupRepo{}
	svc := newTestTaxService(groups, &fakeAssignmentRepo{}, &fakeRateRepo{})

	svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{
		"branch_id":   branchID.String(),
		"merchant_id": merchantID.String(),
	})

	assert.Equal(t, "merchant", groups.gotOwnerType)
	require.NotNil(t, groups.gotOwnerID)
	assert.Equal(t, merchantID, *groups.gotOwnerID)
}

func TestCalculateTax_UnionsOwnedAndAssignedGroups(t *testing.T) {
	merchantID := uuid.New()
	productID := uuid.New()
	categoryID := uuid.New()
	regionID := uuid.New()
	customerID := uuid.New()
	g1, g2, g3, g4 := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	assignments := &fakeAssignmentRepo{byEntity: map[string][]uuid.UUID{
		"merchant:" + merchantID.String(): {g1, g2}, // g1 overlaps with owned
		"product:" + productID.String():   {g3},
		"category:" + categoryID.String(): {g3}, // duplicate across entities
		"region:" + regionID.String():     {g4},
		"customer:" + customerID.String(): {g4},
	}}
	rates := &fakeRateRepo{}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{g1}}, assignments, rates)

	svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{
		"merchant_id": merchantID.String(),
		"product_id":  productID.String(),
		"category_id": categoryID.String(),
		"region_id":   regionID.String(),
		"customer_id": customerID.String(),
	})

	assert.ElementsMatch(t, []uuid.UUID{g1, g2, g3, g4}, rates.gotGroupIDs)
}

func TestCalculateTax_TransactionDateForwarded(t *testing.T) {
	rates := &fakeRateRepo{}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{uuid.New()}}, &fakeAssignmentRepo{}, rates)

	svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{
		"transaction_date": "2025-06-15",
	})

	assert.Equal(t, 2025, rates.gotAt.Year())
	assert.Equal(t, time.June, rates.gotAt.Month())
	assert.Equal(t, 15, rates.gotAt.Day())
}

func TestCalculateTax_SkipsRateWithMissingDefinition(t *testing.T) {
	orphan := percentageRate("", "99", 1)
	orphan.Tax = nil
	rates := &fakeRateRepo{rows: []model.TaxRate{orphan, percentageRate("VAT", "10", 2)}}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{uuid.New()}}, &fakeAssignmentRepo{}, rates)

	res := svc.CalculateTax(context.Background(), decimal.RequireFromString("100"), tax.Context{})

	require.Len(t, res.TaxBreakdown, 1)
	assert.Equal(t, "VAT", res.TaxBreakdown[0].Name)
	assert.Equal(t, "10.00", res.TotalTax)
}

func TestCalculateTax_Deterministic(t *testing.T) {
	groupID := uuid.New()
	rates := &fakeRateRepo{rows: []model.TaxRate{
		percentageRate("VAT", "10", 1),
		percentageRate("Service", "5", 2),
	}}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{groupID}}, &fakeAssignmentRepo{}, rates)

	amount := decimal.RequireFromString("199.99")
	first := svc.CalculateTax(context.Background(), amount, tax.Context{})
	second := svc.CalculateTax(context.Background(), amount, tax.Context{})

	assert.Equal(t, first, second)
}

// --- PreviewTax ---

func TestPreviewTax(t *testing.T) {
	groupID := uuid.New()

	tests := []struct {
		name            string
		rows            []model.TaxRate
		wantTax         string
		wantDescription string
		wantExempt      bool
	}{
		{
			name:            "no rules means no exemption",
			rows:            nil,
			wantTax:         "0.00",
			wantDescription: "Tax applied",
			wantExempt:      false,
		},
		{
			name:            "single rate",
			rows:            []model.TaxRate{percentageRate("VAT", "10", 1)},
			wantTax:         "10.00",
			wantDescription: "Tax applied",
			wantExempt:      false,
		},
		{
			name: "multiple rates",
			rows: []model.TaxRate{
				percentageRate("VAT", "10", 1),
				percentageRate("Service", "5", 2),
			},
			wantTax:         "15.50",
			wantDescription: "Multiple taxes",
			wantExempt:      false,
		},
		{
			name:            "zero-rated rule is an exemption",
			rows:            []model.TaxRate{percentageRate("Zero-rated", "0", 1)},
			wantTax:         "0.00",
			wantDescription: "Tax applied",
			wantExempt:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rates := &fakeRateRepo{rows: tt.rows}
			svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{groupID}}, &fakeAssignmentRepo{}, rates)

			preview := svc.PreviewTax(context.Background(), decimal.RequireFromString("100"), tax.Context{})

			assert.Equal(t, tt.wantTax, preview.EstimatedTax)
			assert.Equal(t, tt.wantDescription, preview.TaxRateDescription)
			assert.Equal(t, tt.wantExempt, preview.IsTaxExempt)
			if tt.wantExempt {
				assert.NotEmpty(t, preview.ExemptionReason)
			} else {
				assert.Empty(t, preview.ExemptionReason)
			}
		})
	}
}

// --- GetTaxRules ---

func TestGetTaxRules(t *testing.T) {
	rates := &fakeRateRepo{rows: []model.TaxRate{
		percentageRate("VAT", "10", 1),
		percentageRate("Service", "5.5", 2),
	}}
	svc := newTestTaxService(&fakeGroupRepo{ids: []uuid.UUID{uuid.New()}}, &fakeAssignmentRepo{}, rates)

	rules := svc.GetTaxRules(context.Background(), tax.Context{"merchant_id": uuid.New().String()})

	require.Len(t, rules, 2)
	assert.Equal(t, "VAT", rules[0].Name)
	assert.Equal(t, "10.0000", rules[0].Rate)
	assert.Equal(t, 1, rules[0].Priority)
	assert.Equal(t, "Service", rules[1].Name)
	assert.Equal(t, 2, rules[1].Priority)
	assert.True(t, rates.gotAmount.IsZero())
}

func TestGetTaxRules_FailureReturnsEmptyList(t *testing.T) {
	svc := newTestTaxService(&fakeGroupRepo{err: errors.New("down")}, &fakeAssignmentRepo{}, &fakeRateRepo{})

	rules := svc.GetTaxRules(context.Background(), tax.Context{})

	assert.NotNil(t, rules)
	assert.Empty(t, rules)
}
