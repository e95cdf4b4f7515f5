package repository

import (
	"context"
	"time"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TaxRateRepository interface {
	Create(ctx context.Context, rate *model.TaxRate) error
	Update(ctx context.Context, rate *model.TaxRate) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxRate, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.TaxRate, error)
	FindApplicable(ctx context.Context, groupIDs []uuid.UUID, at time.Time, amount decimal.Decimal) ([]model.TaxRate, error)
}

type taxRateRepository struct {
	db *gorm.DB
}

func NewTaxRateRepository(db *gorm.DB) TaxRateRepository {
	return &taxRateRepository{db: db}
}

func (r *taxRateRepository) Create(ctx context.Context, rate *model.TaxRate) error {
	return GetDB(ctx, r.db).Create(rate).Error
}

func (r *taxRateRepository) Update(ctx context.Context, rate *model.TaxRate) error {
	return GetDB(ctx, r.db).Save(rate).Error
}

func (r *taxRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxRate{}).Error
}

func (r *taxRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxRate, error) {
	var rate model.TaxRate
	if err := GetDB(ctx, r.db).Preload("Tax").First(&rate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rate, nil
}

func (r *taxRateRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.TaxRate, error) {
	var rates []model.TaxRate
	if err := GetDB(ctx, r.db).Preload("Tax").
		Where("tax_group_id = ?", groupID).
		Order("priority asc").
		Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

// FindApplicable returns rates in the given groups whose validity window
// contains `at` and whose price bounds contain `amount`, ordered by priority
// ascending. An empty result means no tax applies, not an error.
func (r *taxRateRepository) FindApplicable(ctx context.Context, groupIDs []uuid.UUID, at time.Time, amount decimal.Decimal) ([]model.TaxRate, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	var rates []model.TaxRate
	if err := GetDB(ctx, r.db).Preload("Tax").
		Where("tax_group_id IN ?", groupIDs).
		Where("valid_from IS NULL OR valid_from <= ?", at).
		Where("valid_until IS NULL OR valid_until >= ?", at).
		Where("min_price IS NULL OR min_price <= ?", amount).
		Where("max_price IS NULL OR max_price >= ?", amount).
		Order("priority asc").
		Find(&rates).Error; err != nil {
		return nil, err
	}

	return rates, nil
}
