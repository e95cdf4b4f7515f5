package repository

import (
	"context"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxDefinitionRepository interface {
	Create(ctx context.Context, def *model.TaxDefinition) error
	Update(ctx context.Context, def *model.TaxDefinition) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxDefinition, error)
	FindBySlug(ctx context.Context, slug string) (*model.TaxDefinition, error)
	List(ctx context.Context, page, limit int) ([]model.TaxDefinition, int64, error)
}

type taxDefinitionRepository struct {
	db *gorm.DB
}

func NewTaxDefinitionRepository(db *gorm.DB) TaxDefinitionRepository {
	return &taxDefinitionRepository{db: db}
}

func (r *taxDefinitionRepository) Create(ctx context.Context, def *model.TaxDefinition) error {
	return GetDB(ctx, r.db).Create(def).Error
}

func (r *taxDefinitionRepository) Update(ctx context.Context, def *model.TaxDefinition) error {
	return GetDB(ctx, r.db).Save(def).Error
}

func (r *taxDefinitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxDefinition{}).Error
}

func (r *taxDefinitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxDefinition, error) {
	var def model.TaxDefinition
	if err := GetDB(ctx, r.db).First(&def, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *taxDefinitionRepository) FindBySlug(ctx context.Context, slug string) (*model.TaxDefinition, error) {
	var def model.TaxDefinition
	if err := GetDB(ctx, r.db).First(&def, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *taxDefinitionRepository) List(ctx context.Context, page, limit int) ([]model.TaxDefinition, int64, error) {
	var defs []model.TaxDefinition
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TaxDefinition{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("name asc").Offset(offset).Limit(limit).Find(&defs).Error; err != nil {
		return nil, 0, err
	}

	return defs, total, nil
}
