package repository

import (
	"context"
	"time"

	"marketplace/internal/model"
	"marketplace/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// groupCachePrefix namespaces every cached group-resolution lookup so
// administrative mutations can invalidate them in one sweep.
const groupCachePrefix = "tax:groups:"

type TaxGroupRepository interface {
	Create(ctx context.Context, group *model.TaxGroup) error
	Update(ctx context.Context, group *model.TaxGroup) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxGroup, error)
	List(ctx context.Context, page, limit int) ([]model.TaxGroup, int64, error)
	FindIDsByOwner(ctx context.Context, ownerType string, ownerID *uuid.UUID) ([]uuid.UUID, error)
}

type taxGroupRepository struct {
	db       *gorm.DB
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewTaxGroupRepository(db *gorm.DB, c cache.Cache, cacheTTL time.Duration) TaxGroupRepository {
	return &taxGroupRepository{db: db, cache: c, cacheTTL: cacheTTL}
}

func (r *taxGroupRepository) Create(ctx context.Context, group *model.TaxGroup) error {
	return GetDB(ctx, r.db).Create(group).Error
}

func (r *taxGroupRepository) Update(ctx context.Context, group *model.TaxGroup) error {
	return GetDB(ctx, r.db).Save(group).Error
}

func (r *taxGroupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxGroup{}).Error
}

func (r *taxGroupRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxGroup, error) {
	var group model.TaxGroup
	if err := GetDB(ctx, r.db).Preload("Rates").Preload("Assignments").First(&group, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *taxGroupRepository) List(ctx context.Context, page, limit int) ([]model.TaxGroup, int64, error) {
	var groups []model.TaxGroup
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.TaxGroup{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Rates").Order("name asc").Offset(offset).Limit(limit).Find(&groups).Error; err != nil {
		return nil, 0, err
	}

	return groups, total, nil
}

// FindIDsByOwner returns ids of active groups directly owned by the given
// scope. Lookups are cached with a short TTL; a momentarily stale rate set
// after an admin change is accepted.
func (r *taxGroupRepository) FindIDsByOwner(ctx context.Context, ownerType string, ownerID *uuid.UUID) ([]uuid.UUID, error) {
	key := groupCachePrefix + "owner:" + ownerType
	if ownerID != nil {
		key += ":" + ownerID.String()
	}
	if cached, ok := r.cache.Get(key); ok {
		if ids, ok := cached.([]uuid.UUID); ok {
			return ids, nil
		}
	}

	query := GetDB(ctx, r.db).Model(&model.TaxGroup{}).
		Where("owner_type = ? AND is_active = ?", ownerType, true)
	if ownerID != nil {
		query = query.Where("owner_id = ?", *ownerID)
	} else {
		query = query.Where("owner_id IS NULL")
	}

	var ids []uuid.UUID
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}

	r.cache.Set(key, ids, r.cacheTTL)
	return ids, nil
}
