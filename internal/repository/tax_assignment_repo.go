package repository

import (
	"context"
	"time"

	"marketplace/internal/model"
	"marketplace/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxAssignmentRepository interface {
	Create(ctx context.Context, assignment *model.TaxAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TaxAssignment, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.TaxAssignment, error)
	FindGroupIDs(ctx context.Context, assignableType string, assignableID uuid.UUID) ([]uuid.UUID, error)
}

type taxAssignmentRepository struct {
	db       *gorm.DB
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewTaxAssignmentRepository(db *gorm.DB, c cache.Cache, cacheTTL time.Duration) TaxAssignmentRepository {
	return &taxAssignmentRepository{db: db, cache: c, cacheTTL: cacheTTL}
}

func (r *taxAssignmentRepository) Create(ctx context.Context, assignment *model.TaxAssignment) error {
	return GetDB(ctx, r.db).Create(assignment).Error
}

func (r *taxAssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.TaxAssignment{}).Error
}

func (r *taxAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.TaxAssignment, error) {
	var assignment model.TaxAssignment
	if err := GetDB(ctx, r.db).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *taxAssignmentRepository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]model.TaxAssignment, error) {
	var assignments []model.TaxAssignment
	if err := GetDB(ctx, r.db).Where("tax_group_id = ?", groupID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// FindGroupIDs returns ids of active groups assigned to the given entity.
// Joins tax_groups to drop assignments whose group is inactive or deleted.
func (r *taxAssignmentRepository) FindGroupIDs(ctx context.Context, assignableType string, assignableID uuid.UUID) ([]uuid.UUID, error) {
	key := groupCachePrefix + "assigned:" + assignableType + ":" + assignableID.String()
	if cached, ok := r.cache.Get(key); ok {
		if ids, ok := cached.([]uuid.UUID); ok {
			return ids, nil
		}
	}

	var ids []uuid.UUID
	err := GetDB(ctx, r.db).Model(&model.TaxAssignment{}).
		Joins("JOIN tax_groups ON tax_groups.id = tax_assignments.tax_group_id").
		Where("tax_assignments.assignable_type = ? AND tax_assignments.assignable_id = ?", assignableType, assignableID).
		Where("tax_groups.is_active = ? AND tax_groups.deleted_at IS NULL", true).
		Pluck("tax_assignments.tax_group_id", &ids).Error
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, ids, r.cacheTTL)
	return ids, nil
}
