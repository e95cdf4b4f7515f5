package model

import (
	"time"

	"github.com/google/uuid"
)

// AssignableType enum constants for entities a tax group can be linked to.
// Owner scopes double as assignable kinds (a group may be assigned to a
// branch that is not its owner).
const (
	AssignableTypeRegion   = "region"
	AssignableTypeCategory = "category"
	AssignableTypeProduct  = "product"
	AssignableTypeCustomer = "customer"
)

// TaxAssignment is a polymorphic link between a tax group and a taxed entity
// (region, category, product, branch, ...). Multiple assignments may target
// the same entity with different groups.
type TaxAssignment struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaxGroupID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tax_group_id"`
	AssignableType string    `gorm:"type:varchar(30);not null;index:idx_tax_assignments_assignable" json:"assignable_type"`
	AssignableID   uuid.UUID `gorm:"type:uuid;not null;index:idx_tax_assignments_assignable" json:"assignable_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
