package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerType enum constants for tax scoping
const (
	OwnerTypeSystem       = "system"
	OwnerTypeMerchant     = "merchant"
	OwnerTypeOrganization = "organization"
	OwnerTypeFranchise    = "franchise"
	OwnerTypeBranch       = "branch"
	OwnerTypeOutlet       = "outlet"
	OwnerTypeDepartment   = "department"
	OwnerTypeWarehouse    = "warehouse"
)

// TaxDefinition is a named kind of tax (e.g. VAT, service tax) independent of
// any concrete rate or scope. Rates reference a definition for naming.
type TaxDefinition struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerType   string         `gorm:"type:varchar(30);not null;default:'system';index:idx_tax_definitions_owner" json:"owner_type"`
	OwnerID     *uuid.UUID     `gorm:"type:uuid;index:idx_tax_definitions_owner" json:"owner_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string         `gorm:"type:varchar(255);not null;uniqueIndex" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
