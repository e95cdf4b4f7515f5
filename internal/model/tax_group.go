package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxGroup is a named bundle of tax rates owned by a scope (system, merchant,
// organization, ...). Groups are linked to taxed entities via TaxAssignment.
type TaxGroup struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OwnerType   string          `gorm:"type:varchar(30);not null;default:'system';index:idx_tax_groups_owner" json:"owner_type"`
	OwnerID     *uuid.UUID      `gorm:"type:uuid;index:idx_tax_groups_owner" json:"owner_id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	Rates       []TaxRate       `gorm:"foreignKey:TaxGroupID;constraint:OnDelete:CASCADE" json:"rates,omitempty"`
	Assignments []TaxAssignment `gorm:"foreignKey:TaxGroupID;constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}
