package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxRateType enum constants
const (
	TaxRateTypePercentage = "percentage"
	TaxRateTypeFixed      = "fixed"
)

// TaxBasedOn enum constants controlling what base an exclusive rate is
// computed against when it is not the first rate applied.
const (
	TaxBasedOnSubtotal = "subtotal"        // running total including prior exclusive tax
	TaxBasedOnOriginal = "original_amount" // always the original base amount
)

// TaxRate is a single calculation unit: a numeric rate tied to one definition
// inside one group, with ordering, validity window and price-range bounds.
type TaxRate struct {
	ID          uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaxGroupID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"tax_group_id"`
	TaxID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"tax_id"`
	Tax         *TaxDefinition   `gorm:"foreignKey:TaxID" json:"tax,omitempty"`
	Rate        decimal.Decimal  `gorm:"type:decimal(12,4);not null" json:"rate"` // percentage value (10 = 10%) or fixed amount
	Type        string           `gorm:"type:varchar(20);not null;default:'percentage'" json:"type"`
	IsInclusive bool             `gorm:"default:false" json:"is_inclusive"`
	Priority    int              `gorm:"not null;default:0;index" json:"priority"` // ascending, lower computed first
	BasedOn     *string          `gorm:"type:varchar(30)" json:"based_on"`
	ValidFrom   *time.Time       `gorm:"index" json:"valid_from"`
	ValidUntil  *time.Time       `gorm:"index" json:"valid_until"`
	MinPrice    *decimal.Decimal `gorm:"type:decimal(14,4)" json:"min_price"`
	MaxPrice    *decimal.Decimal `gorm:"type:decimal(14,4)" json:"max_price"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}
