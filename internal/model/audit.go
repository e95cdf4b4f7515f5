package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateTaxDefinition = "CREATE_TAX_DEFINITION"
	ActionUpdateTaxDefinition = "UPDATE_TAX_DEFINITION"
	ActionDeleteTaxDefinition = "DELETE_TAX_DEFINITION"
	ActionCreateTaxGroup      = "CREATE_TAX_GROUP"
	ActionUpdateTaxGroup      = "UPDATE_TAX_GROUP"
	ActionDeleteTaxGroup      = "DELETE_TAX_GROUP"
	ActionCreateTaxRate       = "CREATE_TAX_RATE"
	ActionUpdateTaxRate       = "UPDATE_TAX_RATE"
	ActionDeleteTaxRate       = "DELETE_TAX_RATE"
	ActionAssignTaxGroup      = "ASSIGN_TAX_GROUP"
	ActionUnassignTaxGroup    = "UNASSIGN_TAX_GROUP"
)

// AuditLog tracks Who, What, and When for tax configuration changes
type AuditLog struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Actor      string    `gorm:"type:varchar(100);index" json:"actor"` // Free-form caller identity, empty for automated jobs
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string    `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/slug)
	EntityName string    `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string    `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
