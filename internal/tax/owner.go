package tax

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context is the free-form resolution context supplied by callers. Recognized
// keys (all optional): merchant_id, organization_id, franchise_id, branch_id,
// outlet_id, department_id, warehouse_id, product_id, category_id, region_id,
// customer_id, transaction_date, is_inclusive, include_handling_fee.
type Context map[string]interface{}

// OwnerKind identifies the scope a calculation is performed for
type OwnerKind string

const (
	OwnerSystem       OwnerKind = "system"
	OwnerMerchant     OwnerKind = "merchant"
	OwnerOrganization OwnerKind = "organization"
	OwnerFranchise    OwnerKind = "franchise"
	OwnerBranch       OwnerKind = "branch"
	OwnerOutlet       OwnerKind = "outlet"
	OwnerDepartment   OwnerKind = "department"
	OwnerWarehouse    OwnerKind = "warehouse"
)

// ownerPrecedence is the fixed scan order. The first kind whose "<kind>_id"
// context key is non-empty wins; this is a deliberate flat tie-break, not a
// hierarchy traversal.
var ownerPrecedence = []OwnerKind{
	OwnerMerchant,
	OwnerOrganization,
	OwnerFranchise,
	OwnerBranch,
	OwnerOutlet,
	OwnerDepartment,
	OwnerWarehouse,
}

// OwnerRef is the resolved owner scope of one calculation. ID is nil for the
// system scope.
type OwnerRef struct {
	Kind OwnerKind
	ID   *uuid.UUID
}

// ResolveOwner scans the fixed precedence list and returns the first owner
// kind with a non-empty id in the context, falling back to the system scope.
func ResolveOwner(c Context) OwnerRef {
	for _, kind := range ownerPrecedence {
		raw, ok := c[string(kind)+"_id"]
		if !ok || isEmptyValue(raw) {
			continue
		}
		return OwnerRef{Kind: kind, ID: parseID(raw)}
	}
	return OwnerRef{Kind: OwnerSystem}
}

// UUID returns the context value under key parsed as a uuid, or nil
func (c Context) UUID(key string) *uuid.UUID {
	raw, ok := c[key]
	if !ok || isEmptyValue(raw) {
		return nil
	}
	return parseID(raw)
}

// Time returns the context value under key parsed as a timestamp, or nil.
// Accepts time.Time, RFC3339 strings and plain YYYY-MM-DD dates.
func (c Context) Time(key string) *time.Time {
	switch v := c[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if t, err := time.Parse(layout, v); err == nil {
				return &t
			}
		}
	}
	return nil
}

// Bool returns the context value under key as a bool, defaulting to false
func (c Context) Bool(key string) bool {
	switch v := c[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true") || v == "1"
	}
	return false
}

func isEmptyValue(raw interface{}) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case uuid.UUID:
		return v == uuid.Nil
	case *uuid.UUID:
		return v == nil || *v == uuid.Nil
	}
	return false
}

func parseID(raw interface{}) *uuid.UUID {
	switch v := raw.(type) {
	case uuid.UUID:
		return &v
	case *uuid.UUID:
		return v
	case string:
		if id, err := uuid.Parse(strings.TrimSpace(v)); err == nil {
			return &id
		}
	case fmt.Stringer:
		if id, err := uuid.Parse(v.String()); err == nil {
			return &id
		}
	}
	return nil
}
