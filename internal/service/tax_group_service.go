package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	ws "marketplace/internal/websocket"
	"marketplace/pkg/cache"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateTaxGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	OwnerType   string `json:"owner_type" binding:"omitempty,oneof=system merchant organization franchise branch outlet department warehouse"`
	OwnerID     string `json:"owner_id"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateTaxGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type TaxRateRequest struct {
	TaxID       string `json:"tax_id" binding:"required"`
	Rate        string `json:"rate" binding:"required"` // decimal string, e.g. "10" for 10% or a fixed amount
	Type        string `json:"type" binding:"required,oneof=percentage fixed"`
	IsInclusive bool   `json:"is_inclusive"`
	Priority    int    `json:"priority"`
	BasedOn     string `json:"based_on" binding:"omitempty,oneof=subtotal original_amount"`
	ValidFrom   string `json:"valid_from"`  // YYYY-MM-DD, empty = unbounded
	ValidUntil  string `json:"valid_until"` // YYYY-MM-DD, empty = unbounded
	MinPrice    string `json:"min_price"`   // decimal string, empty = unbounded
	MaxPrice    string `json:"max_price"`   // decimal string, empty = unbounded
}

type AssignTaxGroupRequest struct {
	AssignableType string `json:"assignable_type" binding:"required"`
	AssignableID   string `json:"assignable_id" binding:"required"`
}

type TaxRateResponse struct {
	ID          string  `json:"id"`
	TaxGroupID  string  `json:"tax_group_id"`
	TaxID       string  `json:"tax_id"`
	TaxName     string  `json:"tax_name,omitempty"`
	Rate        string  `json:"rate"`
	Type        string  `json:"type"`
	IsInclusive bool    `json:"is_inclusive"`
	Priority    int     `json:"priority"`
	BasedOn     string  `json:"based_on,omitempty"`
	ValidFrom   *string `json:"valid_from"`
	ValidUntil  *string `json:"valid_until"`
	MinPrice    *string `json:"min_price"`
	MaxPrice    *string `json:"max_price"`
}

type TaxAssignmentResponse struct {
	ID             string `json:"id"`
	TaxGroupID     string `json:"tax_group_id"`
	AssignableType string `json:"assignable_type"`
	AssignableID   string `json:"assignable_id"`
}

type TaxGroupResponse struct {
	ID          string                  `json:"id"`
	OwnerType   string                  `json:"owner_type"`
	OwnerID     string                  `json:"owner_id,omitempty"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	IsActive    bool                    `json:"is_active"`
	Rates       []TaxRateResponse       `json:"rates"`
	Assignments []TaxAssignmentResponse `json:"assignments,omitempty"`
	CreatedAt   string                  `json:"created_at"`
}

// --- Interface ---

type TaxGroupService interface {
	GetTaxGroups(ctx context.Context, page, limit int) ([]TaxGroupResponse, int64, error)
	GetTaxGroup(ctx context.Context, id string) (TaxGroupResponse, error)
	CreateTaxGroup(ctx context.Context, actor string, req CreateTaxGroupRequest) (TaxGroupResponse, error)
	UpdateTaxGroup(ctx context.Context, actor, id string, req UpdateTaxGroupRequest) (TaxGroupResponse, error)
	DeleteTaxGroup(ctx context.Context, actor, id string) error

	AddTaxRate(ctx context.Context, actor, groupID string, req TaxRateRequest) (TaxRateResponse, error)
	UpdateTaxRate(ctx context.Context, actor, groupID, rateID string, req TaxRateRequest) (TaxRateResponse, error)
	RemoveTaxRate(ctx context.Context, actor, groupID, rateID string) error

	AssignTaxGroup(ctx context.Context, actor, groupID string, req AssignTaxGroupRequest) (TaxAssignmentResponse, error)
	UnassignTaxGroup(ctx context.Context, actor, groupID, assignmentID string) error
}

type taxGroupService struct {
	groups      repository.TaxGroupRepository
	rates       repository.TaxRateRepository
	assignments repository.TaxAssignmentRepository
	definitions repository.TaxDefinitionRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	cache       cache.Cache
	hub         *ws.Hub
}

func NewTaxGroupService(
	groups repository.TaxGroupRepository,
	rates repository.TaxRateRepository,
	assignments repository.TaxAssignmentRepository,
	definitions repository.TaxDefinitionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	c cache.Cache,
	hub *ws.Hub,
) TaxGroupService {
	return &taxGroupService{
		groups:      groups,
		rates:       rates,
		assignments: assignments,
		definitions: definitions,
		auditRepo:   auditRepo,
		txManager:   txManager,
		cache:       c,
		hub:         hub,
	}
}

// --- Group CRUD ---

func (s *taxGroupService) GetTaxGroups(ctx context.Context, page, limit int) ([]TaxGroupResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	groups, total, err := s.groups.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tax groups: %w", err)
	}

	res := make([]TaxGroupResponse, 0, len(groups))
	for _, g := range groups {
		res = append(res, toTaxGroupResponse(g))
	}
	return res, total, nil
}

func (s *taxGroupService) GetTaxGroup(ctx context.Context, id string) (TaxGroupResponse, error) {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return TaxGroupResponse{}, fmt.Errorf("invalid tax group id: %w", err)
	}

	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxGroupResponse{}, fmt.Errorf("tax group not found")
		}
		return TaxGroupResponse{}, fmt.Errorf("failed to fetch tax group: %w", err)
	}
	return toTaxGroupResponse(*group), nil
}

func (s *taxGroupService) CreateTaxGroup(ctx context.Context, actor string, req CreateTaxGroupRequest) (TaxGroupResponse, error) {
	ownerType := req.OwnerType
	if ownerType == "" {
		ownerType = model.OwnerTypeSystem
	}
	ownerID, err := parseOptionalID(req.OwnerID)
	if err != nil {
		return TaxGroupResponse{}, err
	}

	group := model.TaxGroup{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Create(txCtx, &group); err != nil {
			return fmt.Errorf("failed to create tax group: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionCreateTaxGroup, group.ID.String(), group.Name, req)
	})
	if err != nil {
		return TaxGroupResponse{}, err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "created", Entity: "tax_group", EntityID: group.ID.String(), EntityName: group.Name})
	return toTaxGroupResponse(group), nil
}

func (s *taxGroupService) UpdateTaxGroup(ctx context.Context, actor, id string, req UpdateTaxGroupRequest) (TaxGroupResponse, error) {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return TaxGroupResponse{}, fmt.Errorf("invalid tax group id: %w", err)
	}

	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxGroupResponse{}, fmt.Errorf("tax group not found")
		}
		return TaxGroupResponse{}, fmt.Errorf("failed to fetch tax group: %w", err)
	}

	group.Name = req.Name
	group.Description = req.Description
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Update(txCtx, group); err != nil {
			return fmt.Errorf("failed to update tax group: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionUpdateTaxGroup, group.ID.String(), group.Name, req)
	})
	if err != nil {
		return TaxGroupResponse{}, err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "updated", Entity: "tax_group", EntityID: group.ID.String(), EntityName: group.Name})
	return toTaxGroupResponse(*group), nil
}

func (s *taxGroupService) DeleteTaxGroup(ctx context.Context, actor, id string) error {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid tax group id: %w", err)
	}

	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tax group not found")
		}
		return fmt.Errorf("failed to fetch tax group: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.groups.Delete(txCtx, groupID); err != nil {
			return fmt.Errorf("failed to delete tax group: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionDeleteTaxGroup, id, group.Name, map[string]string{"deleted_id": id})
	})
	if err != nil {
		return err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "deleted", Entity: "tax_group", EntityID: id, EntityName: group.Name})
	return nil
}

// --- Rate management ---

func (s *taxGroupService) AddTaxRate(ctx context.Context, actor, groupID string, req TaxRateRequest) (TaxRateResponse, error) {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return TaxRateResponse{}, fmt.Errorf("invalid tax group id: %w", err)
	}
	if _, err := s.groups.FindByID(ctx, gid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxRateResponse{}, fmt.Errorf("tax group not found")
		}
		return TaxRateResponse{}, fmt.Errorf("failed to fetch tax group: %w", err)
	}

	rate, err := s.buildRate(ctx, gid, req)
	if err != nil {
		return TaxRateResponse{}, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rates.Create(txCtx, rate); err != nil {
			return fmt.Errorf("failed to create tax rate: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionCreateTaxRate, rate.ID.String(), rateLabel(rate), req)
	})
	if err != nil {
		return TaxRateResponse{}, err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "created", Entity: "tax_rate", EntityID: rate.ID.String()})
	return toTaxRateResponse(*rate), nil
}

func (s *taxGroupService) UpdateTaxRate(ctx context.Context, actor, groupID, rateID string, req TaxRateRequest) (TaxRateResponse, error) {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return TaxRateResponse{}, fmt.Errorf("invalid tax group id: %w", err)
	}
	rid, err := uuid.Parse(rateID)
	if err != nil {
		return TaxRateResponse{}, fmt.Errorf("invalid tax rate id: %w", err)
	}

	existing, err := s.rates.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxRateResponse{}, fmt.Errorf("tax rate not found")
		}
		return TaxRateResponse{}, fmt.Errorf("failed to fetch tax rate: %w", err)
	}
	if existing.TaxGroupID != gid {
		return TaxRateResponse{}, fmt.Errorf("tax rate does not belong to group %s", groupID)
	}

	updated, err := s.buildRate(ctx, gid, req)
	if err != nil {
		return TaxRateResponse{}, err
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rates.Update(txCtx, updated); err != nil {
			return fmt.Errorf("failed to update tax rate: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionUpdateTaxRate, updated.ID.String(), rateLabel(updated), req)
	})
	if err != nil {
		return TaxRateResponse{}, err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "updated", Entity: "tax_rate", EntityID: updated.ID.String()})
	return toTaxRateResponse(*updated), nil
}

func (s *taxGroupService) RemoveTaxRate(ctx context.Context, actor, groupID, rateID string) error {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return fmt.Errorf("invalid tax group id: %w", err)
	}
	rid, err := uuid.Parse(rateID)
	if err != nil {
		return fmt.Errorf("invalid tax rate id: %w", err)
	}

	existing, err := s.rates.FindByID(ctx, rid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tax rate not found")
		}
		return fmt.Errorf("failed to fetch tax rate: %w", err)
	}
	if existing.TaxGroupID != gid {
		return fmt.Errorf("tax rate does not belong to group %s", groupID)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.rates.Delete(txCtx, rid); err != nil {
			return fmt.Errorf("failed to delete tax rate: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionDeleteTaxRate, rateID, rateLabel(existing), map[string]string{"deleted_id": rateID})
	})
	if err != nil {
		return err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "deleted", Entity: "tax_rate", EntityID: rateID})
	return nil
}

// --- Assignment management ---

func (s *taxGroupService) AssignTaxGroup(ctx context.Context, actor, groupID string, req AssignTaxGroupRequest) (TaxAssignmentResponse, error) {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return TaxAssignmentResponse{}, fmt.Errorf("invalid tax group id: %w", err)
	}
	if _, err := s.groups.FindByID(ctx, gid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxAssignmentResponse{}, fmt.Errorf("tax group not found")
		}
		return TaxAssignmentResponse{}, fmt.Errorf("failed to fetch tax group: %w", err)
	}

	assignableID, err := uuid.Parse(req.AssignableID)
	if err != nil {
		return TaxAssignmentResponse{}, fmt.Errorf("invalid assignable id: %w", err)
	}

	assignment := model.TaxAssignment{
		TaxGroupID:     gid,
		AssignableType: req.AssignableType,
		AssignableID:   assignableID,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assignments.Create(txCtx, &assignment); err != nil {
			return fmt.Errorf("failed to create tax assignment: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionAssignTaxGroup, assignment.ID.String(),
			req.AssignableType+":"+req.AssignableID, req)
	})
	if err != nil {
		return TaxAssignmentResponse{}, err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "created", Entity: "tax_assignment", EntityID: assignment.ID.String()})
	return toTaxAssignmentResponse(assignment), nil
}

func (s *taxGroupService) UnassignTaxGroup(ctx context.Context, actor, groupID, assignmentID string) error {
	gid, err := uuid.Parse(groupID)
	if err != nil {
		return fmt.Errorf("invalid tax group id: %w", err)
	}
	aid, err := uuid.Parse(assignmentID)
	if err != nil {
		return fmt.Errorf("invalid tax assignment id: %w", err)
	}

	assignment, err := s.assignments.FindByID(ctx, aid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tax assignment not found")
		}
		return fmt.Errorf("failed to fetch tax assignment: %w", err)
	}
	if assignment.TaxGroupID != gid {
		return fmt.Errorf("tax assignment does not belong to group %s", groupID)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.assignments.Delete(txCtx, aid); err != nil {
			return fmt.Errorf("failed to delete tax assignment: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionUnassignTaxGroup, assignmentID,
			assignment.AssignableType+":"+assignment.AssignableID.String(), map[string]string{"deleted_id": assignmentID})
	})
	if err != nil {
		return err
	}

	s.invalidateResolution()
	s.hub.Notify(ws.ChangeEvent{Event: "deleted", Entity: "tax_assignment", EntityID: assignmentID})
	return nil
}

// --- Helpers ---

// invalidateResolution drops every cached group-resolution lookup after an
// administrative change; the next calculation re-reads from the database.
func (s *taxGroupService) invalidateResolution() {
	s.cache.Invalidate("tax:groups:")
}

func (s *taxGroupService) buildRate(ctx context.Context, groupID uuid.UUID, req TaxRateRequest) (*model.TaxRate, error) {
	taxID, err := uuid.Parse(req.TaxID)
	if err != nil {
		return nil, fmt.Errorf("invalid tax definition id: %w", err)
	}
	if _, err := s.definitions.FindByID(ctx, taxID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tax definition not found")
		}
		return nil, fmt.Errorf("failed to fetch tax definition: %w", err)
	}

	rateValue, err := decimal.NewFromString(req.Rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate value: %w", err)
	}
	if rateValue.IsNegative() {
		return nil, fmt.Errorf("rate must not be negative")
	}

	validFrom, err := parseOptionalDate(req.ValidFrom, "valid_from")
	if err != nil {
		return nil, err
	}
	validUntil, err := parseOptionalDate(req.ValidUntil, "valid_until")
	if err != nil {
		return nil, err
	}
	if validFrom != nil && validUntil != nil && validUntil.Before(*validFrom) {
		return nil, fmt.Errorf("valid_until must not precede valid_from")
	}

	minPrice, err := parseOptionalDecimal(req.MinPrice, "min_price")
	if err != nil {
		return nil, err
	}
	maxPrice, err := parseOptionalDecimal(req.MaxPrice, "max_price")
	if err != nil {
		return nil, err
	}
	if minPrice != nil && maxPrice != nil && maxPrice.LessThan(*minPrice) {
		return nil, fmt.Errorf("max_price must not be below min_price")
	}

	var basedOn *string
	if req.BasedOn != "" {
		b := req.BasedOn
		basedOn = &b
	}

	return &model.TaxRate{
		TaxGroupID:  groupID,
		TaxID:       taxID,
		Rate:        rateValue,
		Type:        req.Type,
		IsInclusive: req.IsInclusive,
		Priority:    req.Priority,
		BasedOn:     basedOn,
		ValidFrom:   validFrom,
		ValidUntil:  validUntil,
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
	}, nil
}

func (s *taxGroupService) writeAudit(ctx context.Context, actor, action, entityID, entityName string, details interface{}) error {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

func parseOptionalDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date format (expected YYYY-MM-DD): %w", field, err)
	}
	return &t, nil
}

func parseOptionalDecimal(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value: %w", field, err)
	}
	return &d, nil
}

func rateLabel(r *model.TaxRate) string {
	return r.Type + " " + r.Rate.StringFixed(4)
}

func toTaxRateResponse(r model.TaxRate) TaxRateResponse {
	resp := TaxRateResponse{
		ID:          r.ID.String(),
		TaxGroupID:  r.TaxGroupID.String(),
		TaxID:       r.TaxID.String(),
		Rate:        r.Rate.StringFixed(4),
		Type:        r.Type,
		IsInclusive: r.IsInclusive,
		Priority:    r.Priority,
	}
	if r.Tax != nil {
		resp.TaxName = r.Tax.Name
	}
	if r.BasedOn != nil {
		resp.BasedOn = *r.BasedOn
	}
	if r.ValidFrom != nil {
		v := r.ValidFrom.Format("2006-01-02")
		resp.ValidFrom = &v
	}
	if r.ValidUntil != nil {
		v := r.ValidUntil.Format("2006-01-02")
		resp.ValidUntil = &v
	}
	if r.MinPrice != nil {
		v := r.MinPrice.StringFixed(2)
		resp.MinPrice = &v
	}
	if r.MaxPrice != nil {
		v := r.MaxPrice.StringFixed(2)
		resp.MaxPrice = &v
	}
	return resp
}

func toTaxAssignmentResponse(a model.TaxAssignment) TaxAssignmentResponse {
	return TaxAssignmentResponse{
		ID:             a.ID.String(),
		TaxGroupID:     a.TaxGroupID.String(),
		AssignableType: a.AssignableType,
		AssignableID:   a.AssignableID.String(),
	}
}

func toTaxGroupResponse(g model.TaxGroup) TaxGroupResponse {
	rates := make([]TaxRateResponse, 0, len(g.Rates))
	for _, r := range g.Rates {
		rates = append(rates, toTaxRateResponse(r))
	}
	assignments := make([]TaxAssignmentResponse, 0, len(g.Assignments))
	for _, a := range g.Assignments {
		assignments = append(assignments, toTaxAssignmentResponse(a))
	}

	resp := TaxGroupResponse{
		ID:          g.ID.String(),
		OwnerType:   g.OwnerType,
		Name:        g.Name,
		Description: g.Description,
		IsActive:    g.IsActive,
		Rates:       rates,
		Assignments: assignments,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
	if g.OwnerID != nil {
		resp.OwnerID = g.OwnerID.String()
	}
	return resp
}
