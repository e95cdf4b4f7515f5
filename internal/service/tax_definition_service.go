package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	ws "marketplace/internal/websocket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateTaxDefinitionRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"` // derived from name when empty
	Description string `json:"description"`
	OwnerType   string `json:"owner_type" binding:"omitempty,oneof=system merchant organization franchise branch outlet department warehouse"`
	OwnerID     string `json:"owner_id"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateTaxDefinitionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"is_active"`
}

type TaxDefinitionResponse struct {
	ID          string `json:"id"`
	OwnerType   string `json:"owner_type"`
	OwnerID     string `json:"owner_id,omitempty"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

// --- Interface ---

type TaxDefinitionService interface {
	GetTaxDefinitions(ctx context.Context, page, limit int) ([]TaxDefinitionResponse, int64, error)
	CreateTaxDefinition(ctx context.Context, actor string, req CreateTaxDefinitionRequest) (TaxDefinitionResponse, error)
	UpdateTaxDefinition(ctx context.Context, actor, id string, req UpdateTaxDefinitionRequest) (TaxDefinitionResponse, error)
	DeleteTaxDefinition(ctx context.Context, actor, id string) error
}

type taxDefinitionService struct {
	definitions repository.TaxDefinitionRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *ws.Hub
}

func NewTaxDefinitionService(
	definitions repository.TaxDefinitionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) TaxDefinitionService {
	return &taxDefinitionService{
		definitions: definitions,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *taxDefinitionService) GetTaxDefinitions(ctx context.Context, page, limit int) ([]TaxDefinitionResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	defs, total, err := s.definitions.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tax definitions: %w", err)
	}

	res := make([]TaxDefinitionResponse, 0, len(defs))
	for _, d := range defs {
		res = append(res, toTaxDefinitionResponse(d))
	}
	return res, total, nil
}

func (s *taxDefinitionService) CreateTaxDefinition(ctx context.Context, actor string, req CreateTaxDefinitionRequest) (TaxDefinitionResponse, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	// slug is globally unique
	if _, err := s.definitions.FindBySlug(ctx, slug); err == nil {
		return TaxDefinitionResponse{}, fmt.Errorf("a tax definition with slug '%s' already exists", slug)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TaxDefinitionResponse{}, fmt.Errorf("failed to check slug uniqueness: %w", err)
	}

	ownerType := req.OwnerType
	if ownerType == "" {
		ownerType = model.OwnerTypeSystem
	}
	ownerID, err := parseOptionalID(req.OwnerID)
	if err != nil {
		return TaxDefinitionResponse{}, err
	}

	def := model.TaxDefinition{
		OwnerType:   ownerType,
		OwnerID:     ownerID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.definitions.Create(txCtx, &def); err != nil {
			return fmt.Errorf("failed to create tax definition: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionCreateTaxDefinition, def.ID.String(), def.Name, req)
	})
	if err != nil {
		return TaxDefinitionResponse{}, err
	}

	s.hub.Notify(ws.ChangeEvent{Event: "created", Entity: "tax_definition", EntityID: def.ID.String(), EntityName: def.Name})
	return toTaxDefinitionResponse(def), nil
}

func (s *taxDefinitionService) UpdateTaxDefinition(ctx context.Context, actor, id string, req UpdateTaxDefinitionRequest) (TaxDefinitionResponse, error) {
	defID, err := uuid.Parse(id)
	if err != nil {
		return TaxDefinitionResponse{}, fmt.Errorf("invalid tax definition id: %w", err)
	}

	def, err := s.definitions.FindByID(ctx, defID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaxDefinitionResponse{}, fmt.Errorf("tax definition not found")
		}
		return TaxDefinitionResponse{}, fmt.Errorf("failed to fetch tax definition: %w", err)
	}

	def.Name = req.Name
	def.Description = req.Description
	if req.IsActive != nil {
		def.IsActive = *req.IsActive
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.definitions.Update(txCtx, def); err != nil {
			return fmt.Errorf("failed to update tax definition: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionUpdateTaxDefinition, def.ID.String(), def.Name, req)
	})
	if err != nil {
		return TaxDefinitionResponse{}, err
	}

	s.hub.Notify(ws.ChangeEvent{Event: "updated", Entity: "tax_definition", EntityID: def.ID.String(), EntityName: def.Name})
	return toTaxDefinitionResponse(*def), nil
}

func (s *taxDefinitionService) DeleteTaxDefinition(ctx context.Context, actor, id string) error {
	defID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid tax definition id: %w", err)
	}

	def, err := s.definitions.FindByID(ctx, defID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("tax definition not found")
		}
		return fmt.Errorf("failed to fetch tax definition: %w", err)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.definitions.Delete(txCtx, defID); err != nil {
			return fmt.Errorf("failed to delete tax definition: %w", err)
		}
		return s.writeAudit(txCtx, actor, model.ActionDeleteTaxDefinition, id, def.Name, map[string]string{"deleted_id": id})
	})
	if err != nil {
		return err
	}

	s.hub.Notify(ws.ChangeEvent{Event: "deleted", Entity: "tax_definition", EntityID: id, EntityName: def.Name})
	return nil
}

// --- Helpers ---

func (s *taxDefinitionService) writeAudit(ctx context.Context, actor, action, entityID, entityName string, details interface{}) error {
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

func toTaxDefinitionResponse(d model.TaxDefinition) TaxDefinitionResponse {
	resp := TaxDefinitionResponse{
		ID:          d.ID.String(),
		OwnerType:   d.OwnerType,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.Format(time.RFC3339),
	}
	if d.OwnerID != nil {
		resp.OwnerID = d.OwnerID.String()
	}
	return resp
}

func parseOptionalID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}
	return &id, nil
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a url-safe slug
func Slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
