package service

import (
	"context"
	"testing"

	"marketplace/internal/model"
	"marketplace/internal/repository"
	ws "marketplace/internal/websocket"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- fakes ---

type fakeDefinitionRepo struct {
	repository.TaxDefinitionRepository

	bySlug  map[string]*model.TaxDefinition
	byID    map[uuid.UUID]*model.TaxDefinition
	created []*model.TaxDefinition
	updated []*model.TaxDefinition
	deleted []uuid.UUID
}

func newFakeDefinitionRepo() *fakeDefinitionRepo {
	return &fakeDefinitionRepo{
		bySlug: make(map[string]*model.TaxDefinition),
		byID:   make(map[uuid.UUID]*model.TaxDefinition),
	}
}

func (f *fakeDefinitionRepo) Create(_ context.Context, def *model.TaxDefinition) error {
	if def.ID == uuid.Nil {
		def.ID = uuid.New()
	}
	f.created = append(f.created, def)
	f.bySlug[def.Slug] = def
	f.byID[def.ID] = def
	return nil
}

func (f *fakeDefinitionRepo) Update(_ context.Context, def *model.TaxDefinition) error {
	f.updated = append(f.updated, def)
	return nil
}

func (f *fakeDefinitionRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.byID, id)
	return nil
}

func (f *fakeDefinitionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TaxDefinition, error) {
	if def, ok := f.byID[id]; ok {
		return def, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDefinitionRepo) FindBySlug(_ context.Context, slug string) (*model.TaxDefinition, error) {
	if def, ok := f.bySlug[slug]; ok {
		return def, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeAuditRepo struct {
	repository.AuditRepository

	entries []*model.AuditLog
}

func (f *fakeAuditRepo) Log(_ context.Context, entry *model.AuditLog) error {
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

func newTestDefinitionService(defs *fakeDefinitionRepo, audit *fakeAuditRepo) TaxDefinitionService {
	return NewTaxDefinitionService(defs, audit, fakeTxManager{}, ws.NewHub())
}

// --- tests ---

func TestCreateTaxDefinition(t *testing.T) {
	defs := newFakeDefinitionRepo()
	audit := &fakeAuditRepo{}
	svc := newTestDefinitionService(defs, audit)

	res, err := svc.CreateTaxDefinition(context.Background(), "admin@shop.test", CreateTaxDefinitionRequest{
		Name: "Value Added Tax",
	})
	require.NoError(t, err)

	assert.Equal(t, "Value Added Tax", res.Name)
	assert.Equal(t, "value-added-tax", res.Slug)
	assert.Equal(t, model.OwnerTypeSystem, res.OwnerType)
	assert.True(t, res.IsActive)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "admin@shop.test", audit.entries[0].Actor)
	assert.Equal(t, model.ActionCreateTaxDefinition, audit.entries[0].Action)
}

func TestCreateTaxDefinition_DuplicateSlug(t *testing.T) {
	defs := newFakeDefinitionRepo()
	defs.bySlug["vat"] = &model.TaxDefinition{ID: uuid.New(), Name: "VAT", Slug: "vat"}
	svc := newTestDefinitionService(defs, &fakeAuditRepo{})

	_, err := svc.CreateTaxDefinition(context.Background(), "admin", CreateTaxDefinitionRequest{
		Name: "Another",
		Slug: "vat",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Empty(t, defs.created)
}

func TestCreateTaxDefinition_InvalidOwnerID(t *testing.T) {
	svc := newTestDefinitionService(newFakeDefinitionRepo(), &fakeAuditRepo{})

	_, err := svc.CreateTaxDefinition(context.Background(), "admin", CreateTaxDefinitionRequest{
		Name:      "City tax",
		OwnerType: model.OwnerTypeMerchant,
		OwnerID:   "nope",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid owner id")
}

func TestUpdateTaxDefinition(t *testing.T) {
	defs := newFakeDefinitionRepo()
	id := uuid.New()
	defs.byID[id] = &model.TaxDefinition{ID: id, Name: "VAT", Slug: "vat", IsActive: true}
	audit := &fakeAuditRepo{}
	svc := newTestDefinitionService(defs, audit)

	inactive := false
	res, err := svc.UpdateTaxDefinition(context.Background(), "admin", id.String(), UpdateTaxDefinitionRequest{
		Name:     "VAT 2025",
		IsActive: &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "VAT 2025", res.Name)
	assert.False(t, res.IsActive)
	require.Len(t, defs.updated, 1)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionUpdateTaxDefinition, audit.entries[0].Action)
}

func TestUpdateTaxDefinition_NotFound(t *testing.T) {
	svc := newTestDefinitionService(newFakeDefinitionRepo(), &fakeAuditRepo{})

	_, err := svc.UpdateTaxDefinition(context.Background(), "admin", uuid.New().String(), UpdateTaxDefinitionRequest{Name: "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteTaxDefinition(t *testing.T) {
	defs := newFakeDefinitionRepo()
	id := uuid.New()
	defs.byID[id] = &model.TaxDefinition{ID: id, Name: "VAT", Slug: "vat"}
	audit := &fakeAuditRepo{}
	svc := newTestDefinitionService(defs, audit)

	err := svc.DeleteTaxDefinition(context.Background(), "admin", id.String())
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{id}, defs.deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, model.ActionDeleteTaxDefinition, audit.entries[0].Action)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Value Added Tax", "value-added-tax"},
		{"  GST (10%)  ", "gst-10"},
		{"Überweisung", "berweisung"},
		{"---", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}
