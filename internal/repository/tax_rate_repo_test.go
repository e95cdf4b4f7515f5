package repository

import (
	"context"
	"testing"
	"time"

	"marketplace/pkg/cache"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestTaxRateRepository_FindApplicable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaxRateRepository(db)

	groupID := uuid.New()
	rateID := uuid.New()
	taxID := uuid.New()
	at := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "tax_rates" WHERE tax_group_id IN \(\$1\) AND \(valid_from IS NULL OR valid_from <= \$2\) AND \(valid_until IS NULL OR valid_until >= \$3\) AND \(min_price IS NULL OR min_price <= \$4\) AND \(max_price IS NULL OR max_price >= \$5\) AND "tax_rates"\."deleted_at" IS NULL ORDER BY priority asc`).
		WithArgs(groupID, at, at, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tax_group_id", "tax_id", "rate", "type", "is_inclusive", "priority"}).
			AddRow(rateID, groupID, taxID, "10.0000", "percentage", false, 1))

	mock.ExpectQuery(`SELECT \* FROM "tax_definitions" WHERE "tax_definitions"\."id" = \$1`).
		WithArgs(taxID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(taxID, "VAT", "vat"))

	rates, err := repo.FindApplicable(context.Background(), []uuid.UUID{groupID}, at, decimal.RequireFromString("100"))
	require.NoError(t, err)

	require.Len(t, rates, 1)
	assert.Equal(t, rateID, rates[0].ID)
	require.NotNil(t, rates[0].Tax)
	assert.Equal(t, "VAT", rates[0].Tax.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxRateRepository_FindApplicableEmptyGroups(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaxRateRepository(db)

	rates, err := repo.FindApplicable(context.Background(), nil, time.Now(), decimal.Zero)
	require.NoError(t, err)

	assert.Empty(t, rates)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxGroupRepository_FindIDsByOwnerCachesLookup(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaxGroupRepository(db, cache.NewMemory(), time.Minute)

	ownerID := uuid.New()
	groupID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "tax_groups" WHERE \(?owner_type = \$1 AND is_active = \$2\)? AND owner_id = \$3`).
		WithArgs("merchant", true, ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(groupID))

	first, err := repo.FindIDsByOwner(context.Background(), "merchant", &ownerID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{groupID}, first)

	// second lookup must be served from cache, no further query expected
	second, err := repo.FindIDsByOwner(context.Background(), "merchant", &ownerID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxGroupRepository_FindIDsByOwnerSystemScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaxGroupRepository(db, cache.NewMemory(), time.Minute)

	groupID := uuid.New()

	mock.ExpectQuery(`SELECT "id" FROM "tax_groups" WHERE \(?owner_type = \$1 AND is_active = \$2\)? AND owner_id IS NULL`).
		WithArgs("system", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(groupID))

	ids, err := repo.FindIDsByOwner(context.Background(), "system", nil)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{groupID}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaxAssignmentRepository_FindGroupIDsFiltersInactiveGroups(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTaxAssignmentRepository(db, cache.NewMemory(), time.Minute)

	productID := uuid.New()
	groupID := uuid.New()

	mock.ExpectQuery(`SELECT "tax_assignments"\."tax_group_id" FROM "tax_assignments" JOIN tax_groups ON tax_groups\.id = tax_assignments\.tax_group_id WHERE \(tax_assignments\.assignable_type = \$1 AND tax_assignments\.assignable_id = \$2\) AND \(tax_groups\.is_active = \$3 AND tax_groups\.deleted_at IS NULL\)`).
		WithArgs("product", productID, true).
		WillReturnRows(sqlmock.NewRows([]string{"tax_group_id"}).AddRow(groupID))

	ids, err := repo.FindGroupIDs(context.Background(), "product", productID)
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{groupID}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
