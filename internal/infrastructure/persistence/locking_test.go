package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ledgerline/backend/internal/domain/shared"
)

func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestInventoryRepository_FindByIDForUpdate_LocksRow(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	repo := NewGormInventoryItemRepository(gormDB)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "sku", "name", "current_stock", "unit_price", "created_at", "updated_at"}).
		AddRow(id, "WID-1", "Widget", int64(7), decimal.RequireFromString("2.00"), time.Now(), time.Now())
	mock.ExpectQuery(`SELECT .* FROM "inventory_items" WHERE id = \$1 .* FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(rows)

	item, err := repo.FindByIDForUpdate(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "WID-1", item.SKU)
	assert.EqualValues(t, 7, item.CurrentStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_FindByIDForUpdate_NotFound(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	repo := NewGormInventoryItemRepository(gormDB)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "inventory_items"`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByIDForUpdate(context.Background(), id)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAccountRepository_FindByCodeForUpdate_LocksRow(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	repo := NewGormAccountRepository(gormDB)
	id := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "code", "name", "type", "balance", "created_at", "updated_at"}).
		AddRow(id, "1000", "Cash", "ASSET", decimal.Zero, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT .* FROM "chart_of_accounts" WHERE code = \$1 .* FOR UPDATE`).
		WithArgs("1000", 1).
		WillReturnRows(rows)

	account, err := repo.FindByCodeForUpdate(context.Background(), "1000")
	require.NoError(t, err)
	assert.Equal(t, "Cash", account.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_DocumentSequence(t *testing.T) {
	gormDB, mock, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	repo := NewGormOrderRepository(gormDB)
	id := uuid.New()

	t.Run("returns the assigned sequence", func(t *testing.T) {
		mock.ExpectQuery(`SELECT doc_seq FROM orders WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"doc_seq"}).AddRow(int64(42)))

		seq, err := repo.DocumentSequence(context.Background(), id)
		require.NoError(t, err)
		assert.EqualValues(t, 42, seq)
	})

	t.Run("missing order maps to not found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT doc_seq FROM orders WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"doc_seq"}))

		_, err := repo.DocumentSequence(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
