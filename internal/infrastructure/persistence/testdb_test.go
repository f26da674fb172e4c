package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/ledgerline/backend/internal/domain/expense"
	"github.com/ledgerline/backend/internal/domain/identity"
	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
// Postgres assigns doc_seq from a sequence; the trigger below mirrors that
// behavior using the SQLite rowid so document numbering works in tests.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&trade.Order{},
		&trade.OrderItem{},
		&inventory.InventoryItem{},
		&inventory.StockAdjustment{},
		&partner.Contact{},
		&accounting.Account{},
		&accounting.JournalEntry{},
		&expense.ExpenseRecord{},
		&identity.User{},
		&identity.Role{},
		&identity.RolePermission{},
	)
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TRIGGER orders_doc_seq AFTER INSERT ON orders
		BEGIN
			UPDATE orders SET doc_seq = new.rowid WHERE id = new.id;
		END;
	`).Error
	require.NoError(t, err)

	return db
}
