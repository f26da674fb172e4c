package persistence

import (
	"context"

	"gorm.io/gorm"

	apptrade "github.com/ledgerline/backend/internal/application/trade"
	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// GormTradeTransactionScope implements the order workflow's TransactionScope
// using GORM transactions. Every repository handed to the callback is bound
// to the same transaction, so stock movements commit or roll back together
// with the order status they belong to.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTradeRepositories{tx: tx})
	})
}

type gormTradeRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormTradeRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// InventoryRepo returns the inventory item repository scoped to the current transaction
func (r *gormTradeRepositories) InventoryRepo() inventory.InventoryItemRepository {
	return NewGormInventoryItemRepository(r.tx)
}

// AdjustmentRepo returns the stock adjustment repository scoped to the current transaction
func (r *gormTradeRepositories) AdjustmentRepo() inventory.StockAdjustmentRepository {
	return NewGormStockAdjustmentRepository(r.tx)
}

// ContactRepo returns the contact repository scoped to the current transaction
func (r *gormTradeRepositories) ContactRepo() partner.ContactRepository {
	return NewGormContactRepository(r.tx)
}

// Ensure GormTradeTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)

// Ensure gormTradeRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
