package trade

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an order
// workflow touches. When a function is executed within a transaction scope,
// all repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories the order
// workflow needs within one transaction. All repositories returned share the
// same underlying database transaction.
//
// Aggregate boundary notes:
//   - OrderRepo: the Order aggregate (header plus line items).
//   - InventoryRepo: used for row-locked reads and stock writes when an order
//     enters or leaves a stock-consuming status. Stock changes ride in the
//     same transaction as the status change so consumption is exactly-once.
//   - AdjustmentRepo: append-only audit rows for every stock movement.
//   - ContactRepo: read-only counterpart lookups during order creation.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
	// InventoryRepo returns the inventory item repository scoped to the current transaction
	InventoryRepo() inventory.InventoryItemRepository
	// AdjustmentRepo returns the stock adjustment repository scoped to the current transaction
	AdjustmentRepo() inventory.StockAdjustmentRepository
	// ContactRepo returns the contact repository scoped to the current transaction
	ContactRepo() partner.ContactRepository
}
