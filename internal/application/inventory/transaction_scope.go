package inventory

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to inventory repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and are committed or
// rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories inventory
// operations need within one transaction.
//
// Aggregate boundary notes:
//   - InventoryRepo: the InventoryItem aggregate. All stock state changes go
//     through this repository under a row lock.
//   - AdjustmentRepo: append-only audit rows; one row per applied delta.
//   - OrderRepo: read-only, used to refuse deleting an item that order lines
//     still reference.
type TransactionalRepositories interface {
	// InventoryRepo returns the inventory item repository scoped to the current transaction
	InventoryRepo() inventory.InventoryItemRepository
	// AdjustmentRepo returns the stock adjustment repository scoped to the current transaction
	AdjustmentRepo() inventory.StockAdjustmentRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
}
