package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// InventoryItemRepository defines the interface for inventory item persistence
type InventoryItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindByIDForUpdate finds an item by ID acquiring a row lock.
	// Must be called inside a transaction; the lock is held until commit.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*InventoryItem, error)

	// FindBySKU finds an item by its unique SKU
	FindBySKU(ctx context.Context, sku string) (*InventoryItem, error)

	// FindAll finds all items matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// FindBelowReorderLevel finds items whose stock is below their reorder level
	FindBelowReorderLevel(ctx context.Context) ([]InventoryItem, error)

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save persists an item (insert or update)
	Save(ctx context.Context, item *InventoryItem) error

	// Delete removes an item by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// StockAdjustmentRepository is the append-only store for stock movement audit rows
type StockAdjustmentRepository interface {
	// Append stores an adjustment record
	Append(ctx context.Context, adjustment *StockAdjustment) error

	// FindByItem returns the adjustment history for an item, newest first
	FindByItem(ctx context.Context, itemID uuid.UUID, filter shared.Filter) ([]StockAdjustment, error)
}
