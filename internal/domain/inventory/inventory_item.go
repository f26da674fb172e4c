package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// InventoryItem represents a stocked product.
// It is the aggregate root for inventory operations; CurrentStock is mutated
// exclusively through AdjustStock so the non-negativity invariant holds.
type InventoryItem struct {
	shared.BaseAggregateRoot
	SKU              string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Category         string          `gorm:"type:varchar(100);index"`
	CurrentStock     int64           `gorm:"not null;default:0"`
	ReorderLevel     int64           `gorm:"not null;default:0"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SupplierID       *uuid.UUID      `gorm:"type:uuid;index"`
	ImageURL         string          `gorm:"type:varchar(500)"`
	AssetAccountCode string          `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates a new inventory item
func NewInventoryItem(sku, name, category string, initialStock, reorderLevel int64, unitPrice valueobject.Money) (*InventoryItem, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if initialStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Initial stock cannot be negative")
	}
	if reorderLevel < 0 {
		return nil, shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	if !unitPrice.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	item := &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.TrimSpace(sku),
		Name:              strings.TrimSpace(name),
		Category:          category,
		CurrentStock:      initialStock,
		ReorderLevel:      reorderLevel,
		UnitPrice:         unitPrice.Amount(),
	}

	item.AddDomainEvent(NewInventoryItemCreatedEvent(item))

	return item, nil
}

// AdjustStock applies a signed stock delta with a mandatory reason.
// The resulting stock must not go negative; on violation the item is left
// unchanged and shared.ErrInsufficientStock is returned.
func (i *InventoryItem) AdjustStock(delta int64, reason string) error {
	if delta == 0 {
		return shared.NewDomainError("INVALID_DELTA", "Stock delta cannot be zero")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Adjustment reason cannot be empty")
	}

	newStock := i.CurrentStock + delta
	if newStock < 0 {
		return shared.ErrInsufficientStock
	}

	i.CurrentStock = newStock
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockAdjustedEvent(i, delta, reason))
	if i.IsBelowReorderLevel() {
		i.AddDomainEvent(NewStockBelowReorderLevelEvent(i))
	}

	return nil
}

// UpdateDetails changes descriptive fields. CurrentStock is deliberately not
// touched here; stock changes must go through AdjustStock.
func (i *InventoryItem) UpdateDetails(name, category string, reorderLevel int64, unitPrice valueobject.Money) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Item name cannot be empty")
	}
	if reorderLevel < 0 {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}
	if !unitPrice.IsPositive() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	i.Name = strings.TrimSpace(name)
	i.Category = category
	i.ReorderLevel = reorderLevel
	i.UnitPrice = unitPrice.Amount()
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetSupplier links the item to a vendor contact
func (i *InventoryItem) SetSupplier(supplierID uuid.UUID) {
	i.SupplierID = &supplierID
	i.UpdatedAt = time.Now()
}

// SetImageURL sets the product image reference
func (i *InventoryItem) SetImageURL(url string) {
	i.ImageURL = url
	i.UpdatedAt = time.Now()
}

// SetAssetAccountCode links the item to a chart-of-accounts code
func (i *InventoryItem) SetAssetAccountCode(code string) {
	i.AssetAccountCode = code
	i.UpdatedAt = time.Now()
}

// CanFulfill reports whether the requested quantity is available
func (i *InventoryItem) CanFulfill(quantity int64) bool {
	return quantity > 0 && i.CurrentStock >= quantity
}

// IsBelowReorderLevel reports whether stock has fallen below the reorder threshold
func (i *InventoryItem) IsBelowReorderLevel() bool {
	return i.CurrentStock < i.ReorderLevel
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (i *InventoryItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(i.UnitPrice)
}
