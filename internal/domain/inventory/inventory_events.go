package inventory

import (
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeInventoryItemCreated   = "InventoryItemCreated"
	EventTypeStockAdjusted          = "StockAdjusted"
	EventTypeStockBelowReorderLevel = "StockBelowReorderLevel"
	EventTypeInventoryItemDeleted   = "InventoryItemDeleted"
)

// InventoryItemCreatedEvent is published when a new item is created
type InventoryItemCreatedEvent struct {
	shared.BaseDomainEvent
	ItemID       uuid.UUID `json:"item_id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	InitialStock int64     `json:"initial_stock"`
}

// NewInventoryItemCreatedEvent creates a new InventoryItemCreatedEvent
func NewInventoryItemCreatedEvent(item *InventoryItem) *InventoryItemCreatedEvent {
	return &InventoryItemCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInventoryItemCreated, item.ID, AggregateTypeInventoryItem),
		ItemID:          item.ID,
		SKU:             item.SKU,
		Name:            item.Name,
		InitialStock:    item.CurrentStock,
	}
}

// StockAdjustedEvent is published when stock is adjusted
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ItemID         uuid.UUID `json:"item_id"`
	SKU            string    `json:"sku"`
	Delta          int64     `json:"delta"`
	ResultingStock int64     `json:"resulting_stock"`
	Reason         string    `json:"reason"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(item *InventoryItem, delta int64, reason string) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, item.ID, AggregateTypeInventoryItem),
		ItemID:          item.ID,
		SKU:             item.SKU,
		Delta:           delta,
		ResultingStock:  item.CurrentStock,
		Reason:          reason,
	}
}

// StockBelowReorderLevelEvent is published when stock falls below the reorder threshold
type StockBelowReorderLevelEvent struct {
	shared.BaseDomainEvent
	ItemID       uuid.UUID `json:"item_id"`
	SKU          string    `json:"sku"`
	CurrentStock int64     `json:"current_stock"`
	ReorderLevel int64     `json:"reorder_level"`
}

// NewStockBelowReorderLevelEvent creates a new StockBelowReorderLevelEvent
func NewStockBelowReorderLevelEvent(item *InventoryItem) *StockBelowReorderLevelEvent {
	return &StockBelowReorderLevelEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowReorderLevel, item.ID, AggregateTypeInventoryItem),
		ItemID:          item.ID,
		SKU:             item.SKU,
		CurrentStock:    item.CurrentStock,
		ReorderLevel:    item.ReorderLevel,
	}
}
