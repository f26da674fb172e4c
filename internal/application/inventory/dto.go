package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// CreateInventoryItemRequest represents a request to create an inventory item
type CreateInventoryItemRequest struct {
	SKU              string          `json:"sku" binding:"required,min=1,max=50"`
	Name             string          `json:"name" binding:"required,min=1,max=200"`
	Category         string          `json:"category" binding:"max=100"`
	InitialStock     int64           `json:"initial_stock" binding:"gte=0"`
	ReorderLevel     int64           `json:"reorder_level" binding:"gte=0"`
	UnitPrice        decimal.Decimal `json:"unit_price" binding:"required"`
	SupplierID       *uuid.UUID      `json:"supplier_id"`
	ImageURL         string          `json:"image_url" binding:"max=500"`
	AssetAccountCode string          `json:"asset_account_code" binding:"max=50"`
}

// UpdateInventoryItemRequest represents a request to update item details.
// Stock is deliberately absent; stock changes go through AdjustStock.
type UpdateInventoryItemRequest struct {
	Name             *string          `json:"name"`
	Category         *string          `json:"category"`
	ReorderLevel     *int64           `json:"reorder_level"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	SupplierID       *uuid.UUID       `json:"supplier_id"`
	ImageURL         *string          `json:"image_url"`
	AssetAccountCode *string          `json:"asset_account_code"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta   int64      `json:"delta" binding:"required"`
	Reason  string     `json:"reason" binding:"required,min=1,max=500"`
	ActorID *uuid.UUID `json:"-"`
}

// InventoryItemListFilter represents filter options for item lists
type InventoryItemListFilter struct {
	Search     string     `form:"search"`
	Category   *string    `form:"category"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// InventoryItemResponse represents an inventory item in API responses
type InventoryItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	CurrentStock      int64           `json:"current_stock"`
	ReorderLevel      int64           `json:"reorder_level"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	SupplierID        *uuid.UUID      `json:"supplier_id,omitempty"`
	ImageURL          string          `json:"image_url,omitempty"`
	AssetAccountCode  string          `json:"asset_account_code,omitempty"`
	BelowReorderLevel bool            `json:"below_reorder_level"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockAdjustmentResponse represents one audit row of an item's stock history
type StockAdjustmentResponse struct {
	ID             uuid.UUID  `json:"id"`
	ItemID         uuid.UUID  `json:"item_id"`
	Delta          int64      `json:"delta"`
	ResultingStock int64      `json:"resulting_stock"`
	Reason         string     `json:"reason"`
	ActorID        *uuid.UUID `json:"actor_id,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ToInventoryItemResponse converts an item aggregate to its response DTO
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                item.ID,
		SKU:               item.SKU,
		Name:              item.Name,
		Category:          item.Category,
		CurrentStock:      item.CurrentStock,
		ReorderLevel:      item.ReorderLevel,
		UnitPrice:         item.UnitPrice,
		SupplierID:        item.SupplierID,
		ImageURL:          item.ImageURL,
		AssetAccountCode:  item.AssetAccountCode,
		BelowReorderLevel: item.IsBelowReorderLevel(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts items to response DTOs
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, len(items))
	for i := range items {
		responses[i] = ToInventoryItemResponse(&items[i])
	}
	return responses
}

// ToStockAdjustmentResponses converts audit rows to response DTOs
func ToStockAdjustmentResponses(adjustments []inventory.StockAdjustment) []StockAdjustmentResponse {
	responses := make([]StockAdjustmentResponse, len(adjustments))
	for i, a := range adjustments {
		responses[i] = StockAdjustmentResponse{
			ID:             a.ID,
			ItemID:         a.ItemID,
			Delta:          a.Delta,
			ResultingStock: a.ResultingStock,
			Reason:         a.Reason,
			ActorID:        a.ActorID,
			CreatedAt:      a.CreatedAt,
		}
	}
	return responses
}
