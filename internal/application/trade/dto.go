package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Order DTOs ====================

// CreateOrderRequest represents a request to create a purchase or sale order
type CreateOrderRequest struct {
	CounterpartID uuid.UUID              `json:"counterpart_id" binding:"required"`
	Date          time.Time              `json:"date" binding:"required"`
	Description   string                 `json:"description" binding:"max=1000"`
	Status        string                 `json:"status"`
	Items         []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// CreateOrderItemInput represents a line item in the create order request.
// UnitPrice is optional; when omitted the item's current unit price is used.
type CreateOrderItemInput struct {
	InventoryItemID uuid.UUID        `json:"inventory_item_id" binding:"required"`
	Quantity        int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
}

// UpdateOrderRequest represents a request to update an order's header fields
type UpdateOrderRequest struct {
	CounterpartID *uuid.UUID `json:"counterpart_id"`
	Date          *time.Time `json:"date"`
	Description   *string    `json:"description"`
}

// AddOrderItemRequest represents a request to add a line to a draft order
type AddOrderItemRequest struct {
	InventoryItemID uuid.UUID        `json:"inventory_item_id" binding:"required"`
	Quantity        int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
}

// UpdateOrderItemRequest represents a request to change a draft line's quantity
type UpdateOrderItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// UpdateOrderStatusRequest represents a request to move an order along its
// status lattice
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter represents filter options for order lists
type OrderListFilter struct {
	Search        string     `form:"search"`
	CounterpartID *uuid.UUID `form:"counterpart_id"`
	Status        *string    `form:"status"`
	StartDate     *time.Time `form:"start_date"`
	EndDate       *time.Time `form:"end_date"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	LineIndex       int             `json:"line_index"`
	InventoryItemID uuid.UUID       `json:"inventory_item_id"`
	ItemName        string          `json:"item_name"`
	SKU             string          `json:"sku"`
	Quantity        int64           `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Amount          decimal.Decimal `json:"amount"`
}

// OrderResponse represents a full order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Kind            trade.OrderKind     `json:"kind"`
	DocumentNumber  string              `json:"document_number"`
	CounterpartID   uuid.UUID           `json:"counterpart_id"`
	CounterpartName string              `json:"counterpart_name"`
	Date            time.Time           `json:"date"`
	Description     string              `json:"description"`
	Status          trade.OrderStatus   `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	Items           []OrderItemResponse `json:"items"`
	ConfirmedAt     *time.Time          `json:"confirmed_at,omitempty"`
	ShippedAt       *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	CancelledAt     *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderListItemResponse represents an order in list responses (no lines)
type OrderListItemResponse struct {
	ID              uuid.UUID         `json:"id"`
	Kind            trade.OrderKind   `json:"kind"`
	DocumentNumber  string            `json:"document_number"`
	CounterpartID   uuid.UUID         `json:"counterpart_id"`
	CounterpartName string            `json:"counterpart_name"`
	Date            time.Time         `json:"date"`
	Status          trade.OrderStatus `json:"status"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	ItemCount       int               `json:"item_count"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ToOrderResponse converts an order aggregate to its response DTO
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:              item.ID,
			LineIndex:       item.LineIndex,
			InventoryItemID: item.InventoryItemID,
			ItemName:        item.ItemName,
			SKU:             item.SKU,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			Amount:          item.Amount,
		}
	}

	return OrderResponse{
		ID:              order.ID,
		Kind:            order.Kind,
		DocumentNumber:  order.DocumentNumber,
		CounterpartID:   order.CounterpartID,
		CounterpartName: order.CounterpartName,
		Date:            order.Date,
		Description:     order.Description,
		Status:          order.Status,
		TotalAmount:     order.TotalAmount,
		Items:           items,
		ConfirmedAt:     order.ConfirmedAt,
		ShippedAt:       order.ShippedAt,
		DeliveredAt:     order.DeliveredAt,
		PaidAt:          order.PaidAt,
		CancelledAt:     order.CancelledAt,
		CancelReason:    order.CancelReason,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// ToOrderListItemResponses converts orders to list item DTOs
func ToOrderListItemResponses(orders []trade.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i, order := range orders {
		responses[i] = OrderListItemResponse{
			ID:              order.ID,
			Kind:            order.Kind,
			DocumentNumber:  order.DocumentNumber,
			CounterpartID:   order.CounterpartID,
			CounterpartName: order.CounterpartName,
			Date:            order.Date,
			Status:          order.Status,
			TotalAmount:     order.TotalAmount,
			ItemCount:       len(order.Items),
			CreatedAt:       order.CreatedAt,
		}
	}
	return responses
}
