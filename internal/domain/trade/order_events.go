package trade

import (
	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
	EventTypeOrderPaid          = "OrderPaid"
	EventTypeOrderDeleted       = "OrderDeleted"
)

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID `json:"order_id"`
	Kind          OrderKind `json:"kind"`
	CounterpartID uuid.UUID `json:"counterpart_id"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, order.ID, AggregateTypeOrder),
		OrderID:         order.ID,
		Kind:            order.Kind,
		CounterpartID:   order.CounterpartID,
	}
}

// OrderStatusChangedEvent is published on every status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID   `json:"order_id"`
	Kind           OrderKind   `json:"kind"`
	DocumentNumber string      `json:"document_number"`
	OldStatus      OrderStatus `json:"old_status"`
	NewStatus      OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, order.ID, AggregateTypeOrder),
		OrderID:         order.ID,
		Kind:            order.Kind,
		DocumentNumber:  order.DocumentNumber,
		OldStatus:       oldStatus,
		NewStatus:       order.Status,
	}
}

// OrderPaidEvent is published when an order reaches the Paid status.
// The accounting module subscribes to it to post the matching journal entry.
type OrderPaidEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	Kind           OrderKind       `json:"kind"`
	DocumentNumber string          `json:"document_number"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

// NewOrderPaidEvent creates a new OrderPaidEvent
func NewOrderPaidEvent(order *Order) *OrderPaidEvent {
	return &OrderPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaid, order.ID, AggregateTypeOrder),
		OrderID:         order.ID,
		Kind:            order.Kind,
		DocumentNumber:  order.DocumentNumber,
		TotalAmount:     order.TotalAmount,
	}
}

// OrderDeletedEvent is published when an order is deleted
type OrderDeletedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID   `json:"order_id"`
	Kind           OrderKind   `json:"kind"`
	DocumentNumber string      `json:"document_number"`
	Status         OrderStatus `json:"status"`
}

// NewOrderDeletedEvent creates a new OrderDeletedEvent
func NewOrderDeletedEvent(order *Order) *OrderDeletedEvent {
	return &OrderDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDeleted, order.ID, AggregateTypeOrder),
		OrderID:         order.ID,
		Kind:            order.Kind,
		DocumentNumber:  order.DocumentNumber,
		Status:          order.Status,
	}
}
