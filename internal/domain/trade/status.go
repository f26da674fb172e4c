package trade

// OrderKind distinguishes purchasing from sales documents
type OrderKind string

const (
	OrderKindPurchase OrderKind = "PURCHASE"
	OrderKindSale     OrderKind = "SALE"
)

// IsValid checks if the kind is a known OrderKind
func (k OrderKind) IsValid() bool {
	return k == OrderKindPurchase || k == OrderKindSale
}

// String returns the string representation of OrderKind
func (k OrderKind) String() string {
	return string(k)
}

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "DRAFT"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are allowed from the status
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// statusesByKind lists the member statuses of each order kind.
// The purchase lattice is Draft -> Confirmed -> Paid; the sale lattice adds
// Shipped and Delivered between Confirmed and Paid.
var statusesByKind = map[OrderKind][]OrderStatus{
	OrderKindPurchase: {OrderStatusDraft, OrderStatusConfirmed, OrderStatusPaid, OrderStatusCancelled},
	OrderKindSale:     {OrderStatusDraft, OrderStatusConfirmed, OrderStatusShipped, OrderStatusDelivered, OrderStatusPaid, OrderStatusCancelled},
}

// transitions is the legal status transition lattice per order kind
var transitions = map[OrderKind]map[OrderStatus][]OrderStatus{
	OrderKindPurchase: {
		OrderStatusDraft:     {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed: {OrderStatusPaid, OrderStatusCancelled},
	},
	OrderKindSale: {
		OrderStatusDraft:     {OrderStatusConfirmed, OrderStatusCancelled},
		OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
		OrderStatusShipped:   {OrderStatusDelivered, OrderStatusCancelled},
		OrderStatusDelivered: {OrderStatusPaid, OrderStatusCancelled},
	},
}

// stockConsumingStatuses is the single source of truth for which
// (kind, status) pairs imply that inventory has left the warehouse.
// Both the creation path and the transition engine consult this table.
var stockConsumingStatuses = map[OrderKind]map[OrderStatus]bool{
	OrderKindPurchase: {
		OrderStatusConfirmed: true,
		OrderStatusPaid:      true,
	},
	OrderKindSale: {
		OrderStatusConfirmed: true,
		OrderStatusShipped:   true,
		OrderStatusDelivered: true,
		OrderStatusPaid:      true,
	},
}

// IsValidForKind checks whether the status is a member of the kind's status set
func (s OrderStatus) IsValidForKind(kind OrderKind) bool {
	for _, member := range statusesByKind[kind] {
		if member == s {
			return true
		}
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
// under the given order kind
func (s OrderStatus) CanTransitionTo(kind OrderKind, target OrderStatus) bool {
	for _, next := range transitions[kind][s] {
		if next == target {
			return true
		}
	}
	return false
}

// ConsumesStock reports whether entering the status implies inventory
// has been taken from stock for the given order kind
func ConsumesStock(kind OrderKind, status OrderStatus) bool {
	return stockConsumingStatuses[kind][status]
}

// StockEffect describes the inventory side effect of a status change
type StockEffect int

const (
	// StockEffectNone means the change has no inventory impact
	StockEffectNone StockEffect = iota
	// StockEffectConsume means line quantities must be decremented from stock
	StockEffectConsume
	// StockEffectRestock means previously decremented quantities are restored
	StockEffectRestock
)

// TransitionStockEffect derives the inventory side effect of moving an order
// of the given kind from oldStatus to newStatus. Stock is consumed exactly
// once: only a non-consuming -> consuming move decrements, and cancelling a
// consuming order always restocks.
func TransitionStockEffect(kind OrderKind, oldStatus, newStatus OrderStatus) StockEffect {
	oldConsumes := ConsumesStock(kind, oldStatus)
	newConsumes := ConsumesStock(kind, newStatus)

	switch {
	case !oldConsumes && newConsumes:
		return StockEffectConsume
	case oldConsumes && newStatus == OrderStatusCancelled:
		return StockEffectRestock
	default:
		return StockEffectNone
	}
}
