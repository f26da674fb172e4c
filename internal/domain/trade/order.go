package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// OrderItem represents a line item in an order
type OrderItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineIndex       int             `gorm:"not null"`
	InventoryItemID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemName        string          `gorm:"type:varchar(200);not null"`
	SKU             string          `gorm:"type:varchar(50);not null"`
	Quantity        int64           `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order line item
func NewOrderItem(orderID, inventoryItemID uuid.UUID, itemName, sku string, lineIndex int, quantity int64, unitPrice valueobject.Money) (*OrderItem, error) {
	if inventoryItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Inventory item ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:              uuid.New(),
		OrderID:         orderID,
		LineIndex:       lineIndex,
		InventoryItemID: inventoryItemID,
		ItemName:        itemName,
		SKU:             sku,
		Quantity:        quantity,
		UnitPrice:       unitPrice.Amount(),
		Amount:          unitPrice.MultiplyByInt(quantity).Amount(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the amount
func (i *OrderItem) UpdateQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.Amount = i.UnitPrice.Mul(decimal.NewFromInt(quantity))
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateUnitPrice updates the unit price and recalculates the amount
func (i *OrderItem) UpdateUnitPrice(unitPrice valueobject.Money) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice.Amount()
	i.Amount = i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
	i.UpdatedAt = time.Now()
	return nil
}

// Order represents a purchase or sale order aggregate root.
// The header plus its ordered line items form one unit of consistency:
// TotalAmount always equals the sum of line amounts, and line items are
// frozen once the status leaves Draft.
type Order struct {
	shared.BaseAggregateRoot
	Kind            OrderKind       `gorm:"type:varchar(20);not null;index"`
	DocumentNumber  string          `gorm:"type:varchar(50);uniqueIndex"`
	DocSeq          int64           `gorm:"->;column:doc_seq"` // database-assigned sequence, read-only
	CounterpartID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CounterpartName string          `gorm:"type:varchar(200);not null"`
	Date            time.Time       `gorm:"not null"`
	Description     string          `gorm:"type:text"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;index"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
	ConfirmedAt     *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	PaidAt          *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in Draft status
func NewOrder(kind OrderKind, counterpartID uuid.UUID, counterpartName string, date time.Time, description string) (*Order, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Order kind must be PURCHASE or SALE")
	}
	if counterpartID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTERPART", "Counterpart ID cannot be empty")
	}
	if counterpartName == "" {
		return nil, shared.NewDomainError("INVALID_COUNTERPART_NAME", "Counterpart name cannot be empty")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Order date cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		CounterpartID:     counterpartID,
		CounterpartName:   counterpartName,
		Date:              date,
		Description:       description,
		Status:            OrderStatusDraft,
		TotalAmount:       decimal.Zero,
		Items:             make([]OrderItem, 0),
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a new line item. Only allowed while the order is Draft.
func (o *Order) AddItem(inventoryItemID uuid.UUID, itemName, sku string, quantity int64, unitPrice valueobject.Money) (*OrderItem, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft order")
	}

	item, err := NewOrderItem(o.ID, inventoryItemID, itemName, sku, len(o.Items), quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// UpdateItemQuantity updates the quantity of an existing line. Draft only.
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity int64) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft order")
	}

	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			if err := o.Items[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// RemoveItem removes a line item. Draft only; an order keeps at least one line.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft order")
	}
	if len(o.Items) <= 1 {
		return shared.NewDomainError("NO_ITEMS", "An order must keep at least one line item")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			for i := range o.Items {
				o.Items[i].LineIndex = i
			}
			o.recalculateTotals()
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// SetInitialStatus moves a freshly built order directly into a later status,
// bypassing the transition lattice. Only valid while the order is still in
// Draft and never into Cancelled. It raises the same events a regular
// transition would, so an order created directly as Paid still reaches the
// downstream posting handler.
func (o *Order) SetInitialStatus(status OrderStatus) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Initial status can only be set on a draft order")
	}
	if !status.IsValidForKind(o.Kind) {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Status %s is not valid for %s orders", status, o.Kind))
	}
	if status == OrderStatusCancelled {
		return shared.NewDomainError("INVALID_STATUS", "An order cannot be created as cancelled")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "An order must have at least one line item")
	}

	now := time.Now()
	o.Status = status
	o.stampStatus(status, now)
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusDraft))
	if status == OrderStatusPaid {
		o.AddDomainEvent(NewOrderPaidEvent(o))
	}

	return nil
}

// AssignDocumentNumber sets the document number once; it is immutable thereafter
func (o *Order) AssignDocumentNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Document number cannot be empty")
	}
	if o.DocumentNumber != "" {
		return shared.NewDomainError("INVALID_STATE", "Document number is already assigned")
	}
	o.DocumentNumber = number
	return nil
}

// UpdateHeader changes the mutable header fields. Rejected once terminal.
func (o *Order) UpdateHeader(counterpartID uuid.UUID, counterpartName string, date time.Time, description string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit an order in %s status", o.Status))
	}
	if counterpartID == uuid.Nil {
		return shared.NewDomainError("INVALID_COUNTERPART", "Counterpart ID cannot be empty")
	}
	if counterpartName == "" {
		return shared.NewDomainError("INVALID_COUNTERPART_NAME", "Counterpart name cannot be empty")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Order date cannot be empty")
	}

	o.CounterpartID = counterpartID
	o.CounterpartName = counterpartName
	o.Date = date
	o.Description = description
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// TransitionTo moves the order to a new status along the legal lattice.
// The caller (status engine service) is responsible for applying the stock
// side effect derived via TransitionStockEffect before persisting.
func (o *Order) TransitionTo(newStatus OrderStatus) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Order in %s status cannot change status", o.Status))
	}
	if !newStatus.IsValidForKind(o.Kind) {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Status %s is not valid for %s orders", newStatus, o.Kind))
	}
	if !o.Status.CanTransitionTo(o.Kind, newStatus) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot transition from %s to %s", o.Status, newStatus))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot transition an order without items")
	}

	oldStatus := o.Status
	now := time.Now()
	o.Status = newStatus
	o.stampStatus(newStatus, now)
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus))
	if newStatus == OrderStatusPaid {
		o.AddDomainEvent(NewOrderPaidEvent(o))
	}

	return nil
}

// Cancel transitions the order to Cancelled with a reason
func (o *Order) Cancel(reason string) error {
	if err := o.TransitionTo(OrderStatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// CanDelete reports whether the order may be deleted in its current status
func (o *Order) CanDelete() bool {
	return o.Status == OrderStatusDraft || o.Status == OrderStatusCancelled
}

// ConsumesStock reports whether the order's current status implies its line
// quantities have been taken from stock
func (o *Order) ConsumesStock() bool {
	return ConsumesStock(o.Kind, o.Status)
}

func (o *Order) stampStatus(status OrderStatus, now time.Time) {
	switch status {
	case OrderStatusConfirmed:
		o.ConfirmedAt = &now
	case OrderStatusShipped:
		o.ShippedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusPaid:
		o.PaidAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
}

func (o *Order) recalculateTotals() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}

// GetTotalAmountMoney returns the order total as a Money value object
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(o.TotalAmount)
}
