package trade

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// OrderService handles the order workflow for one order kind. Two instances
// are wired at startup, one for purchase orders and one for sale orders; they
// share the same code path because the two document types differ only in
// their status lattice and counterpart type.
type OrderService struct {
	kind           trade.OrderKind
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewOrderService creates an OrderService for the given order kind
func NewOrderService(kind trade.OrderKind, scope TransactionScope) *OrderService {
	return &OrderService{
		kind:  kind,
		scope: scope,
	}
}

// NewPurchaseOrderService creates the purchase order service
func NewPurchaseOrderService(scope TransactionScope) *OrderService {
	return NewOrderService(trade.OrderKindPurchase, scope)
}

// NewSaleOrderService creates the sale order service
func NewSaleOrderService(scope TransactionScope) *OrderService {
	return NewOrderService(trade.OrderKindSale, scope)
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// lockedLine tracks one distinct inventory item touched by an order, with the
// total quantity requested across all lines referencing it. Stock checks and
// adjustments work on these totals so an item appearing on two lines is
// checked and decremented once with the combined quantity.
type lockedLine struct {
	item      *inventory.InventoryItem
	requested int64
	lineIndex int
}

// Create creates a new order. The whole operation runs in one transaction:
// counterpart validation, availability checks, the insert, document number
// assignment and any stock decrement commit or roll back together, so a
// failing line never leaves a partial decrement behind.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	initialStatus := trade.OrderStatusDraft
	if req.Status != "" {
		initialStatus = trade.OrderStatus(strings.ToUpper(req.Status))
	}

	var created *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		contact, err := repos.ContactRepo().FindByID(ctx, req.CounterpartID)
		if err != nil {
			return err
		}
		if s.kind == trade.OrderKindPurchase && !contact.IsVendor() {
			return shared.NewDomainError("INVALID_COUNTERPART", "Purchase orders require a vendor contact")
		}
		if s.kind == trade.OrderKindSale && !contact.IsCustomer() {
			return shared.NewDomainError("INVALID_COUNTERPART", "Sale orders require a customer contact")
		}

		order, err := trade.NewOrder(s.kind, contact.ID, contact.Name, req.Date, req.Description)
		if err != nil {
			return err
		}

		consume := trade.ConsumesStock(s.kind, initialStatus)

		locked := make(map[uuid.UUID]*lockedLine)
		lineOrder := make([]uuid.UUID, 0, len(req.Items))
		for i, line := range req.Items {
			if _, seen := locked[line.InventoryItemID]; !seen {
				locked[line.InventoryItemID] = &lockedLine{lineIndex: i}
				lineOrder = append(lineOrder, line.InventoryItemID)
			}
		}

		// Rows lock in item ID order, like PostEntry does for accounts, so
		// two concurrent multi-item orders cannot deadlock on each other.
		for _, itemID := range sortedItemIDs(lineOrder) {
			var item *inventory.InventoryItem
			if consume {
				item, err = repos.InventoryRepo().FindByIDForUpdate(ctx, itemID)
			} else {
				item, err = repos.InventoryRepo().FindByID(ctx, itemID)
			}
			if err != nil {
				return err
			}
			locked[itemID].item = item
		}

		for _, line := range req.Items {
			entry := locked[line.InventoryItemID]
			entry.requested += line.Quantity

			unitPrice := entry.item.GetUnitPriceMoney()
			if line.UnitPrice != nil {
				unitPrice = valueobject.NewMoneyEUR(*line.UnitPrice)
			}
			if _, err := order.AddItem(entry.item.ID, entry.item.Name, entry.item.SKU, line.Quantity, unitPrice); err != nil {
				return err
			}
		}

		if consume {
			var shortages []trade.StockShortage
			for _, itemID := range lineOrder {
				entry := locked[itemID]
				if !entry.item.CanFulfill(entry.requested) {
					shortages = append(shortages, trade.StockShortage{
						LineIndex: entry.lineIndex,
						ItemID:    entry.item.ID,
						SKU:       entry.item.SKU,
						Requested: entry.requested,
						Available: entry.item.CurrentStock,
					})
				}
			}
			if len(shortages) > 0 {
				return &trade.InsufficientStockError{Shortages: shortages}
			}
		}

		if err := repos.OrderRepo().Insert(ctx, order); err != nil {
			return err
		}

		seq, err := repos.OrderRepo().DocumentSequence(ctx, order.ID)
		if err != nil {
			return err
		}
		number := trade.FormatDocumentNumber(s.kind, order.Date, seq)
		if err := order.AssignDocumentNumber(number); err != nil {
			return err
		}
		if err := repos.OrderRepo().UpdateDocumentNumber(ctx, order.ID, number); err != nil {
			return err
		}

		// The initial status lands after the document number so the events
		// it raises carry the assigned number. An order created directly as
		// Paid must reach the posting handler like any transitioned one.
		if initialStatus != trade.OrderStatusDraft {
			if err := order.SetInitialStatus(initialStatus); err != nil {
				return err
			}
			if err := repos.OrderRepo().Update(ctx, order); err != nil {
				return err
			}
		}

		if consume {
			reason := fmt.Sprintf("order %s created as %s", number, initialStatus)
			if err := s.applyStockDelta(ctx, repos, locked, lineOrder, -1, reason); err != nil {
				return err
			}
		}

		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created)

	response := ToOrderResponse(created)
	return &response, nil
}

// UpdateStatus moves an order along its status lattice and applies the
// derived stock effect in the same transaction. Entering a stock-consuming
// status decrements every line exactly once; cancelling a consuming order
// restores every line.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	newStatus := trade.OrderStatus(strings.ToUpper(req.Status))

	var updated *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.findOwnedForUpdate(ctx, repos, orderID)
		if err != nil {
			return err
		}

		effect := trade.TransitionStockEffect(order.Kind, order.Status, newStatus)

		if newStatus == trade.OrderStatusCancelled {
			err = order.Cancel(req.Reason)
		} else {
			err = order.TransitionTo(newStatus)
		}
		if err != nil {
			return err
		}

		switch effect {
		case trade.StockEffectConsume:
			if err := s.consumeOrderStock(ctx, repos, order); err != nil {
				return err
			}
		case trade.StockEffectRestock:
			if err := s.restockOrderStock(ctx, repos, order); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, updated)

	response := ToOrderResponse(updated)
	return &response, nil
}

// Update changes the order's header fields. Rejected once the order is in a
// terminal status.
func (s *OrderService) Update(ctx context.Context, orderID uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var updated *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.findOwnedForUpdate(ctx, repos, orderID)
		if err != nil {
			return err
		}

		counterpartID := order.CounterpartID
		counterpartName := order.CounterpartName
		if req.CounterpartID != nil && *req.CounterpartID != order.CounterpartID {
			contact, err := repos.ContactRepo().FindByID(ctx, *req.CounterpartID)
			if err != nil {
				return err
			}
			if s.kind == trade.OrderKindPurchase && !contact.IsVendor() {
				return shared.NewDomainError("INVALID_COUNTERPART", "Purchase orders require a vendor contact")
			}
			if s.kind == trade.OrderKindSale && !contact.IsCustomer() {
				return shared.NewDomainError("INVALID_COUNTERPART", "Sale orders require a customer contact")
			}
			counterpartID = contact.ID
			counterpartName = contact.Name
		}

		date := order.Date
		if req.Date != nil {
			date = *req.Date
		}
		description := order.Description
		if req.Description != nil {
			description = *req.Description
		}

		if err := order.UpdateHeader(counterpartID, counterpartName, date, description); err != nil {
			return err
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(updated)
	return &response, nil
}

// AddItem adds a line to a draft order
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*OrderResponse, error) {
	var updated *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.findOwnedForUpdate(ctx, repos, orderID)
		if err != nil {
			return err
		}

		item, err := repos.InventoryRepo().FindByID(ctx, req.InventoryItemID)
		if err != nil {
			return err
		}

		unitPrice := item.GetUnitPriceMoney()
		if req.UnitPrice != nil {
			unitPrice = valueobject.NewMoneyEUR(*req.UnitPrice)
		}
		if _, err := order.AddItem(item.ID, item.Name, item.SKU, req.Quantity, unitPrice); err != nil {
			return err
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(updated)
	return &response, nil
}

// UpdateItem changes a draft line's quantity
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateOrderItemRequest) (*OrderResponse, error) {
	var updated *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.findOwnedForUpdate(ctx, repos, orderID)
		if err != nil {
			return err
		}

		if err := order.UpdateItemQuantity(itemID, req.Quantity); err != nil {
			return err
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(updated)
	return &response, nil
}

// RemoveItem removes a line from a draft order
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	var updated *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.findOwnedForUpdate(ctx, repos, orderID)
		if err != nil {
			return err
		}

		if err := order.RemoveItem(itemID); err != nil {
			return err
		}

		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(updated)
	return &response, nil
}

// Delete removes an order. Only Draft and Cancelled orders can be deleted;
// a cancelled order has already had its stock restored at cancel time, so
// deletion never touches inventory.
func (s *OrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	var deleted *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := s.findOwnedForUpdate(ctx, repos, orderID)
		if err != nil {
			return err
		}

		if !order.CanDelete() {
			return shared.ErrInvalidStateForDeletion
		}

		if err := repos.OrderRepo().Delete(ctx, order.ID); err != nil {
			return err
		}

		order.AddDomainEvent(trade.NewOrderDeletedEvent(order))
		deleted = order
		return nil
	})
	if err != nil {
		return err
	}

	s.publishEvents(ctx, deleted)
	return nil
}

// GetByID retrieves an order with its lines
func (s *OrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	var found *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Kind != s.kind {
			return shared.ErrNotFound
		}
		found = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(found)
	return &response, nil
}

// GetByDocumentNumber retrieves an order by its document number
func (s *OrderService) GetByDocumentNumber(ctx context.Context, number string) (*OrderResponse, error) {
	var found *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByDocumentNumber(ctx, number)
		if err != nil {
			return err
		}
		if order.Kind != s.kind {
			return shared.ErrNotFound
		}
		found = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(found)
	return &response, nil
}

// List retrieves orders of the service's kind with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CounterpartID != nil {
		domainFilter.Filters["counterpart_id"] = *filter.CounterpartID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = strings.ToUpper(*filter.Status)
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	var orders []trade.Order
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		orders, err = repos.OrderRepo().FindAll(ctx, s.kind, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.OrderRepo().Count(ctx, s.kind, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// findOwnedForUpdate loads a row-locked order and verifies it belongs to the
// service's kind, hiding the other kind's documents behind NotFound.
func (s *OrderService) findOwnedForUpdate(ctx context.Context, repos TransactionalRepositories, orderID uuid.UUID) (*trade.Order, error) {
	order, err := repos.OrderRepo().FindByIDForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Kind != s.kind {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// consumeOrderStock decrements stock for every order line after re-checking
// availability under row locks. All shortages are collected before failing so
// the caller sees the whole picture, and any failure rolls the transaction
// back leaving no partial decrement.
func (s *OrderService) consumeOrderStock(ctx context.Context, repos TransactionalRepositories, order *trade.Order) error {
	locked, lineOrder, err := s.lockOrderItems(ctx, repos, order)
	if err != nil {
		return err
	}

	var shortages []trade.StockShortage
	for _, itemID := range lineOrder {
		entry := locked[itemID]
		if !entry.item.CanFulfill(entry.requested) {
			shortages = append(shortages, trade.StockShortage{
				LineIndex: entry.lineIndex,
				ItemID:    entry.item.ID,
				SKU:       entry.item.SKU,
				Requested: entry.requested,
				Available: entry.item.CurrentStock,
			})
		}
	}
	if len(shortages) > 0 {
		return &trade.InsufficientStockError{Shortages: shortages}
	}

	reason := fmt.Sprintf("order %s moved to %s", order.DocumentNumber, order.Status)
	return s.applyStockDelta(ctx, repos, locked, lineOrder, -1, reason)
}

// restockOrderStock returns every line quantity to stock when a consuming
// order is cancelled
func (s *OrderService) restockOrderStock(ctx context.Context, repos TransactionalRepositories, order *trade.Order) error {
	locked, lineOrder, err := s.lockOrderItems(ctx, repos, order)
	if err != nil {
		return err
	}

	reason := fmt.Sprintf("order %s cancelled", order.DocumentNumber)
	return s.applyStockDelta(ctx, repos, locked, lineOrder, 1, reason)
}

// lockOrderItems row-locks every distinct inventory item referenced by the
// order's lines and aggregates the requested quantity per item. Locks are
// acquired in item ID order, not line order, so concurrent orders sharing
// items cannot deadlock.
func (s *OrderService) lockOrderItems(ctx context.Context, repos TransactionalRepositories, order *trade.Order) (map[uuid.UUID]*lockedLine, []uuid.UUID, error) {
	locked := make(map[uuid.UUID]*lockedLine)
	lineOrder := make([]uuid.UUID, 0, len(order.Items))
	for _, line := range order.Items {
		entry, seen := locked[line.InventoryItemID]
		if !seen {
			entry = &lockedLine{lineIndex: line.LineIndex}
			locked[line.InventoryItemID] = entry
			lineOrder = append(lineOrder, line.InventoryItemID)
		}
		entry.requested += line.Quantity
	}

	for _, itemID := range sortedItemIDs(lineOrder) {
		item, err := repos.InventoryRepo().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return nil, nil, err
		}
		locked[itemID].item = item
	}
	return locked, lineOrder, nil
}

// sortedItemIDs returns a copy of ids in byte order, the lock acquisition order
func sortedItemIDs(ids []uuid.UUID) []uuid.UUID {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	return sorted
}

// applyStockDelta applies sign*requested to every locked item and appends one
// audit row per item
func (s *OrderService) applyStockDelta(ctx context.Context, repos TransactionalRepositories, locked map[uuid.UUID]*lockedLine, lineOrder []uuid.UUID, sign int64, reason string) error {
	for _, itemID := range lineOrder {
		entry := locked[itemID]
		if err := entry.item.AdjustStock(sign*entry.requested, reason); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, entry.item); err != nil {
			return err
		}
		adjustment := inventory.NewStockAdjustment(entry.item.ID, sign*entry.requested, entry.item.CurrentStock, reason, nil)
		if err := repos.AdjustmentRepo().Append(ctx, adjustment); err != nil {
			return err
		}
	}
	return nil
}

// publishEvents publishes the aggregate's pending domain events after the
// transaction has committed
func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil || order == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
