package inventory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
)

// InventoryService handles inventory item business operations
type InventoryService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(scope TransactionScope) *InventoryService {
	return &InventoryService{scope: scope}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new inventory item. The SKU must be unique; an initial
// stock greater than zero leaves an opening audit row.
func (s *InventoryService) Create(ctx context.Context, req CreateInventoryItemRequest) (*InventoryItemResponse, error) {
	var created *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.InventoryRepo().FindBySKU(ctx, strings.TrimSpace(req.SKU))
		if err != nil && err != shared.ErrNotFound {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS", "An item with this SKU already exists")
		}

		item, err := inventory.NewInventoryItem(req.SKU, req.Name, req.Category, req.InitialStock, req.ReorderLevel, valueobject.NewMoneyEUR(req.UnitPrice))
		if err != nil {
			return err
		}
		if req.SupplierID != nil {
			item.SetSupplier(*req.SupplierID)
		}
		if req.ImageURL != "" {
			item.SetImageURL(req.ImageURL)
		}
		if req.AssetAccountCode != "" {
			item.SetAssetAccountCode(req.AssetAccountCode)
		}

		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}

		if req.InitialStock > 0 {
			opening := inventory.NewStockAdjustment(item.ID, req.InitialStock, item.CurrentStock, "opening stock", nil)
			if err := repos.AdjustmentRepo().Append(ctx, opening); err != nil {
				return err
			}
		}

		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, created)

	response := ToInventoryItemResponse(created)
	return &response, nil
}

// AdjustStock applies a signed stock delta under a row lock and appends an
// audit row in the same transaction. A delta that would drive stock negative
// leaves the item untouched and returns InsufficientStock.
func (s *InventoryService) AdjustStock(ctx context.Context, itemID uuid.UUID, req AdjustStockRequest) (*InventoryItemResponse, error) {
	var adjusted *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.InventoryRepo().FindByIDForUpdate(ctx, itemID)
		if err != nil {
			return err
		}

		if err := item.AdjustStock(req.Delta, req.Reason); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}

		adjustment := inventory.NewStockAdjustment(item.ID, req.Delta, item.CurrentStock, req.Reason, req.ActorID)
		if err := repos.AdjustmentRepo().Append(ctx, adjustment); err != nil {
			return err
		}

		adjusted = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, adjusted)

	response := ToInventoryItemResponse(adjusted)
	return &response, nil
}

// Update changes an item's descriptive fields. Stock cannot be changed here.
func (s *InventoryService) Update(ctx context.Context, itemID uuid.UUID, req UpdateInventoryItemRequest) (*InventoryItemResponse, error) {
	var updated *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.InventoryRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}

		name := item.Name
		if req.Name != nil {
			name = *req.Name
		}
		category := item.Category
		if req.Category != nil {
			category = *req.Category
		}
		reorderLevel := item.ReorderLevel
		if req.ReorderLevel != nil {
			reorderLevel = *req.ReorderLevel
		}
		unitPrice := item.GetUnitPriceMoney()
		if req.UnitPrice != nil {
			unitPrice = valueobject.NewMoneyEUR(*req.UnitPrice)
		}

		if err := item.UpdateDetails(name, category, reorderLevel, unitPrice); err != nil {
			return err
		}
		if req.SupplierID != nil {
			item.SetSupplier(*req.SupplierID)
		}
		if req.ImageURL != nil {
			item.SetImageURL(*req.ImageURL)
		}
		if req.AssetAccountCode != nil {
			item.SetAssetAccountCode(*req.AssetAccountCode)
		}

		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToInventoryItemResponse(updated)
	return &response, nil
}

// Delete removes an item. Items still referenced by order lines cannot be
// deleted; the order history must stay reconstructable.
func (s *InventoryService) Delete(ctx context.Context, itemID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.InventoryRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}

		referenced, err := repos.OrderRepo().ExistsByInventoryItem(ctx, item.ID)
		if err != nil {
			return err
		}
		if referenced {
			return shared.ErrHasDependents
		}

		return repos.InventoryRepo().Delete(ctx, item.ID)
	})
}

// GetByID retrieves an item by ID
func (s *InventoryService) GetByID(ctx context.Context, itemID uuid.UUID) (*InventoryItemResponse, error) {
	var found *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.InventoryRepo().FindByID(ctx, itemID)
		if err != nil {
			return err
		}
		found = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToInventoryItemResponse(found)
	return &response, nil
}

// GetBySKU retrieves an item by its SKU
func (s *InventoryService) GetBySKU(ctx context.Context, sku string) (*InventoryItemResponse, error) {
	var found *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.InventoryRepo().FindBySKU(ctx, sku)
		if err != nil {
			return err
		}
		found = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToInventoryItemResponse(found)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *InventoryService) List(ctx context.Context, filter InventoryItemListFilter) ([]InventoryItemResponse, int64, error) {
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
	if filter.Category != nil {
		domainFilter.Filters["category"] = *filter.Category
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}

	var items []inventory.InventoryItem
	var total int64
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		items, err = repos.InventoryRepo().FindAll(ctx, domainFilter)
		if err != nil {
			return err
		}
		total, err = repos.InventoryRepo().Count(ctx, domainFilter)
		return err
	})
	if err != nil {
		return nil, 0, err
	}

	return ToInventoryItemResponses(items), total, nil
}

// ListBelowReorderLevel retrieves items whose stock is below their reorder level
func (s *InventoryService) ListBelowReorderLevel(ctx context.Context) ([]InventoryItemResponse, error) {
	var items []inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		items, err = repos.InventoryRepo().FindBelowReorderLevel(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// StockHistory retrieves the adjustment audit trail for an item, newest first
func (s *InventoryService) StockHistory(ctx context.Context, itemID uuid.UUID, page, pageSize int) ([]StockAdjustmentResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 50
	}

	var adjustments []inventory.StockAdjustment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.InventoryRepo().FindByID(ctx, itemID); err != nil {
			return err
		}
		var err error
		adjustments, err = repos.AdjustmentRepo().FindByItem(ctx, itemID, shared.Filter{Page: page, PageSize: pageSize})
		return err
	})
	if err != nil {
		return nil, err
	}

	return ToStockAdjustmentResponses(adjustments), nil
}

func (s *InventoryService) publishEvents(ctx context.Context, item *inventory.InventoryItem) {
	if s.eventPublisher == nil || item == nil {
		return
	}
	for _, event := range item.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	item.ClearDomainEvents()
}
