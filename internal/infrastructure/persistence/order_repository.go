package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// GormOrderRepository implements trade.OrderRepository using GORM.
// Header and line rows are written explicitly; gorm association autosave is
// disabled on updates so that line replacement stays deterministic.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its line items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_index ASC") }).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate finds an order by ID holding a row lock on the header.
// Must be called inside a transaction.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := forUpdate(r.db.WithContext(ctx)).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var items []trade.OrderItem
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("line_index ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	order.Items = items
	return &order, nil
}

// FindByDocumentNumber finds an order by its document number
func (r *GormOrderRepository) FindByDocumentNumber(ctx context.Context, number string) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_index ASC") }).
		First(&order, "document_number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders of a kind matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, kind trade.OrderKind, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).Where("kind = ?", kind),
		filter,
	)

	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("line_index ASC") }).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders of a kind matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, kind trade.OrderKind, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&trade.Order{}).Where("kind = ?", kind),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Insert persists a new order header plus all line items
func (r *GormOrderRepository) Insert(ctx context.Context, order *trade.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return err
	}
	if len(order.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&order.Items).Error; err != nil {
			return err
		}
	}
	return nil
}

// DocumentSequence reads back the database-assigned sequence of an order
func (r *GormOrderRepository) DocumentSequence(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var seq int64
	if err := r.db.WithContext(ctx).
		Raw("SELECT doc_seq FROM orders WHERE id = ?", orderID).
		Scan(&seq).Error; err != nil {
		return 0, err
	}
	if seq == 0 {
		return 0, shared.ErrNotFound
	}
	return seq, nil
}

// UpdateDocumentNumber writes the assigned document number to the header
func (r *GormOrderRepository) UpdateDocumentNumber(ctx context.Context, orderID uuid.UUID, number string) error {
	result := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("id = ?", orderID).
		Update("document_number", number)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Update persists header changes and replaces the line rows with the
// aggregate's current set. Lines only change while the order is Draft, so
// the replace is cheap in practice.
func (r *GormOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(order).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", order.ID).
		Delete(&trade.OrderItem{}).Error; err != nil {
		return err
	}
	if len(order.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&order.Items).Error; err != nil {
			return err
		}
	}
	return nil
}

// ExistsByCounterpart reports whether any order references the contact
func (r *GormOrderRepository) ExistsByCounterpart(ctx context.Context, contactID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("counterpart_id = ?", contactID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByInventoryItem reports whether any order line references the item
func (r *GormOrderRepository) ExistsByInventoryItem(ctx context.Context, itemID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.OrderItem{}).
		Where("inventory_item_id = ?", itemID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Delete removes the order's line rows then its header row
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Delete(&trade.OrderItem{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&trade.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies search and field filters only
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("document_number ILIKE ? OR counterpart_name ILIKE ? OR description ILIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "counterpart_id":
			query = query.Where("counterpart_id = ?", value)
		case "start_date":
			query = query.Where("date >= ?", value)
		case "end_date":
			query = query.Where("date <= ?", value)
		}
	}
	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
