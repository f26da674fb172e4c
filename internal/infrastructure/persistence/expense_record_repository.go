package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ledgerline/backend/internal/domain/expense"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// GormExpenseRecordRepository implements ExpenseRecordRepository using GORM
type GormExpenseRecordRepository struct {
	db *gorm.DB
}

// NewGormExpenseRecordRepository creates a new GormExpenseRecordRepository
func NewGormExpenseRecordRepository(db *gorm.DB) *GormExpenseRecordRepository {
	return &GormExpenseRecordRepository{db: db}
}

// FindByID finds a record by ID
func (r *GormExpenseRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*expense.ExpenseRecord, error) {
	var record expense.ExpenseRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindAll finds records matching the filter, newest first
func (r *GormExpenseRecordRepository) FindAll(ctx context.Context, filter shared.Filter) ([]expense.ExpenseRecord, error) {
	var records []expense.ExpenseRecord
	query := r.db.WithContext(ctx).Model(&expense.ExpenseRecord{})

	for key, value := range filter.Filters {
		switch key {
		case "posted":
			query = query.Where("posted = ?", value)
		case "vendor_contact_id":
			query = query.Where("vendor_contact_id = ?", value)
		case "expense_account_code":
			query = query.Where("expense_account_code = ?", value)
		case "start_date":
			query = query.Where("date >= ?", value)
		case "end_date":
			query = query.Where("date <= ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, ExpenseRecordSortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	if err := query.Order(orderBy + " " + orderDir).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Save persists a record (insert or update)
func (r *GormExpenseRecordRepository) Save(ctx context.Context, record *expense.ExpenseRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes an unposted record
func (r *GormExpenseRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&expense.ExpenseRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormExpenseRecordRepository implements ExpenseRecordRepository
var _ expense.ExpenseRecordRepository = (*GormExpenseRecordRepository)(nil)
