package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// GormJournalEntryRepository implements the append-only journal using GORM.
// Entries are immutable once inserted.
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// Insert appends a journal entry
func (r *GormJournalEntryRepository) Insert(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindAll finds entries matching the filter, newest first
func (r *GormJournalEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]accounting.JournalEntry, error) {
	var entries []accounting.JournalEntry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&accounting.JournalEntry{}), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByAccountCode finds entries touching an account on either side
func (r *GormJournalEntryRepository) FindByAccountCode(ctx context.Context, code string, filter shared.Filter) ([]accounting.JournalEntry, error) {
	var entries []accounting.JournalEntry
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).
			Where("debit_account_code = ? OR credit_account_code = ?", code, code),
		filter,
	)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormJournalEntryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "start_date":
			query = query.Where("date >= ?", value)
		case "end_date":
			query = query.Where("date <= ?", value)
		case "reference":
			query = query.Where("reference = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, JournalEntrySortFields, "date")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormJournalEntryRepository implements JournalEntryRepository
var _ accounting.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
