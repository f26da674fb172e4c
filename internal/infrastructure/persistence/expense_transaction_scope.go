package persistence

import (
	"context"

	"gorm.io/gorm"

	appexpense "github.com/ledgerline/backend/internal/application/expense"
	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/ledgerline/backend/internal/domain/expense"
	"github.com/ledgerline/backend/internal/domain/partner"
)

// GormExpenseTransactionScope implements the expense module's
// TransactionScope using GORM transactions
type GormExpenseTransactionScope struct {
	db *gorm.DB
}

// NewGormExpenseTransactionScope creates a new GormExpenseTransactionScope
func NewGormExpenseTransactionScope(db *gorm.DB) *GormExpenseTransactionScope {
	return &GormExpenseTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormExpenseTransactionScope) Execute(ctx context.Context, fn func(repos appexpense.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormExpenseRepositories{tx: tx})
	})
}

type gormExpenseRepositories struct {
	tx *gorm.DB
}

// ExpenseRepo returns the expense record repository scoped to the current transaction
func (r *gormExpenseRepositories) ExpenseRepo() expense.ExpenseRecordRepository {
	return NewGormExpenseRecordRepository(r.tx)
}

// AccountRepo returns the account repository scoped to the current transaction
func (r *gormExpenseRepositories) AccountRepo() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// JournalRepo returns the journal entry repository scoped to the current transaction
func (r *gormExpenseRepositories) JournalRepo() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

// ContactRepo returns the contact repository scoped to the current transaction
func (r *gormExpenseRepositories) ContactRepo() partner.ContactRepository {
	return NewGormContactRepository(r.tx)
}

// Ensure GormExpenseTransactionScope implements TransactionScope
var _ appexpense.TransactionScope = (*GormExpenseTransactionScope)(nil)

// Ensure gormExpenseRepositories implements TransactionalRepositories
var _ appexpense.TransactionalRepositories = (*gormExpenseRepositories)(nil)
