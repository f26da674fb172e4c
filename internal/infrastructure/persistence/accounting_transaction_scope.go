package persistence

import (
	"context"

	"gorm.io/gorm"

	appacct "github.com/ledgerline/backend/internal/application/accounting"
	"github.com/ledgerline/backend/internal/domain/accounting"
)

// GormAccountingTransactionScope implements the accounting module's
// TransactionScope using GORM transactions. Posting a journal entry moves
// two account balances and appends the entry inside one transaction.
type GormAccountingTransactionScope struct {
	db *gorm.DB
}

// NewGormAccountingTransactionScope creates a new GormAccountingTransactionScope
func NewGormAccountingTransactionScope(db *gorm.DB) *GormAccountingTransactionScope {
	return &GormAccountingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormAccountingTransactionScope) Execute(ctx context.Context, fn func(repos appacct.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormAccountingRepositories{tx: tx})
	})
}

type gormAccountingRepositories struct {
	tx *gorm.DB
}

// AccountRepo returns the account repository scoped to the current transaction
func (r *gormAccountingRepositories) AccountRepo() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

// JournalRepo returns the journal entry repository scoped to the current transaction
func (r *gormAccountingRepositories) JournalRepo() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

// Ensure GormAccountingTransactionScope implements TransactionScope
var _ appacct.TransactionScope = (*GormAccountingTransactionScope)(nil)

// Ensure gormAccountingRepositories implements TransactionalRepositories
var _ appacct.TransactionalRepositories = (*gormAccountingRepositories)(nil)
