package expense

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/ledgerline/backend/internal/domain/expense"
	"github.com/ledgerline/backend/internal/domain/partner"
)

// TransactionScope provides transactional access to expense repositories
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories expense
// operations need within one transaction. Posting an expense writes the
// journal entry and moves account balances in the same transaction as the
// posted flag.
type TransactionalRepositories interface {
	// ExpenseRepo returns the expense record repository scoped to the current transaction
	ExpenseRepo() expense.ExpenseRecordRepository
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() accounting.AccountRepository
	// JournalRepo returns the journal entry repository scoped to the current transaction
	JournalRepo() accounting.JournalEntryRepository
	// ContactRepo returns the contact repository scoped to the current transaction
	ContactRepo() partner.ContactRepository
}
