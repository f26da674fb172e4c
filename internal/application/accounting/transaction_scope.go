package accounting

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/accounting"
)

// TransactionScope provides transactional access to accounting repositories
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the accounting repositories
// within one transaction. Posting a journal entry writes the entry row and
// moves both account balances atomically.
type TransactionalRepositories interface {
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() accounting.AccountRepository
	// JournalRepo returns the journal entry repository scoped to the current transaction
	JournalRepo() accounting.JournalEntryRepository
}
