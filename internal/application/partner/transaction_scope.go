package partner

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to partner repositories
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories contact
// operations need within one transaction. OrderRepo is read-only here; it is
// consulted to refuse deleting a contact that orders still reference.
type TransactionalRepositories interface {
	// ContactRepo returns the contact repository scoped to the current transaction
	ContactRepo() partner.ContactRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() trade.OrderRepository
}
