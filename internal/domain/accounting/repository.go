package accounting

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
)

// AccountRepository defines the interface for chart-of-accounts persistence
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByCode finds an account by its unique code
	FindByCode(ctx context.Context, code string) (*Account, error)

	// FindByCodeForUpdate finds an account by code acquiring a row lock.
	// Must be called inside a transaction; used when posting moves balances.
	FindByCodeForUpdate(ctx context.Context, code string) (*Account, error)

	// FindAll returns the full chart of accounts
	FindAll(ctx context.Context) ([]Account, error)

	// HasChildren reports whether any account references the given account as parent
	HasChildren(ctx context.Context, id uuid.UUID) (bool, error)

	// Save persists an account (insert or update)
	Save(ctx context.Context, account *Account) error

	// Delete removes an account by ID
	Delete(ctx context.Context, id uuid.UUID) error
}

// JournalEntryRepository defines the interface for journal entry persistence
type JournalEntryRepository interface {
	// Insert appends a journal entry
	Insert(ctx context.Context, entry *JournalEntry) error

	// FindAll finds entries matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]JournalEntry, error)

	// FindByAccountCode finds entries touching an account on either side
	FindByAccountCode(ctx context.Context, code string, filter shared.Filter) ([]JournalEntry, error)
}
