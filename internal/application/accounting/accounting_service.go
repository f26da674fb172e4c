package accounting

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountingService handles chart-of-accounts and journal operations
type AccountingService struct {
	scope TransactionScope
}

// NewAccountingService creates a new AccountingService
func NewAccountingService(scope TransactionScope) *AccountingService {
	return &AccountingService{scope: scope}
}

// CreateAccount creates a new account. Codes are unique across the chart and
// an optional parent links the account into the rollup forest.
func (s *AccountingService) CreateAccount(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	var created *accounting.Account
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.AccountRepo().FindByCode(ctx, strings.TrimSpace(req.Code))
		if err != nil && err != shared.ErrNotFound {
			return err
		}
		if existing != nil {
			return shared.NewDomainError("ALREADY_EXISTS", "An account with this code already exists")
		}

		if req.ParentID != nil {
			if _, err := repos.AccountRepo().FindByID(ctx, *req.ParentID); err != nil {
				return err
			}
		}

		account, err := accounting.NewAccount(req.Code, req.Name, accounting.AccountType(strings.ToUpper(req.Type)), req.ParentID)
		if err != nil {
			return err
		}

		if err := repos.AccountRepo().Save(ctx, account); err != nil {
			return err
		}

		created = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(created, []accounting.Account{*created}, map[uuid.UUID]decimal.Decimal{})
	return &response, nil
}

// UpdateAccount renames an account
func (s *AccountingService) UpdateAccount(ctx context.Context, accountID uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	var updated *accounting.Account
	var all []accounting.Account
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if err := account.Rename(req.Name); err != nil {
			return err
		}
		if err := repos.AccountRepo().Save(ctx, account); err != nil {
			return err
		}
		all, err = repos.AccountRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(updated, all, map[uuid.UUID]decimal.Decimal{})
	return &response, nil
}

// DeleteAccount removes an account. Accounts with children cannot be deleted.
func (s *AccountingService) DeleteAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}

		hasChildren, err := repos.AccountRepo().HasChildren(ctx, account.ID)
		if err != nil {
			return err
		}
		if hasChildren {
			return shared.ErrHasDependents
		}

		return repos.AccountRepo().Delete(ctx, account.ID)
	})
}

// GetAccount retrieves one account with its rolled-up balance
func (s *AccountingService) GetAccount(ctx context.Context, accountID uuid.UUID) (*AccountResponse, error) {
	var found *accounting.Account
	var all []accounting.Account
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		account, err := repos.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		all, err = repos.AccountRepo().FindAll(ctx)
		if err != nil {
			return err
		}
		found = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToAccountResponse(found, all, map[uuid.UUID]decimal.Decimal{})
	return &response, nil
}

// ListAccounts returns the full chart of accounts with rolled-up balances.
// One memoization cache serves the whole listing, so each subtree is summed
// once regardless of how many ancestors include it.
func (s *AccountingService) ListAccounts(ctx context.Context) ([]AccountResponse, error) {
	var all []accounting.Account
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		all, err = repos.AccountRepo().FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	cache := make(map[uuid.UUID]decimal.Decimal, len(all))
	responses := make([]AccountResponse, len(all))
	for i := range all {
		responses[i] = ToAccountResponse(&all[i], all, cache)
	}
	return responses, nil
}

// PostJournalEntry posts a debit/credit pair between two accounts. The entry
// row and both balance movements commit in one transaction; both accounts are
// row-locked in code order to keep concurrent postings deadlock-free.
func (s *AccountingService) PostJournalEntry(ctx context.Context, req PostJournalEntryRequest) (*JournalEntryResponse, error) {
	var posted *accounting.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		entry, err := accounting.NewJournalEntry(req.Date, req.DebitAccountCode, req.CreditAccountCode, req.Amount, req.Memo)
		if err != nil {
			return err
		}
		if req.Reference != "" {
			entry.WithReference(req.Reference)
		}

		if err := accounting.PostEntry(ctx, repos.AccountRepo(), entry); err != nil {
			return err
		}

		if err := repos.JournalRepo().Insert(ctx, entry); err != nil {
			return err
		}

		posted = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	responses := ToJournalEntryResponses([]accounting.JournalEntry{*posted})
	return &responses[0], nil
}

// ListJournalEntries retrieves journal entries, optionally restricted to one
// account code, newest first
func (s *AccountingService) ListJournalEntries(ctx context.Context, filter JournalListFilter) ([]JournalEntryResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 50
	}
	domainFilter := shared.Filter{Page: filter.Page, PageSize: filter.PageSize}

	var entries []accounting.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		if filter.AccountCode != nil {
			entries, err = repos.JournalRepo().FindByAccountCode(ctx, *filter.AccountCode, domainFilter)
		} else {
			entries, err = repos.JournalRepo().FindAll(ctx, domainFilter)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return ToJournalEntryResponses(entries), nil
}
