package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to create a chart-of-accounts node
type CreateAccountRequest struct {
	Code     string     `json:"code" binding:"required,min=1,max=50"`
	Name     string     `json:"name" binding:"required,min=1,max=200"`
	Type     string     `json:"type" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateAccountRequest represents a request to rename an account
type UpdateAccountRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// PostJournalEntryRequest represents a request to post a manual journal entry
type PostJournalEntryRequest struct {
	Date              time.Time       `json:"date" binding:"required"`
	DebitAccountCode  string          `json:"debit_account_code" binding:"required"`
	CreditAccountCode string          `json:"credit_account_code" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	Memo              string          `json:"memo" binding:"max=500"`
	Reference         string          `json:"reference" binding:"max=100"`
}

// JournalListFilter represents filter options for journal listings
type JournalListFilter struct {
	AccountCode *string `form:"account_code"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}

// AccountResponse represents an account in API responses.
// RolledUpBalance includes the account's descendants and is computed on read.
type AccountResponse struct {
	ID              uuid.UUID              `json:"id"`
	Code            string                 `json:"code"`
	Name            string                 `json:"name"`
	Type            accounting.AccountType `json:"type"`
	Balance         decimal.Decimal        `json:"balance"`
	RolledUpBalance decimal.Decimal        `json:"rolled_up_balance"`
	ParentID        *uuid.UUID             `json:"parent_id,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// JournalEntryResponse represents a journal entry in API responses
type JournalEntryResponse struct {
	ID                uuid.UUID       `json:"id"`
	Date              time.Time       `json:"date"`
	DebitAccountCode  string          `json:"debit_account_code"`
	CreditAccountCode string          `json:"credit_account_code"`
	Amount            decimal.Decimal `json:"amount"`
	Memo              string          `json:"memo,omitempty"`
	Reference         string          `json:"reference,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// ToAccountResponse converts an account to its response DTO using a rollup
// cache shared across one read
func ToAccountResponse(account *accounting.Account, all []accounting.Account, cache map[uuid.UUID]decimal.Decimal) AccountResponse {
	return AccountResponse{
		ID:              account.ID,
		Code:            account.Code,
		Name:            account.Name,
		Type:            account.Type,
		Balance:         account.Balance,
		RolledUpBalance: accounting.RollupBalance(account.ID, all, cache),
		ParentID:        account.ParentID,
		CreatedAt:       account.CreatedAt,
		UpdatedAt:       account.UpdatedAt,
	}
}

// ToJournalEntryResponses converts journal entries to response DTOs
func ToJournalEntryResponses(entries []accounting.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = JournalEntryResponse{
			ID:                e.ID,
			Date:              e.Date,
			DebitAccountCode:  e.DebitAccountCode,
			CreditAccountCode: e.CreditAccountCode,
			Amount:            e.Amount,
			Memo:              e.Memo,
			Reference:         e.Reference,
			CreatedAt:         e.CreatedAt,
		}
	}
	return responses
}
