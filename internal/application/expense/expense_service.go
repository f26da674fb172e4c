package expense

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/accounting"
	"github.com/ledgerline/backend/internal/domain/expense"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest represents a request to record an expense
type CreateExpenseRequest struct {
	Date               time.Time       `json:"date" binding:"required"`
	VendorContactID    *uuid.UUID      `json:"vendor_contact_id"`
	ExpenseAccountCode string          `json:"expense_account_code" binding:"required,max=50"`
	Amount             decimal.Decimal `json:"amount" binding:"required"`
	Description        string          `json:"description" binding:"max=500"`
}

// ExpenseListFilter represents filter options for expense lists
type ExpenseListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// ExpenseResponse represents an expense record in API responses
type ExpenseResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Date               time.Time       `json:"date"`
	VendorContactID    *uuid.UUID      `json:"vendor_contact_id,omitempty"`
	ExpenseAccountCode string          `json:"expense_account_code"`
	Amount             decimal.Decimal `json:"amount"`
	Description        string          `json:"description,omitempty"`
	Posted             bool            `json:"posted"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ExpenseService handles expense record operations. The cash account used on
// the credit side of postings is configuration.
type ExpenseService struct {
	scope    TransactionScope
	cashCode string
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(scope TransactionScope, cashCode string) *ExpenseService {
	return &ExpenseService{scope: scope, cashCode: cashCode}
}

// Create records a new expense. The record starts unposted; Post moves money
// on the books.
func (s *ExpenseService) Create(ctx context.Context, req CreateExpenseRequest) (*ExpenseResponse, error) {
	var created *expense.ExpenseRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if req.VendorContactID != nil {
			contact, err := repos.ContactRepo().FindByID(ctx, *req.VendorContactID)
			if err != nil {
				return err
			}
			if !contact.IsVendor() {
				return shared.NewDomainError("INVALID_COUNTERPART", "Expense vendor must be a vendor contact")
			}
		}
		if _, err := repos.AccountRepo().FindByCode(ctx, req.ExpenseAccountCode); err != nil {
			return err
		}

		record, err := expense.NewExpenseRecord(req.Date, req.ExpenseAccountCode, req.Amount, req.Description, req.VendorContactID)
		if err != nil {
			return err
		}
		if err := repos.ExpenseRepo().Save(ctx, record); err != nil {
			return err
		}

		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := toExpenseResponse(created)
	return &response, nil
}

// Post writes the journal entry for an expense record (debit the expense
// account, credit cash) and flags the record as posted, atomically
func (s *ExpenseService) Post(ctx context.Context, recordID uuid.UUID) (*ExpenseResponse, error) {
	var posted *expense.ExpenseRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.ExpenseRepo().FindByID(ctx, recordID)
		if err != nil {
			return err
		}
		if err := record.MarkPosted(); err != nil {
			return err
		}

		entry, err := accounting.NewJournalEntry(record.Date, record.ExpenseAccountCode, s.cashCode, record.Amount, record.Description)
		if err != nil {
			return err
		}
		entry.WithReference("expense " + record.ID.String())

		if err := accounting.PostEntry(ctx, repos.AccountRepo(), entry); err != nil {
			return err
		}
		if err := repos.JournalRepo().Insert(ctx, entry); err != nil {
			return err
		}
		if err := repos.ExpenseRepo().Save(ctx, record); err != nil {
			return err
		}

		posted = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := toExpenseResponse(posted)
	return &response, nil
}

// Delete removes an expense record. Posted records are immutable history and
// cannot be deleted.
func (s *ExpenseService) Delete(ctx context.Context, recordID uuid.UUID) error {
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.ExpenseRepo().FindByID(ctx, recordID)
		if err != nil {
			return err
		}
		if record.Posted {
			return shared.ErrInvalidStateForDeletion
		}
		return repos.ExpenseRepo().Delete(ctx, record.ID)
	})
}

// GetByID retrieves an expense record by ID
func (s *ExpenseService) GetByID(ctx context.Context, recordID uuid.UUID) (*ExpenseResponse, error) {
	var found *expense.ExpenseRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		record, err := repos.ExpenseRepo().FindByID(ctx, recordID)
		if err != nil {
			return err
		}
		found = record
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := toExpenseResponse(found)
	return &response, nil
}

// List retrieves expense records, newest first
func (s *ExpenseService) List(ctx context.Context, filter ExpenseListFilter) ([]ExpenseResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	var records []expense.ExpenseRecord
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		records, err = repos.ExpenseRepo().FindAll(ctx, shared.Filter{Page: filter.Page, PageSize: filter.PageSize})
		return err
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(records))
	for i := range records {
		responses[i] = toExpenseResponse(&records[i])
	}
	return responses, nil
}

func toExpenseResponse(record *expense.ExpenseRecord) ExpenseResponse {
	return ExpenseResponse{
		ID:                 record.ID,
		Date:               record.Date,
		VendorContactID:    record.VendorContactID,
		ExpenseAccountCode: record.ExpenseAccountCode,
		Amount:             record.Amount,
		Description:        record.Description,
		Posted:             record.Posted,
		CreatedAt:          record.CreatedAt,
	}
}
