package expense

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ExpenseRecord captures money spent outside the purchasing workflow,
// e.g. rent or utilities. Posting a record writes a matching journal entry.
type ExpenseRecord struct {
	shared.BaseAggregateRoot
	Date               time.Time       `gorm:"not null;index"`
	VendorContactID    *uuid.UUID      `gorm:"type:uuid;index"`
	ExpenseAccountCode string          `gorm:"type:varchar(50);not null"`
	Amount             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description        string          `gorm:"type:varchar(500)"`
	Posted             bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ExpenseRecord) TableName() string {
	return "expense_records"
}

// NewExpenseRecord creates a new expense record
func NewExpenseRecord(date time.Time, expenseAccountCode string, amount decimal.Decimal, description string, vendorContactID *uuid.UUID) (*ExpenseRecord, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date cannot be empty")
	}
	if strings.TrimSpace(expenseAccountCode) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Expense account code cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}

	return &ExpenseRecord{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Date:               date,
		VendorContactID:    vendorContactID,
		ExpenseAccountCode: strings.TrimSpace(expenseAccountCode),
		Amount:             amount,
		Description:        description,
	}, nil
}

// MarkPosted flags the record as posted to the journal; posting is one-shot
func (e *ExpenseRecord) MarkPosted() error {
	if e.Posted {
		return shared.NewDomainError("INVALID_STATE", "Expense record is already posted")
	}
	e.Posted = true
	e.UpdatedAt = time.Now()
	return nil
}

// ExpenseRecordRepository defines the interface for expense persistence
type ExpenseRecordRepository interface {
	// FindByID finds a record by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ExpenseRecord, error)

	// FindAll finds records matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]ExpenseRecord, error)

	// Save persists a record (insert or update)
	Save(ctx context.Context, record *ExpenseRecord) error

	// Delete removes an unposted record
	Delete(ctx context.Context, id uuid.UUID) error
}
