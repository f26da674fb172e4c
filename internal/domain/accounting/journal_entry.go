package accounting

import (
	"strings"
	"time"

	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// JournalEntry is a free-standing debit/credit pair between two accounts.
// Posting an entry moves both balances; entries are never edited afterwards.
type JournalEntry struct {
	shared.BaseEntity
	Date              time.Time       `gorm:"not null;index"`
	DebitAccountCode  string          `gorm:"type:varchar(50);not null;index"`
	CreditAccountCode string          `gorm:"type:varchar(50);not null;index"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Memo              string          `gorm:"type:varchar(500)"`
	Reference         string          `gorm:"type:varchar(100);index"` // e.g. source document number
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry creates a new journal entry
func NewJournalEntry(date time.Time, debitCode, creditCode string, amount decimal.Decimal, memo string) (*JournalEntry, error) {
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Entry date cannot be empty")
	}
	if strings.TrimSpace(debitCode) == "" || strings.TrimSpace(creditCode) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Debit and credit account codes are required")
	}
	if debitCode == creditCode {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Debit and credit accounts must differ")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Entry amount must be positive")
	}

	return &JournalEntry{
		BaseEntity:        shared.NewBaseEntity(),
		Date:              date,
		DebitAccountCode:  strings.TrimSpace(debitCode),
		CreditAccountCode: strings.TrimSpace(creditCode),
		Amount:            amount,
		Memo:              memo,
	}, nil
}

// WithReference links the entry to a source document
func (e *JournalEntry) WithReference(ref string) *JournalEntry {
	e.Reference = ref
	return e
}
