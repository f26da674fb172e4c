package accounting

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account in the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is a known value
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// Account represents a node in the chart of accounts. Accounts form a forest
// via the optional parent reference; rollup balances are computed on read and
// never stored.
type Account struct {
	shared.BaseAggregateRoot
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Type     AccountType     `gorm:"type:varchar(20);not null;index"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ParentID *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Account) TableName() string {
	return "chart_of_accounts"
}

// NewAccount creates a new account
func NewAccount(code, name string, accountType AccountType, parentID *uuid.UUID) (*Account, error) {
	if strings.TrimSpace(code) == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Account code cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Unknown account type")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.TrimSpace(code),
		Name:              strings.TrimSpace(name),
		Type:              accountType,
		Balance:           decimal.Zero,
		ParentID:          parentID,
	}, nil
}

// Rename updates the display name
func (a *Account) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	a.Name = strings.TrimSpace(name)
	a.UpdatedAt = time.Now()
	return nil
}

// ApplyDebit applies a debit movement to the account balance.
// Debits increase asset and expense balances and decrease the others.
func (a *Account) ApplyDebit(amount decimal.Decimal) {
	switch a.Type {
	case AccountTypeAsset, AccountTypeExpense:
		a.Balance = a.Balance.Add(amount)
	default:
		a.Balance = a.Balance.Sub(amount)
	}
	a.UpdatedAt = time.Now()
}

// ApplyCredit applies a credit movement to the account balance.
// Credits decrease asset and expense balances and increase the others.
func (a *Account) ApplyCredit(amount decimal.Decimal) {
	switch a.Type {
	case AccountTypeAsset, AccountTypeExpense:
		a.Balance = a.Balance.Sub(amount)
	default:
		a.Balance = a.Balance.Add(amount)
	}
	a.UpdatedAt = time.Now()
}

// RollupBalance computes an account's own balance plus the recursive sum of
// its children's rollup balances over the given set of accounts. Results are
// memoized in the provided cache, scoped to one read.
func RollupBalance(accountID uuid.UUID, accounts []Account, cache map[uuid.UUID]decimal.Decimal) decimal.Decimal {
	if cached, ok := cache[accountID]; ok {
		return cached
	}

	total := decimal.Zero
	for i := range accounts {
		if accounts[i].ID == accountID {
			total = accounts[i].Balance
			break
		}
	}
	for i := range accounts {
		if accounts[i].ParentID != nil && *accounts[i].ParentID == accountID {
			total = total.Add(RollupBalance(accounts[i].ID, accounts, cache))
		}
	}

	cache[accountID] = total
	return total
}
