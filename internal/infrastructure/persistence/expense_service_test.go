package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appaccounting "github.com/ledgerline/backend/internal/application/accounting"
	appexpense "github.com/ledgerline/backend/internal/application/expense"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared"
)

func setupExpenseFixture(t *testing.T) (*gorm.DB, *appexpense.ExpenseService, *appaccounting.AccountingService) {
	t.Helper()
	db := setupTestDB(t)
	accounting := appaccounting.NewAccountingService(NewGormAccountingTransactionScope(db))
	ctx := context.Background()
	for _, acc := range []struct{ code, name, accType string }{
		{"1000", "Cash", "ASSET"},
		{"5000", "Office supplies", "EXPENSE"},
	} {
		_, err := accounting.CreateAccount(ctx, appaccounting.CreateAccountRequest{
			Code: acc.code, Name: acc.name, Type: acc.accType,
		})
		require.NoError(t, err)
	}
	service := appexpense.NewExpenseService(NewGormExpenseTransactionScope(db), "1000")
	return db, service, accounting
}

func TestExpenseService_CreateAndPost(t *testing.T) {
	_, service, accounting := setupExpenseFixture(t)
	ctx := context.Background()

	created, err := service.Create(ctx, appexpense.CreateExpenseRequest{
		Date:               time.Date(2024, 7, 3, 0, 0, 0, 0, time.UTC),
		ExpenseAccountCode: "5000",
		Amount:             decimal.RequireFromString("42.00"),
		Description:        "printer paper",
	})
	require.NoError(t, err)
	assert.False(t, created.Posted)

	// creation alone moves no money
	entries, err := accounting.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)

	posted, err := service.Post(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, posted.Posted)

	entries, err = accounting.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "5000", entries[0].DebitAccountCode)
	assert.Equal(t, "1000", entries[0].CreditAccountCode)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("42.00")))

	accounts, err := accounting.ListAccounts(ctx)
	require.NoError(t, err)
	for _, acc := range accounts {
		switch acc.Code {
		case "1000":
			assert.True(t, acc.Balance.Equal(decimal.RequireFromString("-42.00")), "cash %s", acc.Balance)
		case "5000":
			assert.True(t, acc.Balance.Equal(decimal.RequireFromString("42.00")), "expense %s", acc.Balance)
		}
	}
}

func TestExpenseService_PostTwiceFails(t *testing.T) {
	_, service, accounting := setupExpenseFixture(t)
	ctx := context.Background()

	created, err := service.Create(ctx, appexpense.CreateExpenseRequest{
		Date:               time.Now(),
		ExpenseAccountCode: "5000",
		Amount:             decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	_, err = service.Post(ctx, created.ID)
	require.NoError(t, err)
	_, err = service.Post(ctx, created.ID)
	require.Error(t, err)

	entries, err := accounting.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1, "double posting must not duplicate the journal row")
}

func TestExpenseService_CreateValidatesAccountAndVendor(t *testing.T) {
	db, service, _ := setupExpenseFixture(t)
	ctx := context.Background()

	_, err := service.Create(ctx, appexpense.CreateExpenseRequest{
		Date: time.Now(), ExpenseAccountCode: "9999",
		Amount: decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	customer := seedContact(t, db, "Acme GmbH", partner.ContactTypeCustomer)
	_, err = service.Create(ctx, appexpense.CreateExpenseRequest{
		Date: time.Now(), ExpenseAccountCode: "5000",
		Amount: decimal.RequireFromString("10.00"), VendorContactID: &customer.ID,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_COUNTERPART", domainErr.Code)
}

func TestExpenseService_PostMissingAccountRollsBack(t *testing.T) {
	_, service, accounting := setupExpenseFixture(t)
	ctx := context.Background()

	created, err := service.Create(ctx, appexpense.CreateExpenseRequest{
		Date:               time.Now(),
		ExpenseAccountCode: "5000",
		Amount:             decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)

	// the account disappears between creation and posting
	accounts, err := accounting.ListAccounts(ctx)
	require.NoError(t, err)
	for _, acc := range accounts {
		if acc.Code == "5000" {
			require.NoError(t, accounting.DeleteAccount(ctx, acc.ID))
		}
	}

	_, err = service.Post(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// the failed posting rolled back entirely
	got, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Posted)
	entries, err := accounting.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExpenseService_DeleteRules(t *testing.T) {
	_, service, _ := setupExpenseFixture(t)
	ctx := context.Background()

	draft, err := service.Create(ctx, appexpense.CreateExpenseRequest{
		Date: time.Now(), ExpenseAccountCode: "5000",
		Amount: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, draft.ID))
	_, err = service.GetByID(ctx, draft.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	posted, err := service.Create(ctx, appexpense.CreateExpenseRequest{
		Date: time.Now(), ExpenseAccountCode: "5000",
		Amount: decimal.RequireFromString("10.00"),
	})
	require.NoError(t, err)
	_, err = service.Post(ctx, posted.ID)
	require.NoError(t, err)

	err = service.Delete(ctx, posted.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidStateForDeletion)
}

func TestExpenseService_List(t *testing.T) {
	_, service, _ := setupExpenseFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := service.Create(ctx, appexpense.CreateExpenseRequest{
			Date: time.Now().AddDate(0, 0, -i), ExpenseAccountCode: "5000",
			Amount: decimal.RequireFromString("5.00"),
		})
		require.NoError(t, err)
	}

	all, err := service.List(ctx, appexpense.ExpenseListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	paged, err := service.List(ctx, appexpense.ExpenseListFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}
