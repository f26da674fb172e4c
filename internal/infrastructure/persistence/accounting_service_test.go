package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccounting "github.com/ledgerline/backend/internal/application/accounting"
	"github.com/ledgerline/backend/internal/domain/shared"
)

func newAccountingService(t *testing.T) (*appaccounting.AccountingService, func(code, name, accountType string, parentID *uuid.UUID) uuid.UUID) {
	t.Helper()
	db := setupTestDB(t)
	service := appaccounting.NewAccountingService(NewGormAccountingTransactionScope(db))
	mk := func(code, name, accountType string, parentID *uuid.UUID) uuid.UUID {
		resp, err := service.CreateAccount(context.Background(), appaccounting.CreateAccountRequest{
			Code: code, Name: name, Type: accountType, ParentID: parentID,
		})
		require.NoError(t, err)
		return resp.ID
	}
	return service, mk
}

func TestAccountingService_CreateAccount(t *testing.T) {
	service, mk := newAccountingService(t)
	ctx := context.Background()

	mk("1000", "Cash", "ASSET", nil)

	_, err := service.CreateAccount(ctx, appaccounting.CreateAccountRequest{
		Code: "1000", Name: "Duplicate cash", Type: "ASSET",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)

	missing := uuid.New()
	_, err = service.CreateAccount(ctx, appaccounting.CreateAccountRequest{
		Code: "1100", Name: "Bank", Type: "ASSET", ParentID: &missing,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAccountingService_DeleteAccountWithChildren(t *testing.T) {
	service, mk := newAccountingService(t)
	ctx := context.Background()

	parentID := mk("1000", "Current assets", "ASSET", nil)
	childID := mk("1010", "Cash", "ASSET", &parentID)

	err := service.DeleteAccount(ctx, parentID)
	assert.ErrorIs(t, err, shared.ErrHasDependents)

	require.NoError(t, service.DeleteAccount(ctx, childID))
	require.NoError(t, service.DeleteAccount(ctx, parentID))
	_, err = service.GetAccount(ctx, parentID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAccountingService_PostJournalEntryMovesBalances(t *testing.T) {
	service, mk := newAccountingService(t)
	ctx := context.Background()

	cashID := mk("1000", "Cash", "ASSET", nil)
	revenueID := mk("4000", "Sales revenue", "REVENUE", nil)

	entry, err := service.PostJournalEntry(ctx, appaccounting.PostJournalEntryRequest{
		Date:              time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		DebitAccountCode:  "1000",
		CreditAccountCode: "4000",
		Amount:            decimal.RequireFromString("120.50"),
		Memo:              "cash sale",
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", entry.DebitAccountCode)
	assert.Equal(t, "4000", entry.CreditAccountCode)

	// debit increases an asset, credit increases revenue
	cash, err := service.GetAccount(ctx, cashID)
	require.NoError(t, err)
	assert.True(t, cash.Balance.Equal(decimal.RequireFromString("120.50")), "cash balance %s", cash.Balance)

	revenue, err := service.GetAccount(ctx, revenueID)
	require.NoError(t, err)
	assert.True(t, revenue.Balance.Equal(decimal.RequireFromString("120.50")))

	entries, err := service.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAccountingService_PostJournalEntryValidation(t *testing.T) {
	service, mk := newAccountingService(t)
	ctx := context.Background()

	mk("1000", "Cash", "ASSET", nil)
	mk("4000", "Sales revenue", "REVENUE", nil)

	cases := []struct {
		name string
		req  appaccounting.PostJournalEntryRequest
	}{
		{"zero amount", appaccounting.PostJournalEntryRequest{
			Date: time.Now(), DebitAccountCode: "1000", CreditAccountCode: "4000",
			Amount: decimal.Zero,
		}},
		{"negative amount", appaccounting.PostJournalEntryRequest{
			Date: time.Now(), DebitAccountCode: "1000", CreditAccountCode: "4000",
			Amount: decimal.RequireFromString("-5"),
		}},
		{"same account both sides", appaccounting.PostJournalEntryRequest{
			Date: time.Now(), DebitAccountCode: "1000", CreditAccountCode: "1000",
			Amount: decimal.RequireFromString("5"),
		}},
		{"unknown account", appaccounting.PostJournalEntryRequest{
			Date: time.Now(), DebitAccountCode: "1000", CreditAccountCode: "9999",
			Amount: decimal.RequireFromString("5"),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.PostJournalEntry(ctx, tc.req)
			require.Error(t, err)
		})
	}

	entries, err := service.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries, "rejected postings leave no journal rows")
}

func TestAccountingService_RolledUpBalance(t *testing.T) {
	service, mk := newAccountingService(t)
	ctx := context.Background()

	assetsID := mk("1", "Assets", "ASSET", nil)
	mk("1000", "Cash", "ASSET", &assetsID)
	mk("1100", "Bank", "ASSET", &assetsID)
	mk("4000", "Sales revenue", "REVENUE", nil)

	post := func(debit, credit, amount string) {
		_, err := service.PostJournalEntry(ctx, appaccounting.PostJournalEntryRequest{
			Date: time.Now(), DebitAccountCode: debit, CreditAccountCode: credit,
			Amount: decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}
	post("1000", "4000", "30")
	post("1100", "4000", "70")

	assets, err := service.GetAccount(ctx, assetsID)
	require.NoError(t, err)
	assert.True(t, assets.Balance.IsZero(), "no direct postings on the parent")
	assert.True(t, assets.RolledUpBalance.Equal(decimal.RequireFromString("100")),
		"rolled up %s", assets.RolledUpBalance)

	accounts, err := service.ListAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 4)
	assert.Equal(t, "1", accounts[0].Code, "chart listed in code order")
}

func TestAccountingService_ListJournalEntriesByAccount(t *testing.T) {
	service, mk := newAccountingService(t)
	ctx := context.Background()

	mk("1000", "Cash", "ASSET", nil)
	mk("4000", "Sales revenue", "REVENUE", nil)
	mk("5000", "Rent", "EXPENSE", nil)

	post := func(debit, credit, amount string) {
		_, err := service.PostJournalEntry(ctx, appaccounting.PostJournalEntryRequest{
			Date: time.Now(), DebitAccountCode: debit, CreditAccountCode: credit,
			Amount: decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
	}
	post("1000", "4000", "10")
	post("5000", "1000", "4")

	code := "4000"
	entries, err := service.ListJournalEntries(ctx, appaccounting.JournalListFilter{AccountCode: &code})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "4000", entries[0].CreditAccountCode)

	code = "1000"
	entries, err = service.ListJournalEntries(ctx, appaccounting.JournalListFilter{AccountCode: &code})
	require.NoError(t, err)
	assert.Len(t, entries, 2, "matches both debit and credit side")
}
