package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appaccounting "github.com/ledgerline/backend/internal/application/accounting"
	apptrade "github.com/ledgerline/backend/internal/application/trade"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/infrastructure/event"
)

// wires an order service and an accounting service to the same database and
// connects them through the in-memory event bus, the way cmd/server does
func setupOrderPosting(t *testing.T, db *gorm.DB, kind func(apptrade.TransactionScope) *apptrade.OrderService) (*apptrade.OrderService, *appaccounting.AccountingService) {
	t.Helper()
	orderService := kind(NewGormTradeTransactionScope(db))
	accountingService := appaccounting.NewAccountingService(NewGormAccountingTransactionScope(db))

	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(appaccounting.NewOrderPaidHandler(accountingService, appaccounting.PostingAccounts{
		CashCode:            "1000",
		SalesRevenueCode:    "4000",
		PurchaseExpenseCode: "5000",
	}))
	orderService.SetEventPublisher(bus)

	return orderService, accountingService
}

func mkAccount(t *testing.T, service *appaccounting.AccountingService, code, name, accountType string) *appaccounting.AccountResponse {
	t.Helper()
	resp, err := service.CreateAccount(context.Background(), appaccounting.CreateAccountRequest{
		Code: code, Name: name, Type: accountType,
	})
	require.NoError(t, err)
	return resp
}

func TestOrderPaidPosting_SaleDebitsCashCreditsRevenue(t *testing.T) {
	db := setupTestDB(t)
	orderService, accountingService := setupOrderPosting(t, db, apptrade.NewSaleOrderService)
	ctx := context.Background()

	cash := mkAccount(t, accountingService, "1000", "Cash", "ASSET")
	revenue := mkAccount(t, accountingService, "4000", "Sales revenue", "REVENUE")

	customer := seedContact(t, db, "Acme GmbH", partner.ContactTypeCustomer)
	widget := seedItem(t, db, "WID-1", 10, "4.00")

	resp, err := orderService.Create(ctx, apptrade.CreateOrderRequest{
		CounterpartID: customer.ID,
		Date:          time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:        "CONFIRMED",
		Items: []apptrade.CreateOrderItemInput{
			{InventoryItemID: widget.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	for _, status := range []string{"SHIPPED", "DELIVERED", "PAID"} {
		resp, err = orderService.UpdateStatus(ctx, resp.ID, apptrade.UpdateOrderStatusRequest{Status: status})
		require.NoError(t, err)
	}

	entries, err := accountingService.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1000", entries[0].DebitAccountCode)
	assert.Equal(t, "4000", entries[0].CreditAccountCode)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("12.00")),
		"expected 12.00, got %s", entries[0].Amount)
	assert.Equal(t, resp.DocumentNumber, entries[0].Reference)

	cashAfter, err := accountingService.GetAccount(ctx, cash.ID)
	require.NoError(t, err)
	assert.True(t, cashAfter.Balance.Equal(decimal.RequireFromString("12.00")))

	revenueAfter, err := accountingService.GetAccount(ctx, revenue.ID)
	require.NoError(t, err)
	assert.True(t, revenueAfter.Balance.Equal(decimal.RequireFromString("12.00")))
}

func TestOrderPaidPosting_PurchaseDebitsExpenseCreditsCash(t *testing.T) {
	db := setupTestDB(t)
	orderService, accountingService := setupOrderPosting(t, db, apptrade.NewPurchaseOrderService)
	ctx := context.Background()

	cash := mkAccount(t, accountingService, "1000", "Cash", "ASSET")
	expense := mkAccount(t, accountingService, "5000", "Purchases", "EXPENSE")

	vendor := seedContact(t, db, "Parts Ltd", partner.ContactTypeVendor)
	widget := seedItem(t, db, "WID-1", 0, "2.50")

	resp, err := orderService.Create(ctx, apptrade.CreateOrderRequest{
		CounterpartID: vendor.ID,
		Date:          time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:        "CONFIRMED",
		Items: []apptrade.CreateOrderItemInput{
			{InventoryItemID: widget.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	resp, err = orderService.UpdateStatus(ctx, resp.ID, apptrade.UpdateOrderStatusRequest{Status: "PAID"})
	require.NoError(t, err)

	entries, err := accountingService.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "5000", entries[0].DebitAccountCode)
	assert.Equal(t, "1000", entries[0].CreditAccountCode)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("10.00")))

	// a paid purchase drains cash
	cashAfter, err := accountingService.GetAccount(ctx, cash.ID)
	require.NoError(t, err)
	assert.True(t, cashAfter.Balance.Equal(decimal.RequireFromString("-10.00")),
		"expected -10.00, got %s", cashAfter.Balance)

	expenseAfter, err := accountingService.GetAccount(ctx, expense.ID)
	require.NoError(t, err)
	assert.True(t, expenseAfter.Balance.Equal(decimal.RequireFromString("10.00")))
}

func TestOrderPaidPosting_CreatedDirectlyAsPaid(t *testing.T) {
	db := setupTestDB(t)
	orderService, accountingService := setupOrderPosting(t, db, apptrade.NewSaleOrderService)
	ctx := context.Background()

	mkAccount(t, accountingService, "1000", "Cash", "ASSET")
	mkAccount(t, accountingService, "4000", "Sales revenue", "REVENUE")

	customer := seedContact(t, db, "Acme GmbH", partner.ContactTypeCustomer)
	widget := seedItem(t, db, "WID-1", 10, "4.00")

	resp, err := orderService.Create(ctx, apptrade.CreateOrderRequest{
		CounterpartID: customer.ID,
		Date:          time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:        "PAID",
		Items: []apptrade.CreateOrderItemInput{
			{InventoryItemID: widget.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", string(resp.Status))
	require.NotEmpty(t, resp.DocumentNumber)

	// skipping the transition lattice still lands in the ledger
	entries, err := accountingService.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1000", entries[0].DebitAccountCode)
	assert.Equal(t, "4000", entries[0].CreditAccountCode)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, resp.DocumentNumber, entries[0].Reference)

	assert.Equal(t, int64(7), currentStock(t, db, widget.ID))
}

func TestOrderPaidPosting_MissingAccountsDoNotBlockTheOrder(t *testing.T) {
	db := setupTestDB(t)
	orderService, accountingService := setupOrderPosting(t, db, apptrade.NewPurchaseOrderService)
	ctx := context.Background()

	// no chart of accounts seeded: the posting fails and is logged, the
	// already-committed status change stands
	vendor := seedContact(t, db, "Parts Ltd", partner.ContactTypeVendor)
	widget := seedItem(t, db, "WID-1", 0, "2.50")

	resp, err := orderService.Create(ctx, apptrade.CreateOrderRequest{
		CounterpartID: vendor.ID,
		Date:          time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
		Status:        "CONFIRMED",
		Items: []apptrade.CreateOrderItemInput{
			{InventoryItemID: widget.ID, Quantity: 4},
		},
	})
	require.NoError(t, err)

	resp, err = orderService.UpdateStatus(ctx, resp.ID, apptrade.UpdateOrderStatusRequest{Status: "PAID"})
	require.NoError(t, err)
	assert.Equal(t, "PAID", string(resp.Status))

	entries, err := accountingService.ListJournalEntries(ctx, appaccounting.JournalListFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
