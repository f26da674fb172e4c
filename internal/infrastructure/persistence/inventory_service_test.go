package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/ledgerline/backend/internal/application/inventory"
	apptrade "github.com/ledgerline/backend/internal/application/trade"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared"
)

func TestInventoryService_CreateWithOpeningStock(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	resp, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU:          "  WID-1  ",
		Name:         "Widget",
		Category:     "hardware",
		InitialStock: 25,
		ReorderLevel: 5,
		UnitPrice:    decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "WID-1", resp.SKU)
	assert.EqualValues(t, 25, resp.CurrentStock)
	assert.False(t, resp.BelowReorderLevel)

	history, err := service.StockHistory(ctx, resp.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.EqualValues(t, 25, history[0].Delta)
	assert.EqualValues(t, 25, history[0].ResultingStock)
	assert.Equal(t, "opening stock", history[0].Reason)
}

func TestInventoryService_CreateZeroStockWritesNoAudit(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	resp, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU:       "WID-1",
		Name:      "Widget",
		UnitPrice: decimal.RequireFromString("2.50"),
	})
	require.NoError(t, err)

	history, err := service.StockHistory(ctx, resp.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestInventoryService_DuplicateSKURejected(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	_, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU: "WID-1", Name: "Widget", UnitPrice: decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	_, err = service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU: "WID-1", Name: "Another widget", UnitPrice: decimal.RequireFromString("1.00"),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestInventoryService_AdjustStock(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	created, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU: "WID-1", Name: "Widget", InitialStock: 10,
		UnitPrice: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)

	resp, err := service.AdjustStock(ctx, created.ID, appinventory.AdjustStockRequest{
		Delta: -4, Reason: "damaged in storage",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 6, resp.CurrentStock)

	resp, err = service.AdjustStock(ctx, created.ID, appinventory.AdjustStockRequest{
		Delta: 2, Reason: "stocktake correction",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 8, resp.CurrentStock)

	history, err := service.StockHistory(ctx, created.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, history, 3)
	// newest first
	assert.EqualValues(t, 2, history[0].Delta)
	assert.EqualValues(t, 8, history[0].ResultingStock)
	assert.EqualValues(t, -4, history[1].Delta)
}

func TestInventoryService_AdjustStockBelowZero(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	created, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU: "WID-1", Name: "Widget", InitialStock: 3,
		UnitPrice: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)

	_, err = service.AdjustStock(ctx, created.ID, appinventory.AdjustStockRequest{
		Delta: -5, Reason: "oversold",
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	got, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.CurrentStock)
	history, err := service.StockHistory(ctx, created.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, history, 1, "only the opening row survives a failed adjustment")
}

func TestInventoryService_DeleteBlockedByOrderReference(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	free, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU: "FREE-1", Name: "Unreferenced", UnitPrice: decimal.RequireFromString("1.00"),
	})
	require.NoError(t, err)

	used := seedItem(t, db, "USED-1", 10, "2.00")
	customer := seedContact(t, db, "Acme GmbH", partner.ContactTypeCustomer)
	orders := apptrade.NewSaleOrderService(NewGormTradeTransactionScope(db))
	_, err = orders.Create(ctx, apptrade.CreateOrderRequest{
		CounterpartID: customer.ID,
		Date:          time.Now(),
		Items:         []apptrade.CreateOrderItemInput{{InventoryItemID: used.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = service.Delete(ctx, used.ID)
	assert.ErrorIs(t, err, shared.ErrHasDependents)

	require.NoError(t, service.Delete(ctx, free.ID))
	_, err = service.GetByID(ctx, free.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInventoryService_ListBelowReorderLevel(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	mk := func(sku string, stock, reorder int64) {
		_, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
			SKU: sku, Name: "Item " + sku, InitialStock: stock, ReorderLevel: reorder,
			UnitPrice: decimal.RequireFromString("1.00"),
		})
		require.NoError(t, err)
	}
	mk("LOW-1", 2, 5)
	mk("EDGE-1", 5, 5)
	mk("OK-1", 50, 5)
	mk("NONE-1", 0, 0) // reorder level unset, never reported

	low, err := service.ListBelowReorderLevel(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "EDGE-1", low[0].SKU)
	assert.Equal(t, "LOW-1", low[1].SKU)
	assert.True(t, low[0].BelowReorderLevel)
}

func TestInventoryService_UpdateDoesNotTouchStock(t *testing.T) {
	db := setupTestDB(t)
	service := appinventory.NewInventoryService(NewGormInventoryTransactionScope(db))
	ctx := context.Background()

	created, err := service.Create(ctx, appinventory.CreateInventoryItemRequest{
		SKU: "WID-1", Name: "Widget", InitialStock: 10,
		UnitPrice: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)

	name := "Widget Mk II"
	price := decimal.RequireFromString("3.25")
	resp, err := service.Update(ctx, created.ID, appinventory.UpdateInventoryItemRequest{
		Name:      &name,
		UnitPrice: &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk II", resp.Name)
	assert.True(t, resp.UnitPrice.Equal(price))
	assert.EqualValues(t, 10, resp.CurrentStock)

	history, err := service.StockHistory(ctx, created.ID, 1, 20)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
