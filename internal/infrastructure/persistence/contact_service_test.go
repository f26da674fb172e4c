package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apppartner "github.com/ledgerline/backend/internal/application/partner"
	apptrade "github.com/ledgerline/backend/internal/application/trade"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared"
)

func TestContactService_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	service := apppartner.NewContactService(NewGormPartnerTransactionScope(db))
	ctx := context.Background()

	created, err := service.Create(ctx, apppartner.CreateContactRequest{
		Name:    "Acme GmbH",
		Email:   "Billing@Acme.example",
		Type:    "CUSTOMER",
		Company: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, partner.ContactTypeCustomer, created.Type)
	assert.Equal(t, "Billing@Acme.example", created.Email)

	matches, err := NewGormContactRepository(db).FindByEmail(ctx, "billing@acme.example")
	require.NoError(t, err)
	assert.Len(t, matches, 1, "email lookup is case insensitive")

	got, err := service.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = service.Create(ctx, apppartner.CreateContactRequest{Name: "Bad", Type: "SUPPLIER"})
	require.Error(t, err)
}

func TestContactService_Update(t *testing.T) {
	db := setupTestDB(t)
	service := apppartner.NewContactService(NewGormPartnerTransactionScope(db))
	ctx := context.Background()

	created, err := service.Create(ctx, apppartner.CreateContactRequest{
		Name: "Prospect Ltd", Type: "PROSPECT",
	})
	require.NoError(t, err)

	// prospects convert to customers once they buy
	newType := "CUSTOMER"
	phone := "+49 30 1234567"
	updated, err := service.Update(ctx, created.ID, apppartner.UpdateContactRequest{
		Type:  &newType,
		Phone: &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, partner.ContactTypeCustomer, updated.Type)
	assert.Equal(t, phone, updated.Phone)
	assert.Equal(t, "Prospect Ltd", updated.Name)
}

func TestContactService_DeleteBlockedByOrders(t *testing.T) {
	db := setupTestDB(t)
	service := apppartner.NewContactService(NewGormPartnerTransactionScope(db))
	ctx := context.Background()

	customer := seedContact(t, db, "Acme GmbH", partner.ContactTypeCustomer)
	widget := seedItem(t, db, "WID-1", 10, "2.00")
	orders := apptrade.NewSaleOrderService(NewGormTradeTransactionScope(db))
	order, err := orders.Create(ctx, apptrade.CreateOrderRequest{
		CounterpartID: customer.ID,
		Date:          time.Now(),
		Items:         []apptrade.CreateOrderItemInput{{InventoryItemID: widget.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	err = service.Delete(ctx, customer.ID)
	assert.ErrorIs(t, err, shared.ErrHasDependents)

	// once the document is gone the contact can go too
	require.NoError(t, orders.Delete(ctx, order.ID))
	require.NoError(t, service.Delete(ctx, customer.ID))
	_, err = service.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestContactService_ListByType(t *testing.T) {
	db := setupTestDB(t)
	service := apppartner.NewContactService(NewGormPartnerTransactionScope(db))
	ctx := context.Background()

	seedContact(t, db, "Customer A", partner.ContactTypeCustomer)
	seedContact(t, db, "Customer B", partner.ContactTypeCustomer)
	seedContact(t, db, "Vendor A", partner.ContactTypeVendor)

	all, total, err := service.List(ctx, apppartner.ContactListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	vendorType := "VENDOR"
	vendors, total, err := service.List(ctx, apppartner.ContactListFilter{Type: &vendorType})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Vendor A", vendors[0].Name)
}
