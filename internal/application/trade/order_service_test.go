package trade

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/backend/internal/domain/inventory"
	"github.com/ledgerline/backend/internal/domain/partner"
	"github.com/ledgerline/backend/internal/domain/shared/valueobject"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// lockRecordingInventoryRepo records the order in which row locks are taken.
// Methods other than FindByIDForUpdate are not expected to be called.
type lockRecordingInventoryRepo struct {
	inventory.InventoryItemRepository
	items     map[uuid.UUID]*inventory.InventoryItem
	lockOrder []uuid.UUID
}

func (r *lockRecordingInventoryRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	r.lockOrder = append(r.lockOrder, id)
	return r.items[id], nil
}

type stubRepos struct {
	inv *lockRecordingInventoryRepo
}

func (s stubRepos) OrderRepo() trade.OrderRepository                    { return nil }
func (s stubRepos) InventoryRepo() inventory.InventoryItemRepository    { return s.inv }
func (s stubRepos) AdjustmentRepo() inventory.StockAdjustmentRepository { return nil }
func (s stubRepos) ContactRepo() partner.ContactRepository              { return nil }

func mkLockItem(t *testing.T, id uuid.UUID, sku string) *inventory.InventoryItem {
	t.Helper()
	item, err := inventory.NewInventoryItem(sku, "Item "+sku, "", 100, 0, valueobject.NewMoneyEURFromFloat(1.00))
	require.NoError(t, err)
	item.ID = id
	return item
}

func TestLockOrderItems_AcquiresLocksInIDOrder(t *testing.T) {
	hi := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")
	mid := uuid.MustParse("88888888-0000-0000-0000-000000000000")
	lo := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	order, err := trade.NewOrder(trade.OrderKindSale, uuid.New(), "Acme GmbH", time.Now(), "")
	require.NoError(t, err)
	price := valueobject.NewMoneyEURFromFloat(1.00)
	for i, id := range []uuid.UUID{hi, lo, mid, hi} {
		_, err := order.AddItem(id, "Item", "SKU-"+string(rune('A'+i)), 2, price)
		require.NoError(t, err)
	}

	repo := &lockRecordingInventoryRepo{items: map[uuid.UUID]*inventory.InventoryItem{
		hi:  mkLockItem(t, hi, "HI"),
		mid: mkLockItem(t, mid, "MID"),
		lo:  mkLockItem(t, lo, "LO"),
	}}

	svc := NewSaleOrderService(nil)
	locked, lineOrder, err := svc.lockOrderItems(context.Background(), stubRepos{inv: repo}, order)
	require.NoError(t, err)

	// line order follows the document, lock order follows the item IDs
	assert.Equal(t, []uuid.UUID{hi, lo, mid}, lineOrder)
	assert.Equal(t, []uuid.UUID{lo, mid, hi}, repo.lockOrder)

	// duplicate lines aggregate onto one locked entry
	require.Len(t, locked, 3)
	assert.EqualValues(t, 4, locked[hi].requested)
	assert.EqualValues(t, 2, locked[mid].requested)
	assert.Same(t, repo.items[lo], locked[lo].item)
}

func TestSortedItemIDs_DoesNotMutateInput(t *testing.T) {
	a := uuid.MustParse("aaaaaaaa-0000-0000-0000-000000000000")
	b := uuid.MustParse("bbbbbbbb-0000-0000-0000-000000000000")
	ids := []uuid.UUID{b, a}

	sorted := sortedItemIDs(ids)

	assert.Equal(t, []uuid.UUID{a, b}, sorted)
	assert.Equal(t, []uuid.UUID{b, a}, ids)
}
