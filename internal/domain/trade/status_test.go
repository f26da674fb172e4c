package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo_Purchase(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		// From DRAFT
		{OrderStatusDraft, OrderStatusConfirmed, true},
		{OrderStatusDraft, OrderStatusCancelled, true},
		{OrderStatusDraft, OrderStatusPaid, false},
		// From CONFIRMED
		{OrderStatusConfirmed, OrderStatusPaid, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusDraft, false},
		// Sale-only statuses are unreachable
		{OrderStatusDraft, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, false},
		// From PAID (terminal)
		{OrderStatusPaid, OrderStatusCancelled, false},
		{OrderStatusPaid, OrderStatusConfirmed, false},
		// From CANCELLED (terminal)
		{OrderStatusCancelled, OrderStatusDraft, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(OrderKindPurchase, tt.to))
		})
	}
}

func TestOrderStatus_CanTransitionTo_Sale(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{OrderStatusDraft, OrderStatusConfirmed, true},
		{OrderStatusDraft, OrderStatusCancelled, true},
		{OrderStatusDraft, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusPaid, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusPaid, false},
		{OrderStatusDelivered, OrderStatusPaid, true},
		{OrderStatusDelivered, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(OrderKindSale, tt.to))
		})
	}
}

func TestOrderStatus_IsValidForKind(t *testing.T) {
	assert.True(t, OrderStatusConfirmed.IsValidForKind(OrderKindPurchase))
	assert.True(t, OrderStatusShipped.IsValidForKind(OrderKindSale))
	assert.False(t, OrderStatusShipped.IsValidForKind(OrderKindPurchase))
	assert.False(t, OrderStatusDelivered.IsValidForKind(OrderKindPurchase))
	assert.False(t, OrderStatus("UNKNOWN").IsValidForKind(OrderKindSale))
}

func TestConsumesStock(t *testing.T) {
	tests := []struct {
		kind     OrderKind
		status   OrderStatus
		consumes bool
	}{
		{OrderKindPurchase, OrderStatusDraft, false},
		{OrderKindPurchase, OrderStatusConfirmed, true},
		{OrderKindPurchase, OrderStatusPaid, true},
		{OrderKindPurchase, OrderStatusCancelled, false},
		{OrderKindSale, OrderStatusDraft, false},
		{OrderKindSale, OrderStatusConfirmed, true},
		{OrderKindSale, OrderStatusShipped, true},
		{OrderKindSale, OrderStatusDelivered, true},
		{OrderKindSale, OrderStatusPaid, true},
		{OrderKindSale, OrderStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.consumes, ConsumesStock(tt.kind, tt.status))
		})
	}
}

func TestTransitionStockEffect(t *testing.T) {
	tests := []struct {
		name   string
		kind   OrderKind
		from   OrderStatus
		to     OrderStatus
		effect StockEffect
	}{
		{"draft to confirmed consumes", OrderKindSale, OrderStatusDraft, OrderStatusConfirmed, StockEffectConsume},
		{"confirmed to shipped stays consumed", OrderKindSale, OrderStatusConfirmed, OrderStatusShipped, StockEffectNone},
		{"shipped to delivered stays consumed", OrderKindSale, OrderStatusShipped, OrderStatusDelivered, StockEffectNone},
		{"delivered to paid stays consumed", OrderKindSale, OrderStatusDelivered, OrderStatusPaid, StockEffectNone},
		{"cancel from shipped restocks", OrderKindSale, OrderStatusShipped, OrderStatusCancelled, StockEffectRestock},
		{"cancel from confirmed restocks", OrderKindPurchase, OrderStatusConfirmed, OrderStatusCancelled, StockEffectRestock},
		{"cancel from draft has no effect", OrderKindPurchase, OrderStatusDraft, OrderStatusCancelled, StockEffectNone},
		{"purchase confirm consumes", OrderKindPurchase, OrderStatusDraft, OrderStatusConfirmed, StockEffectConsume},
		{"purchase confirmed to paid stays consumed", OrderKindPurchase, OrderStatusConfirmed, OrderStatusPaid, StockEffectNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.effect, TransitionStockEffect(tt.kind, tt.from, tt.to))
		})
	}
}
