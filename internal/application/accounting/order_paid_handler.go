package accounting

import (
	"context"

	"github.com/ledgerline/backend/internal/domain/shared"
	"github.com/ledgerline/backend/internal/domain/trade"
)

// PostingAccounts names the account codes the automatic order posting uses.
// Codes are configuration; the handler does not assume a numbering scheme.
type PostingAccounts struct {
	CashCode            string
	SalesRevenueCode    string
	PurchaseExpenseCode string
}

// OrderPaidHandler posts a journal entry when an order reaches Paid.
// A paid sale debits cash and credits revenue; a paid purchase debits the
// purchase expense account and credits cash. The entry references the order's
// document number so the posting is traceable back to its source.
type OrderPaidHandler struct {
	service  *AccountingService
	accounts PostingAccounts
}

// NewOrderPaidHandler creates a new OrderPaidHandler
func NewOrderPaidHandler(service *AccountingService, accounts PostingAccounts) *OrderPaidHandler {
	return &OrderPaidHandler{
		service:  service,
		accounts: accounts,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *OrderPaidHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderPaid}
}

// Handle posts the journal entry for a paid order
func (h *OrderPaidHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	paid, ok := event.(*trade.OrderPaidEvent)
	if !ok {
		return nil
	}

	req := PostJournalEntryRequest{
		Date:      paid.OccurredAt(),
		Amount:    paid.TotalAmount,
		Memo:      "order " + paid.DocumentNumber + " paid",
		Reference: paid.DocumentNumber,
	}
	switch paid.Kind {
	case trade.OrderKindSale:
		req.DebitAccountCode = h.accounts.CashCode
		req.CreditAccountCode = h.accounts.SalesRevenueCode
	case trade.OrderKindPurchase:
		req.DebitAccountCode = h.accounts.PurchaseExpenseCode
		req.CreditAccountCode = h.accounts.CashCode
	default:
		return nil
	}

	_, err := h.service.PostJournalEntry(ctx, req)
	return err
}

var _ shared.EventHandler = (*OrderPaidHandler)(nil)
